package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-manager-api/internal/domain"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func registryWith(account *domain.AdAccount) domain.AccountRegistry {
	return domain.AccountRegistry{account.ID: account}
}

func activeAccount() *domain.AdAccount {
	return &domain.AdAccount{
		ID:            "act_1",
		Name:          "Conta Principal",
		AccountStatus: domain.AccountStatusActive,
	}
}

func TestResolveCampaign_Precedence(t *testing.T) {
	tests := []struct {
		name          string
		campaign      *domain.Campaign
		account       *domain.AdAccount
		expectedLabel string
		expectedType  domain.StatusType
	}{
		{
			name: "Conta desabilitada vence qualquer status da entidade",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "ACTIVE",
				EffectiveStatus: "ACTIVE",
				AdAccountID:     "act_1",
			},
			account: &domain.AdAccount{
				ID:            "act_1",
				AccountStatus: domain.AccountStatusDisabled,
			},
			expectedLabel: "Account Disabled",
			expectedType:  domain.StatusTypeRejected,
		},
		{
			name: "Limite de gastos da conta atingido vence status ACTIVE",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "ACTIVE",
				EffectiveStatus: "ACTIVE",
				AdAccountID:     "act_1",
			},
			account: &domain.AdAccount{
				ID:            "act_1",
				AccountStatus: domain.AccountStatusActive,
				SpendCap:      int64Ptr(10000),
				AmountSpent:   10000,
			},
			expectedLabel: "Spending Limit Reached",
			expectedType:  domain.StatusTypeWithIssues,
		},
		{
			name: "Limite de gastos da campanha atingido",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "ACTIVE",
				EffectiveStatus: "ACTIVE",
				AdAccountID:     "act_1",
				SpendCap:        int64Ptr(5000),
				AmountSpent:     7000,
				AdSets: []*domain.AdSet{
					{EffectiveStatus: "ACTIVE", Ads: []*domain.Ad{{EffectiveStatus: "ACTIVE"}}},
				},
			},
			account:       activeAccount(),
			expectedLabel: "Spending Limit Reached",
			expectedType:  domain.StatusTypeWithIssues,
		},
		{
			name: "Anuncio reprovado vence anuncio com problemas",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "ACTIVE",
				EffectiveStatus: "ACTIVE",
				AdAccountID:     "act_1",
				AdSets: []*domain.AdSet{
					{
						EffectiveStatus: "ACTIVE",
						Ads: []*domain.Ad{
							{EffectiveStatus: "WITH_ISSUES"},
							{EffectiveStatus: "DISAPPROVED"},
						},
					},
				},
			},
			account:       activeAccount(),
			expectedLabel: "Rejected",
			expectedType:  domain.StatusTypeRejected,
		},
		{
			name: "Anuncio com problemas sem reprovados",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "ACTIVE",
				EffectiveStatus: "ACTIVE",
				AdAccountID:     "act_1",
				AdSets: []*domain.AdSet{
					{
						EffectiveStatus: "ACTIVE",
						Ads: []*domain.Ad{
							{EffectiveStatus: "ACTIVE"},
							{EffectiveStatus: "WITH_ISSUES"},
						},
					},
				},
			},
			account:       activeAccount(),
			expectedLabel: "With Issues",
			expectedType:  domain.StatusTypeWithIssues,
		},
		{
			name: "Todos os conjuntos desligados",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "ACTIVE",
				EffectiveStatus: "ACTIVE",
				AdAccountID:     "act_1",
				AdSets: []*domain.AdSet{
					{EffectiveStatus: "PAUSED"},
					{EffectiveStatus: "ARCHIVED"},
					{EffectiveStatus: "DELETED"},
				},
			},
			account:       activeAccount(),
			expectedLabel: "Ad Sets Off",
			expectedType:  domain.StatusTypePaused,
		},
		{
			name: "Conjuntos ativos mas todos os anuncios desligados",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "ACTIVE",
				EffectiveStatus: "ACTIVE",
				AdAccountID:     "act_1",
				AdSets: []*domain.AdSet{
					{
						EffectiveStatus: "ACTIVE",
						Ads: []*domain.Ad{
							{EffectiveStatus: "PAUSED"},
							{EffectiveStatus: "ARCHIVED"},
						},
					},
				},
			},
			account:       activeAccount(),
			expectedLabel: "Ads Off",
			expectedType:  domain.StatusTypePaused,
		},
		{
			name: "Conjuntos ativos sem nenhum anuncio",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "ACTIVE",
				EffectiveStatus: "ACTIVE",
				AdAccountID:     "act_1",
				AdSets: []*domain.AdSet{
					{EffectiveStatus: "ACTIVE"},
				},
			},
			account:       activeAccount(),
			expectedLabel: "No Ads",
			expectedType:  domain.StatusTypePaused,
		},
		{
			name: "Campanha sem conjuntos",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "ACTIVE",
				EffectiveStatus: "ACTIVE",
				AdAccountID:     "act_1",
			},
			account:       activeAccount(),
			expectedLabel: "No Ads",
			expectedType:  domain.StatusTypePaused,
		},
		{
			name: "Campanha pausada sem problemas na conta",
			campaign: &domain.Campaign{
				ID:               "c1",
				Status:           "PAUSED",
				EffectiveStatus:  "PAUSED",
				ConfiguredStatus: "PAUSED",
				AdAccountID:      "act_1",
			},
			account:       activeAccount(),
			expectedLabel: "Off",
			expectedType:  domain.StatusTypePaused,
		},
		{
			name: "Status arquivado vira Completed",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "ARCHIVED",
				EffectiveStatus: "ARCHIVED",
				AdAccountID:     "act_1",
			},
			account:       activeAccount(),
			expectedLabel: "Completed",
			expectedType:  domain.StatusTypeCompleted,
		},
		{
			name: "Status em revisao",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "ACTIVE",
				EffectiveStatus: "PENDING_REVIEW",
				AdAccountID:     "act_1",
			},
			account:       activeAccount(),
			expectedLabel: "In Review",
			expectedType:  domain.StatusTypeInReview,
		},
		{
			name: "Status desconhecido com configurado PAUSED cai para Off",
			campaign: &domain.Campaign{
				ID:               "c1",
				Status:           "SOMETHING_NEW",
				EffectiveStatus:  "SOMETHING_NEW",
				ConfiguredStatus: "PAUSED",
				AdAccountID:      "act_1",
			},
			account:       activeAccount(),
			expectedLabel: "Off",
			expectedType:  domain.StatusTypePaused,
		},
		{
			name: "Status desconhecido vira title case",
			campaign: &domain.Campaign{
				ID:              "c1",
				Status:          "SOMETHING_NEW",
				EffectiveStatus: "SOMETHING_NEW",
				AdAccountID:     "act_1",
			},
			account:       activeAccount(),
			expectedLabel: "Something New",
			expectedType:  domain.StatusTypeOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ResolveCampaign(tt.campaign, registryWith(tt.account))

			assert.Equal(t, tt.expectedLabel, result.Label)
			assert.Equal(t, tt.expectedType, result.Type)
		})
	}
}

func TestResolveAdSet(t *testing.T) {
	account := activeAccount()

	t.Run("Conjunto ativo com anuncio reprovado", func(t *testing.T) {
		adSet := &domain.AdSet{
			ID:              "s1",
			Status:          "ACTIVE",
			EffectiveStatus: "ACTIVE",
			AdAccountID:     account.ID,
			Ads: []*domain.Ad{
				{EffectiveStatus: "ACTIVE"},
				{EffectiveStatus: "DISAPPROVED"},
			},
		}

		result := ResolveAdSet(adSet, registryWith(account))
		assert.Equal(t, "Rejected", result.Label)
		assert.Equal(t, domain.StatusTypeRejected, result.Type)
	})

	t.Run("Conjunto ativo com todos os anuncios desligados", func(t *testing.T) {
		adSet := &domain.AdSet{
			ID:              "s1",
			Status:          "ACTIVE",
			EffectiveStatus: "ACTIVE",
			AdAccountID:     account.ID,
			Ads: []*domain.Ad{
				{EffectiveStatus: "PAUSED"},
			},
		}

		result := ResolveAdSet(adSet, registryWith(account))
		assert.Equal(t, "Ads Off", result.Label)
		assert.Equal(t, domain.StatusTypePaused, result.Type)
	})

	t.Run("Conjunto pausado pela campanha", func(t *testing.T) {
		adSet := &domain.AdSet{
			ID:              "s1",
			Status:          "ACTIVE",
			EffectiveStatus: "CAMPAIGN_PAUSED",
			AdAccountID:     account.ID,
		}

		result := ResolveAdSet(adSet, registryWith(account))
		assert.Equal(t, "Campaign Off", result.Label)
		assert.Equal(t, domain.StatusTypePaused, result.Type)
	})
}

func TestResolveAd(t *testing.T) {
	account := activeAccount()

	t.Run("Anuncio pausado pelo conjunto", func(t *testing.T) {
		ad := &domain.Ad{
			ID:              "a1",
			Status:          "ACTIVE",
			EffectiveStatus: "ADSET_PAUSED",
			AdAccountID:     account.ID,
		}

		result := ResolveAd(ad, registryWith(account))
		assert.Equal(t, "Ad Set Off", result.Label)
		assert.Equal(t, domain.StatusTypePaused, result.Type)
	})

	t.Run("Anuncio de conta com limite atingido", func(t *testing.T) {
		capped := &domain.AdAccount{
			ID:            "act_2",
			AccountStatus: domain.AccountStatusActive,
			SpendCap:      int64Ptr(10000),
			AmountSpent:   12000,
		}

		ad := &domain.Ad{
			ID:              "a1",
			Status:          "ACTIVE",
			EffectiveStatus: "ACTIVE",
			AdAccountID:     capped.ID,
		}

		result := ResolveAd(ad, registryWith(capped))
		assert.Equal(t, "Spending Limit Reached", result.Label)
		assert.Equal(t, domain.StatusTypeWithIssues, result.Type)
	})
}

func TestResolveAccount(t *testing.T) {
	t.Run("Conta ativa no limite exato do spend cap", func(t *testing.T) {
		account := &domain.AdAccount{
			ID:            "act_1",
			AccountStatus: domain.AccountStatusActive,
			SpendCap:      int64Ptr(10000),
			AmountSpent:   10000,
		}

		result := ResolveAccount(account)
		assert.Equal(t, "Spending Limit Reached", result.Label)
		assert.Equal(t, domain.StatusTypeWithIssues, result.Type)
	})

	t.Run("Spend cap zero nao conta como limite", func(t *testing.T) {
		account := &domain.AdAccount{
			ID:            "act_1",
			AccountStatus: domain.AccountStatusActive,
			SpendCap:      int64Ptr(0),
			AmountSpent:   10000,
		}

		result := ResolveAccount(account)
		assert.Equal(t, "Active", result.Label)
		assert.Equal(t, domain.StatusTypeActive, result.Type)
	})
}
