package meta

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-manager-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-manager-api/internal/config"
	"github.com/vfg2006/ads-manager-api/internal/domain"
	"github.com/vfg2006/ads-manager-api/pkg/utils"
)

type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// ListAdAccounts busca as contas na Graph API e normaliza os campos
// monetários (strings em unidades menores) para o registro de contas. Sem
// ids explícitos, descobre as contas pelos Business Managers acessíveis.
func (s *MetaIntegrator) ListAdAccounts(accountIDs []string) ([]*domain.AdAccount, error) {
	if len(accountIDs) == 0 {
		discovered, err := s.discoverAccountIDs()
		if err != nil {
			logrus.WithError(err).Error("accounts: failed to discover ad accounts")
			return nil, err
		}
		accountIDs = discovered
	}

	raw, err := s.Client.GetAdAccounts(accountIDs)
	if err != nil {
		logrus.WithError(err).Error("accounts: failed to get ad accounts from API")
		return nil, err
	}

	accounts := make([]*domain.AdAccount, 0, len(raw))
	for i := range raw {
		acc := raw[i]

		var amountSpent int64
		if spent := utils.ParseMinorUnits(acc.AmountSpent); spent != nil {
			amountSpent = *spent
		}

		accounts = append(accounts, &domain.AdAccount{
			ID:            acc.AccountID,
			Name:          acc.Name,
			AccountStatus: acc.AccountStatus,
			DisableReason: acc.DisableReason,
			SpendCap:      utils.ParseMinorUnits(acc.SpendCap),
			AmountSpent:   amountSpent,
			Currency:      acc.Currency,
		})
	}

	logrus.WithField("total_accounts", len(accounts)).Debug("accounts: successfully retrieved ad accounts")

	return accounts, nil
}

func (s *MetaIntegrator) getBusinessManagers() ([]metadomain.BusinessManager, error) {
	if err := s.Client.EnsureValidToken(); err != nil {
		return nil, fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	url := fmt.Sprintf("%s/me/businesses?limit=100&access_token=%s", s.cfg.Meta.URL, s.cfg.Meta.AccessToken)

	data, err := utils.MakeRequest(url)
	if err != nil {
		if strings.Contains(err.Error(), "Error on Request") {
			if refreshErr := s.Client.RefreshToken(); refreshErr != nil {
				return nil, fmt.Errorf("erro ao renovar token: %w", refreshErr)
			}

			url = fmt.Sprintf("%s/me/businesses?limit=100&access_token=%s", s.cfg.Meta.URL, s.cfg.Meta.AccessToken)

			data, err = utils.MakeRequest(url)
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}

	var response struct {
		Data []metadomain.BusinessManager `json:"data"`
	}
	err = json.Unmarshal(data, &response)
	if err != nil {
		return nil, err
	}

	return response.Data, nil
}

// discoverAccountIDs percorre os Business Managers acessíveis e coleta os
// ids das contas de anúncios de cada um.
func (s *MetaIntegrator) discoverAccountIDs() ([]string, error) {
	businesses, err := s.getBusinessManagers()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	accountIDs := make([]string, 0)

	for _, b := range businesses {
		url := fmt.Sprintf("%s/%s/owned_ad_accounts?fields=account_id&limit=100&access_token=%s",
			s.cfg.Meta.URL, b.ID, s.cfg.Meta.AccessToken)

		data, err := utils.MakeRequest(url)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"business_id": b.ID,
				"error":       err.Error(),
			}).Warn("accounts: failed to list ad accounts for business manager")
			continue
		}

		var response struct {
			Data []metadomain.AdAccount `json:"data"`
		}
		if err := json.Unmarshal(data, &response); err != nil {
			return nil, err
		}

		for _, acc := range response.Data {
			if _, ok := seen[acc.AccountID]; ok {
				continue
			}
			seen[acc.AccountID] = struct{}{}
			accountIDs = append(accountIDs, acc.AccountID)
		}
	}

	logrus.WithFields(logrus.Fields{
		"total_businesses": len(businesses),
		"total_accounts":   len(accountIDs),
	}).Info("accounts: discovered ad accounts from business managers")

	return accountIDs, nil
}

// ListCampaigns busca as campanhas da conta com os filhos aninhados que o
// rollup de status dos pais consome.
func (s *MetaIntegrator) ListCampaigns(accountID string) ([]*domain.Campaign, error) {
	raw, err := s.Client.GetCampaignsByAccountID(accountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("campaigns: failed to get campaigns from API")
		return nil, err
	}

	campaigns := make([]*domain.Campaign, 0, len(raw))
	for i := range raw {
		c := raw[i]

		var amountSpent int64
		if spent := utils.ParseMinorUnits(c.AmountSpent); spent != nil {
			amountSpent = *spent
		}

		adSets := make([]*domain.AdSet, 0, len(c.AdSets.Data))
		for _, ref := range c.AdSets.Data {
			ads := make([]*domain.Ad, 0, len(ref.Ads.Data))
			for _, adRef := range ref.Ads.Data {
				ads = append(ads, &domain.Ad{
					ID:              adRef.ID,
					EffectiveStatus: adRef.EffectiveStatus,
					AdSetID:         ref.ID,
					CampaignID:      c.ID,
					AdAccountID:     accountID,
				})
			}

			adSets = append(adSets, &domain.AdSet{
				ID:              ref.ID,
				EffectiveStatus: ref.EffectiveStatus,
				CampaignID:      c.ID,
				AdAccountID:     accountID,
				Ads:             ads,
			})
		}

		campaigns = append(campaigns, &domain.Campaign{
			ID:               c.ID,
			Name:             c.Name,
			Status:           c.Status,
			EffectiveStatus:  c.EffectiveStatus,
			ConfiguredStatus: c.ConfiguredStatus,
			Objective:        c.Objective,
			SpendCap:         utils.ParseMinorUnits(c.SpendCap),
			AmountSpent:      amountSpent,
			AdAccountID:      accountID,
			AdSets:           adSets,
		})
	}

	return campaigns, nil
}

// ListAdSets busca os conjuntos de anúncios da conta com segmentação e
// anúncios aninhados.
func (s *MetaIntegrator) ListAdSets(accountID string) ([]*domain.AdSet, error) {
	raw, err := s.Client.GetAdSetsByAccountID(accountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("adsets: failed to get ad sets from API")
		return nil, err
	}

	adSets := make([]*domain.AdSet, 0, len(raw))
	for i := range raw {
		a := raw[i]

		ads := make([]*domain.Ad, 0, len(a.Ads.Data))
		for _, adRef := range a.Ads.Data {
			ads = append(ads, &domain.Ad{
				ID:              adRef.ID,
				EffectiveStatus: adRef.EffectiveStatus,
				AdSetID:         a.ID,
				CampaignID:      a.CampaignID,
				AdAccountID:     accountID,
			})
		}

		adSets = append(adSets, &domain.AdSet{
			ID:               a.ID,
			Name:             a.Name,
			Status:           a.Status,
			EffectiveStatus:  a.EffectiveStatus,
			ConfiguredStatus: a.ConfiguredStatus,
			CampaignID:       a.CampaignID,
			AdAccountID:      accountID,
			DailyBudget:      utils.ParseMinorUnits(a.DailyBudget),
			LifetimeBudget:   utils.ParseMinorUnits(a.LifetimeBudget),
			Targeting:        factoryTargeting(a.Targeting),
			Ads:              ads,
		})
	}

	return adSets, nil
}

// ListAds busca os anúncios da conta com os campos criativos da tabela.
func (s *MetaIntegrator) ListAds(accountID string) ([]*domain.Ad, error) {
	raw, err := s.Client.GetAdsByAccountID(accountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("ads: failed to get ads from API")
		return nil, err
	}

	ads := make([]*domain.Ad, 0, len(raw))
	for i := range raw {
		a := raw[i]

		ads = append(ads, &domain.Ad{
			ID:               a.ID,
			Name:             a.Name,
			Status:           a.Status,
			EffectiveStatus:  a.EffectiveStatus,
			ConfiguredStatus: a.ConfiguredStatus,
			AdSetID:          a.AdSetID,
			CampaignID:       a.CampaignID,
			AdAccountID:      accountID,
			Creative: &domain.Creative{
				Title:    a.Creative.Title,
				Body:     a.Creative.Body,
				ImageURL: a.Creative.ImageURL,
				PostLink: a.Creative.ObjectStoryID,
			},
		})
	}

	return ads, nil
}

// GetMetrics busca os insights do nível pedido e devolve o mapa
// id da entidade -> métricas, pronto para a mesclagem com os dados básicos.
func (s *MetaIntegrator) GetMetrics(level domain.EntityType, accountID string, filters *domain.SnapshotFilters) (map[string]*domain.EntityMetrics, error) {
	raw, err := s.Client.GetInsights(level, accountID, filters)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"level":      level,
			"error":      err.Error(),
		}).Error("insights: failed to get insights from API")
		return nil, err
	}

	metrics := make(map[string]*domain.EntityMetrics, len(raw))
	for i := range raw {
		insight := raw[i]
		metrics[insight.EntityID()] = FactoryEntityMetrics(&insight)
	}

	return metrics, nil
}

// UpdateEntityStatus propaga um toggle de status para a Graph API.
func (s *MetaIntegrator) UpdateEntityStatus(entityID string, status string) error {
	return s.Client.UpdateStatus(entityID, status)
}

// UpdateAccountSpendCap altera (ou remove, quando nil) o limite de gastos
// da conta.
func (s *MetaIntegrator) UpdateAccountSpendCap(accountID string, spendCap *int64) error {
	return s.Client.UpdateSpendCap(accountID, spendCap)
}

// CreateCampaign cria uma campanha pausada e devolve o id gerado.
func (s *MetaIntegrator) CreateCampaign(accountID string, name string, objective string, dailyBudget *int64) (string, error) {
	return s.Client.CreateCampaign(accountID, &metaclient.CreateCampaignRequest{
		Name:        name,
		Objective:   objective,
		DailyBudget: dailyBudget,
	})
}

// FactoryEntityMetrics converte uma linha de insights (numéricos em string)
// para as métricas do domínio. Campo malformado vira zero com warning, não
// erro, para não derrubar a carga inteira por uma linha.
func FactoryEntityMetrics(insight *metadomain.Insight) *domain.EntityMetrics {
	actions := make([]domain.Action, 0, len(insight.Actions))
	for _, action := range insight.Actions {
		actions = append(actions, domain.Action{
			ActionType: action.ActionType,
			Value:      action.Value,
		})
	}

	costPerActions := make([]domain.Action, 0, len(insight.CostPerActions))
	for _, action := range insight.CostPerActions {
		costPerActions = append(costPerActions, domain.Action{
			ActionType: action.ActionType,
			Value:      action.Value,
		})
	}

	return &domain.EntityMetrics{
		Spend:          utils.ParseFloatOrZero(insight.Spend),
		Impressions:    utils.ParseIntOrZero(insight.Impressions),
		Clicks:         utils.ParseIntOrZero(insight.Clicks),
		Reach:          utils.ParseIntOrZero(insight.Reach),
		Frequency:      utils.RoundWithTwoDecimalPlace(utils.ParseFloatOrZero(insight.Frequency)),
		CTR:            utils.RoundWithTwoDecimalPlace(utils.ParseFloatOrZero(insight.CTR)),
		CPM:            utils.RoundWithTwoDecimalPlace(utils.ParseFloatOrZero(insight.CPM)),
		Objective:      insight.Objective,
		Actions:        actions,
		CostPerActions: costPerActions,
	}
}

func factoryTargeting(t metadomain.Targeting) *domain.Targeting {
	interests := make([]string, 0)
	for _, spec := range t.FlexibleSpec {
		for _, interest := range spec.Interests {
			interests = append(interests, interest.Name)
		}
	}

	return &domain.Targeting{
		AgeMin:    t.AgeMin,
		AgeMax:    t.AgeMax,
		Countries: t.GeoLocations.Countries,
		Interests: interests,
	}
}
