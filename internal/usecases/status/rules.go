package status

import (
	"strings"

	"github.com/vfg2006/ads-manager-api/internal/domain"
)

// entityView é a projeção de uma entidade (campanha, conjunto ou anúncio)
// sobre a qual as regras de precedência são avaliadas. Os campos de filhos
// ficam vazios nos níveis em que o rollup não se aplica.
type entityView struct {
	Level            domain.EntityType
	RawStatus        string
	EffectiveStatus  string
	ConfiguredStatus string
	SpendCap         *int64
	AmountSpent      int64
	Account          *domain.AdAccount

	// Rollup: status efetivos dos descendentes diretos, de todos os anúncios
	// alcançáveis e dos anúncios dentro de conjuntos ainda ativos.
	ChildStatuses       []string
	DescendantAdStatus  []string
	AdsInActiveChildren []string
	HasChildren         bool
	HasActiveChildren   bool
}

// rule é um par predicado -> resultado. As regras são avaliadas em ordem e a
// primeira que casar vence; a ordem da lista É a precedência.
type rule struct {
	Name    string
	Matches func(v entityView) bool
	Result  func(v entityView) domain.StatusResult
}

// rules é a lista ordenada de regras de precedência: checagens de conta,
// depois da entidade, depois rollup dos filhos e por fim a tabela de status
// bruto. Várias condições podem ser verdadeiras ao mesmo tempo; apenas a
// primeira conta.
var rules = []rule{
	{
		Name: "account_disabled",
		Matches: func(v entityView) bool {
			return v.Account != nil && v.Account.AccountStatus == domain.AccountStatusDisabled
		},
		Result: func(entityView) domain.StatusResult {
			return domain.NewStatusResult("Account Disabled", domain.StatusTypeRejected)
		},
	},
	{
		Name: "account_spend_cap_reached",
		Matches: func(v entityView) bool {
			return v.Account.SpendCapReached()
		},
		Result: func(entityView) domain.StatusResult {
			return domain.NewStatusResult("Spending Limit Reached", domain.StatusTypeWithIssues)
		},
	},
	{
		Name: "entity_spend_cap_reached",
		Matches: func(v entityView) bool {
			return v.SpendCap != nil && *v.SpendCap > 0 && v.AmountSpent >= *v.SpendCap
		},
		Result: func(entityView) domain.StatusResult {
			return domain.NewStatusResult("Spending Limit Reached", domain.StatusTypeWithIssues)
		},
	},
	{
		// Entre os problemas de filhos, DISAPPROVED tem prioridade sobre
		// WITH_ISSUES mesmo quando ambos existem.
		Name: "descendant_ad_disapproved",
		Matches: func(v entityView) bool {
			return v.EffectiveStatus == domain.StatusActive && containsStatus(v.DescendantAdStatus, domain.StatusDisapproved)
		},
		Result: func(entityView) domain.StatusResult {
			return domain.NewStatusResult("Rejected", domain.StatusTypeRejected)
		},
	},
	{
		Name: "descendant_ad_with_issues",
		Matches: func(v entityView) bool {
			return v.EffectiveStatus == domain.StatusActive && containsStatus(v.DescendantAdStatus, domain.StatusWithIssues)
		},
		Result: func(entityView) domain.StatusResult {
			return domain.NewStatusResult("With Issues", domain.StatusTypeWithIssues)
		},
	},
	{
		Name: "no_children",
		Matches: func(v entityView) bool {
			return v.EffectiveStatus == domain.StatusActive && hasRollup(v.Level) && !v.HasChildren
		},
		Result: func(entityView) domain.StatusResult {
			return domain.NewStatusResult("No Ads", domain.StatusTypePaused)
		},
	},
	{
		Name: "direct_children_off",
		Matches: func(v entityView) bool {
			return v.EffectiveStatus == domain.StatusActive && hasRollup(v.Level) && allTerminalOff(v.ChildStatuses)
		},
		Result: func(v entityView) domain.StatusResult {
			if v.Level == domain.EntityTypeCampaign {
				return domain.NewStatusResult("Ad Sets Off", domain.StatusTypePaused)
			}
			return domain.NewStatusResult("Ads Off", domain.StatusTypePaused)
		},
	},
	{
		// Campanha ativa com conjuntos ativos, mas sem nenhum anúncio vivo
		// dentro deles.
		Name: "active_children_without_live_ads",
		Matches: func(v entityView) bool {
			if v.EffectiveStatus != domain.StatusActive || v.Level != domain.EntityTypeCampaign || !v.HasActiveChildren {
				return false
			}
			if len(v.AdsInActiveChildren) == 0 {
				return true
			}
			return allTerminalOff(v.AdsInActiveChildren)
		},
		Result: func(v entityView) domain.StatusResult {
			if len(v.AdsInActiveChildren) == 0 {
				return domain.NewStatusResult("No Ads", domain.StatusTypePaused)
			}
			return domain.NewStatusResult("Ads Off", domain.StatusTypePaused)
		},
	},
	{
		Name: "raw_status_table",
		Matches: func(entityView) bool {
			return true
		},
		Result: func(v entityView) domain.StatusResult {
			return lookupRawStatus(v)
		},
	},
}

// rawStatusTable é o mapeamento fixo de status bruto -> rótulo/categoria.
var rawStatusTable = map[string]domain.StatusResult{
	domain.StatusActive:         domain.NewStatusResult("Active", domain.StatusTypeActive),
	domain.StatusPaused:         domain.NewStatusResult("Off", domain.StatusTypePaused),
	domain.StatusCampaignPaused: domain.NewStatusResult("Campaign Off", domain.StatusTypePaused),
	domain.StatusAdSetPaused:    domain.NewStatusResult("Ad Set Off", domain.StatusTypePaused),
	domain.StatusDeleted:        domain.NewStatusResult("Completed", domain.StatusTypeCompleted),
	domain.StatusArchived:       domain.NewStatusResult("Completed", domain.StatusTypeCompleted),
	domain.StatusWithIssues:     domain.NewStatusResult("With Issues", domain.StatusTypeWithIssues),
	domain.StatusDisapproved:    domain.NewStatusResult("Rejected", domain.StatusTypeRejected),
	domain.StatusPendingReview:  domain.NewStatusResult("In Review", domain.StatusTypeInReview),
	domain.StatusInProcess:      domain.NewStatusResult("In Review", domain.StatusTypeInReview),
	domain.StatusPreapproval:    domain.NewStatusResult("In Review", domain.StatusTypeInReview),
}

func lookupRawStatus(v entityView) domain.StatusResult {
	raw := v.EffectiveStatus
	if raw == "" {
		raw = v.RawStatus
	}

	if result, ok := rawStatusTable[raw]; ok {
		return result
	}

	// Status não mapeado: se o usuário configurou PAUSED, tratamos como
	// desligado; caso contrário exibimos o status bruto em title case.
	if v.ConfiguredStatus == domain.StatusPaused {
		return domain.NewStatusResult("Off", domain.StatusTypePaused)
	}

	return domain.NewStatusResult(titleCase(raw), domain.StatusTypeOther)
}

// hasRollup informa se o nível tem filhos a considerar no rollup.
func hasRollup(level domain.EntityType) bool {
	return level == domain.EntityTypeCampaign || level == domain.EntityTypeAdSet
}

func containsStatus(statuses []string, wanted string) bool {
	for _, s := range statuses {
		if s == wanted {
			return true
		}
	}
	return false
}

func allTerminalOff(statuses []string) bool {
	for _, s := range statuses {
		if !domain.IsTerminalOff(s) {
			return false
		}
	}
	return len(statuses) > 0
}

// titleCase converte um status bruto (SNAKE_CASE) para exibição.
func titleCase(raw string) string {
	if raw == "" {
		return "Unknown"
	}

	words := strings.Split(strings.ToLower(strings.ReplaceAll(raw, "_", " ")), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}

	return strings.Join(words, " ")
}
