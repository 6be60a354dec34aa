package listing

import (
	"strconv"

	"github.com/vfg2006/ads-manager-api/internal/domain"
)

// Mapeamento de "objective" -> cadeia ordenada de action_types. O primeiro
// tipo com valor presente e diferente de zero vence; os demais são
// fallbacks para contas que reportam o evento sob outro nome.
var objectiveActionChains = map[string][]string{
	"OUTCOME_SALES":         {"offsite_conversion.fb_pixel_purchase", "purchase", "omni_purchase"},
	"OUTCOME_LEADS":         {"lead", "offsite_conversion.fb_pixel_lead", "onsite_conversion.lead_grouped"},
	"OUTCOME_TRAFFIC":       {"link_click", "landing_page_view"},
	"OUTCOME_ENGAGEMENT":    {"onsite_conversion.messaging_conversation_started_7d", "post_engagement", "link_click"},
	"OUTCOME_AWARENESS":     {"reach"},
	"OUTCOME_APP_PROMOTION": {"app_install", "mobile_app_install"},
	"LINK_CLICKS":           {"link_click"},
	"POST_ENGAGEMENT":       {"post_engagement"},
	"PAGE_LIKES":            {"like"},
	"VIDEO_VIEWS":           {"video_view"},
	"LEAD_GENERATION":       {"lead"},
	"CONVERSIONS":           {"offsite_conversion", "offsite_conversion.fb_pixel_purchase"},
	"APP_INSTALLS":          {"app_install"},
	"PRODUCT_CATALOG_SALES": {"offsite_conversion.fb_pixel_purchase"},
	"MESSAGES":              {"onsite_conversion.messaging_first_reply", "onsite_conversion.messaging_conversation_started_7d"},
	"BRAND_AWARENESS":       {"brand_awareness"},
	"REACH":                 {"reach"},
	"STORE_TRAFFIC":         {"store_visit"},
	"EVENT_RESPONSES":       {"rsvp"},
	"ADD_TO_CART":           {"offsite_conversion.fb_pixel_add_to_cart"},
	"PURCHASE":              {"offsite_conversion.fb_pixel_purchase"},
}

func actionValue(actions []domain.Action, actionType string) (float64, bool) {
	for _, action := range actions {
		if action.ActionType != actionType {
			continue
		}

		value, err := strconv.ParseFloat(action.Value, 64)
		if err != nil {
			return 0, false
		}
		return value, true
	}

	return 0, false
}

// deriveFromChain percorre a cadeia de fallback e devolve o primeiro valor
// presente e diferente de zero. nil quando nada foi encontrado.
func deriveFromChain(actions []domain.Action, objective string) *float64 {
	chain, ok := objectiveActionChains[objective]
	if !ok {
		return nil
	}

	for _, actionType := range chain {
		if value, found := actionValue(actions, actionType); found && value != 0 {
			return &value
		}
	}

	return nil
}

// Results deriva o total de resultados da entidade a partir do array
// actions, conforme o objetivo da campanha.
func Results(metrics *domain.EntityMetrics) *float64 {
	if metrics == nil {
		return nil
	}
	return deriveFromChain(metrics.Actions, metrics.Objective)
}

// CostPerResult deriva o custo por resultado a partir de
// cost_per_action_type, com a mesma cadeia de fallback dos resultados.
func CostPerResult(metrics *domain.EntityMetrics) *float64 {
	if metrics == nil {
		return nil
	}
	return deriveFromChain(metrics.CostPerActions, metrics.Objective)
}
