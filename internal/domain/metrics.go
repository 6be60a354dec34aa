package domain

import "time"

// Action é um par action_type/valor vindo dos arrays actions e
// cost_per_action_type dos insights.
type Action struct {
	ActionType string `json:"actionType"`
	Value      string `json:"value"`
}

// EntityMetrics são as métricas de desempenho anexadas a uma entidade a
// partir da busca de insights, mescladas pelo id da entidade.
type EntityMetrics struct {
	Spend          float64  `json:"spend"`
	Impressions    int      `json:"impressions"`
	Clicks         int      `json:"clicks"`
	Reach          int      `json:"reach"`
	Frequency      float64  `json:"frequency"`
	CTR            float64  `json:"ctr"`
	CPM            float64  `json:"cpm"`
	Objective      string   `json:"objective"`
	Actions        []Action `json:"actions,omitempty"`
	CostPerActions []Action `json:"costPerActions,omitempty"`
}

// EmptyMetrics devolve métricas zeradas para entidades sem dados de
// insights no período, em vez de propagar ausência como erro.
func EmptyMetrics(objective string) *EntityMetrics {
	return &EntityMetrics{
		Objective:      objective,
		Actions:        []Action{},
		CostPerActions: []Action{},
	}
}

// SnapshotFilters delimita o período dos insights.
type SnapshotFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// SnapshotRequest identifica uma carga de dados por aba: quais contas,
// qual período e qual nível da hierarquia.
type SnapshotRequest struct {
	Type        EntityType
	AccountIDs  []string
	CampaignIDs []string
	AdSetIDs    []string
	Filters     SnapshotFilters
	NoCache     bool
}

// Snapshot é o resultado mesclado (básico + insights) de uma carga por aba.
type Snapshot struct {
	Type      EntityType   `json:"type"`
	Accounts  []*AdAccount `json:"accounts,omitempty"`
	Campaigns []*Campaign  `json:"campaigns,omitempty"`
	AdSets    []*AdSet     `json:"adSets,omitempty"`
	Ads       []*Ad        `json:"ads,omitempty"`
	FetchedAt time.Time    `json:"fetchedAt"`
}
