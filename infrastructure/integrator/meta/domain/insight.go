package metadomain

// Action é um par action_type/valor dos arrays actions e
// cost_per_action_type.
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// Insight é uma linha de insights da Graph API em qualquer nível. Os campos
// de id não usados no nível consultado chegam vazios; os numéricos chegam
// como strings.
type Insight struct {
	AccountID      string   `json:"account_id"`
	CampaignID     string   `json:"campaign_id,omitempty"`
	AdSetID        string   `json:"adset_id,omitempty"`
	AdID           string   `json:"ad_id,omitempty"`
	Objective      string   `json:"objective"`
	Spend          string   `json:"spend"`
	Impressions    string   `json:"impressions"`
	Clicks         string   `json:"clicks"`
	Reach          string   `json:"reach"`
	Frequency      string   `json:"frequency"`
	CTR            string   `json:"ctr"`
	CPM            string   `json:"cpm"`
	Actions        []Action `json:"actions"`
	CostPerActions []Action `json:"cost_per_action_type"`
	DateStart      string   `json:"date_start"`
	DateStop       string   `json:"date_stop"`
}

// EntityID devolve o id da entidade à qual a linha pertence, conforme o
// nível consultado. A mesclagem básico+insights casa por este id.
func (i *Insight) EntityID() string {
	switch {
	case i.AdID != "":
		return i.AdID
	case i.AdSetID != "":
		return i.AdSetID
	case i.CampaignID != "":
		return i.CampaignID
	}
	return i.AccountID
}
