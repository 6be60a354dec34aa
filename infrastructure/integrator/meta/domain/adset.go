package metadomain

// Targeting aninha os campos de segmentação que a tabela do painel exibe.
type Targeting struct {
	AgeMin       int `json:"age_min,omitempty"`
	AgeMax       int `json:"age_max,omitempty"`
	GeoLocations struct {
		Countries []string `json:"countries,omitempty"`
	} `json:"geo_locations"`
	FlexibleSpec []struct {
		Interests []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"interests,omitempty"`
	} `json:"flexible_spec,omitempty"`
}

type AdSet struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Status           string    `json:"status"`
	EffectiveStatus  string    `json:"effective_status"`
	ConfiguredStatus string    `json:"configured_status"`
	CampaignID       string    `json:"campaign_id"`
	DailyBudget      string    `json:"daily_budget,omitempty"`
	LifetimeBudget   string    `json:"lifetime_budget,omitempty"`
	Targeting        Targeting `json:"targeting"`
	Ads              AdRefList `json:"ads"`
}
