package metadomain

// Creative carrega os campos criativos expostos na tabela de anúncios.
type Creative struct {
	Title         string `json:"title,omitempty"`
	Body          string `json:"body,omitempty"`
	ImageURL      string `json:"image_url,omitempty"`
	ObjectStoryID string `json:"object_story_id,omitempty"`
}

type Ad struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Status           string   `json:"status"`
	EffectiveStatus  string   `json:"effective_status"`
	ConfiguredStatus string   `json:"configured_status"`
	AdSetID          string   `json:"adset_id"`
	CampaignID       string   `json:"campaign_id"`
	Creative         Creative `json:"creative"`
}
