package domain

// EntityType identifica o nível da hierarquia de entrega.
type EntityType string

const (
	EntityTypeAccount  EntityType = "account"
	EntityTypeCampaign EntityType = "campaign"
	EntityTypeAdSet    EntityType = "adset"
	EntityTypeAd       EntityType = "ad"
)

// Status brutos retornados pela Graph API (status e effective_status).
const (
	StatusActive         = "ACTIVE"
	StatusPaused         = "PAUSED"
	StatusDeleted        = "DELETED"
	StatusArchived       = "ARCHIVED"
	StatusCampaignPaused = "CAMPAIGN_PAUSED"
	StatusAdSetPaused    = "ADSET_PAUSED"
	StatusWithIssues     = "WITH_ISSUES"
	StatusDisapproved    = "DISAPPROVED"
	StatusPendingReview  = "PENDING_REVIEW"
	StatusInProcess      = "IN_PROCESS"
	StatusPreapproval    = "PREAPPROVAL"
)

// Campaign é um snapshot somente leitura de uma campanha, com os filhos
// aninhados carregando apenas o necessário para o rollup de status.
type Campaign struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Status           string         `json:"status"`
	EffectiveStatus  string         `json:"effectiveStatus"`
	ConfiguredStatus string         `json:"configuredStatus"`
	Objective        string         `json:"objective"`
	SpendCap         *int64         `json:"spendCap,omitempty"`
	AmountSpent      int64          `json:"amountSpent"`
	AdAccountID      string         `json:"adAccountId"`
	AdSets           []*AdSet       `json:"adSets,omitempty"`
	Metrics          *EntityMetrics `json:"metrics,omitempty"`
}

// Targeting resume a segmentação de um conjunto de anúncios.
type Targeting struct {
	AgeMin    int      `json:"ageMin,omitempty"`
	AgeMax    int      `json:"ageMax,omitempty"`
	Countries []string `json:"countries,omitempty"`
	Interests []string `json:"interests,omitempty"`
}

type AdSet struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Status           string         `json:"status"`
	EffectiveStatus  string         `json:"effectiveStatus"`
	ConfiguredStatus string         `json:"configuredStatus"`
	CampaignID       string         `json:"campaignId"`
	AdAccountID      string         `json:"adAccountId"`
	DailyBudget      *int64         `json:"dailyBudget,omitempty"`
	LifetimeBudget   *int64         `json:"lifetimeBudget,omitempty"`
	Targeting        *Targeting     `json:"targeting,omitempty"`
	Ads              []*Ad          `json:"ads,omitempty"`
	Metrics          *EntityMetrics `json:"metrics,omitempty"`
}

// Creative carrega os campos criativos exibidos na tabela de anúncios.
type Creative struct {
	Title    string `json:"title,omitempty"`
	Body     string `json:"body,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
	PostLink string `json:"postLink,omitempty"`
}

type Ad struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Status           string         `json:"status"`
	EffectiveStatus  string         `json:"effectiveStatus"`
	ConfiguredStatus string         `json:"configuredStatus"`
	AdSetID          string         `json:"adsetId"`
	CampaignID       string         `json:"campaignId"`
	AdAccountID      string         `json:"adAccountId"`
	PageID           string         `json:"pageId,omitempty"`
	PageName         string         `json:"pageName,omitempty"`
	Creative         *Creative      `json:"creative,omitempty"`
	Metrics          *EntityMetrics `json:"metrics,omitempty"`
}

// IsTerminalOff informa se um effective_status representa um estado
// terminal desligado para fins de rollup.
func IsTerminalOff(effectiveStatus string) bool {
	switch effectiveStatus {
	case StatusPaused, StatusArchived, StatusDeleted:
		return true
	}
	return false
}
