package metadomain

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
	Next    string  `json:"next,omitempty"`
}

// AdRef é a projeção mínima de um anúncio aninhado usada no rollup de
// status dos pais.
type AdRef struct {
	ID              string `json:"id"`
	EffectiveStatus string `json:"effective_status"`
}

type AdRefList struct {
	Data []AdRef `json:"data"`
}

// AdSetRef é a projeção de conjunto aninhada na listagem de campanhas.
type AdSetRef struct {
	ID              string    `json:"id"`
	EffectiveStatus string    `json:"effective_status"`
	Ads             AdRefList `json:"ads"`
}

type AdSetRefList struct {
	Data []AdSetRef `json:"data"`
}

type Campaign struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Status           string       `json:"status"`
	EffectiveStatus  string       `json:"effective_status"`
	ConfiguredStatus string       `json:"configured_status"`
	Objective        string       `json:"objective"`
	SpendCap         string       `json:"spend_cap,omitempty"`
	AmountSpent      string       `json:"amount_spent,omitempty"`
	AdSets           AdSetRefList `json:"adsets"`
}
