package domain

import "time"

// ViewState é o estado de interface que o cliente web espelha em
// localStorage e na query string (contas selecionadas, período, aba ativa,
// ordenação e filtros). Persistido por usuário e por visão como JSON puro;
// leitura é best-effort, caindo para o estado padrão quando corrompido.
type ViewState struct {
	View             string          `json:"view"`
	SelectedAccounts []string        `json:"selectedAccounts,omitempty"`
	DateFrom         string          `json:"dateFrom,omitempty"`
	DateTo           string          `json:"dateTo,omitempty"`
	ActiveTab        string          `json:"activeTab,omitempty"`
	SortKey          string          `json:"sortKey,omitempty"`
	SortDir          string          `json:"sortDir,omitempty"`
	StatusFilter     string          `json:"statusFilter,omitempty"`
	ColumnVisibility map[string]bool `json:"columnVisibility,omitempty"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// DefaultViewState é o estado aplicado quando não há nada persistido ou o
// JSON persistido não pôde ser decodificado.
func DefaultViewState(view string) *ViewState {
	return &ViewState{
		View:         view,
		ActiveTab:    "campaigns",
		StatusFilter: "all",
	}
}
