package domain

// Status numérico da conta conforme a Graph API do Meta.
// 1 = ativa, 2 = desabilitada, demais valores = outros estados.
const (
	AccountStatusActive   = 1
	AccountStatusDisabled = 2
)

// AdAccount é a entrada do registro de contas usada como tabela de consulta
// pela resolução de status. Valores monetários em unidades menores da moeda
// (centavos), como a Graph API os entrega.
type AdAccount struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	AccountStatus int    `json:"accountStatus"`
	DisableReason int    `json:"disableReason"`
	SpendCap      *int64 `json:"spendCap,omitempty"`
	AmountSpent   int64  `json:"amountSpent"`
	Currency      string `json:"currency"`
}

// SpendCapReached informa se o limite de gastos da conta foi atingido.
// amount_spent e spend_cap só são comparáveis quando o limite existe e é > 0.
func (a *AdAccount) SpendCapReached() bool {
	if a == nil || a.SpendCap == nil || *a.SpendCap <= 0 {
		return false
	}
	return a.AmountSpent >= *a.SpendCap
}

// AdAccountResponse é a conta no formato de resposta da API, com o status
// de entrega já resolvido.
type AdAccountResponse struct {
	*AdAccount
	DeliveryStatus *StatusResult `json:"deliveryStatus"`
}

// SyncAccountsResponse resume o resultado de uma sincronização de contas.
type SyncAccountsResponse struct {
	Quantity int    `json:"quantity"`
	Message  string `json:"message"`
	Error    bool   `json:"error"`
}

// AccountRegistry mapeia id da conta -> campos da conta usados pela
// resolução de status e pela pipeline de listagem.
type AccountRegistry map[string]*AdAccount

func (r AccountRegistry) Get(accountID string) *AdAccount {
	if r == nil {
		return nil
	}
	return r[accountID]
}
