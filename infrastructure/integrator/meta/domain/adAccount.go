package metadomain

// AdAccount é a conta de anúncios como a Graph API a entrega. Os campos
// monetários chegam como strings em unidades menores da moeda.
// BusinessManager é o Business Manager dono de contas de anúncios.
type BusinessManager struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AdAccount struct {
	ID            string `json:"id"`
	AccountID     string `json:"account_id"`
	Name          string `json:"name"`
	AccountStatus int    `json:"account_status"`
	DisableReason int    `json:"disable_reason"`
	SpendCap      string `json:"spend_cap,omitempty"`
	AmountSpent   string `json:"amount_spent,omitempty"`
	Currency      string `json:"currency"`
}
