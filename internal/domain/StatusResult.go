package domain

// StatusType agrupa os rótulos de status em categorias filtráveis.
type StatusType string

const (
	StatusTypeActive     StatusType = "active"
	StatusTypePaused     StatusType = "paused"
	StatusTypeCompleted  StatusType = "completed"
	StatusTypeRejected   StatusType = "rejected"
	StatusTypeWithIssues StatusType = "with_issues"
	StatusTypeInReview   StatusType = "in_review"
	StatusTypeOther      StatusType = "other"
)

// StatusResult é o status composto de entrega exibido na tabela. Derivado,
// nunca persistido.
type StatusResult struct {
	Label     string     `json:"label"`
	Color     string     `json:"color"`
	TextColor string     `json:"textColor"`
	Type      StatusType `json:"type"`
}

// Tokens de cor por categoria, consumidos pelo front como classes de tema.
var statusColors = map[StatusType][2]string{
	StatusTypeActive:     {"green-100", "green-800"},
	StatusTypePaused:     {"gray-100", "gray-600"},
	StatusTypeCompleted:  {"blue-100", "blue-800"},
	StatusTypeRejected:   {"red-100", "red-800"},
	StatusTypeWithIssues: {"amber-100", "amber-800"},
	StatusTypeInReview:   {"purple-100", "purple-800"},
	StatusTypeOther:      {"slate-100", "slate-600"},
}

// NewStatusResult monta o resultado com os tokens de cor da categoria.
func NewStatusResult(label string, statusType StatusType) StatusResult {
	colors, ok := statusColors[statusType]
	if !ok {
		colors = statusColors[StatusTypeOther]
	}

	return StatusResult{
		Label:     label,
		Color:     colors[0],
		TextColor: colors[1],
		Type:      statusType,
	}
}
