package dto

// TransitionRequest estado destino solicitado para un documento.
type TransitionRequest struct {
	Status string `json:"status"`
}

// BoardApprovalRequest junta y acta de una baja de alto valor.
type BoardApprovalRequest struct {
	Members    []string `json:"board_members"`
	MinutesRef string   `json:"minutes_ref"`
}

// MoveStockRequest traslado manual entre bins.
type MoveStockRequest struct {
	ProductID      string `json:"product_id"`
	FromLocationID string `json:"from_location_id"`
	ToLocationID   string `json:"to_location_id"`
	Batch          string `json:"batch"`
	Quantity       int64  `json:"quantity"`
}

// ListResponse envoltorio de listados.
type ListResponse[T any] struct {
	Total int `json:"total"`
	Items []T `json:"items"`
}

// NewListResponse construye la respuesta; nunca serializa items como null.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Total: len(items), Items: items}
}

// TransitionDetails detalle de una transición rechazada.
type TransitionDetails struct {
	DocumentType string `json:"document_type"`
	From         string `json:"from"`
	To           string `json:"to"`
}

// FieldDetails detalle de un campo inválido.
type FieldDetails struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
