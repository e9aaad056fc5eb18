package dto

// SearchResponse resultados de GET /api/search?q=.
type SearchResponse struct {
	Query string               `json:"query"`
	Sales []SaleResponse       `json:"sales"`
	Stock []StockEntryResponse `json:"stock"`
}
