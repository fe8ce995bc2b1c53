package models

type StockInfo struct {
	Stock    int `json:"stock"`
	MinStock int `json:"minStock"`
}

// StockItem is shared by the retail inventory and the reception
// consumables. Quantities are tracked per branch name.
type StockItem struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	BranchStock map[string]StockInfo `json:"branchStock"`
	Active      bool                 `json:"active"`
}
