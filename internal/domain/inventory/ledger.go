package inventory

import (
	"sort"

	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// DefaultStock is assumed for a branch that has never been stocked.
var DefaultStock = models.StockInfo{Stock: 0, MinStock: 5}

// ApplyConsumption deducts usage from each item's stock at branch.
//
// Items without a positive usage entry come back untouched, sharing their
// original map. Touched items get a fresh map so the input is never
// mutated. Stock never drops below zero.
func ApplyConsumption(
	items []models.StockItem,
	branch string,
	usage map[string]int,
) []models.StockItem {

	out := make([]models.StockItem, len(items))
	for i, item := range items {
		used := usage[item.ID]
		if used <= 0 {
			out[i] = item
			continue
		}

		current, ok := item.BranchStock[branch]
		if !ok {
			current = DefaultStock
		}

		current.Stock -= used
		if current.Stock < 0 {
			current.Stock = 0
		}

		item.BranchStock = cloneStock(item.BranchStock)
		item.BranchStock[branch] = current
		out[i] = item
	}
	return out
}

// Consumed sums the positive usage for ids that exist in items.
func Consumed(items []models.StockItem, usage map[string]int) int {
	total := 0
	for _, item := range items {
		if used := usage[item.ID]; used > 0 {
			total += used
		}
	}
	return total
}

// SanitizeUsage drops non-positive entries.
func SanitizeUsage(usage map[string]int) map[string]int {
	out := make(map[string]int, len(usage))
	for id, n := range usage {
		if n > 0 {
			out[id] = n
		}
	}
	return out
}

// NewItem builds a stock item stocked only at the main branch.
func NewItem(id, name string) models.StockItem {
	return models.StockItem{
		ID:          id,
		Name:        name,
		Active:      true,
		BranchStock: map[string]models.StockInfo{models.MainBranch: DefaultStock},
	}
}

// SetBranchStock replaces the stock record of one branch, clamping
// negative values to zero.
func SetBranchStock(item models.StockItem, branch string, info models.StockInfo) models.StockItem {
	if info.Stock < 0 {
		info.Stock = 0
	}
	if info.MinStock < 0 {
		info.MinStock = 0
	}

	item.BranchStock = cloneStock(item.BranchStock)
	item.BranchStock[branch] = info
	return item
}

// -----------------------------------------------------
// Low stock
// -----------------------------------------------------

type Alert struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Branch   string `json:"branch"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"minStock"`
}

// LowStock reports every branch record at or under its minimum. An empty
// branch matches all branches. Results are ordered by item then branch.
func LowStock(items []models.StockItem, branch string) []Alert {
	alerts := []Alert{}
	for _, item := range items {
		for name, info := range item.BranchStock {
			if branch != "" && name != branch {
				continue
			}
			if info.Stock <= info.MinStock {
				alerts = append(alerts, Alert{
					ItemID:   item.ID,
					Name:     item.Name,
					Branch:   name,
					Stock:    info.Stock,
					MinStock: info.MinStock,
				})
			}
		}
	}

	sort.Slice(alerts, func(i, j int) bool {
		if alerts[i].Name != alerts[j].Name {
			return alerts[i].Name < alerts[j].Name
		}
		return alerts[i].Branch < alerts[j].Branch
	})
	return alerts
}

func cloneStock(in map[string]models.StockInfo) map[string]models.StockInfo {
	out := make(map[string]models.StockInfo, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
