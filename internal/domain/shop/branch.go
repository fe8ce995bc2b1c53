package shop

import (
	"strings"

	"github.com/BruksfildServices01/turnolibre/internal/httperr"
	"github.com/BruksfildServices01/turnolibre/internal/models"
)

// BranchNames lists the main branch followed by every configured one.
func BranchNames(s *models.Shop) []string {
	names := make([]string, 0, len(s.Branches)+1)
	names = append(names, models.MainBranch)
	for _, b := range s.Branches {
		names = append(names, b.Name)
	}
	return names
}

func HasBranch(s *models.Shop, name string) bool {
	for _, n := range BranchNames(s) {
		if n == name {
			return true
		}
	}
	return false
}

func findBranch(s *models.Shop, id string) int {
	for i, b := range s.Branches {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func validateBranchName(s *models.Shop, name, exceptID string) error {
	if strings.TrimSpace(name) == "" {
		return httperr.ErrValidation("branch_name_required")
	}
	if name == models.MainBranch {
		return httperr.ErrConflict("branch_name_reserved")
	}
	for _, b := range s.Branches {
		if b.ID != exceptID && b.Name == name {
			return httperr.ErrConflict("branch_name_taken")
		}
	}
	return nil
}

func AddBranch(s *models.Shop, b models.Branch) error {
	b.Name = strings.TrimSpace(b.Name)
	if err := validateBranchName(s, b.Name, ""); err != nil {
		return err
	}
	s.Branches = append(s.Branches, b)
	return nil
}

// UpdateBranch replaces the branch identified by b.ID. A name change is a
// rename and cascades to every structure keyed by branch name.
func UpdateBranch(s *models.Shop, b models.Branch) error {
	idx := findBranch(s, b.ID)
	if idx < 0 {
		return httperr.ErrNotFound("branch_not_found")
	}

	b.Name = strings.TrimSpace(b.Name)
	if err := validateBranchName(s, b.Name, b.ID); err != nil {
		return err
	}

	oldName := s.Branches[idx].Name
	s.Branches[idx] = b
	if oldName != b.Name {
		renameBranchKeys(s, oldName, b.ID, b.Name)
	}
	return nil
}

func renameBranchKeys(s *models.Shop, oldName, id, newName string) {
	if hours, ok := s.BranchSchedules[oldName]; ok {
		delete(s.BranchSchedules, oldName)
		s.BranchSchedules[newName] = hours
	}

	for i := range s.Barbers {
		if s.Barbers[i].Branch == oldName || s.Barbers[i].Branch == id {
			s.Barbers[i].Branch = newName
		}
	}

	s.Inventory = renameStockKey(s.Inventory, oldName, newName)
	s.Receptions = renameStockKey(s.Receptions, oldName, newName)
}

func renameStockKey(items []models.StockItem, oldName, newName string) []models.StockItem {
	for i := range items {
		info, ok := items[i].BranchStock[oldName]
		if !ok {
			continue
		}
		stock := make(map[string]models.StockInfo, len(items[i].BranchStock))
		for k, v := range items[i].BranchStock {
			if k != oldName {
				stock[k] = v
			}
		}
		stock[newName] = info
		items[i].BranchStock = stock
	}
	return items
}

// RemoveBranch deletes the branch and its schedule override. Staff and
// stock records still pointing at it are left for the admin to reassign.
func RemoveBranch(s *models.Shop, id string) error {
	idx := findBranch(s, id)
	if idx < 0 {
		return httperr.ErrNotFound("branch_not_found")
	}

	delete(s.BranchSchedules, s.Branches[idx].Name)
	s.Branches = append(s.Branches[:idx], s.Branches[idx+1:]...)
	return nil
}
