package service

import (
	"strings"

	"github.com/restohub-rw/api/internal/domain"
)

// BusinessFilter narrows a business-unit list. Empty fields match everything.
type BusinessFilter struct {
	Search   string // case-insensitive substring on name and location
	Status   string
	Category string
}

// FilterBusinesses applies the filter to the snapshot slice.
func FilterBusinesses(units []domain.BusinessUnit, f BusinessFilter) []domain.BusinessUnit {
	out := make([]domain.BusinessUnit, 0, len(units))
	for _, u := range units {
		if f.Status != "" && u.Status != f.Status {
			continue
		}
		if f.Category != "" && u.Category != f.Category {
			continue
		}
		if !matchesSearch(f.Search, u.Name, u.Location) {
			continue
		}
		out = append(out, u)
	}
	return out
}

// StaffFilter narrows a staff list. Empty fields match everything.
type StaffFilter struct {
	Search string // case-insensitive substring on name and email
	Role   string
	Status string
}

// FilterStaff applies the filter to the snapshot slice.
func FilterStaff(members []domain.StaffMember, f StaffFilter) []domain.StaffMember {
	out := make([]domain.StaffMember, 0, len(members))
	for _, s := range members {
		if f.Role != "" && s.Role != f.Role {
			continue
		}
		if f.Status != "" && s.Status != f.Status {
			continue
		}
		if !matchesSearch(f.Search, s.FullName, s.Email) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterOrdersByStatus keeps only orders with the given status. Empty status
// matches everything.
func FilterOrdersByStatus(orders []domain.Order, status string) []domain.Order {
	if status == "" {
		return orders
	}
	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

func matchesSearch(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
