package portfolio

import (
	"sort"
	"strings"
	"time"

	"github.com/hybel/portfolio/internal/types"
)

// DefaultFilters returns the filter spec with nothing active.
func DefaultFilters() types.PropertyFilters {
	return types.PropertyFilters{}
}

// DefaultSort is the initial sort for the property table.
func DefaultSort() types.SortOptions {
	return types.SortOptions{Field: types.SortByAddress, Direction: types.SortAsc}
}

// matchesSearchTerm checks the term against address, city and tenant name,
// case-insensitively. A property without a tenant simply never matches on
// tenant name; that is not an error.
func matchesSearchTerm(p types.PropertyWithStatus, term string) bool {
	needle := strings.ToLower(term)
	if strings.Contains(strings.ToLower(p.Address), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.City), needle) {
		return true
	}
	return p.Tenant != nil && strings.Contains(strings.ToLower(p.Tenant.Name), needle)
}

// expiresWithinWindow is the annotated-days form of the expiring-soon rule:
// strictly more than 0 days out, at most 60.
func expiresWithinWindow(p types.PropertyWithStatus) bool {
	return p.DaysUntilLeaseExpiry != nil &&
		*p.DaysUntilLeaseExpiry > 0 &&
		*p.DaysUntilLeaseExpiry <= 60
}

// ApplyFilters narrows the annotated collection by each active filter in
// turn. Each predicate is a pure intersection, so application order cannot
// change the result set; relative property order is always preserved. A
// filter left at its zero value excludes nothing.
func ApplyFilters(properties []types.PropertyWithStatus, filters types.PropertyFilters) []types.PropertyWithStatus {
	filtered := make([]types.PropertyWithStatus, len(properties))
	copy(filtered, properties)

	if filters.SearchTerm != "" {
		filtered = keep(filtered, func(p types.PropertyWithStatus) bool {
			return matchesSearchTerm(p, filters.SearchTerm)
		})
	}
	if filters.Status != nil {
		filtered = keep(filtered, func(p types.PropertyWithStatus) bool {
			return p.Status == *filters.Status
		})
	}
	if filters.Type != nil {
		filtered = keep(filtered, func(p types.PropertyWithStatus) bool {
			return p.Type == *filters.Type
		})
	}
	if filters.City != nil {
		filtered = keep(filtered, func(p types.PropertyWithStatus) bool {
			return p.City == *filters.City
		})
	}
	if filters.HasOverduePayment {
		filtered = keep(filtered, func(p types.PropertyWithStatus) bool {
			return p.HasOverduePayment
		})
	}
	if filters.LeaseExpiringSoon {
		filtered = keep(filtered, expiresWithinWindow)
	}
	if filters.NeedsAttention {
		filtered = keep(filtered, func(p types.PropertyWithStatus) bool {
			return p.NeedsAttention
		})
	}

	return filtered
}

func keep(properties []types.PropertyWithStatus, pred func(types.PropertyWithStatus) bool) []types.PropertyWithStatus {
	out := properties[:0:0]
	for _, p := range properties {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

// HasActiveFilters reports whether any filter field differs from its default.
func HasActiveFilters(filters types.PropertyFilters) bool {
	return filters.SearchTerm != "" ||
		filters.Status != nil ||
		filters.Type != nil ||
		filters.City != nil ||
		filters.HasOverduePayment ||
		filters.LeaseExpiringSoon ||
		filters.NeedsAttention
}

// MergeFilters patches the current filter spec with the fields set in the
// update. Pointer fields replace when non-nil; booleans and the search term
// replace when the corresponding set flag is given.
type FilterPatch struct {
	SearchTerm        *string               `json:"search_term,omitempty"`
	Status            *types.PropertyStatus `json:"status,omitempty"`
	Type              *types.PropertyType   `json:"type,omitempty"`
	City              *string               `json:"city,omitempty"`
	HasOverduePayment *bool                 `json:"has_overdue_payment,omitempty"`
	LeaseExpiringSoon *bool                 `json:"lease_expiring_soon,omitempty"`
	NeedsAttention    *bool                 `json:"needs_attention,omitempty"`

	// Clear drops the named optional filters; "status", "type", "city".
	Clear []string `json:"clear,omitempty"`
}

// MergeFilters returns a new filter spec with the patch applied on top of
// current. Unset patch fields leave the current value untouched.
func MergeFilters(current types.PropertyFilters, patch FilterPatch) types.PropertyFilters {
	merged := current
	if patch.SearchTerm != nil {
		merged.SearchTerm = *patch.SearchTerm
	}
	if patch.Status != nil {
		merged.Status = patch.Status
	}
	if patch.Type != nil {
		merged.Type = patch.Type
	}
	if patch.City != nil {
		merged.City = patch.City
	}
	if patch.HasOverduePayment != nil {
		merged.HasOverduePayment = *patch.HasOverduePayment
	}
	if patch.LeaseExpiringSoon != nil {
		merged.LeaseExpiringSoon = *patch.LeaseExpiringSoon
	}
	if patch.NeedsAttention != nil {
		merged.NeedsAttention = *patch.NeedsAttention
	}
	for _, name := range patch.Clear {
		switch name {
		case "status":
			merged.Status = nil
		case "type":
			merged.Type = nil
		case "city":
			merged.City = nil
		}
	}
	return merged
}

// SortProperties returns a stably sorted copy of the annotated collection.
// Missing lease dates and absent tenants sort last regardless of direction.
// Filtering never sorts; this is for the table presentation only.
func SortProperties(properties []types.PropertyWithStatus, opts types.SortOptions) []types.PropertyWithStatus {
	sorted := make([]types.PropertyWithStatus, len(properties))
	copy(sorted, properties)

	less := func(a, b types.PropertyWithStatus) int {
		switch opts.Field {
		case types.SortByRent:
			return compareInt64(a.MonthlyRent, b.MonthlyRent)
		case types.SortByStatus:
			return strings.Compare(string(a.Status), string(b.Status))
		case types.SortByLeaseExpiry:
			return compareTimePtr(a.LeaseExpires, b.LeaseExpires)
		case types.SortByTenant:
			return compareTenant(a.Tenant, b.Tenant)
		default:
			return strings.Compare(a.Address, b.Address)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		// Properties without a sortable value stay last even when the
		// direction flips the value comparison.
		if ra, rb := missingRank(sorted[i], opts.Field), missingRank(sorted[j], opts.Field); ra != rb {
			return ra < rb
		}
		c := less(sorted[i], sorted[j])
		if opts.Direction == types.SortDesc {
			return c > 0
		}
		return c < 0
	})
	return sorted
}

// missingRank groups properties lacking a value for the sort field after
// those that have one.
func missingRank(p types.PropertyWithStatus, field types.PropertySortField) int {
	switch field {
	case types.SortByLeaseExpiry:
		if p.LeaseExpires == nil {
			return 1
		}
	case types.SortByTenant:
		if p.Tenant == nil {
			return 1
		}
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareTimePtr(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	default:
		return 0
	}
}

func compareTenant(a, b *types.Tenant) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return strings.Compare(a.Name, b.Name)
	}
}
