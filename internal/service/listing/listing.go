package listing

import (
	"strings"
	"time"

	"tech-assigner/internal/domain"
)

// Filter returns the work items whose flattened text representation
// contains query, case-insensitively. Matching the whole blob instead of
// individual fields trades precision for zero per-field coupling: a new
// backend field becomes searchable the moment it lands in the model.
func Filter(items []domain.WorkItem, query string) []domain.WorkItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}
	out := make([]domain.WorkItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(flatten(item), query) {
			out = append(out, item)
		}
	}
	return out
}

func flatten(w domain.WorkItem) string {
	var b strings.Builder
	for _, s := range []string{
		w.ID, string(w.Kind), string(w.Status),
		w.UserID, w.UserName, w.ShopID, w.ShopName,
		w.Price, w.DeliveryID, w.AssignerID, w.Notes,
	} {
		b.WriteString(s)
		b.WriteByte(' ')
	}
	for _, a := range []*domain.Address{w.UserAddress, w.ShopAddress} {
		if a == nil {
			continue
		}
		b.WriteString(a.Street)
		b.WriteByte(' ')
		b.WriteString(a.City)
		b.WriteByte(' ')
		b.WriteString(a.State)
		b.WriteByte(' ')
	}
	if !w.CreatedAt.IsZero() {
		b.WriteString(w.CreatedAt.Format(time.RFC3339))
	}
	return strings.ToLower(b.String())
}

// Paginate slices items into a fixed-size, 1-indexed window. A page beyond
// range yields an empty slice; clamping to the valid range is the caller's
// job, never this stage's.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return nil
	}
	// the last-page check happens before the multiply, so an absurd page
	// number cannot overflow start into a negative slice bound
	if page-1 > (len(items)-1)/size {
		return nil
	}
	start := (page - 1) * size
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns ceil(count/size); zero items is one empty page.
func TotalPages(count, size int) int {
	if size < 1 {
		return 1
	}
	pages := (count + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	return pages
}
