package assigner

import "tech-assigner/internal/domain"

// Reconcile merges the live queue and the normalized assignment log into one
// deduplicated view. When both sources carry the same id, the log-derived
// entry wins: an assignment having occurred is the more recent truth, and
// the live queue may still show the stale pre-assignment record. Output
// order is the first-occurrence order of each id in live ++ logDerived.
//
// Pure function: no fetching, no side effects.
func Reconcile(live, logDerived []domain.WorkItem) []domain.WorkItem {
	index := make(map[string]int, len(live)+len(logDerived))
	merged := make([]domain.WorkItem, 0, len(live)+len(logDerived))

	for _, item := range live {
		if at, seen := index[item.ID]; seen {
			merged[at] = item
			continue
		}
		index[item.ID] = len(merged)
		merged = append(merged, item)
	}
	for _, item := range logDerived {
		if at, seen := index[item.ID]; seen {
			merged[at] = item
			continue
		}
		index[item.ID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}
