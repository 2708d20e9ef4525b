package worker

import (
	"slices"

	"github.com/samber/lo"

	"card_market/internal/domain/entity"
)

// Exclude adds ids to the set of apps never scored, typically the ones
// already owned.
func (w *PassScanner) Exclude(ids ...int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, id := range ids {
		w.excluded[id] = struct{}{}
	}
}

// Include removes an id from the excluded set.
func (w *PassScanner) Include(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.excluded, id)
}

func (w *PassScanner) IsExcluded(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, ok := w.excluded[id]

	return ok
}

// Excluded returns the excluded ids in ascending order.
func (w *PassScanner) Excluded() []int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids := lo.Keys(w.excluded)
	slices.Sort(ids)

	return ids
}

// filterExcluded keeps crawler order and drops excluded and repeated ids.
func (w *PassScanner) filterExcluded(listings []entity.Listing) []int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids := lo.FilterMap(listings, func(l entity.Listing, _ int) (int64, bool) {
		_, skip := w.excluded[l.AppID]
		return l.AppID, !skip
	})

	return lo.Uniq(ids)
}
