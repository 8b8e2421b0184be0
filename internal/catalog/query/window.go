package query

import (
	"cmp"
	"slices"
	"time"

	"github.com/gartstein/catalog/internal/catalog/models"
)

const (
	// ExpiringSoonCount bounds the expiring-soon moments list.
	ExpiringSoonCount = 6
	// EndingSoonCount bounds the ending-soon drops list.
	EndingSoonCount = 7
)

// ExpiringSoon returns up to n moments still running at now, soonest end first.
// Moments without a readable end time are treated as expired.
func ExpiringSoon(moments []models.Moment, now time.Time, n int) models.List[models.Moment] {
	type active struct {
		moment models.Moment
		ends   time.Time
	}

	running := make([]active, 0, len(moments))
	for _, m := range moments {
		if ends, ok := m.Ends(); ok && ends.After(now) {
			running = append(running, active{moment: m, ends: ends})
		}
	}
	slices.SortStableFunc(running, func(a, b active) int {
		return a.ends.Compare(b.ends)
	})

	out := make([]models.Moment, 0, head(n, len(running)))
	for _, a := range running[:head(n, len(running))] {
		out = append(out, a.moment)
	}
	return models.List[models.Moment]{Data: out}
}

// EndingSoon returns up to n drops that are still available, scarcest first.
// Drops with equal availability keep their stored order.
func EndingSoon(drops []models.Drop, n int) models.List[models.Drop] {
	available := Filter(drops, func(d models.Drop) bool { return d.Available > 0 })
	slices.SortStableFunc(available, func(a, b models.Drop) int {
		return cmp.Compare(a.Available, b.Available)
	})
	return models.List[models.Drop]{Data: available[:head(n, len(available))]}
}

// head is the number of leading elements to keep when taking n of length.
func head(n, length int) int {
	return max(min(n, length), 0)
}
