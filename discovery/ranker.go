package discovery

import (
	"cmp"
	"slices"

	"github.com/JovanaT99/eventsApp/models"
)

type OrderMode string

const (
	PeopleLeast  OrderMode = "peopleLeast"
	PeopleMost   OrderMode = "peopleMost"
	StartingSoon OrderMode = "startingSoon"
	StartingLast OrderMode = "startingLast"
)

type compareFunc func(a, b models.Event) int

func (m OrderMode) compare() (compareFunc, bool) {
	switch m {
	case PeopleLeast:
		return func(a, b models.Event) int { return cmp.Compare(a.SuggestedPeopleCount, b.SuggestedPeopleCount) }, true
	case PeopleMost:
		return func(a, b models.Event) int { return cmp.Compare(b.SuggestedPeopleCount, a.SuggestedPeopleCount) }, true
	case StartingSoon:
		return func(a, b models.Event) int { return a.StartAt.Compare(b.StartAt) }, true
	case StartingLast:
		return func(a, b models.Event) int { return b.StartAt.Compare(a.StartAt) }, true
	}
	return nil, false
}

// Rank stable-sorts events in place by modes: the first recognized mode is
// the primary key and each later one only breaks ties left by the previous
// ones. Unrecognized modes are skipped; with none left the input order is
// kept.
func Rank(events []models.Event, modes []OrderMode) []models.Event {
	var keys []compareFunc
	for _, m := range modes {
		if c, ok := m.compare(); ok {
			keys = append(keys, c)
		}
	}
	if len(keys) == 0 {
		return events
	}

	slices.SortStableFunc(events, func(a, b models.Event) int {
		for _, k := range keys {
			if r := k(a, b); r != 0 {
				return r
			}
		}
		return 0
	})
	return events
}
