package discovery

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JovanaT99/eventsApp/models"
)

var t0 = time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

func rankFixture() []models.Event {
	return []models.Event{
		{ID: "a", SuggestedPeopleCount: 30, StartAt: t0.Add(2 * time.Hour)},
		{ID: "b", SuggestedPeopleCount: 10, StartAt: t0.Add(5 * time.Hour)},
		{ID: "c", SuggestedPeopleCount: 50, StartAt: t0},
		{ID: "d", SuggestedPeopleCount: 20, StartAt: t0.Add(1 * time.Hour)},
	}
}

func TestRank_SingleKeys(t *testing.T) {
	cases := map[OrderMode][]string{
		PeopleLeast:  {"b", "d", "a", "c"},
		PeopleMost:   {"c", "a", "d", "b"},
		StartingSoon: {"c", "d", "a", "b"},
		StartingLast: {"b", "a", "d", "c"},
	}
	for mode, want := range cases {
		assert.Equal(t, want, ids(Rank(rankFixture(), []OrderMode{mode})), "mode %s", mode)
	}
}

func TestRank_MostIsReverseOfLeast(t *testing.T) {
	most := ids(Rank(rankFixture(), []OrderMode{PeopleMost}))
	least := ids(Rank(rankFixture(), []OrderMode{PeopleLeast}))
	slices.Reverse(least)
	assert.Equal(t, most, least)
}

func TestRank_NoModeKeepsInputOrder(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Rank(rankFixture(), nil)))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(Rank(rankFixture(), []OrderMode{"bogus"})))
}

func TestRank_StableOnTies(t *testing.T) {
	in := []models.Event{
		{ID: "first", SuggestedPeopleCount: 5},
		{ID: "small", SuggestedPeopleCount: 1},
		{ID: "second", SuggestedPeopleCount: 5},
		{ID: "third", SuggestedPeopleCount: 5},
	}
	assert.Equal(t, []string{"small", "first", "second", "third"}, ids(Rank(in, []OrderMode{PeopleLeast})))
}

func TestRank_SecondaryBreaksTies(t *testing.T) {
	in := []models.Event{
		{ID: "late", SuggestedPeopleCount: 5, StartAt: t0.Add(time.Hour)},
		{ID: "big", SuggestedPeopleCount: 9, StartAt: t0.Add(3 * time.Hour)},
		{ID: "early", SuggestedPeopleCount: 5, StartAt: t0},
	}

	got := ids(Rank(in, []OrderMode{PeopleLeast, StartingSoon}))
	assert.Equal(t, []string{"early", "late", "big"}, got)

	// the secondary key never overrides the primary
	got = ids(Rank(in, []OrderMode{PeopleMost, StartingLast}))
	assert.Equal(t, []string{"big", "late", "early"}, got)
}

func TestRank_UnknownModeSkipped(t *testing.T) {
	got := ids(Rank(rankFixture(), []OrderMode{"bogus", StartingSoon}))
	assert.Equal(t, []string{"c", "d", "a", "b"}, got)
}
