package scoring

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mww/dreamsquad/feed"
	"github.com/mww/dreamsquad/feed/mockfeed"
	"github.com/mww/dreamsquad/model"
	"github.com/stretchr/testify/require"
)

func catalog(n int) []model.Player {
	players := make([]model.Player, 0, n)
	for i := range n {
		players = append(players, model.Player{ID: int64(i + 1), ExternalID: string(rune('a' + i%26))})
	}
	return players
}

func TestRandom_bounds(t *testing.T) {
	r, err := NewRandom()
	require.NoError(t, err)

	players := catalog(500)
	seen := map[int]bool{}
	for range 20 {
		deltas, err := r.Deltas(context.Background(), players)
		require.NoError(t, err)
		require.Len(t, deltas, len(players))

		for id, d := range deltas {
			if d < MinRandomDelta || d > MaxRandomDelta {
				t.Fatalf("delta for player %d out of range: %d", id, d)
			}
			seen[d] = true
		}
	}

	// 10000 draws over 18 values should hit both ends of the range.
	if !seen[MinRandomDelta] || !seen[MaxRandomDelta] {
		t.Errorf("expected both bounds to be produced, saw %v", seen)
	}
}

func TestRandom_seeded(t *testing.T) {
	seed := [32]byte{1, 2, 3}
	players := catalog(30)

	a, err := NewRandomWithSeed(seed).Deltas(context.Background(), players)
	require.NoError(t, err)
	b, err := NewRandomWithSeed(seed).Deltas(context.Background(), players)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestRandom_concurrent(t *testing.T) {
	r := NewRandomWithSeed([32]byte{9})
	players := catalog(50)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			deltas, err := r.Deltas(context.Background(), players)
			if err != nil || len(deltas) != len(players) {
				t.Errorf("unexpected result: %d deltas, err %v", len(deltas), err)
			}
		}()
	}
	wg.Wait()
}

func TestFeed_deltas(t *testing.T) {
	client := &mockfeed.Client{}
	client.On("LoadScores", context.Background()).Return(&feed.Scores{
		Matchday: 3,
		Points:   map[string]int{"saka": 7, "rice": -2, "unknown": 50},
	}, nil)

	players := []model.Player{
		{ID: 1, ExternalID: "saka"},
		{ID: 2, ExternalID: "rice"},
		{ID: 3, ExternalID: "benched"},
	}

	deltas, err := NewFeed(client).Deltas(context.Background(), players)
	require.NoError(t, err)
	require.Equal(t, map[int64]int{1: 7, 2: -2, 3: 0}, deltas)
	client.AssertExpectations(t)
}

func TestFeed_error(t *testing.T) {
	client := &mockfeed.Client{}
	client.On("LoadScores", context.Background()).Return(nil, model.DependencyError(errors.New("timeout")))

	deltas, err := NewFeed(client).Deltas(context.Background(), catalog(3))
	require.Nil(t, deltas)
	require.ErrorIs(t, err, model.ErrFeedUnavailable)
}
