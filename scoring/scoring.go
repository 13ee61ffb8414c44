// Package scoring computes the per-matchday point deltas applied to the catalog.
package scoring

import (
	"context"
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/mww/dreamsquad/feed"
	"github.com/mww/dreamsquad/model"
)

const (
	MinRandomDelta = -2
	MaxRandomDelta = 15
)

// Source produces a delta for each player, keyed by player id. Players absent
// from the result are treated as scoring nothing.
type Source interface {
	Deltas(ctx context.Context, players []model.Player) (map[int64]int, error)
}

// Random is the synthetic source used when no score feed is configured. It is
// safe for concurrent use.
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom() (*Random, error) {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("error seeding random score source: %w", err)
	}
	return NewRandomWithSeed(seed), nil
}

// NewRandomWithSeed returns a source that produces the same sequence for the
// same seed.
func NewRandomWithSeed(seed [32]byte) *Random {
	return &Random{rng: rand.New(rand.NewChaCha8(seed))}
}

func (r *Random) Deltas(_ context.Context, players []model.Player) (map[int64]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	deltas := make(map[int64]int, len(players))
	for _, p := range players {
		deltas[p.ID] = MinRandomDelta + r.rng.IntN(MaxRandomDelta-MinRandomDelta+1)
	}
	return deltas, nil
}

// Feed takes deltas from the external score feed.
type Feed struct {
	client feed.Client
}

func NewFeed(client feed.Client) *Feed {
	return &Feed{client: client}
}

func (f *Feed) Deltas(ctx context.Context, players []model.Player) (map[int64]int, error) {
	scores, err := f.client.LoadScores(ctx)
	if err != nil {
		return nil, err
	}

	deltas := make(map[int64]int, len(players))
	for _, p := range players {
		deltas[p.ID] = scores.Points[p.ExternalID]
	}
	return deltas, nil
}
