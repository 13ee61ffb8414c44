package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	MaxSquadSize     = 11
	MaxRosterNameLen = 100
)

// Roster is a user's drafted squad and the budget left to spend on it.
//
// BudgetLeft plus the cost of every pick always equals InitialBudget. Draft and
// Remove keep that balance; they only touch the roster's own fields.
type Roster struct {
	ID         int64  `json:"id"`
	OwnerID    int64  `json:"owner_id"`
	OwnerName  string `json:"owner_name"`
	Name       string `json:"name"`
	BudgetLeft Money  `json:"budget_left"`
	LeagueID   *int64 `json:"league_id"`
	Picks      []Pick `json:"picks"`
}

// Pick is the join entity between a roster and a player it holds.
type Pick struct {
	Player   Player    `json:"player"`
	Cost     Money     `json:"cost"`
	PickedAt time.Time `json:"picked_at"`
}

// NewRoster returns the roster every user gets at registration.
func NewRoster(ownerID int64, username string) *Roster {
	return &Roster{
		OwnerID:    ownerID,
		OwnerName:  username,
		Name:       fmt.Sprintf("%s's Team", username),
		BudgetLeft: InitialBudget,
		Picks:      []Pick{},
	}
}

func (r *Roster) SquadSize() int {
	return len(r.Picks)
}

func (r *Roster) Holds(playerID int64) bool {
	return r.pickIndex(playerID) >= 0
}

// Draft adds the player and debits its value. A full roster is rejected before
// the duplicate and budget checks.
func (r *Roster) Draft(p *Player, at time.Time) error {
	if p == nil {
		return ValidationError("player must be provided")
	}
	if p.Value <= 0 {
		return ValidationError("player %d has no market value", p.ID)
	}
	if len(r.Picks) >= MaxSquadSize {
		return fmt.Errorf("%w (%d players)", ErrRosterFull, MaxSquadSize)
	}
	if r.Holds(p.ID) {
		return fmt.Errorf("%w: %s", ErrAlreadyHeld, p.Name)
	}
	if p.Value > r.BudgetLeft {
		return fmt.Errorf("%w: %s costs %s, %s left", ErrInsufficientBudget, p.Name, p.Value, r.BudgetLeft)
	}

	r.Picks = append(r.Picks, Pick{Player: *p, Cost: p.Value, PickedAt: at})
	r.BudgetLeft -= p.Value
	return nil
}

// Remove drops the player and credits back exactly what was paid for it.
func (r *Roster) Remove(playerID int64) (Pick, error) {
	i := r.pickIndex(playerID)
	if i < 0 {
		return Pick{}, fmt.Errorf("%w: player %d", ErrNotHeld, playerID)
	}

	pick := r.Picks[i]
	r.Picks = slices.Delete(r.Picks, i, i+1)
	r.BudgetLeft += pick.Cost
	return pick, nil
}

func (r *Roster) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError("team name must be provided")
	}
	if len(name) > MaxRosterNameLen {
		return ValidationError("team name must be at most %d characters", MaxRosterNameLen)
	}
	r.Name = name
	return nil
}

// TotalPoints is recomputed from the held players on every call.
func (r *Roster) TotalPoints() int {
	total := 0
	for _, p := range r.Picks {
		total += p.Player.Points
	}
	return total
}

// Spent is the sum of what was paid for the held players.
func (r *Roster) Spent() Money {
	var spent Money
	for _, p := range r.Picks {
		spent += p.Cost
	}
	return spent
}

// Balanced reports whether the budget and the picks still add up.
func (r *Roster) Balanced() bool {
	return r.BudgetLeft >= 0 &&
		len(r.Picks) <= MaxSquadSize &&
		r.BudgetLeft+r.Spent() == InitialBudget
}

func (r *Roster) Players() []Player {
	players := make([]Player, 0, len(r.Picks))
	for _, p := range r.Picks {
		players = append(players, p.Player)
	}
	return players
}

// TopPerformers returns up to n held players with the most points.
func (r *Roster) TopPerformers(n int) []Player {
	players := r.Players()
	slices.SortStableFunc(players, func(a, b Player) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(players) > n {
		players = players[:n]
	}
	return players
}

func (r *Roster) pickIndex(playerID int64) int {
	return slices.IndexFunc(r.Picks, func(p Pick) bool {
		return p.Player.ID == playerID
	})
}
