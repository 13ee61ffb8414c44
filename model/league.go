package model

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

const (
	DefaultLeagueCapacity = 20
	MinLeagueCapacity     = 2
	MaxLeagueCapacity     = 100
	MaxLeagueNameLen      = 100
)

type League struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	OwnerID     int64     `json:"owner_id"`
	Code        string    `json:"code,omitempty"`
	Capacity    int       `json:"capacity"`
	IsPrivate   bool      `json:"is_private"`
	MemberCount int       `json:"member_count"`
	Created     time.Time `json:"created"`
}

func (l *League) IsFull() bool {
	return l.MemberCount >= l.Capacity
}

// Membership is the join entity between a user and a league.
type Membership struct {
	UserID   int64     `json:"user_id"`
	LeagueID int64     `json:"league_id"`
	Joined   time.Time `json:"joined"`
}

// ValidateLeague normalizes the name and fills in the default capacity.
func ValidateLeague(name string, capacity int) (string, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", 0, ValidationError("league name must be provided")
	}
	if len(name) > MaxLeagueNameLen {
		return "", 0, ValidationError("league name must be at most %d characters", MaxLeagueNameLen)
	}
	if capacity == 0 {
		capacity = DefaultLeagueCapacity
	}
	if capacity < MinLeagueCapacity || capacity > MaxLeagueCapacity {
		return "", 0, ValidationError("league capacity must be between %d and %d, got %d",
			MinLeagueCapacity, MaxLeagueCapacity, capacity)
	}
	return name, capacity, nil
}

// Standing is one row of a league table.
type Standing struct {
	Rank        int    `json:"rank"`
	RosterID    int64  `json:"roster_id"`
	TeamName    string `json:"team_name"`
	OwnerID     int64  `json:"owner_id"`
	OwnerName   string `json:"owner_name"`
	TotalPoints int    `json:"total_points"`
}

// ComputeStandings orders rosters by total points, highest first. Equal totals
// keep roster id order so the result is deterministic.
func ComputeStandings(rosters []Roster) []Standing {
	standings := make([]Standing, 0, len(rosters))
	for i := range rosters {
		r := &rosters[i]
		standings = append(standings, Standing{
			RosterID:    r.ID,
			TeamName:    r.Name,
			OwnerID:     r.OwnerID,
			OwnerName:   r.OwnerName,
			TotalPoints: r.TotalPoints(),
		})
	}

	slices.SortStableFunc(standings, func(a, b Standing) int {
		if c := cmp.Compare(b.TotalPoints, a.TotalPoints); c != 0 {
			return c
		}
		return cmp.Compare(a.RosterID, b.RosterID)
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}
	return standings
}

// FindStanding locates a roster's row in standings from ComputeStandings.
func FindStanding(standings []Standing, rosterID int64) (Standing, bool) {
	i := slices.IndexFunc(standings, func(s Standing) bool {
		return s.RosterID == rosterID
	})
	if i < 0 {
		return Standing{}, false
	}
	return standings[i], true
}

// StandingFor is FindStanding for callers that treat absence as an error.
func StandingFor(standings []Standing, rosterID int64) (Standing, error) {
	s, ok := FindStanding(standings, rosterID)
	if !ok {
		return Standing{}, ErrNotAMember
	}
	return s, nil
}
