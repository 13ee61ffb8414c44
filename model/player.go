package model

import (
	"fmt"
	"strings"
	"time"
)

type Player struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Club       string    `json:"club"`
	Position   Position  `json:"position"`
	Value      Money     `json:"value"`
	Points     int       `json:"points"`
	Created    time.Time `json:"created"`
	Updated    time.Time `json:"updated"`
	Changes    []Change  `json:"changes,omitempty"`
}

func (p *Player) FormattedCreatedTime() string {
	if p.Created.IsZero() {
		return "unknown"
	}
	return p.Created.Format(time.DateTime)
}

func (p *Player) FormattedUpdatedTime() string {
	if p.Updated.IsZero() {
		return "unknown"
	}
	return p.Updated.Format(time.DateTime)
}

// Change records a catalog attribute that was modified by a feed sync.
type Change struct {
	Time         time.Time `json:"time"`
	PropertyName string    `json:"property"`
	OldValue     string    `json:"old"`
	NewValue     string    `json:"new"`
}

func (c *Change) String() string {
	return fmt.Sprintf("%s changed from '%s' to '%s'", c.PropertyName, c.OldValue, c.NewValue)
}

// PlayerScore is the points delta applied to a player on a single matchday.
type PlayerScore struct {
	PlayerID int64     `json:"player_id"`
	Matchday int       `json:"matchday"`
	Delta    int       `json:"delta"`
	Created  time.Time `json:"created"`
}

// PlayerFilter narrows a catalog listing. Zero values match everything. Club
// matches any part of the club name, ignoring case.
type PlayerFilter struct {
	Position Position
	Club     string
	MaxValue Money
}

// Take a full name, like "Bukayo Saka Jr." and return "Bukayo Saka".
func TrimNameSuffix(fullName string) string {
	suffixList := []string{
		"Jr.",
		"Sr.",
		"II",
		"III",
	}

	fullName = strings.TrimSpace(fullName)
	for _, s := range suffixList {
		fullName = strings.TrimSuffix(fullName, " "+s)
	}

	return strings.TrimSpace(fullName)
}

// ScoreUpdate summarizes one scoring pass over the catalog.
type ScoreUpdate struct {
	Matchday       int `json:"matchday"`
	PlayersUpdated int `json:"players_updated"`
}

// SyncResult summarizes one catalog sync from the player feed.
type SyncResult struct {
	Loaded    int `json:"loaded"`
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
}
