package db

import (
	"context"

	"github.com/mww/dreamsquad/model"
)

// DB is the read side of the store plus the entry point for units of work.
// Everything that mutates state goes through a Tx.
type DB interface {
	Begin(ctx context.Context) (Tx, error)

	GetUser(ctx context.Context, id int64) (*model.User, error)

	GetPlayer(ctx context.Context, id int64) (*model.Player, error)
	// ListPlayers returns the catalog ordered by value, highest first, then name.
	ListPlayers(ctx context.Context, filter model.PlayerFilter) ([]model.Player, error)
	// Look up the score history for a player, most recent matchday first.
	GetPlayerScores(ctx context.Context, playerID int64) ([]model.PlayerScore, error)

	// GetRoster loads the roster owned by the user along with its picks.
	GetRoster(ctx context.Context, ownerID int64) (*model.Roster, error)

	GetLeague(ctx context.Context, id int64) (*model.League, error)
	// Non-private leagues, newest first.
	ListPublicLeagues(ctx context.Context) ([]model.League, error)
	ListUserLeagues(ctx context.Context, userID int64) ([]model.League, error)
	// ListLeagueRosters returns the roster of every member of the league.
	ListLeagueRosters(ctx context.Context, leagueID int64) ([]model.Roster, error)

	Ping(ctx context.Context) error
	Close()
}

// Tx is a single unit of work. Nothing it writes is visible to other callers
// until Commit. Rollback after a Commit is a no-op so it is safe to defer.
type Tx interface {
	CreateUser(ctx context.Context, u *model.User) error
	DeleteUser(ctx context.Context, id int64) error

	CreateRoster(ctx context.Context, r *model.Roster) error
	// LockRoster loads the user's roster and its picks, holding a row lock on
	// the roster until the transaction ends.
	LockRoster(ctx context.Context, ownerID int64) (*model.Roster, error)
	// UpdateRoster persists the name, budget and league reference.
	UpdateRoster(ctx context.Context, r *model.Roster) error
	AddPick(ctx context.Context, rosterID int64, pick *model.Pick) error
	DeletePick(ctx context.Context, rosterID, playerID int64) error
	// SetRosterLeague points the user's roster at leagueID, nil to clear it.
	SetRosterLeague(ctx context.Context, ownerID int64, leagueID *int64) error
	// ClearRosterLeague clears the user's roster league reference only when it
	// currently points at leagueID.
	ClearRosterLeague(ctx context.Context, ownerID, leagueID int64) error

	CreateLeague(ctx context.Context, l *model.League) error
	LeagueCodeExists(ctx context.Context, code string) (bool, error)
	// LockLeague and LockLeagueByCode hold a row lock on the league so that
	// membership changes against it are serialized.
	LockLeague(ctx context.Context, id int64) (*model.League, error)
	LockLeagueByCode(ctx context.Context, code string) (*model.League, error)
	ListOwnedLeagues(ctx context.Context, ownerID int64) ([]int64, error)
	// DeleteLeague detaches member rosters and removes the league and its memberships.
	DeleteLeague(ctx context.Context, id int64) error

	IsMember(ctx context.Context, userID, leagueID int64) (bool, error)
	AddMembership(ctx context.Context, m *model.Membership) error
	DeleteMembership(ctx context.Context, userID, leagueID int64) error

	GetPlayer(ctx context.Context, id int64) (*model.Player, error)
	// SavePlayer inserts a new player by external id or updates the name, club
	// and position of an existing one, recording what changed. Value is only
	// written on insert and points are never written.
	SavePlayer(ctx context.Context, p *model.Player) (inserted bool, err error)

	NextMatchday(ctx context.Context) (int, error)
	// ApplyScore adds delta to the player's points, clamped at zero, records
	// the applied delta for the matchday and returns it.
	ApplyScore(ctx context.Context, playerID int64, matchday, delta int) (int, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
