package controller

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/mww/dreamsquad/db"
	"github.com/mww/dreamsquad/feed"
	"github.com/mww/dreamsquad/model"
	"github.com/mww/dreamsquad/scoring"
)

// C encapsulates business logic without worrying about any web layers
type C interface {
	// RegisterUser creates the user and their roster in one step.
	RegisterUser(ctx context.Context, username, email string) (*model.User, *model.Roster, error)
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	// DeleteUser removes the user, their roster and every league they own.
	DeleteUser(ctx context.Context, userID int64) error

	GetRoster(ctx context.Context, userID int64) (*model.Roster, error)
	DraftPlayer(ctx context.Context, userID, playerID int64) (*model.Roster, error)
	RemovePlayer(ctx context.Context, userID, playerID int64) (*model.Roster, error)
	RenameRoster(ctx context.Context, userID int64, name string) (*model.Roster, error)

	CreateLeague(ctx context.Context, ownerID int64, name string, capacity int, private bool) (*model.League, error)
	JoinLeague(ctx context.Context, userID int64, code string) (*model.League, error)
	LeaveLeague(ctx context.Context, userID, leagueID int64) error
	DeleteLeague(ctx context.Context, userID, leagueID int64) error
	GetLeague(ctx context.Context, leagueID int64) (*model.League, error)
	ListPublicLeagues(ctx context.Context) ([]model.League, error)
	ListUserLeagues(ctx context.Context, userID int64) ([]model.League, error)
	GetStandings(ctx context.Context, leagueID int64) ([]model.Standing, error)
	// GetStanding is the user's own row in the league table.
	GetStanding(ctx context.Context, leagueID, userID int64) (*model.Standing, error)

	// ApplyScoreUpdate applies one matchday of deltas to every player.
	ApplyScoreUpdate(ctx context.Context) (*model.ScoreUpdate, error)
	// Look up the score history for a specific player, newest matchday first.
	GetPlayerScores(ctx context.Context, playerID int64) ([]model.PlayerScore, error)

	SyncPlayers(ctx context.Context) (*model.SyncResult, error)
	GetPlayer(ctx context.Context, id int64) (*model.Player, error)
	ListPlayers(ctx context.Context, filter model.PlayerFilter) ([]model.Player, error)
	SearchPlayers(ctx context.Context, query string) ([]model.Player, error)

	GetDashboard(ctx context.Context, userID int64) (*model.Dashboard, error)
}

const (
	joinCodeLen      = 8
	joinCodeAttempts = 5
)

type controller struct {
	clock   clock.Clock
	db      db.DB
	feed    feed.Client
	scores  scoring.Source
	newCode func() string
}

// New builds the controller. feed may be nil, in which case SyncPlayers
// reports the feed as unavailable.
func New(clock clock.Clock, db db.DB, feed feed.Client, scores scoring.Source) (C, error) {
	if db == nil {
		return nil, errors.New("db must be provided")
	}
	if scores == nil {
		return nil, errors.New("score source must be provided")
	}

	c := &controller{
		clock:   clock,
		db:      db,
		feed:    feed,
		scores:  scores,
		newCode: newJoinCode,
	}
	return c, nil
}

// withTx runs fn in a transaction, committing only when fn succeeds.
func (c *controller) withTx(ctx context.Context, fn func(tx db.Tx) error) error {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func newJoinCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:joinCodeLen])
}
