package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mww/dreamsquad/model"
)

const pgUniqueViolation = "23505"

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so that the same
// queries serve the read side and units of work.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func New(ctx context.Context, connString string, clock clock.Clock) (DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &postgresDB{pool: pool, clock: clock}, nil
}

type postgresDB struct {
	pool  *pgxpool.Pool
	clock clock.Clock
}

func (db *postgresDB) Begin(ctx context.Context) (Tx, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	return &postgresTx{tx: tx, clock: db.clock}, nil
}

func (db *postgresDB) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return getUser(ctx, db.pool, id)
}

func (db *postgresDB) GetPlayer(ctx context.Context, id int64) (*model.Player, error) {
	p, err := getPlayer(ctx, db.pool, id)
	if err != nil {
		return nil, err
	}

	changes, err := getChangesByID(ctx, db.pool, id)
	if err != nil {
		return nil, fmt.Errorf("error looking up player changes for %d: %w", id, err)
	}
	p.Changes = changes
	return p, nil
}

func (db *postgresDB) ListPlayers(ctx context.Context, filter model.PlayerFilter) ([]model.Player, error) {
	return listPlayers(ctx, db.pool, filter)
}

func (db *postgresDB) GetPlayerScores(ctx context.Context, playerID int64) ([]model.PlayerScore, error) {
	return getPlayerScores(ctx, db.pool, playerID)
}

func (db *postgresDB) GetRoster(ctx context.Context, ownerID int64) (*model.Roster, error) {
	return getRoster(ctx, db.pool, ownerID, false)
}

func (db *postgresDB) GetLeague(ctx context.Context, id int64) (*model.League, error) {
	return getLeague(ctx, db.pool, leagueByID, pgx.NamedArgs{"id": id})
}

func (db *postgresDB) ListPublicLeagues(ctx context.Context) ([]model.League, error) {
	const query = leagueSelect + ` WHERE l.is_private = FALSE ORDER BY l.created DESC, l.id DESC`
	return listLeagues(ctx, db.pool, query, pgx.NamedArgs{})
}

func (db *postgresDB) ListUserLeagues(ctx context.Context, userID int64) ([]model.League, error) {
	const query = leagueSelect + `
		WHERE EXISTS (SELECT 1 FROM memberships m WHERE m.league_id = l.id AND m.user_id = @userID)
		ORDER BY l.created DESC, l.id DESC`
	return listLeagues(ctx, db.pool, query, pgx.NamedArgs{"userID": userID})
}

func (db *postgresDB) ListLeagueRosters(ctx context.Context, leagueID int64) ([]model.Roster, error) {
	return listLeagueRosters(ctx, db.pool, leagueID)
}

func (db *postgresDB) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

func (db *postgresDB) Close() {
	db.pool.Close()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
