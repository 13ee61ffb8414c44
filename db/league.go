package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/dreamsquad/model"
)

const (
	leagueSelect = `SELECT l.id, l.name, l.owner_id, l.code, l.capacity, l.is_private, l.created,
			(SELECT count(*) FROM memberships m WHERE m.league_id = l.id)
		FROM leagues l`

	leagueByID = leagueSelect + ` WHERE l.id=@id`
)

func (tx *postgresTx) CreateLeague(ctx context.Context, l *model.League) error {
	const query = `INSERT INTO leagues (name, owner_id, code, capacity, is_private, created)
		VALUES (@name, @ownerID, @code, @capacity, @isPrivate, @created)
		RETURNING id, created`

	args := pgx.NamedArgs{
		"name":      l.Name,
		"ownerID":   l.OwnerID,
		"code":      l.Code,
		"capacity":  l.Capacity,
		"isPrivate": l.IsPrivate,
		"created":   tx.now(),
	}

	var created pgtype.Timestamptz
	if err := tx.tx.QueryRow(ctx, query, args).Scan(&l.ID, &created); err != nil {
		return fmt.Errorf("error inserting league %s: %w", l.Name, err)
	}
	l.Created = created.Time
	return nil
}

func (tx *postgresTx) LeagueCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := tx.tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leagues WHERE code=@code)`,
		pgx.NamedArgs{"code": code}).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking league code: %w", err)
	}
	return exists, nil
}

// The lock is taken in its own statement so that the member count read
// afterwards sees every membership committed before the lock was granted.
func (tx *postgresTx) LockLeague(ctx context.Context, id int64) (*model.League, error) {
	var locked int64
	err := tx.tx.QueryRow(ctx, `SELECT id FROM leagues WHERE id=@id FOR UPDATE`,
		pgx.NamedArgs{"id": id}).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", model.ErrLeagueNotFound, id)
		}
		return nil, fmt.Errorf("error locking league %d: %w", id, err)
	}
	return getLeague(ctx, tx.tx, leagueByID, pgx.NamedArgs{"id": locked})
}

func (tx *postgresTx) LockLeagueByCode(ctx context.Context, code string) (*model.League, error) {
	var locked int64
	err := tx.tx.QueryRow(ctx, `SELECT id FROM leagues WHERE code=@code FOR UPDATE`,
		pgx.NamedArgs{"code": code}).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrInvalidCode
		}
		return nil, fmt.Errorf("error locking league by code: %w", err)
	}
	return getLeague(ctx, tx.tx, leagueByID, pgx.NamedArgs{"id": locked})
}

func (tx *postgresTx) ListOwnedLeagues(ctx context.Context, ownerID int64) ([]int64, error) {
	rows, err := tx.tx.Query(ctx, `SELECT id FROM leagues WHERE owner_id=@ownerID ORDER BY id`,
		pgx.NamedArgs{"ownerID": ownerID})
	if err != nil {
		return nil, fmt.Errorf("error listing leagues owned by %d: %w", ownerID, err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int64])
}

func (tx *postgresTx) DeleteLeague(ctx context.Context, id int64) error {
	args := pgx.NamedArgs{"id": id}
	if _, err := tx.tx.Exec(ctx, `UPDATE rosters SET league_id=NULL WHERE league_id=@id`, args); err != nil {
		return fmt.Errorf("error detaching rosters from league %d: %w", id, err)
	}
	if _, err := tx.tx.Exec(ctx, `DELETE FROM memberships WHERE league_id=@id`, args); err != nil {
		return fmt.Errorf("error deleting memberships of league %d: %w", id, err)
	}
	tag, err := tx.tx.Exec(ctx, `DELETE FROM leagues WHERE id=@id`, args)
	if err != nil {
		return fmt.Errorf("error deleting league %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrLeagueNotFound
	}
	return nil
}

func (tx *postgresTx) IsMember(ctx context.Context, userID, leagueID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM memberships WHERE user_id=@userID AND league_id=@leagueID)`

	var member bool
	err := tx.tx.QueryRow(ctx, query, pgx.NamedArgs{"userID": userID, "leagueID": leagueID}).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("error checking membership: %w", err)
	}
	return member, nil
}

func (tx *postgresTx) AddMembership(ctx context.Context, m *model.Membership) error {
	const query = `INSERT INTO memberships (user_id, league_id, joined)
		VALUES (@userID, @leagueID, @joined)
		RETURNING joined`

	args := pgx.NamedArgs{
		"userID":   m.UserID,
		"leagueID": m.LeagueID,
		"joined":   tx.now(),
	}

	var joined pgtype.Timestamptz
	if err := tx.tx.QueryRow(ctx, query, args).Scan(&joined); err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyMember
		}
		return fmt.Errorf("error adding user %d to league %d: %w", m.UserID, m.LeagueID, err)
	}
	m.Joined = joined.Time
	return nil
}

func (tx *postgresTx) DeleteMembership(ctx context.Context, userID, leagueID int64) error {
	const query = `DELETE FROM memberships WHERE user_id=@userID AND league_id=@leagueID`

	tag, err := tx.tx.Exec(ctx, query, pgx.NamedArgs{"userID": userID, "leagueID": leagueID})
	if err != nil {
		return fmt.Errorf("error removing user %d from league %d: %w", userID, leagueID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotAMember
	}
	return nil
}

func getLeague(ctx context.Context, q querier, query string, args pgx.NamedArgs) (*model.League, error) {
	l, err := scanLeague(q.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLeagueNotFound
		}
		return nil, fmt.Errorf("error scanning league: %w", err)
	}
	return l, nil
}

func listLeagues(ctx context.Context, q querier, query string, args pgx.NamedArgs) ([]model.League, error) {
	rows, err := q.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying leagues: %w", err)
	}
	defer rows.Close()

	leagues := make([]model.League, 0, 8)
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning league: %w", err)
		}
		leagues = append(leagues, *l)
	}
	return leagues, rows.Err()
}

func scanLeague(row pgx.Row) (*model.League, error) {
	var l model.League
	var created pgtype.Timestamptz
	err := row.Scan(&l.ID, &l.Name, &l.OwnerID, &l.Code, &l.Capacity, &l.IsPrivate, &created, &l.MemberCount)
	if err != nil {
		return nil, err
	}
	l.Created = created.Time
	return &l, nil
}
