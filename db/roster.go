package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/dreamsquad/model"
)

const rosterSelect = `SELECT r.id, r.owner_id, u.username, r.name, r.budget_left, r.league_id
	FROM rosters r JOIN users u ON u.id = r.owner_id`

func (tx *postgresTx) CreateRoster(ctx context.Context, r *model.Roster) error {
	const query = `INSERT INTO rosters (owner_id, name, budget_left, league_id)
		VALUES (@ownerID, @name, @budgetLeft, @leagueID)
		RETURNING id`

	args := pgx.NamedArgs{
		"ownerID":    r.OwnerID,
		"name":       r.Name,
		"budgetLeft": int64(r.BudgetLeft),
		"leagueID":   r.LeagueID,
	}
	if err := tx.tx.QueryRow(ctx, query, args).Scan(&r.ID); err != nil {
		return fmt.Errorf("error inserting roster for user %d: %w", r.OwnerID, err)
	}
	return nil
}

func (tx *postgresTx) LockRoster(ctx context.Context, ownerID int64) (*model.Roster, error) {
	return getRoster(ctx, tx.tx, ownerID, true)
}

func (tx *postgresTx) UpdateRoster(ctx context.Context, r *model.Roster) error {
	const query = `UPDATE rosters
		SET name=@name, budget_left=@budgetLeft, league_id=@leagueID
		WHERE id=@id`

	args := pgx.NamedArgs{
		"id":         r.ID,
		"name":       r.Name,
		"budgetLeft": int64(r.BudgetLeft),
		"leagueID":   r.LeagueID,
	}
	tag, err := tx.tx.Exec(ctx, query, args)
	if err != nil {
		return fmt.Errorf("error updating roster %d: %w", r.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRosterNotFound
	}
	return nil
}

func (tx *postgresTx) AddPick(ctx context.Context, rosterID int64, pick *model.Pick) error {
	const query = `INSERT INTO picks (roster_id, player_id, cost, picked_at)
		VALUES (@rosterID, @playerID, @cost, @pickedAt)`

	args := pgx.NamedArgs{
		"rosterID": rosterID,
		"playerID": pick.Player.ID,
		"cost":     int64(pick.Cost),
		"pickedAt": pgtype.Timestamptz{Time: pick.PickedAt.UTC(), InfinityModifier: pgtype.Finite, Valid: true},
	}
	if _, err := tx.tx.Exec(ctx, query, args); err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyHeld
		}
		return fmt.Errorf("error inserting pick of player %d for roster %d: %w", pick.Player.ID, rosterID, err)
	}
	return nil
}

func (tx *postgresTx) DeletePick(ctx context.Context, rosterID, playerID int64) error {
	const query = `DELETE FROM picks WHERE roster_id=@rosterID AND player_id=@playerID`

	tag, err := tx.tx.Exec(ctx, query, pgx.NamedArgs{"rosterID": rosterID, "playerID": playerID})
	if err != nil {
		return fmt.Errorf("error deleting pick of player %d for roster %d: %w", playerID, rosterID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotHeld
	}
	return nil
}

func (tx *postgresTx) SetRosterLeague(ctx context.Context, ownerID int64, leagueID *int64) error {
	const query = `UPDATE rosters SET league_id=@leagueID WHERE owner_id=@ownerID`

	tag, err := tx.tx.Exec(ctx, query, pgx.NamedArgs{"ownerID": ownerID, "leagueID": leagueID})
	if err != nil {
		return fmt.Errorf("error setting league for roster of user %d: %w", ownerID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrRosterNotFound
	}
	return nil
}

func (tx *postgresTx) ClearRosterLeague(ctx context.Context, ownerID, leagueID int64) error {
	const query = `UPDATE rosters SET league_id=NULL WHERE owner_id=@ownerID AND league_id=@leagueID`

	if _, err := tx.tx.Exec(ctx, query, pgx.NamedArgs{"ownerID": ownerID, "leagueID": leagueID}); err != nil {
		return fmt.Errorf("error clearing league for roster of user %d: %w", ownerID, err)
	}
	return nil
}

func getRoster(ctx context.Context, q querier, ownerID int64, forUpdate bool) (*model.Roster, error) {
	query := rosterSelect + ` WHERE r.owner_id=@ownerID`
	if forUpdate {
		query += ` FOR UPDATE OF r`
	}

	r, err := scanRoster(q.QueryRow(ctx, query, pgx.NamedArgs{"ownerID": ownerID}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: user %d", model.ErrRosterNotFound, ownerID)
		}
		return nil, fmt.Errorf("error scanning roster for user %d: %w", ownerID, err)
	}

	picks, err := getPicks(ctx, q, []int64{r.ID})
	if err != nil {
		return nil, err
	}
	r.Picks = picks[r.ID]
	if r.Picks == nil {
		r.Picks = []model.Pick{}
	}
	return r, nil
}

func listLeagueRosters(ctx context.Context, q querier, leagueID int64) ([]model.Roster, error) {
	const query = rosterSelect + `
		JOIN memberships m ON m.user_id = r.owner_id
		WHERE m.league_id=@leagueID
		ORDER BY r.id`

	rows, err := q.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID})
	if err != nil {
		return nil, fmt.Errorf("error querying rosters for league %d: %w", leagueID, err)
	}
	defer rows.Close()

	rosters := make([]model.Roster, 0, model.DefaultLeagueCapacity)
	ids := make([]int64, 0, model.DefaultLeagueCapacity)
	for rows.Next() {
		r, err := scanRoster(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning roster: %w", err)
		}
		rosters = append(rosters, *r)
		ids = append(ids, r.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	picks, err := getPicks(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for i := range rosters {
		rosters[i].Picks = picks[rosters[i].ID]
		if rosters[i].Picks == nil {
			rosters[i].Picks = []model.Pick{}
		}
	}
	return rosters, nil
}

// getPicks loads the picks of every roster in rosterIDs keyed by roster id.
func getPicks(ctx context.Context, q querier, rosterIDs []int64) (map[int64][]model.Pick, error) {
	const query = `SELECT k.roster_id, k.cost, k.picked_at, ` + playerColumns + `
		FROM picks k JOIN players p ON p.id = k.player_id
		WHERE k.roster_id = ANY(@rosterIDs)
		ORDER BY k.roster_id, k.picked_at, p.id`

	result := make(map[int64][]model.Pick, len(rosterIDs))
	if len(rosterIDs) == 0 {
		return result, nil
	}

	rows, err := q.Query(ctx, query, pgx.NamedArgs{"rosterIDs": rosterIDs})
	if err != nil {
		return nil, fmt.Errorf("error querying picks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rosterID, cost int64
		var pickedAt, created, updated pgtype.Timestamptz
		var pos DBPosition
		var value int64
		var p model.Player
		err := rows.Scan(
			&rosterID,
			&cost,
			&pickedAt,
			&p.ID,
			&p.ExternalID,
			&p.Name,
			&p.Club,
			&pos,
			&value,
			&p.Points,
			&created,
			&updated)
		if err != nil {
			return nil, fmt.Errorf("error scanning pick: %w", err)
		}
		p.Position = pos.position
		p.Value = model.Money(value)
		p.Created = created.Time
		p.Updated = updated.Time

		result[rosterID] = append(result[rosterID], model.Pick{
			Player:   p,
			Cost:     model.Money(cost),
			PickedAt: pickedAt.Time,
		})
	}
	return result, rows.Err()
}

func scanRoster(row pgx.Row) (*model.Roster, error) {
	var r model.Roster
	var budget int64
	var leagueID pgtype.Int8
	if err := row.Scan(&r.ID, &r.OwnerID, &r.OwnerName, &r.Name, &budget, &leagueID); err != nil {
		return nil, err
	}
	r.BudgetLeft = model.Money(budget)
	if leagueID.Valid {
		id := leagueID.Int64
		r.LeagueID = &id
	}
	return &r, nil
}
