package db

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/dreamsquad/model"
)

const playerColumns = `p.id, p.external_id, p.name, p.club, p.position, p.value, p.points, p.created, p.updated`

func (tx *postgresTx) GetPlayer(ctx context.Context, id int64) (*model.Player, error) {
	return getPlayer(ctx, tx.tx, id)
}

func (tx *postgresTx) SavePlayer(ctx context.Context, p *model.Player) (bool, error) {
	old, err := getPlayerByExternalID(ctx, tx.tx, p.ExternalID)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			// This is an insert
			if err := tx.insertPlayer(ctx, p); err != nil {
				return false, fmt.Errorf("error inserting player: %w", err)
			}
			return true, nil
		}
		return false, fmt.Errorf("error reading player at start of SavePlayer(): %w", err)
	}

	// This is an update, see what, if anything changed
	p.ID = old.ID
	p.Value = old.Value
	p.Points = old.Points
	p.Created = old.Created
	changes := calculateChanges(old, p, tx.clock)
	if len(changes) == 0 {
		p.Updated = old.Updated
		return false, nil
	}
	return false, tx.updatePlayer(ctx, p, changes)
}

func (tx *postgresTx) insertPlayer(ctx context.Context, p *model.Player) error {
	if p == nil {
		return errors.New("insertPlayer - player is nil")
	}
	const query = `INSERT INTO players (
		external_id,
		name,
		club,
		position,
		value,
		points,
		created
	) VALUES (
		@externalID,
		@name,
		@club,
		@position,
		@value,
		0,
		@created
	) RETURNING id, created`

	args := namedArgsForPlayer(p)
	args["created"] = tx.now()

	var created pgtype.Timestamptz
	if err := tx.tx.QueryRow(ctx, query, args).Scan(&p.ID, &created); err != nil {
		return fmt.Errorf("error inserting player(%s): %w", p.ExternalID, err)
	}
	p.Points = 0
	p.Created = created.Time
	return nil
}

func (tx *postgresTx) updatePlayer(ctx context.Context, p *model.Player, changes []model.Change) error {
	const update = `UPDATE players
		SET name=@name,
			club=@club,
			position=@position,
			updated=@updated
		WHERE id=@id`

	const insertChange = `INSERT INTO player_changes(
		player,
		created,
		prop,
		old,
		new
	) VALUES (
		@playerID,
		@created,
		@prop,
		@old,
		@new
	)`

	args := namedArgsForPlayer(p)
	updated := tx.now()
	args["updated"] = updated
	if _, err := tx.tx.Exec(ctx, update, args); err != nil {
		return fmt.Errorf("error updating player (%d): %w", p.ID, err)
	}

	for _, change := range changes {
		args := pgx.NamedArgs{
			"playerID": p.ID,
			"created":  change.Time,
			"prop":     change.PropertyName,
			"old":      change.OldValue,
			"new":      change.NewValue,
		}
		if _, err := tx.tx.Exec(ctx, insertChange, args); err != nil {
			return fmt.Errorf("error inserting player change: %w", err)
		}
	}

	p.Updated = updated.Time
	p.Changes = append(p.Changes, changes...)
	slices.SortFunc(p.Changes, func(a, b model.Change) int {
		return b.Time.Compare(a.Time)
	})
	return nil
}

func (tx *postgresTx) NextMatchday(ctx context.Context) (int, error) {
	var matchday int
	if err := tx.tx.QueryRow(ctx, `SELECT nextval('matchday_seq')`).Scan(&matchday); err != nil {
		return 0, fmt.Errorf("error reading next matchday: %w", err)
	}
	return matchday, nil
}

func (tx *postgresTx) ApplyScore(ctx context.Context, playerID int64, matchday, delta int) (int, error) {
	// The clamp happens in the UPDATE itself so each increment is atomic with
	// respect to concurrent readers.
	const update = `WITH prev AS (
			SELECT id, points FROM players WHERE id=@id FOR UPDATE
		)
		UPDATE players p
		SET points = GREATEST(p.points + @delta, 0), updated=@updated
		FROM prev
		WHERE p.id = prev.id
		RETURNING p.points - prev.points`

	const insertScore = `INSERT INTO player_scores (player_id, matchday, delta, created)
		VALUES (@id, @matchday, @applied, @created)`

	now := tx.now()
	args := pgx.NamedArgs{
		"id":       playerID,
		"delta":    delta,
		"matchday": matchday,
		"updated":  now,
		"created":  now,
	}

	var applied int
	if err := tx.tx.QueryRow(ctx, update, args).Scan(&applied); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %d", model.ErrPlayerNotFound, playerID)
		}
		return 0, fmt.Errorf("error applying score to player %d: %w", playerID, err)
	}

	args["applied"] = applied
	if _, err := tx.tx.Exec(ctx, insertScore, args); err != nil {
		return 0, fmt.Errorf("error recording score for player %d: %w", playerID, err)
	}
	return applied, nil
}

func getPlayer(ctx context.Context, q querier, id int64) (*model.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players p WHERE p.id=@id`

	p, err := scanPlayer(q.QueryRow(ctx, query, pgx.NamedArgs{"id": id}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", model.ErrPlayerNotFound, id)
		}
		return nil, fmt.Errorf("error scanning player %d: %w", id, err)
	}
	return p, nil
}

func getPlayerByExternalID(ctx context.Context, q querier, externalID string) (*model.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players p WHERE p.external_id=@externalID`

	p, err := scanPlayer(q.QueryRow(ctx, query, pgx.NamedArgs{"externalID": externalID}))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error scanning player %s: %w", externalID, err)
	}
	return p, nil
}

func listPlayers(ctx context.Context, q querier, filter model.PlayerFilter) ([]model.Player, error) {
	const query = `SELECT ` + playerColumns + ` FROM players p
		WHERE p.position ILIKE @pos
			AND p.club ILIKE @club
			AND (@maxValue::bigint = 0 OR p.value <= @maxValue)
		ORDER BY p.value DESC, p.name, p.id`

	posQ := "%"
	if filter.Position != "" && filter.Position != model.POS_UNKNOWN {
		posQ = string(filter.Position)
	}
	clubQ := "%"
	if filter.Club != "" {
		clubQ = "%" + filter.Club + "%"
	}

	args := pgx.NamedArgs{
		"pos":      posQ,
		"club":     clubQ,
		"maxValue": int64(filter.MaxValue),
	}
	rows, err := q.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error running player list query: %w", err)
	}
	defer rows.Close()

	results := make([]model.Player, 0, 64)
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var result model.Player
	var pos DBPosition
	var value int64
	var created, updated pgtype.Timestamptz
	err := row.Scan(
		&result.ID,
		&result.ExternalID,
		&result.Name,
		&result.Club,
		&pos,
		&value,
		&result.Points,
		&created,
		&updated)

	if err != nil {
		return nil, err
	}

	result.Position = pos.position
	result.Value = model.Money(value)
	result.Created = created.Time
	result.Updated = updated.Time

	return &result, nil
}

func getChangesByID(ctx context.Context, q querier, id int64) ([]model.Change, error) {
	const query = `SELECT created, prop, old, new FROM player_changes WHERE player=@id ORDER BY created DESC`

	rows, err := q.Query(ctx, query, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := make([]model.Change, 0, 16)
	for rows.Next() {
		var created pgtype.Timestamptz
		c := model.Change{}
		err := rows.Scan(&created, &c.PropertyName, &c.OldValue, &c.NewValue)
		if err != nil {
			return nil, fmt.Errorf("error scanning player change: %v", err)
		}
		c.Time = created.Time

		changes = append(changes, c)
	}

	return changes, rows.Err()
}

func getPlayerScores(ctx context.Context, q querier, playerID int64) ([]model.PlayerScore, error) {
	const query = `SELECT player_id, matchday, delta, created FROM player_scores
		WHERE player_id=@id ORDER BY matchday DESC`

	rows, err := q.Query(ctx, query, pgx.NamedArgs{"id": playerID})
	if err != nil {
		return nil, fmt.Errorf("error querying scores for player %d: %w", playerID, err)
	}
	defer rows.Close()

	scores := make([]model.PlayerScore, 0, 38)
	for rows.Next() {
		var s model.PlayerScore
		var created pgtype.Timestamptz
		if err := rows.Scan(&s.PlayerID, &s.Matchday, &s.Delta, &created); err != nil {
			return nil, fmt.Errorf("error scanning player score: %w", err)
		}
		s.Created = created.Time
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

func calculateChanges(p1, p2 *model.Player, clock clock.Clock) []model.Change {
	changes := make([]model.Change, 0, 1)

	changes = checkChange(changes, clock, "Name", p1.Name, p2.Name)
	changes = checkChange(changes, clock, "Club", p1.Club, p2.Club)
	changes = checkChange(changes, clock, "Position", string(p1.Position), string(p2.Position))
	return changes
}

func checkChange(changes []model.Change, clock clock.Clock, prop, old, new string) []model.Change {
	if old != new {
		c := model.Change{
			Time:         clock.Now().UTC(),
			PropertyName: prop,
			OldValue:     old,
			NewValue:     new,
		}
		changes = append(changes, c)
	}
	return changes
}

func namedArgsForPlayer(p *model.Player) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":         p.ID,
		"externalID": p.ExternalID,
		"name":       p.Name,
		"club":       p.Club,
		"position":   &DBPosition{position: p.Position},
		"value":      int64(p.Value),
	}
}

type DBPosition struct {
	position model.Position
}

func (p *DBPosition) ScanText(v pgtype.Text) error {
	p.position = model.ParsePosition(v.String)
	return nil
}

func (p *DBPosition) TextValue() (pgtype.Text, error) {
	pos := p.position
	if pos == "" {
		pos = model.POS_UNKNOWN
	}
	return pgtype.Text{
		String: string(pos),
		Valid:  true,
	}, nil
}
