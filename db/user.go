package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/mww/dreamsquad/model"
)

func (tx *postgresTx) CreateUser(ctx context.Context, u *model.User) error {
	const query = `INSERT INTO users (username, email, created)
		VALUES (@username, @email, @created)
		RETURNING id, created`

	args := pgx.NamedArgs{
		"username": u.Username,
		"email":    u.Email,
		"created":  tx.now(),
	}

	var created pgtype.Timestamptz
	err := tx.tx.QueryRow(ctx, query, args).Scan(&u.ID, &created)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ValidationError("a user with username %s or email %s already exists", u.Username, u.Email)
		}
		return fmt.Errorf("error inserting user %s: %w", u.Username, err)
	}
	u.Created = created.Time
	return nil
}

// DeleteUser cascades to the user's roster, picks, memberships and owned leagues.
func (tx *postgresTx) DeleteUser(ctx context.Context, id int64) error {
	tag, err := tx.tx.Exec(ctx, `DELETE FROM users WHERE id=@id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting user %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func getUser(ctx context.Context, q querier, id int64) (*model.User, error) {
	const query = `SELECT id, username, email, created FROM users WHERE id=@id`

	var u model.User
	var created pgtype.Timestamptz
	err := q.QueryRow(ctx, query, pgx.NamedArgs{"id": id}).Scan(&u.ID, &u.Username, &u.Email, &created)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("error scanning user %d: %w", id, err)
	}
	u.Created = created.Time
	return &u, nil
}
