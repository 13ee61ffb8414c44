package controller

import (
	"context"
	"log/slog"

	"github.com/mww/dreamsquad/db"
	"github.com/mww/dreamsquad/model"
)

func (c *controller) RegisterUser(ctx context.Context, username, email string) (*model.User, *model.Roster, error) {
	username, email, err := model.ValidateUser(username, email)
	if err != nil {
		return nil, nil, err
	}

	u := &model.User{Username: username, Email: email}
	var r *model.Roster
	err = c.withTx(ctx, func(tx db.Tx) error {
		if err := tx.CreateUser(ctx, u); err != nil {
			return err
		}

		r = model.NewRoster(u.ID, u.Username)
		return tx.CreateRoster(ctx, r)
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("registered user", "user", u.ID, "roster", r.ID)
	return u, r, nil
}

func (c *controller) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	return c.db.GetUser(ctx, userID)
}

func (c *controller) DeleteUser(ctx context.Context, userID int64) error {
	return c.withTx(ctx, func(tx db.Tx) error {
		owned, err := tx.ListOwnedLeagues(ctx, userID)
		if err != nil {
			return err
		}
		for _, id := range owned {
			if err := tx.DeleteLeague(ctx, id); err != nil {
				return err
			}
		}
		return tx.DeleteUser(ctx, userID)
	})
}
