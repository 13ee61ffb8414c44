package controller

import (
	"context"

	"github.com/mww/dreamsquad/db"
	"github.com/mww/dreamsquad/model"
)

func (c *controller) GetRoster(ctx context.Context, userID int64) (*model.Roster, error) {
	return c.db.GetRoster(ctx, userID)
}

// DraftPlayer holds the roster lock from the balance check through to the
// write so that concurrent drafts by the same user cannot overspend.
func (c *controller) DraftPlayer(ctx context.Context, userID, playerID int64) (*model.Roster, error) {
	var r *model.Roster
	err := c.withTx(ctx, func(tx db.Tx) error {
		var err error
		r, err = tx.LockRoster(ctx, userID)
		if err != nil {
			return err
		}

		p, err := tx.GetPlayer(ctx, playerID)
		if err != nil {
			return err
		}

		if err := r.Draft(p, c.clock.Now()); err != nil {
			return err
		}
		if err := tx.AddPick(ctx, r.ID, &r.Picks[len(r.Picks)-1]); err != nil {
			return err
		}
		return tx.UpdateRoster(ctx, r)
	})
	if err != nil {
		ledgerOps.WithLabelValues("draft", outcome(err)).Inc()
		return nil, err
	}

	ledgerOps.WithLabelValues("draft", outcome(nil)).Inc()
	return r, nil
}

func (c *controller) RemovePlayer(ctx context.Context, userID, playerID int64) (*model.Roster, error) {
	var r *model.Roster
	err := c.withTx(ctx, func(tx db.Tx) error {
		var err error
		r, err = tx.LockRoster(ctx, userID)
		if err != nil {
			return err
		}

		if _, err := r.Remove(playerID); err != nil {
			return err
		}
		if err := tx.DeletePick(ctx, r.ID, playerID); err != nil {
			return err
		}
		return tx.UpdateRoster(ctx, r)
	})
	if err != nil {
		ledgerOps.WithLabelValues("remove", outcome(err)).Inc()
		return nil, err
	}

	ledgerOps.WithLabelValues("remove", outcome(nil)).Inc()
	return r, nil
}

func (c *controller) RenameRoster(ctx context.Context, userID int64, name string) (*model.Roster, error) {
	var r *model.Roster
	err := c.withTx(ctx, func(tx db.Tx) error {
		var err error
		r, err = tx.LockRoster(ctx, userID)
		if err != nil {
			return err
		}

		if err := r.Rename(name); err != nil {
			return err
		}
		return tx.UpdateRoster(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
