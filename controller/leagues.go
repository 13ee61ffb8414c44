package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mww/dreamsquad/db"
	"github.com/mww/dreamsquad/model"
)

func (c *controller) CreateLeague(ctx context.Context, ownerID int64, name string, capacity int, private bool) (*model.League, error) {
	name, capacity, err := model.ValidateLeague(name, capacity)
	if err != nil {
		return nil, err
	}

	l := &model.League{
		Name:      name,
		OwnerID:   ownerID,
		Capacity:  capacity,
		IsPrivate: private,
	}
	err = c.withTx(ctx, func(tx db.Tx) error {
		// Locking the roster checks the owner exists and serializes with
		// their other league changes.
		if _, err := tx.LockRoster(ctx, ownerID); err != nil {
			return err
		}

		code, err := c.uniqueJoinCode(ctx, tx)
		if err != nil {
			return err
		}
		l.Code = code

		if err := tx.CreateLeague(ctx, l); err != nil {
			return err
		}
		if err := tx.AddMembership(ctx, &model.Membership{UserID: ownerID, LeagueID: l.ID}); err != nil {
			return err
		}
		return tx.SetRosterLeague(ctx, ownerID, &l.ID)
	})
	if err != nil {
		return nil, err
	}

	l.MemberCount = 1
	slog.Info("created league", "league", l.ID, "owner", ownerID, "capacity", l.Capacity)
	return l, nil
}

func (c *controller) uniqueJoinCode(ctx context.Context, tx db.Tx) (string, error) {
	for range joinCodeAttempts {
		code := c.newCode()
		exists, err := tx.LeagueCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("error generating a unique join code after %d attempts", joinCodeAttempts)
}

// JoinLeague holds the league lock from the capacity check through to the
// insert so that concurrent joins cannot overfill it.
func (c *controller) JoinLeague(ctx context.Context, userID int64, code string) (*model.League, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, model.ErrInvalidCode
	}

	var l *model.League
	err := c.withTx(ctx, func(tx db.Tx) error {
		var err error
		l, err = tx.LockLeagueByCode(ctx, code)
		if err != nil {
			return err
		}

		member, err := tx.IsMember(ctx, userID, l.ID)
		if err != nil {
			return err
		}
		if member {
			return model.ErrAlreadyMember
		}
		if l.IsFull() {
			return fmt.Errorf("%w (%d members)", model.ErrLeagueFull, l.Capacity)
		}

		if err := tx.AddMembership(ctx, &model.Membership{UserID: userID, LeagueID: l.ID}); err != nil {
			return err
		}
		return tx.SetRosterLeague(ctx, userID, &l.ID)
	})
	if err != nil {
		leagueJoins.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	l.MemberCount++
	leagueJoins.WithLabelValues(outcome(nil)).Inc()
	return l, nil
}

func (c *controller) LeaveLeague(ctx context.Context, userID, leagueID int64) error {
	return c.withTx(ctx, func(tx db.Tx) error {
		l, err := tx.LockLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		if l.OwnerID == userID {
			return model.ErrOwnerCannotLeave
		}

		if err := tx.DeleteMembership(ctx, userID, leagueID); err != nil {
			return err
		}
		return tx.ClearRosterLeague(ctx, userID, leagueID)
	})
}

func (c *controller) DeleteLeague(ctx context.Context, userID, leagueID int64) error {
	return c.withTx(ctx, func(tx db.Tx) error {
		l, err := tx.LockLeague(ctx, leagueID)
		if err != nil {
			return err
		}
		if l.OwnerID != userID {
			return model.ErrNotOwner
		}
		return tx.DeleteLeague(ctx, leagueID)
	})
}

func (c *controller) GetLeague(ctx context.Context, leagueID int64) (*model.League, error) {
	return c.db.GetLeague(ctx, leagueID)
}

func (c *controller) ListPublicLeagues(ctx context.Context) ([]model.League, error) {
	leagues, err := c.db.ListPublicLeagues(ctx)
	if err != nil {
		return nil, err
	}
	// The join code is what makes a league joinable, keep it out of listings.
	for i := range leagues {
		leagues[i].Code = ""
	}
	return leagues, nil
}

func (c *controller) ListUserLeagues(ctx context.Context, userID int64) ([]model.League, error) {
	return c.db.ListUserLeagues(ctx, userID)
}

func (c *controller) GetStandings(ctx context.Context, leagueID int64) ([]model.Standing, error) {
	if _, err := c.db.GetLeague(ctx, leagueID); err != nil {
		return nil, err
	}

	rosters, err := c.db.ListLeagueRosters(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return model.ComputeStandings(rosters), nil
}

func (c *controller) GetStanding(ctx context.Context, leagueID, userID int64) (*model.Standing, error) {
	r, err := c.db.GetRoster(ctx, userID)
	if err != nil {
		return nil, err
	}

	standings, err := c.GetStandings(ctx, leagueID)
	if err != nil {
		return nil, err
	}

	s, err := model.StandingFor(standings, r.ID)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// leagueSnapshot loads the league and standings for the dashboard. A league
// deleted since the roster was read is reported as no league.
func (c *controller) leagueSnapshot(ctx context.Context, leagueID int64) (*model.League, []model.Standing, error) {
	l, err := c.db.GetLeague(ctx, leagueID)
	if err != nil {
		if errors.Is(err, model.ErrLeagueNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	rosters, err := c.db.ListLeagueRosters(ctx, leagueID)
	if err != nil {
		return nil, nil, err
	}
	return l, model.ComputeStandings(rosters), nil
}
