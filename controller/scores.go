package controller

import (
	"context"
	"log/slog"

	"github.com/mww/dreamsquad/db"
	"github.com/mww/dreamsquad/model"
)

// ApplyScoreUpdate is the only writer of player points. Deltas are computed
// before the transaction starts so a failing score source leaves every
// player untouched. Roster totals are derived on read and need no update.
func (c *controller) ApplyScoreUpdate(ctx context.Context) (*model.ScoreUpdate, error) {
	players, err := c.db.ListPlayers(ctx, model.PlayerFilter{})
	if err != nil {
		return nil, err
	}

	deltas, err := c.scores.Deltas(ctx, players)
	if err != nil {
		scoreUpdates.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	update := &model.ScoreUpdate{}
	err = c.withTx(ctx, func(tx db.Tx) error {
		matchday, err := tx.NextMatchday(ctx)
		if err != nil {
			return err
		}
		update.Matchday = matchday

		for _, p := range players {
			if _, err := tx.ApplyScore(ctx, p.ID, matchday, deltas[p.ID]); err != nil {
				return err
			}
			update.PlayersUpdated++
		}
		return nil
	})
	if err != nil {
		scoreUpdates.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	scoreUpdates.WithLabelValues(outcome(nil)).Inc()
	slog.Info("applied score update", "matchday", update.Matchday, "players", update.PlayersUpdated)
	return update, nil
}

func (c *controller) GetPlayerScores(ctx context.Context, playerID int64) ([]model.PlayerScore, error) {
	if _, err := c.db.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	return c.db.GetPlayerScores(ctx, playerID)
}
