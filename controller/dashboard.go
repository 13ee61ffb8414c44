package controller

import (
	"context"

	"github.com/mww/dreamsquad/model"
)

func (c *controller) GetDashboard(ctx context.Context, userID int64) (*model.Dashboard, error) {
	r, err := c.db.GetRoster(ctx, userID)
	if err != nil {
		return nil, err
	}

	if r.LeagueID == nil {
		return model.NewDashboard(r, nil, nil), nil
	}

	l, standings, err := c.leagueSnapshot(ctx, *r.LeagueID)
	if err != nil {
		return nil, err
	}
	return model.NewDashboard(r, l, standings), nil
}
