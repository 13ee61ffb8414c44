package mockfeed

import (
	"context"

	"github.com/mww/dreamsquad/feed"
	"github.com/mww/dreamsquad/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) LoadPlayers(ctx context.Context) ([]model.Player, error) {
	args := c.Called(ctx)

	var res []model.Player
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Player)
	}

	return res, args.Error(1)
}

func (c *Client) LoadScores(ctx context.Context) (*feed.Scores, error) {
	args := c.Called(ctx)

	var res *feed.Scores
	if args.Get(0) != nil {
		res = args.Get(0).(*feed.Scores)
	}

	return res, args.Error(1)
}
