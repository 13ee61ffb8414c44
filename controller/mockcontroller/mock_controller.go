package mockcontroller

import (
	"context"

	"github.com/mww/dreamsquad/model"
	"github.com/stretchr/testify/mock"
)

type C struct {
	mock.Mock
}

func (c *C) RegisterUser(ctx context.Context, username, email string) (*model.User, *model.Roster, error) {
	args := c.Called(ctx, username, email)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	var r *model.Roster
	if args.Get(1) != nil {
		r = args.Get(1).(*model.Roster)
	}
	return u, r, args.Error(2)
}

func (c *C) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	args := c.Called(ctx, userID)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (c *C) DeleteUser(ctx context.Context, userID int64) error {
	args := c.Called(ctx, userID)
	return args.Error(0)
}

func (c *C) GetRoster(ctx context.Context, userID int64) (*model.Roster, error) {
	args := c.Called(ctx, userID)
	return roster(args)
}

func (c *C) DraftPlayer(ctx context.Context, userID, playerID int64) (*model.Roster, error) {
	args := c.Called(ctx, userID, playerID)
	return roster(args)
}

func (c *C) RemovePlayer(ctx context.Context, userID, playerID int64) (*model.Roster, error) {
	args := c.Called(ctx, userID, playerID)
	return roster(args)
}

func (c *C) RenameRoster(ctx context.Context, userID int64, name string) (*model.Roster, error) {
	args := c.Called(ctx, userID, name)
	return roster(args)
}

func (c *C) CreateLeague(ctx context.Context, ownerID int64, name string, capacity int, private bool) (*model.League, error) {
	args := c.Called(ctx, ownerID, name, capacity, private)
	return league(args)
}

func (c *C) JoinLeague(ctx context.Context, userID int64, code string) (*model.League, error) {
	args := c.Called(ctx, userID, code)
	return league(args)
}

func (c *C) LeaveLeague(ctx context.Context, userID, leagueID int64) error {
	args := c.Called(ctx, userID, leagueID)
	return args.Error(0)
}

func (c *C) DeleteLeague(ctx context.Context, userID, leagueID int64) error {
	args := c.Called(ctx, userID, leagueID)
	return args.Error(0)
}

func (c *C) GetLeague(ctx context.Context, leagueID int64) (*model.League, error) {
	args := c.Called(ctx, leagueID)
	return league(args)
}

func (c *C) ListPublicLeagues(ctx context.Context) ([]model.League, error) {
	args := c.Called(ctx)
	return leagues(args)
}

func (c *C) ListUserLeagues(ctx context.Context, userID int64) ([]model.League, error) {
	args := c.Called(ctx, userID)
	return leagues(args)
}

func (c *C) GetStandings(ctx context.Context, leagueID int64) ([]model.Standing, error) {
	args := c.Called(ctx, leagueID)

	var s []model.Standing
	if args.Get(0) != nil {
		s = args.Get(0).([]model.Standing)
	}
	return s, args.Error(1)
}

func (c *C) GetStanding(ctx context.Context, leagueID, userID int64) (*model.Standing, error) {
	args := c.Called(ctx, leagueID, userID)

	var s *model.Standing
	if args.Get(0) != nil {
		s = args.Get(0).(*model.Standing)
	}
	return s, args.Error(1)
}

func (c *C) ApplyScoreUpdate(ctx context.Context) (*model.ScoreUpdate, error) {
	args := c.Called(ctx)

	var u *model.ScoreUpdate
	if args.Get(0) != nil {
		u = args.Get(0).(*model.ScoreUpdate)
	}
	return u, args.Error(1)
}

func (c *C) GetPlayerScores(ctx context.Context, playerID int64) ([]model.PlayerScore, error) {
	args := c.Called(ctx, playerID)

	var s []model.PlayerScore
	if args.Get(0) != nil {
		s = args.Get(0).([]model.PlayerScore)
	}
	return s, args.Error(1)
}

func (c *C) SyncPlayers(ctx context.Context) (*model.SyncResult, error) {
	args := c.Called(ctx)

	var r *model.SyncResult
	if args.Get(0) != nil {
		r = args.Get(0).(*model.SyncResult)
	}
	return r, args.Error(1)
}

func (c *C) GetPlayer(ctx context.Context, id int64) (*model.Player, error) {
	args := c.Called(ctx, id)

	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func (c *C) ListPlayers(ctx context.Context, filter model.PlayerFilter) ([]model.Player, error) {
	args := c.Called(ctx, filter)
	return players(args)
}

func (c *C) SearchPlayers(ctx context.Context, query string) ([]model.Player, error) {
	args := c.Called(ctx, query)
	return players(args)
}

func (c *C) GetDashboard(ctx context.Context, userID int64) (*model.Dashboard, error) {
	args := c.Called(ctx, userID)

	var d *model.Dashboard
	if args.Get(0) != nil {
		d = args.Get(0).(*model.Dashboard)
	}
	return d, args.Error(1)
}

func roster(args mock.Arguments) (*model.Roster, error) {
	var r *model.Roster
	if args.Get(0) != nil {
		r = args.Get(0).(*model.Roster)
	}
	return r, args.Error(1)
}

func league(args mock.Arguments) (*model.League, error) {
	var l *model.League
	if args.Get(0) != nil {
		l = args.Get(0).(*model.League)
	}
	return l, args.Error(1)
}

func leagues(args mock.Arguments) ([]model.League, error) {
	var l []model.League
	if args.Get(0) != nil {
		l = args.Get(0).([]model.League)
	}
	return l, args.Error(1)
}

func players(args mock.Arguments) ([]model.Player, error) {
	var p []model.Player
	if args.Get(0) != nil {
		p = args.Get(0).([]model.Player)
	}
	return p, args.Error(1)
}
