package mockdb

import (
	"context"

	"github.com/mww/dreamsquad/db"
	"github.com/mww/dreamsquad/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (d *DB) Begin(ctx context.Context) (db.Tx, error) {
	args := d.Called(ctx)

	var tx db.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(db.Tx)
	}
	return tx, args.Error(1)
}

func (d *DB) GetUser(ctx context.Context, id int64) (*model.User, error) {
	args := d.Called(ctx, id)

	var u *model.User
	if args.Get(0) != nil {
		u = args.Get(0).(*model.User)
	}
	return u, args.Error(1)
}

func (d *DB) GetPlayer(ctx context.Context, id int64) (*model.Player, error) {
	args := d.Called(ctx, id)
	return player(args)
}

func (d *DB) ListPlayers(ctx context.Context, filter model.PlayerFilter) ([]model.Player, error) {
	args := d.Called(ctx, filter)
	return players(args)
}

func (d *DB) GetPlayerScores(ctx context.Context, playerID int64) ([]model.PlayerScore, error) {
	args := d.Called(ctx, playerID)

	var s []model.PlayerScore
	if args.Get(0) != nil {
		s = args.Get(0).([]model.PlayerScore)
	}
	return s, args.Error(1)
}

func (d *DB) GetRoster(ctx context.Context, ownerID int64) (*model.Roster, error) {
	args := d.Called(ctx, ownerID)
	return roster(args)
}

func (d *DB) GetLeague(ctx context.Context, id int64) (*model.League, error) {
	args := d.Called(ctx, id)
	return league(args)
}

func (d *DB) ListPublicLeagues(ctx context.Context) ([]model.League, error) {
	args := d.Called(ctx)
	return leagues(args)
}

func (d *DB) ListUserLeagues(ctx context.Context, userID int64) ([]model.League, error) {
	args := d.Called(ctx, userID)
	return leagues(args)
}

func (d *DB) ListLeagueRosters(ctx context.Context, leagueID int64) ([]model.Roster, error) {
	args := d.Called(ctx, leagueID)

	var r []model.Roster
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Roster)
	}
	return r, args.Error(1)
}

func (d *DB) Ping(ctx context.Context) error {
	args := d.Called(ctx)
	return args.Error(0)
}

func (d *DB) Close() {
	d.Called()
}

func player(args mock.Arguments) (*model.Player, error) {
	var p *model.Player
	if args.Get(0) != nil {
		p = args.Get(0).(*model.Player)
	}
	return p, args.Error(1)
}

func players(args mock.Arguments) ([]model.Player, error) {
	var p []model.Player
	if args.Get(0) != nil {
		p = args.Get(0).([]model.Player)
	}
	return p, args.Error(1)
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
