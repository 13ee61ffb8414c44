package mockdb

import (
	"context"

	"github.com/mww/dreamsquad/model"
	"github.com/stretchr/testify/mock"
)

type Tx struct {
	mock.Mock
}

func (tx *Tx) CreateUser(ctx context.Context, u *model.User) error {
	args := tx.Called(ctx, u)
	return args.Error(0)
}

func (tx *Tx) DeleteUser(ctx context.Context, id int64) error {
	args := tx.Called(ctx, id)
	return args.Error(0)
}

func (tx *Tx) CreateRoster(ctx context.Context, r *model.Roster) error {
	args := tx.Called(ctx, r)
	return args.Error(0)
}

func (tx *Tx) LockRoster(ctx context.Context, ownerID int64) (*model.Roster, error) {
	args := tx.Called(ctx, ownerID)
	return roster(args)
}

func (tx *Tx) UpdateRoster(ctx context.Context, r *model.Roster) error {
	args := tx.Called(ctx, r)
	return args.Error(0)
}

func (tx *Tx) AddPick(ctx context.Context, rosterID int64, pick *model.Pick) error {
	args := tx.Called(ctx, rosterID, pick)
	return args.Error(0)
}

func (tx *Tx) DeletePick(ctx context.Context, rosterID, playerID int64) error {
	args := tx.Called(ctx, rosterID, playerID)
	return args.Error(0)
}

func (tx *Tx) SetRosterLeague(ctx context.Context, ownerID int64, leagueID *int64) error {
	args := tx.Called(ctx, ownerID, leagueID)
	return args.Error(0)
}

func (tx *Tx) ClearRosterLeague(ctx context.Context, ownerID, leagueID int64) error {
	args := tx.Called(ctx, ownerID, leagueID)
	return args.Error(0)
}

func (tx *Tx) CreateLeague(ctx context.Context, l *model.League) error {
	args := tx.Called(ctx, l)
	return args.Error(0)
}

func (tx *Tx) LeagueCodeExists(ctx context.Context, code string) (bool, error) {
	args := tx.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (tx *Tx) LockLeague(ctx context.Context, id int64) (*model.League, error) {
	args := tx.Called(ctx, id)
	return league(args)
}

func (tx *Tx) LockLeagueByCode(ctx context.Context, code string) (*model.League, error) {
	args := tx.Called(ctx, code)
	return league(args)
}

func (tx *Tx) ListOwnedLeagues(ctx context.Context, ownerID int64) ([]int64, error) {
	args := tx.Called(ctx, ownerID)

	var ids []int64
	if args.Get(0) != nil {
		ids = args.Get(0).([]int64)
	}
	return ids, args.Error(1)
}

func (tx *Tx) DeleteLeague(ctx context.Context, id int64) error {
	args := tx.Called(ctx, id)
	return args.Error(0)
}

func (tx *Tx) IsMember(ctx context.Context, userID, leagueID int64) (bool, error) {
	args := tx.Called(ctx, userID, leagueID)
	return args.Bool(0), args.Error(1)
}

func (tx *Tx) AddMembership(ctx context.Context, m *model.Membership) error {
	args := tx.Called(ctx, m)
	return args.Error(0)
}

func (tx *Tx) DeleteMembership(ctx context.Context, userID, leagueID int64) error {
	args := tx.Called(ctx, userID, leagueID)
	return args.Error(0)
}

func (tx *Tx) GetPlayer(ctx context.Context, id int64) (*model.Player, error) {
	args := tx.Called(ctx, id)
	return player(args)
}

func (tx *Tx) SavePlayer(ctx context.Context, p *model.Player) (bool, error) {
	args := tx.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (tx *Tx) NextMatchday(ctx context.Context) (int, error) {
	args := tx.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (tx *Tx) ApplyScore(ctx context.Context, playerID int64, matchday, delta int) (int, error) {
	args := tx.Called(ctx, playerID, matchday, delta)
	return args.Int(0), args.Error(1)
}

func (tx *Tx) Commit(ctx context.Context) error {
	args := tx.Called(ctx)
	return args.Error(0)
}

func (tx *Tx) Rollback(ctx context.Context) error {
	args := tx.Called(ctx)
	return args.Error(0)
}
