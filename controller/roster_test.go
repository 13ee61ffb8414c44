package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/mww/dreamsquad/db/mockdb"
	"github.com/mww/dreamsquad/model"
	"github.com/stretchr/testify/mock"
)

func TestDraftAndRemove_endToEnd(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()

	u := registerUser(t, ctrl)
	r, err := ctrl.GetRoster(ctx, u.ID)
	assertFatalf(t, err == nil, "error loading roster: %v", err)
	assertEquals(t, "initial budget", model.NewMoney(100.0), r.BudgetLeft)
	assertEquals(t, "initial players", 0, r.SquadSize())

	p := insertPlayer(t, "Fifteen Pounder", 15.0)

	r, err = ctrl.DraftPlayer(ctx, u.ID, p.ID)
	assertFatalf(t, err == nil, "error drafting player: %v", err)
	assertEquals(t, "budget after draft", model.NewMoney(85.0), r.BudgetLeft)
	assertEquals(t, "players after draft", 1, r.SquadSize())

	stored, err := ctrl.GetRoster(ctx, u.ID)
	assertFatalf(t, err == nil, "error reloading roster: %v", err)
	assertEquals(t, "stored budget after draft", model.NewMoney(85.0), stored.BudgetLeft)
	assertEquals(t, "stored pick cost", p.Value, stored.Picks[0].Cost)
	assertEquals(t, "stored pick player", p.ID, stored.Picks[0].Player.ID)

	_, err = ctrl.DraftPlayer(ctx, u.ID, p.ID)
	if !errors.Is(err, model.ErrAlreadyHeld) {
		t.Errorf("expected ErrAlreadyHeld drafting twice, got %v", err)
	}

	r, err = ctrl.RemovePlayer(ctx, u.ID, p.ID)
	assertFatalf(t, err == nil, "error removing player: %v", err)
	assertEquals(t, "budget after remove", model.NewMoney(100.0), r.BudgetLeft)
	assertEquals(t, "players after remove", 0, r.SquadSize())

	stored, err = ctrl.GetRoster(ctx, u.ID)
	assertFatalf(t, err == nil, "error reloading roster: %v", err)
	assertEquals(t, "stored budget after remove", model.NewMoney(100.0), stored.BudgetLeft)
	assertEquals(t, "stored players after remove", 0, stored.SquadSize())

	_, err = ctrl.RemovePlayer(ctx, u.ID, p.ID)
	if !errors.Is(err, model.ErrNotHeld) {
		t.Errorf("expected ErrNotHeld removing twice, got %v", err)
	}
}

func TestDraft_fullRosterAndBudget(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()

	u := registerUser(t, ctrl)
	for range model.MaxSquadSize {
		p := insertPlayer(t, "Squad Filler", 1.0)
		_, err := ctrl.DraftPlayer(ctx, u.ID, p.ID)
		assertFatalf(t, err == nil, "error filling roster: %v", err)
	}

	twelfth := insertPlayer(t, "Twelfth Man", 1.0)
	_, err := ctrl.DraftPlayer(ctx, u.ID, twelfth.ID)
	if !errors.Is(err, model.ErrRosterFull) {
		t.Errorf("expected ErrRosterFull, got %v", err)
	}

	broke := registerUser(t, ctrl)
	star := insertPlayer(t, "Star Signing", 95.0)
	_, err = ctrl.DraftPlayer(ctx, broke.ID, star.ID)
	assertFatalf(t, err == nil, "error drafting star: %v", err)

	extra := insertPlayer(t, "Too Expensive", 5.5)
	_, err = ctrl.DraftPlayer(ctx, broke.ID, extra.ID)
	if !errors.Is(err, model.ErrInsufficientBudget) {
		t.Errorf("expected ErrInsufficientBudget, got %v", err)
	}

	r, err := ctrl.GetRoster(ctx, broke.ID)
	assertFatalf(t, err == nil, "error loading roster: %v", err)
	assertEquals(t, "budget unchanged by failed draft", model.NewMoney(5.0), r.BudgetLeft)

	_, err = ctrl.DraftPlayer(ctx, broke.ID, 999999)
	if !errors.Is(err, model.ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got %v", err)
	}
	_, err = ctrl.DraftPlayer(ctx, 999999, star.ID)
	if !errors.Is(err, model.ErrRosterNotFound) {
		t.Errorf("expected ErrRosterNotFound, got %v", err)
	}
}

func TestDraft_concurrentSameRoster(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()

	u := registerUser(t, ctrl)
	players := make([]*model.Player, 0, 8)
	for range 8 {
		players = append(players, insertPlayer(t, "Contested", 30.0))
	}

	var wg sync.WaitGroup
	for _, p := range players {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctrl.DraftPlayer(ctx, u.ID, p.ID)
		}()
	}
	wg.Wait()

	r, err := ctrl.GetRoster(ctx, u.ID)
	assertFatalf(t, err == nil, "error loading roster: %v", err)
	// Only three 30.0 players fit in a 100.0 budget.
	assertEquals(t, "squad size", 3, r.SquadSize())
	assertEquals(t, "budget left", model.NewMoney(10.0), r.BudgetLeft)
	if !r.Balanced() {
		t.Errorf("roster ledger out of balance: %+v", r)
	}
}

func TestRenameRoster(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()
	u := registerUser(t, ctrl)

	r, err := ctrl.RenameRoster(ctx, u.ID, "  The Invincibles ")
	assertFatalf(t, err == nil, "error renaming: %v", err)
	assertEquals(t, "name", "The Invincibles", r.Name)

	_, err = ctrl.RenameRoster(ctx, u.ID, "")
	if model.KindOf(err) != model.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}

	stored, err := ctrl.GetRoster(ctx, u.ID)
	assertFatalf(t, err == nil, "error loading roster: %v", err)
	assertEquals(t, "stored name", "The Invincibles", stored.Name)
}

func TestDraft_rollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	player := &model.Player{ID: 7, Name: "Mocked", Value: model.NewMoney(10)}

	tests := map[string]struct {
		setup func(tx *mockdb.Tx)
		want  error
	}{
		"pick insert fails": {
			setup: func(tx *mockdb.Tx) {
				tx.On("AddPick", ctx, int64(1), mock.Anything).Return(errors.New("boom"))
			},
		},
		"roster update fails": {
			setup: func(tx *mockdb.Tx) {
				tx.On("AddPick", ctx, int64(1), mock.Anything).Return(nil)
				tx.On("UpdateRoster", ctx, mock.Anything).Return(errors.New("boom"))
			},
		},
		"duplicate pick race": {
			setup: func(tx *mockdb.Tx) {
				tx.On("AddPick", ctx, int64(1), mock.Anything).Return(model.ErrAlreadyHeld)
			},
			want: model.ErrAlreadyHeld,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			tx := &mockdb.Tx{}
			mockDB.On("Begin", ctx).Return(tx, nil)
			tx.On("LockRoster", ctx, int64(42)).Return(&model.Roster{ID: 1, OwnerID: 42, BudgetLeft: model.InitialBudget}, nil)
			tx.On("GetPlayer", ctx, int64(7)).Return(player, nil)
			tx.On("Rollback", ctx).Return(nil)
			tc.setup(tx)

			ctrl, err := New(clock.New(), mockDB, nil, &fixedScores{})
			assertFatalf(t, err == nil, "error creating controller: %v", err)

			_, err = ctrl.DraftPlayer(ctx, 42, 7)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}

			tx.AssertNotCalled(t, "Commit", mock.Anything)
			tx.AssertCalled(t, "Rollback", ctx)
			mockDB.AssertExpectations(t)
		})
	}
}
