package controller

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/itbasis/go-clock"
	"github.com/mww/dreamsquad/db/mockdb"
	"github.com/mww/dreamsquad/model"
	"github.com/stretchr/testify/mock"
)

func TestLeagueCapacity_endToEnd(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()

	owner := registerUser(t, ctrl)
	second := registerUser(t, ctrl)
	third := registerUser(t, ctrl)

	l, err := ctrl.CreateLeague(ctx, owner.ID, "Two's Company", 2, true)
	assertFatalf(t, err == nil, "error creating league: %v", err)
	assertEquals(t, "members after create", 1, l.MemberCount)
	assertEquals(t, "code length", joinCodeLen, len(l.Code))

	ownerRoster, err := ctrl.GetRoster(ctx, owner.ID)
	assertFatalf(t, err == nil, "error loading owner roster: %v", err)
	if ownerRoster.LeagueID == nil || *ownerRoster.LeagueID != l.ID {
		t.Errorf("owner roster should point at the new league, got %v", ownerRoster.LeagueID)
	}

	joined, err := ctrl.JoinLeague(ctx, second.ID, strings.ToLower(l.Code))
	assertFatalf(t, err == nil, "error joining league: %v", err)
	assertEquals(t, "members after join", 2, joined.MemberCount)

	_, err = ctrl.JoinLeague(ctx, third.ID, l.Code)
	if !errors.Is(err, model.ErrLeagueFull) {
		t.Errorf("expected ErrLeagueFull, got %v", err)
	}

	stored, err := ctrl.GetLeague(ctx, l.ID)
	assertFatalf(t, err == nil, "error loading league: %v", err)
	assertEquals(t, "stored member count", 2, stored.MemberCount)

	thirdRoster, err := ctrl.GetRoster(ctx, third.ID)
	assertFatalf(t, err == nil, "error loading roster: %v", err)
	if thirdRoster.LeagueID != nil {
		t.Errorf("failed join must not set a league on the roster")
	}
}

func TestJoinLeague_errors(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()

	owner := registerUser(t, ctrl)
	member := registerUser(t, ctrl)
	l, err := ctrl.CreateLeague(ctx, owner.ID, "Errors League", 0, false)
	assertFatalf(t, err == nil, "error creating league: %v", err)
	assertEquals(t, "default capacity", model.DefaultLeagueCapacity, l.Capacity)

	_, err = ctrl.JoinLeague(ctx, member.ID, l.Code)
	assertFatalf(t, err == nil, "error joining: %v", err)

	tests := map[string]struct {
		userID int64
		code   string
		want   error
	}{
		"empty code":     {userID: member.ID, code: "  ", want: model.ErrInvalidCode},
		"unknown code":   {userID: member.ID, code: "ZZZZZZZZ", want: model.ErrInvalidCode},
		"already member": {userID: member.ID, code: l.Code, want: model.ErrAlreadyMember},
		"owner rejoins":  {userID: owner.ID, code: l.Code, want: model.ErrAlreadyMember},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ctrl.JoinLeague(ctx, tc.userID, tc.code)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestJoinLeague_concurrentAtCapacity(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()

	owner := registerUser(t, ctrl)
	l, err := ctrl.CreateLeague(ctx, owner.ID, "Crowded", 3, false)
	assertFatalf(t, err == nil, "error creating league: %v", err)

	joiners := make([]*model.User, 0, 10)
	for range 10 {
		joiners = append(joiners, registerUser(t, ctrl))
	}

	var wg sync.WaitGroup
	var succeeded, full atomic.Int32
	for _, u := range joiners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ctrl.JoinLeague(ctx, u.ID, l.Code)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, model.ErrLeagueFull):
				full.Add(1)
			default:
				t.Errorf("unexpected join error: %v", err)
			}
		}()
	}
	wg.Wait()

	assertEquals(t, "successful joins", int32(2), succeeded.Load())
	assertEquals(t, "rejected joins", int32(8), full.Load())

	stored, err := ctrl.GetLeague(ctx, l.ID)
	assertFatalf(t, err == nil, "error loading league: %v", err)
	assertEquals(t, "member count", 3, stored.MemberCount)
}

func TestLeaveLeague(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()

	owner := registerUser(t, ctrl)
	member := registerUser(t, ctrl)
	outsider := registerUser(t, ctrl)

	first, err := ctrl.CreateLeague(ctx, owner.ID, "First", 5, false)
	assertFatalf(t, err == nil, "error creating league: %v", err)
	second, err := ctrl.CreateLeague(ctx, outsider.ID, "Second", 5, false)
	assertFatalf(t, err == nil, "error creating league: %v", err)

	_, err = ctrl.JoinLeague(ctx, member.ID, first.Code)
	assertFatalf(t, err == nil, "error joining first: %v", err)
	_, err = ctrl.JoinLeague(ctx, member.ID, second.Code)
	assertFatalf(t, err == nil, "error joining second: %v", err)

	// Joining the second league moved the roster there.
	r, err := ctrl.GetRoster(ctx, member.ID)
	assertFatalf(t, err == nil, "error loading roster: %v", err)
	assertFatalf(t, r.LeagueID != nil && *r.LeagueID == second.ID, "expected roster in second league, got %v", r.LeagueID)

	mine, err := ctrl.ListUserLeagues(ctx, member.ID)
	assertFatalf(t, err == nil, "error listing leagues: %v", err)
	assertEquals(t, "member leagues", 2, len(mine))

	// Leaving a league the roster does not point at keeps the reference.
	err = ctrl.LeaveLeague(ctx, member.ID, first.ID)
	assertFatalf(t, err == nil, "error leaving first: %v", err)
	r, _ = ctrl.GetRoster(ctx, member.ID)
	assertFatalf(t, r.LeagueID != nil && *r.LeagueID == second.ID, "expected roster still in second league, got %v", r.LeagueID)

	err = ctrl.LeaveLeague(ctx, member.ID, second.ID)
	assertFatalf(t, err == nil, "error leaving second: %v", err)
	r, _ = ctrl.GetRoster(ctx, member.ID)
	if r.LeagueID != nil {
		t.Errorf("expected roster league to be cleared, got %v", *r.LeagueID)
	}

	tests := map[string]struct {
		userID   int64
		leagueID int64
		want     error
	}{
		"owner":          {userID: owner.ID, leagueID: first.ID, want: model.ErrOwnerCannotLeave},
		"not a member":   {userID: member.ID, leagueID: first.ID, want: model.ErrNotAMember},
		"unknown league": {userID: member.ID, leagueID: 999999, want: model.ErrLeagueNotFound},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := ctrl.LeaveLeague(ctx, tc.userID, tc.leagueID)
			if !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDeleteLeague(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()

	owner := registerUser(t, ctrl)
	member := registerUser(t, ctrl)
	l, err := ctrl.CreateLeague(ctx, owner.ID, "Short Lived", 5, false)
	assertFatalf(t, err == nil, "error creating league: %v", err)
	_, err = ctrl.JoinLeague(ctx, member.ID, l.Code)
	assertFatalf(t, err == nil, "error joining: %v", err)

	err = ctrl.DeleteLeague(ctx, member.ID, l.ID)
	if !errors.Is(err, model.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	err = ctrl.DeleteLeague(ctx, owner.ID, l.ID)
	assertFatalf(t, err == nil, "error deleting league: %v", err)

	for _, u := range []*model.User{owner, member} {
		r, err := ctrl.GetRoster(ctx, u.ID)
		assertFatalf(t, err == nil, "error loading roster: %v", err)
		if r.LeagueID != nil {
			t.Errorf("roster of user %d should be detached", u.ID)
		}
		mine, err := ctrl.ListUserLeagues(ctx, u.ID)
		assertFatalf(t, err == nil, "error listing leagues: %v", err)
		assertEquals(t, "memberships after delete", 0, len(mine))
	}

	if err := ctrl.DeleteLeague(ctx, owner.ID, l.ID); !errors.Is(err, model.ErrLeagueNotFound) {
		t.Errorf("expected ErrLeagueNotFound, got %v", err)
	}
}

func TestCreateLeague_validation(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()
	owner := registerUser(t, ctrl)

	tests := map[string]struct {
		name     string
		capacity int
	}{
		"empty name":   {name: "", capacity: 4},
		"too small":    {name: "Tiny", capacity: 1},
		"too large":    {name: "Huge", capacity: 101},
		"long name":    {name: strings.Repeat("n", 101), capacity: 4},
		"blank spaces": {name: "    ", capacity: 4},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ctrl.CreateLeague(ctx, owner.ID, tc.name, tc.capacity, false)
			if model.KindOf(err) != model.KindValidation {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if _, err := ctrl.CreateLeague(ctx, 999999, "No Owner", 4, false); !errors.Is(err, model.ErrRosterNotFound) {
		t.Errorf("expected ErrRosterNotFound for an unknown owner, got %v", err)
	}
}

func TestListPublicLeagues(t *testing.T) {
	ctrl := newTestController(t, nil)
	ctx := context.Background()
	owner := registerUser(t, ctrl)

	public, err := ctrl.CreateLeague(ctx, owner.ID, "Open To All", 10, false)
	assertFatalf(t, err == nil, "error creating league: %v", err)
	private, err := ctrl.CreateLeague(ctx, owner.ID, "Invite Only", 10, true)
	assertFatalf(t, err == nil, "error creating league: %v", err)

	leagues, err := ctrl.ListPublicLeagues(ctx)
	assertFatalf(t, err == nil, "error listing leagues: %v", err)

	foundPublic := false
	for _, l := range leagues {
		if l.ID == private.ID {
			t.Errorf("private league should not be listed")
		}
		if l.ID == public.ID {
			foundPublic = true
		}
		if l.Code != "" {
			t.Errorf("join code should not be listed for league %d", l.ID)
		}
	}
	if !foundPublic {
		t.Errorf("public league %d not listed", public.ID)
	}
}

func TestCreateLeague_codeCollisions(t *testing.T) {
	ctx := context.Background()

	tests := map[string]struct {
		collisions int
		wantErr    bool
	}{
		"no collision":       {collisions: 0},
		"retries":            {collisions: 3},
		"exhausted attempts": {collisions: joinCodeAttempts, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			mockDB := &mockdb.DB{}
			tx := &mockdb.Tx{}
			mockDB.On("Begin", ctx).Return(tx, nil)
			tx.On("Rollback", ctx).Return(nil)
			tx.On("LockRoster", ctx, int64(1)).Return(&model.Roster{ID: 10, OwnerID: 1}, nil)

			if tc.collisions > 0 {
				tx.On("LeagueCodeExists", ctx, "ABCDEFGH").Return(true, nil).Times(tc.collisions)
			}
			if !tc.wantErr {
				tx.On("LeagueCodeExists", ctx, "ABCDEFGH").Return(false, nil).Once()
				tx.On("CreateLeague", ctx, mock.Anything).Run(func(args mock.Arguments) {
					args.Get(1).(*model.League).ID = 5
				}).Return(nil)
				tx.On("AddMembership", ctx, &model.Membership{UserID: 1, LeagueID: 5}).Return(nil)
				tx.On("SetRosterLeague", ctx, int64(1), mock.Anything).Return(nil)
				tx.On("Commit", ctx).Return(nil)
			}

			c, err := New(clock.New(), mockDB, nil, &fixedScores{})
			assertFatalf(t, err == nil, "error creating controller: %v", err)
			ctrl := c.(*controller)
			ctrl.newCode = func() string { return "ABCDEFGH" }

			l, err := ctrl.CreateLeague(ctx, 1, "Collisions", 4, false)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected an error after %d collisions", tc.collisions)
				}
				tx.AssertNotCalled(t, "CreateLeague", mock.Anything, mock.Anything)
				tx.AssertNumberOfCalls(t, "LeagueCodeExists", joinCodeAttempts)
				return
			}

			assertFatalf(t, err == nil, "unexpected error: %v", err)
			assertEquals(t, "code", "ABCDEFGH", l.Code)
			tx.AssertNumberOfCalls(t, "LeagueCodeExists", tc.collisions+1)
			tx.AssertExpectations(t)
		})
	}
}
