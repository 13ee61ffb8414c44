package db

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mww/dreamsquad/model"
)

func TestPlayer_saveAndLoad(t *testing.T) {
	ctx := context.Background()
	p := savePlayer(t, newPlayer("Ivan Toney", model.POS_FWD, 8.5))

	res, err := testDB.GetPlayer(ctx, p.ID)
	assertFatalf(t, err == nil, "error retreiving player: %v", err)

	// Make sure that the after saving and retreiving the player, all the fields
	// are the same.
	assertEquals(t, "ID", p.ID, res.ID)
	assertEquals(t, "ExternalID", p.ExternalID, res.ExternalID)
	assertEquals(t, "Name", p.Name, res.Name)
	assertEquals(t, "Club", p.Club, res.Club)
	assertEquals(t, "Position", p.Position, res.Position)
	assertEquals(t, "Value", p.Value, res.Value)
	assertEquals(t, "Points", 0, res.Points)
	assertEquals(t, "player changes", 0, len(res.Changes))

	// The result should have a created time, but not an updated time.
	if res.Created.IsZero() {
		t.Errorf("expected res created time to not be zero")
	}
	if !res.Updated.IsZero() {
		t.Errorf("expected res updated time to be zero")
	}

	// Lookup a player that doesn't exist
	res2, err := testDB.GetPlayer(ctx, -1)
	assertFatalf(t, err != nil, "should have had an error searching for player")
	assertEquals(t, "error type", true, errors.Is(err, model.ErrPlayerNotFound))
	if res2 != nil {
		t.Errorf("expected res2 to be nil, but was %v", res2)
	}
}

func TestPlayer_update(t *testing.T) {
	ctx := context.Background()
	p := savePlayer(t, newPlayer("Jarrod Bowen", model.POS_MID, 7.5))

	// A feed update moves the player and reprices them. The price is ignored
	// for existing players.
	moved := *p
	moved.ID = 0
	moved.Club = "West Ham United"
	moved.Position = model.POS_FWD
	moved.Value = model.NewMoney(12)
	moved.Changes = nil

	tx, err := testDB.Begin(ctx)
	assertFatalf(t, err == nil, "error starting tx: %v", err)
	defer tx.Rollback(ctx)
	inserted, err := tx.SavePlayer(ctx, &moved)
	assertFatalf(t, err == nil, "error saving player: %v", err)
	assertEquals(t, "inserted", false, inserted)
	assertEquals(t, "ID filled in", p.ID, moved.ID)
	assertEquals(t, "Value kept", p.Value, moved.Value)
	assertEquals(t, "Changes", 2, len(moved.Changes))
	err = tx.Commit(ctx)
	assertFatalf(t, err == nil, "error committing: %v", err)

	res, err := testDB.GetPlayer(ctx, p.ID)
	assertFatalf(t, err == nil, "error getting updated player: %v", err)
	assertEquals(t, "Club", "West Ham United", res.Club)
	assertEquals(t, "Position", model.POS_FWD, res.Position)
	assertEquals(t, "Value", p.Value, res.Value)
	if res.Updated.IsZero() {
		t.Errorf("expected updated time to not be zero")
	}

	assertFatalf(t, len(res.Changes) == 2, "expected 2 changes, got %d", len(res.Changes))
	props := map[string]model.Change{}
	for _, c := range res.Changes {
		props[c.PropertyName] = c
	}
	club := props["Club"]
	pos := props["Position"]
	assertPlayerChange(t, "club change", "Club", "Test Athletic", "West Ham United", &club)
	assertPlayerChange(t, "position change", "Position", "MID", "FWD", &pos)

	// Saving the same record again records nothing new.
	same := *res
	same.Changes = nil
	tx2, err := testDB.Begin(ctx)
	assertFatalf(t, err == nil, "error starting tx: %v", err)
	defer tx2.Rollback(ctx)
	_, err = tx2.SavePlayer(ctx, &same)
	assertFatalf(t, err == nil, "error saving player: %v", err)
	assertEquals(t, "no new changes", 0, len(same.Changes))
	err = tx2.Commit(ctx)
	assertFatalf(t, err == nil, "error committing: %v", err)

	again, err := testDB.GetPlayer(ctx, p.ID)
	assertFatalf(t, err == nil, "error getting player: %v", err)
	if !reflect.DeepEqual(res, again) {
		t.Errorf("players are not equal after a no-op save, expected: %v, got: %v", res, again)
	}
}

func TestPlayer_list(t *testing.T) {
	ctx := context.Background()
	const club = "Filtered Rovers"
	for _, p := range []*model.Player{
		newPlayer("Cheap Keeper", model.POS_GK, 4.0),
		newPlayer("Mid Price Midfielder", model.POS_MID, 6.5),
		newPlayer("Pricey Midfielder", model.POS_MID, 11.0),
	} {
		p.Club = club
		savePlayer(t, p)
	}

	tests := map[string]struct {
		filter model.PlayerFilter
		names  []string
	}{
		"club only":          {filter: model.PlayerFilter{Club: club}, names: []string{"Pricey Midfielder", "Mid Price Midfielder", "Cheap Keeper"}},
		"club substring":     {filter: model.PlayerFilter{Club: "filtered"}, names: []string{"Pricey Midfielder", "Mid Price Midfielder", "Cheap Keeper"}},
		"position":           {filter: model.PlayerFilter{Club: club, Position: model.POS_MID}, names: []string{"Pricey Midfielder", "Mid Price Midfielder"}},
		"max value":          {filter: model.PlayerFilter{Club: club, MaxValue: model.NewMoney(6.5)}, names: []string{"Mid Price Midfielder", "Cheap Keeper"}},
		"position and value": {filter: model.PlayerFilter{Club: club, Position: model.POS_MID, MaxValue: model.NewMoney(6)}, names: []string{}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			players, err := testDB.ListPlayers(ctx, tc.filter)
			assertFatalf(t, err == nil, "error listing players: %v", err)

			names := make([]string, 0, len(players))
			for _, p := range players {
				names = append(names, p.Name)
			}
			if !reflect.DeepEqual(tc.names, names) {
				t.Errorf("expected players %v, got %v", tc.names, names)
			}
		})
	}
}

func TestPlayer_applyScore(t *testing.T) {
	ctx := context.Background()
	p := savePlayer(t, newPlayer("Scorer", model.POS_FWD, 5))

	steps := []struct {
		delta   int
		applied int
		points  int
	}{
		{delta: 4, applied: 4, points: 4},
		{delta: -3, applied: -3, points: 1},
		{delta: -10, applied: -1, points: 0}, // clamped at zero
		{delta: 0, applied: 0, points: 0},
		{delta: 7, applied: 7, points: 7},
	}

	prevMatchday := 0
	for i, s := range steps {
		tx, err := testDB.Begin(ctx)
		assertFatalf(t, err == nil, "error starting tx: %v", err)

		matchday, err := tx.NextMatchday(ctx)
		assertFatalf(t, err == nil, "error getting matchday: %v", err)
		if matchday <= prevMatchday {
			t.Errorf("step %d: matchday did not increase, %d after %d", i, matchday, prevMatchday)
		}
		prevMatchday = matchday

		applied, err := tx.ApplyScore(ctx, p.ID, matchday, s.delta)
		assertFatalf(t, err == nil, "error applying score: %v", err)
		assertEquals(t, "applied", s.applied, applied)
		err = tx.Commit(ctx)
		assertFatalf(t, err == nil, "error committing: %v", err)

		res, err := testDB.GetPlayer(ctx, p.ID)
		assertFatalf(t, err == nil, "error getting player: %v", err)
		assertEquals(t, "points", s.points, res.Points)
	}

	scores, err := testDB.GetPlayerScores(ctx, p.ID)
	assertFatalf(t, err == nil, "error getting scores: %v", err)
	assertFatalf(t, len(scores) == len(steps), "expected %d scores, got %d", len(steps), len(scores))
	// Most recent first.
	for i := range scores {
		s := steps[len(steps)-1-i]
		assertEquals(t, "recorded delta", s.applied, scores[i].Delta)
		assertEquals(t, "player id", p.ID, scores[i].PlayerID)
	}

	tx, err := testDB.Begin(ctx)
	assertFatalf(t, err == nil, "error starting tx: %v", err)
	defer tx.Rollback(ctx)
	_, err = tx.ApplyScore(ctx, -1, prevMatchday, 3)
	assertEquals(t, "unknown player", true, errors.Is(err, model.ErrPlayerNotFound))
}
