package model

import (
	"testing"
)

func TestNewDashboard_noLeague(t *testing.T) {
	r := rosterWithPoints(1, "alex", 9, 1, 4, 7)
	r.BudgetLeft = NewMoney(61.5)

	d := NewDashboard(&r, nil, nil)
	if d.League != nil {
		t.Errorf("expected no league snapshot, got %+v", d.League)
	}
	if d.TeamName != "alex's Team" || d.TotalPoints != 21 || d.SquadSize != 4 || d.Budget != NewMoney(61.5) {
		t.Errorf("unexpected dashboard: %+v", d)
	}

	wantTop := []int{9, 7, 4}
	if len(d.TopPerformers) != len(wantTop) {
		t.Fatalf("expected %d top performers, got %d", len(wantTop), len(d.TopPerformers))
	}
	for i, pts := range wantTop {
		if d.TopPerformers[i].Points != pts {
			t.Errorf("top performer %d: expected %d points, got %d", i, pts, d.TopPerformers[i].Points)
		}
	}
}

func TestNewDashboard_leagueSnippet(t *testing.T) {
	rosters := []Roster{
		rosterWithPoints(1, "alex", 20),
		rosterWithPoints(2, "bo", 15),
		rosterWithPoints(3, "chris", 10),
		rosterWithPoints(4, "dana", 5),
	}
	standings := ComputeStandings(rosters)
	league := &League{ID: 7, Name: "Office"}

	tests := map[string]struct {
		roster      Roster
		wantRank    int
		wantSnippet []int64
	}{
		"leader":      {roster: rosters[0], wantRank: 1, wantSnippet: []int64{1, 2}},
		"second":      {roster: rosters[1], wantRank: 2, wantSnippet: []int64{1, 2}},
		"outside top": {roster: rosters[3], wantRank: 4, wantSnippet: []int64{1, 2, 4}},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			d := NewDashboard(&tc.roster, league, standings)
			if d.League == nil {
				t.Fatalf("expected league snapshot")
			}
			if d.League.LeagueID != 7 || d.League.LeagueName != "Office" || d.League.MemberCount != 4 {
				t.Errorf("unexpected snapshot: %+v", d.League)
			}
			if d.League.Rank != tc.wantRank {
				t.Errorf("expected rank %d, got %d", tc.wantRank, d.League.Rank)
			}
			if len(d.League.Standings) != len(tc.wantSnippet) {
				t.Fatalf("expected %d snippet rows, got %d", len(tc.wantSnippet), len(d.League.Standings))
			}
			for i, id := range tc.wantSnippet {
				if d.League.Standings[i].RosterID != id {
					t.Errorf("snippet row %d: expected roster %d, got %d", i, id, d.League.Standings[i].RosterID)
				}
			}
		})
	}
}
