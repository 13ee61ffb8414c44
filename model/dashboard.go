package model

const (
	dashboardTopPerformers = 3
	dashboardSnippetSize   = 2
)

// Dashboard is the read-only summary shown to a user after login.
type Dashboard struct {
	TeamName      string          `json:"team_name"`
	TotalPoints   int             `json:"total_points"`
	Budget        Money           `json:"team_budget"`
	SquadSize     int             `json:"squad_size"`
	TopPerformers []Player        `json:"top_performers"`
	League        *LeagueSnapshot `json:"league"` // nil when the roster is not in a league
}

type LeagueSnapshot struct {
	LeagueID    int64      `json:"league_id"`
	LeagueName  string     `json:"league_name"`
	Rank        int        `json:"rank"`
	MemberCount int        `json:"member_count"`
	Standings   []Standing `json:"standings"`
}

// NewDashboard composes the dashboard from a roster and, when the roster is in
// a league, that league and its standings.
func NewDashboard(r *Roster, l *League, standings []Standing) *Dashboard {
	d := &Dashboard{
		TeamName:      r.Name,
		TotalPoints:   r.TotalPoints(),
		Budget:        r.BudgetLeft,
		SquadSize:     r.SquadSize(),
		TopPerformers: r.TopPerformers(dashboardTopPerformers),
	}

	if l == nil {
		return d
	}

	mine, ok := FindStanding(standings, r.ID)
	if !ok {
		return d
	}

	snippet := make([]Standing, 0, dashboardSnippetSize+1)
	for i := 0; i < len(standings) && i < dashboardSnippetSize; i++ {
		snippet = append(snippet, standings[i])
	}
	if mine.Rank > dashboardSnippetSize {
		snippet = append(snippet, mine)
	}

	d.League = &LeagueSnapshot{
		LeagueID:    l.ID,
		LeagueName:  l.Name,
		Rank:        mine.Rank,
		MemberCount: len(standings),
		Standings:   snippet,
	}
	return d
}
