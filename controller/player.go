package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mww/dreamsquad/db"
	"github.com/mww/dreamsquad/model"
)

func (c *controller) GetPlayer(ctx context.Context, id int64) (*model.Player, error) {
	return c.db.GetPlayer(ctx, id)
}

func (c *controller) ListPlayers(ctx context.Context, filter model.PlayerFilter) ([]model.Player, error) {
	if filter.MaxValue < 0 {
		return nil, model.ValidationError("max value must not be negative")
	}
	return c.db.ListPlayers(ctx, filter)
}

// SearchPlayers ranks the catalog by how closely each name matches the query,
// ignoring case. The query may carry pos: and club: tags to narrow the
// search, e.g. "saka club:arsenal" or "pos:GK".
func (c *controller) SearchPlayers(ctx context.Context, query string) ([]model.Player, error) {
	q, pos := getPositionFromQuery(query)
	q, club := getClubFromQuery(q)

	if pos == model.POS_UNKNOWN && club == "" && q == "" {
		return nil, model.ValidationError("not a valid query: '%s'", query)
	}

	players, err := c.db.ListPlayers(ctx, model.PlayerFilter{Position: pos, Club: club})
	if err != nil {
		return nil, err
	}
	if q == "" {
		return players, nil
	}

	names := make([]string, len(players))
	for i := range players {
		names[i] = players[i].Name
	}

	ranks := fuzzy.RankFindNormalizedFold(q, names)
	sort.Stable(ranks)

	results := make([]model.Player, 0, len(ranks))
	for _, r := range ranks {
		results = append(results, players[r.OriginalIndex])
	}
	return results, nil
}

// SyncPlayers refreshes the catalog from the player feed in one transaction.
func (c *controller) SyncPlayers(ctx context.Context) (*model.SyncResult, error) {
	if c.feed == nil {
		return nil, model.DependencyError(errors.New("no player feed configured"))
	}

	start := c.clock.Now()
	slog.Info("player sync starting", "start", start.Format(time.DateTime))

	players, err := c.feed.LoadPlayers(ctx)
	if err != nil {
		syncRuns.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	result := &model.SyncResult{Loaded: len(players)}
	err = c.withTx(ctx, func(tx db.Tx) error {
		for i := range players {
			p := &players[i]
			inserted, err := tx.SavePlayer(ctx, p)
			if err != nil {
				return fmt.Errorf("error saving player (%s %s): %w", p.ExternalID, p.Name, err)
			}

			switch {
			case inserted:
				result.Inserted++
			case len(p.Changes) > 0:
				result.Updated++
			default:
				result.Unchanged++
			}
		}
		return nil
	})
	if err != nil {
		syncRuns.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}

	syncRuns.WithLabelValues(outcome(nil)).Inc()
	slog.Info("player sync finished",
		"took", c.clock.Now().Sub(start),
		"loaded", result.Loaded,
		"inserted", result.Inserted,
		"updated", result.Updated)
	return result, nil
}

var positionRegex = regexp.MustCompile(`(?i)(pos|position)\s*:\s*(?P<pos>\w+)`)

// Parse out the position from the query, returning the same query without the position.
// So if the query is "Saka pos:FWD" this will return "Saka" and model.POS_FWD.
// If the input query does not have a `pos:` argument then the function will return the
// input string and model.POS_UNKNOWN.
// Allowed tags for the position are `pos` and `position` case insensitive.
func getPositionFromQuery(q string) (string, model.Position) {
	pos := model.POS_UNKNOWN
	m := positionRegex.FindStringSubmatch(q)
	if m != nil {
		p := m[positionRegex.SubexpIndex("pos")]
		pos = model.ParsePosition(p)
		q = strings.Replace(q, m[0], "", 1) // Remove the position match from the query
		q = strings.TrimSpace(q)            // Remove any remaining whitespace
	}

	return q, pos
}

var clubRegex = regexp.MustCompile(`(?i)(club|team)\s*:\s*(?P<club>\w+)`)

// Parse out the club from the query, the same way as getPositionFromQuery.
func getClubFromQuery(q string) (string, string) {
	club := ""
	m := clubRegex.FindStringSubmatch(q)
	if m != nil {
		club = m[clubRegex.SubexpIndex("club")]
		q = strings.Replace(q, m[0], "", 1)
		q = strings.TrimSpace(q)
	}

	return q, club
}
