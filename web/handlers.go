package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/mww/dreamsquad/controller"
	"github.com/mww/dreamsquad/model"
	"github.com/unrolled/render"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type registerResponse struct {
	User   *model.User   `json:"user"`
	Roster *model.Roster `json:"roster"`
	Token  string        `json:"token"`
}

type nameRequest struct {
	Name string `json:"name"`
}

type playerRequest struct {
	PlayerID int64 `json:"player_id"`
}

type createLeagueRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Private  bool   `json:"private"`
}

type joinRequest struct {
	Code string `json:"code"`
}

func healthHandler(ping func(context.Context) error, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			if err := ping(r.Context()); err != nil {
				writeError(render, w, http.StatusServiceUnavailable, "UNAVAILABLE", "database unavailable")
				return
			}
		}
		writeData(render, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func registerHandler(ctrl controller.C, tokens *tokens, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeErr(render, w, r, err)
			return
		}

		u, roster, err := ctrl.RegisterUser(r.Context(), req.Username, req.Email)
		if err != nil {
			writeErr(render, w, r, err)
			return
		}

		token, err := tokens.issue(u.ID)
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusCreated, registerResponse{User: u, Roster: roster, Token: token})
	}
}

func getMeHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := ctrl.GetUser(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, u)
	}
}

func deleteMeHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ctrl.DeleteUser(r.Context(), userIDFromContext(r.Context())); err != nil {
			writeErr(render, w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Optional query parameters: position, club and max_value (in currency units).
func listPlayersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := model.PlayerFilter{Club: strings.TrimSpace(q.Get("club"))}

		if pos := q.Get("position"); pos != "" {
			filter.Position = model.ParsePosition(pos)
			if filter.Position == model.POS_UNKNOWN {
				writeErr(render, w, r, model.ValidationError("unknown position: '%s'", pos))
				return
			}
		}
		if mv := q.Get("max_value"); mv != "" {
			v, err := strconv.ParseFloat(mv, 64)
			if err != nil {
				writeErr(render, w, r, model.ValidationError("invalid max_value: '%s'", mv))
				return
			}
			filter.MaxValue = model.NewMoney(v)
		}

		players, err := ctrl.ListPlayers(r.Context(), filter)
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, players)
	}
}

func searchPlayersHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := ctrl.SearchPlayers(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, results)
	}
}

func getPlayerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "playerID")
		if err != nil {
			writeErr(render, w, r, err)
			return
		}

		p, err := ctrl.GetPlayer(r.Context(), id)
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, p)
	}
}

func playerScoresHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "playerID")
		if err != nil {
			writeErr(render, w, r, err)
			return
		}

		scores, err := ctrl.GetPlayerScores(r.Context(), id)
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, scores)
	}
}

type rosterView struct {
	*model.Roster
	TotalPoints int `json:"total_points"`
}

func newRosterView(r *model.Roster) rosterView {
	return rosterView{Roster: r, TotalPoints: r.TotalPoints()}
}

func getTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roster, err := ctrl.GetRoster(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, newRosterView(roster))
	}
}

func renameTeamHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeErr(render, w, r, err)
			return
		}

		roster, err := ctrl.RenameRoster(r.Context(), userIDFromContext(r.Context()), req.Name)
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, newRosterView(roster))
	}
}

type rosterOp func(ctx context.Context, userID, playerID int64) (*model.Roster, error)

// Draft and remove share a request shape.
func rosterOpHandler(op rosterOp, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeErr(render, w, r, err)
			return
		}
		if req.PlayerID <= 0 {
			writeErr(render, w, r, model.ValidationError("player_id is required"))
			return
		}

		roster, err := op(r.Context(), userIDFromContext(r.Context()), req.PlayerID)
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, newRosterView(roster))
	}
}

func draftHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return rosterOpHandler(ctrl.DraftPlayer, render)
}

func removeHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return rosterOpHandler(ctrl.RemovePlayer, render)
}

func listPublicLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListPublicLeagues(r.Context())
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, leagues)
	}
}

func createLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createLeagueRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeErr(render, w, r, err)
			return
		}

		l, err := ctrl.CreateLeague(r.Context(), userIDFromContext(r.Context()), req.Name, req.Capacity, req.Private)
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusCreated, l)
	}
}

func myLeaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListUserLeagues(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, leagues)
	}
}

func joinLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req joinRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeErr(render, w, r, err)
			return
		}

		l, err := ctrl.JoinLeague(r.Context(), userIDFromContext(r.Context()), req.Code)
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, l)
	}
}

// The join code is only shown to the league owner.
func getLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "leagueID")
		if err != nil {
			writeErr(render, w, r, err)
			return
		}

		l, err := ctrl.GetLeague(r.Context(), id)
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		if l.OwnerID != userIDFromContext(r.Context()) {
			l.Code = ""
		}
		writeData(render, w, http.StatusOK, l)
	}
}

func standingsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "leagueID")
		if err != nil {
			writeErr(render, w, r, err)
			return
		}

		standings, err := ctrl.GetStandings(r.Context(), id)
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, standings)
	}
}

func myStandingHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "leagueID")
		if err != nil {
			writeErr(render, w, r, err)
			return
		}

		s, err := ctrl.GetStanding(r.Context(), id, userIDFromContext(r.Context()))
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, s)
	}
}

func leaveLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "leagueID")
		if err != nil {
			writeErr(render, w, r, err)
			return
		}

		if err := ctrl.LeaveLeague(r.Context(), userIDFromContext(r.Context()), id); err != nil {
			writeErr(render, w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteLeagueHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "leagueID")
		if err != nil {
			writeErr(render, w, r, err)
			return
		}

		if err := ctrl.DeleteLeague(r.Context(), userIDFromContext(r.Context()), id); err != nil {
			writeErr(render, w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func dashboardHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := ctrl.GetDashboard(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, d)
	}
}

func forceSyncPlayers(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ctrl.SyncPlayers(r.Context())
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, res)
	}
}

func forceScoreUpdate(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := ctrl.ApplyScoreUpdate(r.Context())
		if err != nil {
			writeErr(render, w, r, err)
			return
		}
		writeData(render, w, http.StatusOK, res)
	}
}
