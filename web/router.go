package web

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mww/dreamsquad/controller"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, opts *Options, tokens *tokens, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(instrument)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}).Handler)

	r.Get("/health", healthHandler(opts.Health, render))
	r.Handle("/metrics", promhttp.Handler())

	limit := rateLimit(opts.Limiter, opts.RateLimit, opts.RateWindow, render)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	timeout := middleware.Timeout(10 * time.Second)

	r.Group(func(r chi.Router) {
		r.Use(limit)
		r.Use(timeout)

		r.Post("/users", registerHandler(ctrl, tokens, render))

		r.Route("/players", func(r chi.Router) {
			r.Get("/", listPlayersHandler(ctrl, render))
			r.Get("/search", searchPlayersHandler(ctrl, render))
			r.Get("/{playerID:\\d+}", getPlayerHandler(ctrl, render))
			r.Get("/{playerID:\\d+}/scores", playerScoresHandler(ctrl, render))
		})

		r.Get("/leagues", listPublicLeaguesHandler(ctrl, render))
	})

	r.Group(func(r chi.Router) {
		r.Use(requireUser(tokens, render))
		r.Use(limit)
		r.Use(timeout)

		r.Get("/me", getMeHandler(ctrl, render))
		r.Delete("/me", deleteMeHandler(ctrl, render))

		r.Route("/team", func(r chi.Router) {
			r.Get("/", getTeamHandler(ctrl, render))
			r.Put("/name", renameTeamHandler(ctrl, render))
			r.Post("/draft", draftHandler(ctrl, render))
			r.Post("/remove", removeHandler(ctrl, render))
		})

		r.Post("/leagues", createLeagueHandler(ctrl, render))
		r.Get("/leagues/mine", myLeaguesHandler(ctrl, render))
		r.Post("/leagues/join", joinLeagueHandler(ctrl, render))
		r.Route("/leagues/{leagueID:\\d+}", func(r chi.Router) {
			r.Get("/", getLeagueHandler(ctrl, render))
			r.Delete("/", deleteLeagueHandler(ctrl, render))
			r.Get("/standings", standingsHandler(ctrl, render))
			r.Get("/standings/me", myStandingHandler(ctrl, render))
			r.Post("/leave", leaveLeagueHandler(ctrl, render))
		})

		r.Get("/dashboard", dashboardHandler(ctrl, render))
	})

	if opts.AdminPassword != "" {
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.BasicAuth("dreamsquad", map[string]string{opts.AdminUser: opts.AdminPassword}))
			r.Use(middleware.Timeout(5 * time.Minute)) // Syncs and score updates take longer than normal requests

			r.Post("/players/sync", forceSyncPlayers(ctrl, render))
			r.Post("/scores/update", forceScoreUpdate(ctrl, render))
		})
	}

	return r
}
