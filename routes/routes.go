package routes

import (
	"github.com/garry1963/golf-society-manager-sub000/handlers"
	"github.com/garry1963/golf-society-manager-sub000/middleware"
	"github.com/garry1963/golf-society-manager-sub000/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires every handler onto the router. Reads are public;
// writes require a token with the secretary role.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	authHandler *handlers.AuthHandler,
	memberHandler *handlers.MemberHandler,
	courseHandler *handlers.CourseHandler,
	seasonHandler *handlers.SeasonHandler,
	tournamentHandler *handlers.TournamentHandler,
	scoreHandler *handlers.ScoreHandler,
	standingsHandler *handlers.StandingsHandler,
	dashboardHandler *handlers.DashboardHandler,
	inviteHandler *handlers.InviteHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	secretaryOnly := func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(auth.Authorize(models.RoleSecretary))
	}

	router.Post("/auth/register", authHandler.RegisterHandler)
	router.Post("/auth/login", authHandler.LoginHandler)

	router.Post("/invites/accept", inviteHandler.AcceptHandler)
	router.Group(func(r chi.Router) {
		secretaryOnly(r)
		r.Post("/invites", inviteHandler.CreateHandler)
	})

	router.Route("/members", func(r chi.Router) {
		r.Get("/", memberHandler.ListHandler)
		r.Get("/{memberID}", memberHandler.GetByIDHandler)
		r.Get("/{memberID}/history", memberHandler.HistoryHandler)

		r.Group(func(r chi.Router) {
			secretaryOnly(r)
			r.Post("/", memberHandler.CreateHandler)
			r.Patch("/{memberID}", memberHandler.UpdateHandler)
			r.Patch("/{memberID}/handicap", memberHandler.SetHandicapHandler)
			r.Put("/{memberID}/avatar", memberHandler.UploadAvatarHandler)
			r.Delete("/{memberID}", memberHandler.DeleteHandler)
		})
	})

	router.Route("/courses", func(r chi.Router) {
		r.Get("/", courseHandler.ListHandler)
		r.Get("/{courseID}", courseHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			secretaryOnly(r)
			r.Post("/", courseHandler.CreateHandler)
			r.Patch("/{courseID}", courseHandler.UpdateHandler)
			r.Put("/{courseID}/photo", courseHandler.UploadPhotoHandler)
			r.Delete("/{courseID}", courseHandler.DeleteHandler)
		})
	})

	router.Route("/seasons", func(r chi.Router) {
		r.Get("/", seasonHandler.ListHandler)
		r.Get("/{seasonID}", seasonHandler.GetByIDHandler)

		r.Group(func(r chi.Router) {
			secretaryOnly(r)
			r.Post("/", seasonHandler.CreateHandler)
			r.Put("/{seasonID}", seasonHandler.UpdateHandler)
			r.Delete("/{seasonID}", seasonHandler.DeleteHandler)
		})
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetByIDHandler)
		r.Get("/{tournamentID}/results", tournamentHandler.ResultsHandler)
		r.Get("/{tournamentID}/scores", scoreHandler.ListHandler)
		r.Get("/{tournamentID}/scores/{memberID}", scoreHandler.GetHandler)

		r.Group(func(r chi.Router) {
			secretaryOnly(r)
			r.Post("/", tournamentHandler.CreateHandler)
			r.Patch("/{tournamentID}", tournamentHandler.UpdateHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteHandler)
			r.Post("/{tournamentID}/finalize", tournamentHandler.FinalizeHandler)
			r.Put("/{tournamentID}/scores/{memberID}", scoreHandler.UpsertHandler)
			r.Delete("/{tournamentID}/scores/{memberID}", scoreHandler.DeleteHandler)
		})
	})

	router.Get("/standings", standingsHandler.StandingsHandler)
	router.Get("/dashboard", dashboardHandler.StatsHandler)

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
