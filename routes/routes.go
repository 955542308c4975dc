package routes

import (
	"net/http"
	"time"

	"github.com/Dosada05/swiss-tournament/docs"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

const requestTimeout = 30 * time.Second

func SetupRoutes(
	router chi.Router,
	jwtSecret string,
	allowedOrigins []string,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Websocket живёт дольше обычного запроса, поэтому без Timeout.
	router.Get("/ws", webSocketHandler.ServeWs)

	router.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(docs.SwaggerJSON)
	})
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	organizerOnly := func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))
		r.Use(middleware.Authorize(middleware.RoleOrganizer))
	}

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(requestTimeout))

		r.Post("/auth/login", authHandler.Login)

		r.Route("/players", func(r chi.Router) {
			r.Get("/count", tournamentHandler.CountPlayersHandler)

			r.Group(func(r chi.Router) {
				organizerOnly(r)
				r.Post("/", tournamentHandler.RegisterPlayerHandler)
				r.Delete("/", tournamentHandler.DeletePlayersHandler)
				r.Post("/{playerID}/bye", matchHandler.ReportByeHandler)
			})
		})

		r.Get("/standings", tournamentHandler.StandingsHandler)

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", matchHandler.ListMatchesHandler)

			r.Group(func(r chi.Router) {
				organizerOnly(r)
				r.Post("/", matchHandler.ReportMatchHandler)
				r.Post("/draw", matchHandler.ReportDrawHandler)
				r.Delete("/", matchHandler.DeleteMatchesHandler)
			})
		})

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/rounds", tournamentHandler.GenerateRoundHandler)
		})
	})
}
