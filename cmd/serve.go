package cmd

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/jjenkins/mirrulations/internal/auth"
	"github.com/jjenkins/mirrulations/internal/handlers"
	"github.com/jjenkins/mirrulations/internal/service"
	"github.com/jjenkins/mirrulations/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Mirrulations web server",
	Long:  `Start the web server for searching imported dockets and comments.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		if cfg.Auth.Secret == "" {
			log.Fatal("auth.secret is required to verify sign-in tokens (set MIRRULATIONS_AUTH_SECRET)")
		}

		db, err := store.NewDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := store.Migrate(context.Background(), db); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}

		// Initialize stores
		docketStore := store.NewDocketStore(db, cfg.PageSize)
		metricsService := service.NewMetricsService(db)

		sessions := auth.NewSessions(
			session.New(session.Config{
				Expiration:     cfg.Auth.SessionTTL,
				CookieHTTPOnly: true,
				CookieSameSite: fiber.CookieSameSiteLaxMode,
			}),
			auth.NewVerifier(cfg.Auth.Secret, cfg.Auth.Issuer),
		)

		app := fiber.New(fiber.Config{
			AppName:      "Mirrulations",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		})

		app.Use(recover.New())
		app.Use(logger.New())

		app.Static("/static", "./static")

		// Routes
		app.Get("/", handlers.HomeHandler(docketStore, metricsService, sessions))

		// Session routes
		app.Post("/session", handlers.SessionHandler(sessions))
		app.Post("/logout", handlers.LogoutHandler(sessions))

		// Search routes
		search := app.Group("/search", sessions.Require(cfg.Auth.LoginURL))
		search.Get("/", handlers.SearchHandler(docketStore))
		search.Get("/page", handlers.PageHandler(docketStore))

		log.Printf("Starting server on :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to run the server on")
	bindFlag(serveCmd, "port", "port")
}
