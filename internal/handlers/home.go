package handlers

import (
	"context"
	"log"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jjenkins/mirrulations/internal/auth"
	"github.com/jjenkins/mirrulations/internal/service"
	"github.com/jjenkins/mirrulations/internal/templates"
)

// IndexCounter reports the size of the docket index
type IndexCounter interface {
	CountDockets(ctx context.Context) (int, error)
	CountComments(ctx context.Context) (int, error)
	CountAgencies(ctx context.Context) (int, error)
}

// MetricsReader returns the metrics calculated by the last import
type MetricsReader interface {
	GetLatestMetrics(ctx context.Context) (map[string]string, error)
}

// HomeHandler renders the landing page with index metrics
func HomeHandler(counter IndexCounter, metricsReader MetricsReader, sessions *auth.Sessions) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()

		metrics := templates.HomeMetrics{}

		totalDockets, err := counter.CountDockets(ctx)
		if err != nil {
			log.Printf("Error counting dockets: %v", err)
		} else {
			metrics.TotalDockets = totalDockets
			metrics.HasData = totalDockets > 0
		}

		if metrics.HasData {
			totalComments, err := counter.CountComments(ctx)
			if err != nil {
				log.Printf("Error counting comments: %v", err)
			} else {
				metrics.TotalComments = totalComments
			}

			totalAgencies, err := counter.CountAgencies(ctx)
			if err != nil {
				log.Printf("Error counting agencies: %v", err)
			} else {
				metrics.TotalAgencies = totalAgencies
			}

			latest, err := metricsReader.GetLatestMetrics(ctx)
			if err != nil {
				log.Printf("Error loading metrics: %v", err)
			} else {
				metrics.TopAgency = latest[service.MetricTopAgency]
				if open, err := strconv.Atoi(latest[service.MetricOpenForComment]); err == nil {
					metrics.OpenForComment = open
				}
			}
		}

		signedIn := false
		if current, err := sessions.Current(c); err != nil {
			log.Printf("Error loading session: %v", err)
		} else {
			signedIn = current.IsAuthenticated
		}

		page := templates.Home(metrics, signedIn)
		handler := adaptor.HTTPHandler(templ.Handler(page))

		return handler(c)
	}
}
