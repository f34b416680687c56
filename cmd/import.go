package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jjenkins/mirrulations/internal/service"
	"github.com/jjenkins/mirrulations/internal/store"
	"github.com/spf13/cobra"
)

var importOpts service.ImportOptions

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import dockets and comments from the regulations.gov API",
	Long: `Import downloads dockets, their documents and their public comments from
the regulations.gov v4 API and stores them in PostgreSQL.

Each docket's timeline is built from the dates its documents were posted,
and it is marked open for comment when any document still accepts comments.
Index metrics are recalculated when the import finishes.

Examples:
  # Import EPA dockets mentioning methane
  ./mirrulations import --term methane --agency EPA

  # Import a small sample
  ./mirrulations import --term "clean water" --max-dockets 20 --max-comments 50`,
	Run: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importOpts.SearchTerm, "term", "t", "", "Only import dockets matching this search term")
	importCmd.Flags().StringVarP(&importOpts.AgencyID, "agency", "a", "", "Only import dockets from this agency (e.g. EPA)")
	importCmd.Flags().IntVar(&importOpts.MaxDockets, "max-dockets", 0, "Stop after this many dockets (0 for no limit)")
	importCmd.Flags().IntVar(&importOpts.MaxComments, "max-comments", 0, "Import at most this many comments per docket (0 for no limit)")
	importCmd.Flags().String("api-key", "", "regulations.gov API key")
	bindFlag(importCmd, "regulations.api_key", "api-key")
}

func runImport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	// Connect to database
	log.Println("Connecting to database...")
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := store.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create dependencies
	client := service.NewRegulationsClient(cfg.Regulations.BaseURL, cfg.Regulations.APIKey, cfg.Regulations.RequestsPerSecond)
	docketStore := store.NewDocketStore(db, cfg.PageSize)
	importer := service.NewImporter(client, docketStore)

	log.Println("Starting docket import...")
	stats, err := importer.Import(ctx, importOpts)
	if err != nil {
		if ctx.Err() != nil {
			log.Println("Import cancelled")
			if stats != nil {
				importer.PrintSummary(stats)
			}
			os.Exit(1)
		}
		log.Fatalf("Import failed: %v", err)
	}
	importer.PrintSummary(stats)

	// Calculate and store system metrics
	log.Println("\nCalculating index metrics...")
	metricsService := service.NewMetricsService(db)
	systemMetrics, err := metricsService.CalculateAndStore(ctx)
	if err != nil {
		log.Printf("Warning: Failed to calculate metrics: %v", err)
	} else {
		log.Println("")
		log.Println("=== Index Metrics ===")
		log.Printf("Total dockets:     %d", systemMetrics.TotalDockets)
		log.Printf("Total comments:    %d", systemMetrics.TotalComments)
		log.Printf("With attachments:  %d", systemMetrics.TotalAttachments)
		log.Printf("Total agencies:    %d", systemMetrics.TotalAgencies)
		log.Printf("Rulemaking share:  %.1f%%", systemMetrics.RulemakingShare*100)
		log.Printf("Open for comment:  %d", systemMetrics.OpenForComment)
		log.Printf("Top agency:        %s (%d dockets)", systemMetrics.TopAgency, systemMetrics.TopAgencyDockets)
	}

	// Exit with error code if there were failures
	if stats.Failed > 0 {
		os.Exit(1)
	}
}
