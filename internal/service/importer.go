package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/jjenkins/mirrulations/internal/model"
)

// DocketSource is the part of the regulations.gov API the importer reads
type DocketSource interface {
	FetchDockets(ctx context.Context, q DocketQuery) ([]model.DocketMeta, bool, error)
	FetchDocket(ctx context.Context, docketID string) (*model.DocketMeta, error)
	FetchDocuments(ctx context.Context, docketID string) ([]model.DocumentMeta, error)
	FetchCommentIDs(ctx context.Context, docketID string, page int) ([]string, bool, error)
	FetchComment(ctx context.Context, commentID string) (*model.CommentMeta, error)
}

// DocketWriter persists imported dockets and comments
type DocketWriter interface {
	UpsertDocket(ctx context.Context, d *model.Docket) error
	UpsertComment(ctx context.Context, c *model.Comment) error
}

// ImportOptions selects what to import. Zero limits mean no limit.
type ImportOptions struct {
	SearchTerm  string
	AgencyID    string
	MaxDockets  int
	MaxComments int
}

// ImportStats tracks import statistics
type ImportStats struct {
	Total          int
	Imported       int
	Failed         int
	Comments       int
	CommentsFailed int
}

// Importer orchestrates the regulations.gov data import process
type Importer struct {
	source    DocketSource
	writer    DocketWriter
	logger    *log.Logger
	errLogger *log.Logger
}

// NewImporter creates a new Importer
func NewImporter(source DocketSource, writer DocketWriter) *Importer {
	return &Importer{
		source:    source,
		writer:    writer,
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// Import fetches matching dockets with their documents and comments and stores them
func (i *Importer) Import(ctx context.Context, opts ImportOptions) (*ImportStats, error) {
	stats := &ImportStats{}

	i.logger.Printf("Searching dockets (term=%q agency=%q)...", opts.SearchTerm, opts.AgencyID)

	var dockets []model.DocketMeta
	for page := 1; ; page++ {
		batch, hasNext, err := i.source.FetchDockets(ctx, DocketQuery{
			SearchTerm: opts.SearchTerm,
			AgencyID:   opts.AgencyID,
			Page:       page,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to search dockets: %w", err)
		}

		dockets = append(dockets, batch...)
		if opts.MaxDockets > 0 && len(dockets) >= opts.MaxDockets {
			dockets = dockets[:opts.MaxDockets]
			break
		}
		if !hasNext || len(batch) == 0 {
			break
		}
	}

	stats.Total = len(dockets)
	i.logger.Printf("Found %d dockets to process", stats.Total)

	for idx, meta := range dockets {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		progress := fmt.Sprintf("[%d/%d]", idx+1, stats.Total)
		i.logger.Printf("%s Importing docket %s: %s...", progress, meta.ID, meta.Title)

		if err := i.importDocket(ctx, meta.ID, opts.MaxComments, stats); err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			i.errLogger.Printf("Failed to import docket %s: %v", meta.ID, err)
			stats.Failed++
			continue
		}

		stats.Imported++
	}

	return stats, nil
}

// importDocket imports a single docket and up to maxComments of its comments
func (i *Importer) importDocket(ctx context.Context, docketID string, maxComments int, stats *ImportStats) error {
	meta, err := i.source.FetchDocket(ctx, docketID)
	if err != nil {
		return fmt.Errorf("failed to fetch docket: %w", err)
	}

	documents, err := i.source.FetchDocuments(ctx, docketID)
	if err != nil {
		return fmt.Errorf("failed to fetch documents: %w", err)
	}

	docket := buildDocket(meta, documents)
	if err := i.writer.UpsertDocket(ctx, docket); err != nil {
		return fmt.Errorf("failed to save docket: %w", err)
	}

	imported := 0
	for page := 1; ; page++ {
		ids, hasNext, err := i.source.FetchCommentIDs(ctx, docketID, page)
		if err != nil {
			return fmt.Errorf("failed to list comments: %w", err)
		}

		for _, id := range ids {
			if maxComments > 0 && imported >= maxComments {
				i.logger.Printf("  Docket %s: %d comments (limit reached)", docketID, imported)
				return nil
			}

			if err := i.importComment(ctx, docketID, id); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				i.errLogger.Printf("Failed to import comment %s: %v", id, err)
				stats.CommentsFailed++
				continue
			}

			imported++
			stats.Comments++
		}

		if !hasNext || len(ids) == 0 {
			break
		}
	}

	i.logger.Printf("  Docket %s: %d comments, %d timeline dates", docketID, imported, len(docket.TimelineDates))
	return nil
}

func (i *Importer) importComment(ctx context.Context, docketID, commentID string) error {
	meta, err := i.source.FetchComment(ctx, commentID)
	if err != nil {
		return err
	}

	comment := &model.Comment{
		ID:             meta.ID,
		DocketID:       docketID,
		Body:           CleanSummary(meta.Body),
		HasAttachments: meta.AttachmentCount > 0,
		PostedDate:     meta.PostedDate,
	}
	return i.writer.UpsertComment(ctx, comment)
}

// buildDocket combines docket attributes with its documents. The timeline is
// the sorted set of days on which documents were posted.
func buildDocket(meta *model.DocketMeta, documents []model.DocumentMeta) *model.Docket {
	summary := CleanSummary(meta.Abstract)

	docket := &model.Docket{
		ID:           meta.ID,
		Title:        meta.Title,
		AgencyName:   meta.AgencyID,
		DocketType:   model.ParseDocketType(meta.DocketType),
		Summary:      sql.NullString{String: summary, Valid: summary != ""},
		DateModified: meta.ModifyDate,
	}

	seen := make(map[time.Time]bool)
	for _, doc := range documents {
		if doc.OpenForComment {
			docket.IsOpenForComment = true
		}
		if doc.PostedDate.IsZero() {
			continue
		}
		y, m, d := doc.PostedDate.UTC().Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if !seen[day] {
			seen[day] = true
			docket.TimelineDates = append(docket.TimelineDates, day)
		}
	}

	sort.Slice(docket.TimelineDates, func(a, b int) bool {
		return docket.TimelineDates[a].Before(docket.TimelineDates[b])
	})

	return docket
}

// PrintSummary prints the import statistics
func (i *Importer) PrintSummary(stats *ImportStats) {
	i.logger.Println("")
	i.logger.Println("=== Import Summary ===")
	i.logger.Printf("Total dockets:   %d", stats.Total)
	i.logger.Printf("Imported:        %d", stats.Imported)
	i.logger.Printf("Failed:          %d", stats.Failed)
	i.logger.Printf("Comments:        %d", stats.Comments)
	i.logger.Printf("Comment errors:  %d", stats.CommentsFailed)

	if stats.Total > 0 {
		successRate := float64(stats.Imported) / float64(stats.Total) * 100
		i.logger.Printf("Success rate:    %.1f%%", successRate)
	}
}
