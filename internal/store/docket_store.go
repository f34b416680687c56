package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jjenkins/mirrulations/internal/model"
	"github.com/lib/pq"
)

// DefaultPageSize is the number of dockets per results page
const DefaultPageSize = 10

const timelineDateLayout = "2006-01-02"

// searchCondition matches dockets whose own fields or any comment contain the term.
// $1 is the raw term, $2 the escaped LIKE pattern.
const searchCondition = `
	($1 = ''
	 OR d.docket_id ILIKE $2 ESCAPE '\'
	 OR d.title ILIKE $2 ESCAPE '\'
	 OR d.agency_name ILIKE $2 ESCAPE '\'
	 OR COALESCE(d.summary, '') ILIKE $2 ESCAPE '\'
	 OR EXISTS (
		SELECT 1 FROM comments mc
		WHERE mc.docket_id = d.docket_id AND mc.body ILIKE $2 ESCAPE '\'
	 ))
`

// DocketStore handles database operations for dockets and their comments
type DocketStore struct {
	db       *sql.DB
	pageSize int
}

// NewDocketStore creates a new DocketStore returning pageSize dockets per page
func NewDocketStore(db *sql.DB, pageSize int) *DocketStore {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &DocketStore{db: db, pageSize: pageSize}
}

// LoadPage returns the zero-based page of dockets matching term, with comment
// and attachment match counts. An empty term matches every docket.
func (s *DocketStore) LoadPage(ctx context.Context, page int, term string) (*model.ResultsPage, error) {
	if page < 0 {
		return nil, fmt.Errorf("invalid page %d", page)
	}

	term = strings.TrimSpace(term)
	pattern := likePattern(term)

	var count int
	countQuery := `SELECT COUNT(*) FROM dockets d WHERE ` + searchCondition
	if err := s.db.QueryRowContext(ctx, countQuery, term, pattern).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to count dockets for %q: %w", term, err)
	}

	result := &model.ResultsPage{
		CurrentPage: page,
		TotalPages:  totalPages(count, s.pageSize),
	}
	if page >= result.TotalPages {
		return result, nil
	}

	query := `
		SELECT d.docket_id, d.title, d.agency_name, d.docket_type, d.summary,
		       d.is_open_for_comment, d.date_modified,
		       ARRAY(SELECT to_char(t, 'YYYY-MM-DD') FROM unnest(d.timeline_dates) AS t ORDER BY t) AS timeline,
		       COUNT(c.comment_id) AS comments_total,
		       COUNT(c.comment_id) FILTER (WHERE $1 = '' OR c.body ILIKE $2 ESCAPE '\') AS comments_match,
		       COUNT(c.comment_id) FILTER (WHERE c.has_attachments) AS attachments_total,
		       COUNT(c.comment_id) FILTER (WHERE c.has_attachments AND ($1 = '' OR c.body ILIKE $2 ESCAPE '\')) AS attachments_match
		FROM dockets d
		LEFT JOIN comments c ON c.docket_id = d.docket_id
		WHERE ` + searchCondition + `
		GROUP BY d.docket_id
		ORDER BY comments_match DESC, d.date_modified DESC NULLS LAST, d.docket_id
		LIMIT $3 OFFSET $4
	`

	rows, err := s.db.QueryContext(ctx, query, term, pattern, s.pageSize, page*s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to search dockets for %q: %w", term, err)
	}
	defer rows.Close()

	for rows.Next() {
		var d model.Docket
		var docketType string
		var modified sql.NullTime
		var timeline pq.StringArray

		err := rows.Scan(
			&d.ID,
			&d.Title,
			&d.AgencyName,
			&docketType,
			&d.Summary,
			&d.IsOpenForComment,
			&modified,
			&timeline,
			&d.Comments.Total,
			&d.Comments.Match,
			&d.Attachments.Total,
			&d.Attachments.Match,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan docket: %w", err)
		}

		d.DocketType = model.ParseDocketType(docketType)
		if modified.Valid {
			d.DateModified = modified.Time
		}
		d.TimelineDates, err = parseTimeline(timeline)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timeline for docket %s: %w", d.ID, err)
		}

		result.Dockets = append(result.Dockets, d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// UpsertDocket inserts or updates a docket
func (s *DocketStore) UpsertDocket(ctx context.Context, d *model.Docket) error {
	query := `
		INSERT INTO dockets (docket_id, title, agency_name, docket_type, summary,
		                     is_open_for_comment, timeline_dates, date_modified, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::date[], $8, $9)
		ON CONFLICT (docket_id) DO UPDATE SET
			title = EXCLUDED.title,
			agency_name = EXCLUDED.agency_name,
			docket_type = EXCLUDED.docket_type,
			summary = EXCLUDED.summary,
			is_open_for_comment = EXCLUDED.is_open_for_comment,
			timeline_dates = EXCLUDED.timeline_dates,
			date_modified = EXCLUDED.date_modified,
			updated_at = EXCLUDED.updated_at
	`

	timeline := make([]string, len(d.TimelineDates))
	for i, t := range d.TimelineDates {
		timeline[i] = t.Format(timelineDateLayout)
	}

	var modified sql.NullTime
	if !d.DateModified.IsZero() {
		modified = sql.NullTime{Time: d.DateModified, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		d.ID,
		d.Title,
		d.AgencyName,
		d.DocketType.String(),
		d.Summary,
		d.IsOpenForComment,
		pq.Array(timeline),
		modified,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert docket %s: %w", d.ID, err)
	}

	return nil
}

// UpsertComment inserts or updates a comment
func (s *DocketStore) UpsertComment(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (comment_id, docket_id, body, has_attachments, posted_date)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (comment_id) DO UPDATE SET
			docket_id = EXCLUDED.docket_id,
			body = EXCLUDED.body,
			has_attachments = EXCLUDED.has_attachments,
			posted_date = EXCLUDED.posted_date
	`

	var posted sql.NullTime
	if !c.PostedDate.IsZero() {
		posted = sql.NullTime{Time: c.PostedDate, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query, c.ID, c.DocketID, c.Body, c.HasAttachments, posted)
	if err != nil {
		return fmt.Errorf("failed to upsert comment %s: %w", c.ID, err)
	}

	return nil
}

// CountDockets returns the total number of dockets
func (s *DocketStore) CountDockets(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dockets").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count dockets: %w", err)
	}
	return count, nil
}

// CountComments returns the total number of comments
func (s *DocketStore) CountComments(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}

// CountAgencies returns the number of distinct agencies with dockets
func (s *DocketStore) CountAgencies(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(DISTINCT agency_name) FROM dockets").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count agencies: %w", err)
	}
	return count, nil
}

// likePattern wraps term in % after escaping LIKE metacharacters
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

func totalPages(count, pageSize int) int {
	if count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

func parseTimeline(dates []string) ([]time.Time, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	timeline := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		t, err := time.Parse(timelineDateLayout, s)
		if err != nil {
			return nil, err
		}
		timeline = append(timeline, t)
	}
	return timeline, nil
}
