package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Metric names stored in the metrics table
const (
	MetricTotalDockets     = "total_dockets"
	MetricTotalComments    = "total_comments"
	MetricTotalAttachments = "total_attachments"
	MetricTotalAgencies    = "total_agencies"
	MetricRulemakingShare  = "rulemaking_share"
	MetricOpenForComment   = "open_for_comment"
	MetricTopAgency        = "top_agency"
)

// MetricsService calculates and stores index-wide metrics
type MetricsService struct {
	db *sql.DB
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(db *sql.DB) *MetricsService {
	return &MetricsService{db: db}
}

// SystemMetrics represents calculated index-wide metrics
type SystemMetrics struct {
	TotalDockets     int
	TotalComments    int
	TotalAttachments int
	TotalAgencies    int
	RulemakingShare  float64
	OpenForComment   int
	TopAgency        string
	TopAgencyDockets int
}

// CalculateAndStore calculates index metrics and appends them to the metrics table
func (m *MetricsService) CalculateAndStore(ctx context.Context) (*SystemMetrics, error) {
	metrics := &SystemMetrics{}

	var rulemaking int
	docketQuery := `
		SELECT
			COUNT(*) AS total_dockets,
			COUNT(DISTINCT agency_name) AS total_agencies,
			COUNT(*) FILTER (WHERE docket_type = 'Rulemaking') AS rulemaking,
			COUNT(*) FILTER (WHERE is_open_for_comment) AS open_for_comment
		FROM dockets
	`
	err := m.db.QueryRowContext(ctx, docketQuery).Scan(
		&metrics.TotalDockets,
		&metrics.TotalAgencies,
		&rulemaking,
		&metrics.OpenForComment,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate docket metrics: %w", err)
	}

	if metrics.TotalDockets > 0 {
		metrics.RulemakingShare = float64(rulemaking) / float64(metrics.TotalDockets)
	}

	commentQuery := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE has_attachments)
		FROM comments
	`
	err = m.db.QueryRowContext(ctx, commentQuery).Scan(&metrics.TotalComments, &metrics.TotalAttachments)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate comment metrics: %w", err)
	}

	topAgencyQuery := `
		SELECT agency_name, COUNT(*) AS dockets
		FROM dockets
		GROUP BY agency_name
		ORDER BY dockets DESC, agency_name
		LIMIT 1
	`
	err = m.db.QueryRowContext(ctx, topAgencyQuery).Scan(&metrics.TopAgency, &metrics.TopAgencyDockets)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to find top agency: %w", err)
	}

	values := []struct {
		name  string
		value string
	}{
		{MetricTotalDockets, strconv.Itoa(metrics.TotalDockets)},
		{MetricTotalComments, strconv.Itoa(metrics.TotalComments)},
		{MetricTotalAttachments, strconv.Itoa(metrics.TotalAttachments)},
		{MetricTotalAgencies, strconv.Itoa(metrics.TotalAgencies)},
		{MetricRulemakingShare, fmt.Sprintf("%.4f", metrics.RulemakingShare)},
		{MetricOpenForComment, strconv.Itoa(metrics.OpenForComment)},
		{MetricTopAgency, metrics.TopAgency},
	}
	for _, v := range values {
		if err := m.storeMetric(ctx, v.name, v.value); err != nil {
			return nil, err
		}
	}

	return metrics, nil
}

// storeMetric stores a single metric value
func (m *MetricsService) storeMetric(ctx context.Context, name, value string) error {
	query := `
		INSERT INTO metrics (metric_name, metric_value, calculated_at)
		VALUES ($1, $2, $3)
	`

	_, err := m.db.ExecContext(ctx, query, name, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to store metric %s: %w", name, err)
	}

	return nil
}

// GetLatestMetrics retrieves the most recent value of every metric
func (m *MetricsService) GetLatestMetrics(ctx context.Context) (map[string]string, error) {
	query := `
		SELECT DISTINCT ON (metric_name) metric_name, metric_value
		FROM metrics
		ORDER BY metric_name, calculated_at DESC
	`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}
	defer rows.Close()

	metrics := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metric: %w", err)
		}
		metrics[name] = value
	}

	return metrics, rows.Err()
}
