package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jjenkins/mirrulations/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestLikePattern(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "%ozone%", likePattern("ozone"))
	assert.Equal(t, `%100\% renewable%`, likePattern("100% renewable"))
	assert.Equal(t, `%snake\_case%`, likePattern("snake_case"))
	assert.Equal(t, `%back\\slash%`, likePattern(`back\slash`))
	assert.Equal(t, "%%", likePattern(""))
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		count, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{200, 10, 20},
		{-4, 10, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, totalPages(tt.count, tt.size), "count=%d size=%d", tt.count, tt.size)
	}
}

func TestParseTimeline(t *testing.T) {
	t.Parallel()

	got, err := parseTimeline([]string{"2021-11-15", "2022-01-31"})
	require.NoError(t, err)
	require.Equal(t, []time.Time{
		time.Date(2021, 11, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2022, 1, 31, 0, 0, 0, 0, time.UTC),
	}, got)

	got, err = parseTimeline(nil)
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = parseTimeline([]string{"15/11/2021"})
	require.Error(t, err)
}

// Integration tests start PostgreSQL through testcontainers-go.
//   GO_TEST_INTEGRATION=1 go test ./internal/store -v -count=1
func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		Env:          map[string]string{"POSTGRES_USER": "user", "POSTGRES_PASSWORD": "pass", "POSTGRES_DB": "db"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	db, err := NewDB(fmt.Sprintf("postgres://user:pass@%s:%s/db?sslmode=disable", host, port.Port()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	return db
}

func seedDockets(t *testing.T, s *DocketStore) {
	t.Helper()
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		d := &model.Docket{
			ID:           fmt.Sprintf("EPA-HQ-OAR-2021-%04d", i),
			Title:        fmt.Sprintf("Air quality docket %d", i),
			AgencyName:   "EPA",
			DocketType:   model.DocketTypeRulemaking,
			DateModified: time.Date(2023, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, s.UpsertDocket(ctx, d))
	}

	methane := &model.Docket{
		ID:               "EPA-HQ-OAR-2021-0317",
		Title:            "Methane standards",
		AgencyName:       "EPA",
		DocketType:       model.DocketTypeNonrulemaking,
		Summary:          sql.NullString{String: "Oil and natural gas sources", Valid: true},
		IsOpenForComment: true,
		TimelineDates: []time.Time{
			time.Date(2022, 11, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2021, 11, 15, 0, 0, 0, 0, time.UTC),
		},
		DateModified: time.Date(2023, 3, 8, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.UpsertDocket(ctx, methane))

	comments := []model.Comment{
		{ID: "c1", DocketID: methane.ID, Body: "Please cut METHANE leaks", HasAttachments: true},
		{ID: "c2", DocketID: methane.ID, Body: "I oppose this rule"},
		{ID: "c3", DocketID: methane.ID, Body: "Methane flaring matters"},
		{ID: "c4", DocketID: methane.ID, Body: "See attached", HasAttachments: true},
	}
	for i := range comments {
		require.NoError(t, s.UpsertComment(ctx, &comments[i]))
	}
}

func TestDocketStore_LoadPage(t *testing.T) {
	db := startPostgres(t)
	s := NewDocketStore(db, 10)
	seedDockets(t, s)
	ctx := context.Background()

	page, err := s.LoadPage(ctx, 0, "methane")
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Dockets, 1)

	d := page.Dockets[0]
	assert.Equal(t, "EPA-HQ-OAR-2021-0317", d.ID)
	assert.Equal(t, model.DocketTypeNonrulemaking, d.DocketType)
	assert.Equal(t, model.MatchCount{Match: 2, Total: 4}, d.Comments)
	assert.Equal(t, model.MatchCount{Match: 1, Total: 2}, d.Attachments)
	assert.True(t, d.IsOpenForComment)
	assert.Equal(t, "Oil and natural gas sources", d.Summary.String)
	require.Len(t, d.TimelineDates, 2)
	assert.True(t, d.TimelineDates[0].Before(d.TimelineDates[1]))
}

func TestDocketStore_LoadPage_Paginates(t *testing.T) {
	db := startPostgres(t)
	s := NewDocketStore(db, 10)
	seedDockets(t, s)
	ctx := context.Background()

	first, err := s.LoadPage(ctx, 0, "")
	require.NoError(t, err)
	assert.Equal(t, 3, first.TotalPages)
	assert.Len(t, first.Dockets, 10)

	last, err := s.LoadPage(ctx, 2, "")
	require.NoError(t, err)
	assert.Len(t, last.Dockets, 6)
	assert.Equal(t, 2, last.CurrentPage)

	beyond, err := s.LoadPage(ctx, 7, "")
	require.NoError(t, err)
	assert.Empty(t, beyond.Dockets)
	assert.Equal(t, 3, beyond.TotalPages)
}

func TestDocketStore_LoadPage_EscapesWildcards(t *testing.T) {
	db := startPostgres(t)
	s := NewDocketStore(db, 10)
	seedDockets(t, s)

	page, err := s.LoadPage(context.Background(), 0, "%")
	require.NoError(t, err)
	assert.Empty(t, page.Dockets)
	assert.Equal(t, 0, page.TotalPages)
}

func TestDocketStore_Counts(t *testing.T) {
	db := startPostgres(t)
	s := NewDocketStore(db, 10)
	seedDockets(t, s)
	ctx := context.Background()

	dockets, err := s.CountDockets(ctx)
	require.NoError(t, err)
	assert.Equal(t, 26, dockets)

	comments, err := s.CountComments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, comments)

	agencies, err := s.CountAgencies(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, agencies)
}
