package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jjenkins/mirrulations/internal/model"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "https://api.regulations.gov/v4"
	defaultTimeout = 60 * time.Second
	maxRetries     = 3
	initialBackoff = 2 * time.Second
	maxPageSize    = 250
)

// RegulationsClient handles communication with the regulations.gov v4 API
type RegulationsClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	backoff time.Duration
}

// NewRegulationsClient creates a client allowing requestsPerSecond calls per second
func NewRegulationsClient(baseURL, apiKey string, requestsPerSecond float64) *RegulationsClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1
	}

	return &RegulationsClient{
		client: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		backoff: initialBackoff,
	}
}

// DocketQuery selects dockets from the search endpoint. Page is one-based.
type DocketQuery struct {
	SearchTerm string
	AgencyID   string
	Page       int
	PageSize   int
}

// pageMeta is the JSON:API paging block shared by list responses
type pageMeta struct {
	HasNextPage   bool `json:"hasNextPage"`
	TotalElements int  `json:"totalElements"`
}

// docketsResponse represents the API response for /dockets
type docketsResponse struct {
	Data []struct {
		ID         string `json:"id"`
		Attributes struct {
			Title            string `json:"title"`
			AgencyID         string `json:"agencyId"`
			DocketType       string `json:"docketType"`
			LastModifiedDate string `json:"lastModifiedDate"`
		} `json:"attributes"`
	} `json:"data"`
	Meta pageMeta `json:"meta"`
}

// docketResponse represents the API response for /dockets/{id}
type docketResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Title      string `json:"title"`
			AgencyID   string `json:"agencyId"`
			DocketType string `json:"docketType"`
			DkAbstract string `json:"dkAbstract"`
			ModifyDate string `json:"modifyDate"`
		} `json:"attributes"`
	} `json:"data"`
}

// documentsResponse represents the API response for /documents
type documentsResponse struct {
	Data []struct {
		ID         string `json:"id"`
		Attributes struct {
			DocumentType   string `json:"documentType"`
			PostedDate     string `json:"postedDate"`
			OpenForComment bool   `json:"openForComment"`
		} `json:"attributes"`
	} `json:"data"`
	Meta pageMeta `json:"meta"`
}

// commentsResponse represents the API response for /comments
type commentsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
	Meta pageMeta `json:"meta"`
}

// commentResponse represents the API response for /comments/{id}?include=attachments
type commentResponse struct {
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			Comment    string `json:"comment"`
			DocketID   string `json:"docketId"`
			PostedDate string `json:"postedDate"`
		} `json:"attributes"`
	} `json:"data"`
	Included []struct {
		Type string `json:"type"`
	} `json:"included"`
}

// FetchDockets runs a docket search and reports whether more pages exist
func (c *RegulationsClient) FetchDockets(ctx context.Context, q DocketQuery) ([]model.DocketMeta, bool, error) {
	params := url.Values{}
	if q.SearchTerm != "" {
		params.Set("filter[searchTerm]", q.SearchTerm)
	}
	if q.AgencyID != "" {
		params.Set("filter[agencyId]", q.AgencyID)
	}
	params.Set("page[number]", strconv.Itoa(max(q.Page, 1)))
	params.Set("page[size]", strconv.Itoa(clampPageSize(q.PageSize)))
	params.Set("sort", "-lastModifiedDate")

	var resp docketsResponse
	if err := c.getJSON(ctx, "/dockets", params, &resp); err != nil {
		return nil, false, fmt.Errorf("failed to fetch dockets: %w", err)
	}

	dockets := make([]model.DocketMeta, len(resp.Data))
	for i, d := range resp.Data {
		dockets[i] = model.DocketMeta{
			ID:         d.ID,
			Title:      d.Attributes.Title,
			AgencyID:   d.Attributes.AgencyID,
			DocketType: d.Attributes.DocketType,
			ModifyDate: parseAPITime(d.Attributes.LastModifiedDate),
		}
	}

	return dockets, resp.Meta.HasNextPage, nil
}

// FetchDocket retrieves the full attributes of a docket, including its abstract
func (c *RegulationsClient) FetchDocket(ctx context.Context, docketID string) (*model.DocketMeta, error) {
	var resp docketResponse
	if err := c.getJSON(ctx, "/dockets/"+url.PathEscape(docketID), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch docket %s: %w", docketID, err)
	}

	a := resp.Data.Attributes
	return &model.DocketMeta{
		ID:         resp.Data.ID,
		Title:      a.Title,
		AgencyID:   a.AgencyID,
		DocketType: a.DocketType,
		Abstract:   a.DkAbstract,
		ModifyDate: parseAPITime(a.ModifyDate),
	}, nil
}

// FetchDocuments retrieves the documents filed in a docket
func (c *RegulationsClient) FetchDocuments(ctx context.Context, docketID string) ([]model.DocumentMeta, error) {
	var documents []model.DocumentMeta

	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("filter[docketId]", docketID)
		params.Set("page[number]", strconv.Itoa(page))
		params.Set("page[size]", strconv.Itoa(maxPageSize))

		var resp documentsResponse
		if err := c.getJSON(ctx, "/documents", params, &resp); err != nil {
			return nil, fmt.Errorf("failed to fetch documents for docket %s: %w", docketID, err)
		}

		for _, d := range resp.Data {
			documents = append(documents, model.DocumentMeta{
				ID:             d.ID,
				DocumentType:   d.Attributes.DocumentType,
				PostedDate:     parseAPITime(d.Attributes.PostedDate),
				OpenForComment: d.Attributes.OpenForComment,
			})
		}

		if !resp.Meta.HasNextPage {
			return documents, nil
		}
	}
}

// FetchCommentIDs lists comment IDs for a docket, one page at a time. Page is one-based.
func (c *RegulationsClient) FetchCommentIDs(ctx context.Context, docketID string, page int) ([]string, bool, error) {
	params := url.Values{}
	params.Set("filter[docketId]", docketID)
	params.Set("page[number]", strconv.Itoa(max(page, 1)))
	params.Set("page[size]", strconv.Itoa(maxPageSize))

	var resp commentsResponse
	if err := c.getJSON(ctx, "/comments", params, &resp); err != nil {
		return nil, false, fmt.Errorf("failed to fetch comments for docket %s: %w", docketID, err)
	}

	ids := make([]string, len(resp.Data))
	for i, d := range resp.Data {
		ids[i] = d.ID
	}

	return ids, resp.Meta.HasNextPage, nil
}

// FetchComment retrieves a comment's text and counts its attachments
func (c *RegulationsClient) FetchComment(ctx context.Context, commentID string) (*model.CommentMeta, error) {
	params := url.Values{}
	params.Set("include", "attachments")

	var resp commentResponse
	if err := c.getJSON(ctx, "/comments/"+url.PathEscape(commentID), params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch comment %s: %w", commentID, err)
	}

	attachments := 0
	for _, inc := range resp.Included {
		if inc.Type == "attachments" {
			attachments++
		}
	}

	a := resp.Data.Attributes
	return &model.CommentMeta{
		ID:              resp.Data.ID,
		DocketID:        a.DocketID,
		Body:            a.Comment,
		AttachmentCount: attachments,
		PostedDate:      parseAPITime(a.PostedDate),
	}, nil
}

func (c *RegulationsClient) getJSON(ctx context.Context, path string, params url.Values, v any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	body, err := c.fetchWithRetry(ctx, u)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// fetchWithRetry performs a rate-limited HTTP GET with exponential backoff retry
func (c *RegulationsClient) fetchWithRetry(ctx context.Context, target string) ([]byte, error) {
	var lastErr error
	backoff := c.backoff

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("X-Api-Key", c.apiKey)
		req.Header.Set("Accept", "application/vnd.api+json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()

		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			continue
		}

		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			continue
		}

		return body, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}

func clampPageSize(size int) int {
	if size <= 0 || size > maxPageSize {
		return maxPageSize
	}
	return size
}

// parseAPITime accepts the RFC 3339 timestamps and plain dates the API returns
func parseAPITime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
