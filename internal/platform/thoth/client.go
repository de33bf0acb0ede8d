package thoth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"thothexport/internal/work"
)

// DefaultEndpoint is the public Thoth GraphQL API.
const DefaultEndpoint = "https://api.thoth.pub/graphql"

// maxPublisherWorks bounds a publisher export to a single page.
const maxPublisherWorks = 99999

// Client fetches assembled works from the Thoth GraphQL API.
type Client struct {
	httpClient *http.Client
	userAgent  string
	endpoint   string
	limiter    *rate.Limiter
	maxRetries int
	backoff    func(attempt int) time.Duration
}

func NewClient(endpoint, userAgent string, rps int, maxRetries int) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		userAgent:  userAgent,
		endpoint:   endpoint,
		limiter:    rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries: maxRetries,
		backoff: func(attempt int) time.Duration {
			// 1s, 2s, 4s...
			return time.Duration(1<<uint(attempt-1)) * time.Second
		},
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// GetWork implements metadata.WorkSource.
func (c *Client) GetWork(ctx context.Context, workID uuid.UUID) (work.Work, error) {
	var data struct {
		Work *work.Work `json:"work"`
	}
	err := c.query(ctx, workQuery, map[string]interface{}{"workId": workID}, &data)
	if err != nil {
		return work.Work{}, err
	}
	if data.Work == nil {
		return work.Work{}, work.ErrNotFound
	}
	return *data.Work, nil
}

// ListPublisherWorks implements metadata.WorkSource.
func (c *Client) ListPublisherWorks(ctx context.Context, publisherID uuid.UUID) ([]work.Work, error) {
	var data struct {
		Publisher *struct {
			PublisherID uuid.UUID `json:"publisherId"`
		} `json:"publisher"`
		Works []work.Work `json:"works"`
	}
	vars := map[string]interface{}{"publisherId": publisherID, "limit": maxPublisherWorks}
	if err := c.query(ctx, publisherWorksQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Publisher == nil {
		return nil, work.ErrNotFound
	}
	return data.Works, nil
}

func (c *Client) query(ctx context.Context, query string, vars map[string]interface{}, target interface{}) error {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return err
	}

	var res graphQLResponse
	if err := c.post(ctx, payload, &res); err != nil {
		return err
	}
	if len(res.Errors) > 0 {
		return responseError(res.Errors)
	}
	if len(res.Data) == 0 || string(res.Data) == "null" {
		return work.ErrNotFound
	}
	if err := json.Unmarshal(res.Data, target); err != nil {
		return fmt.Errorf("decode graphql data: %w", err)
	}
	return nil
}

// responseError maps the API's lookup failures onto work.ErrNotFound.
func responseError(errs []graphQLError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
		if strings.Contains(strings.ToLower(e.Message), "not found") {
			return fmt.Errorf("%w: %s", work.ErrNotFound, e.Message)
		}
	}
	return fmt.Errorf("graphql: %s", strings.Join(msgs, "; "))
}

func (c *Client) post(ctx context.Context, payload []byte, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(c.backoff(i)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, payload, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

// do performs one round trip and reports whether a failure is worth retrying.
func (c *Client) do(ctx context.Context, payload []byte, target interface{}) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, err
		}
		return true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		return resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500, err
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return false, fmt.Errorf("decode graphql response: %w", err)
	}
	return false, nil
}
