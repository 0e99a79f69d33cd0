package codeforces

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"cp_assistant/internal/common"
	"cp_assistant/internal/domain/model"
)

const userAgent = "cp-assistant/1.0"

// Client talks to the Codeforces REST API. Responses arrive wrapped in
// an envelope {status, comment, result}; a non-"OK" status surfaces as a
// fetch error carrying the comment. Requests pass a client-side rate
// limiter since the API throttles aggressive callers; hitting the server
// limit anyway is still just a fetch error, never retried here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		// The documented courtesy limit is one call per two seconds
		// with small bursts tolerated.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 3),
	}
}

func (c *Client) query(ctx context.Context, endpoint string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return common.Errorf("rate limiter wait: %v: %w", err, common.ErrFetch)
	}

	u := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return common.Errorf("build request for %s: %v: %w", endpoint, err, common.ErrFetch)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return common.Errorf("call %s: %v: %w", endpoint, err, common.ErrFetch)
	}
	defer resp.Body.Close()

	var envelope struct {
		Status  string          `json:"status"`
		Comment string          `json:"comment"`
		Result  json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return common.Errorf("decode %s response (http %d): %v: %w", endpoint, resp.StatusCode, err, common.ErrFetch)
	}
	if envelope.Status != "OK" {
		comment := envelope.Comment
		if comment == "" {
			comment = fmt.Sprintf("http status %d", resp.StatusCode)
		}
		return common.Errorf("codeforces %s: %s: %w", endpoint, comment, common.ErrFetch)
	}
	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return common.Errorf("decode %s result: %v: %w", endpoint, err, common.ErrFetch)
	}
	return nil
}

func (c *Client) UserInfo(ctx context.Context, handles []string) ([]model.RawUser, error) {
	params := url.Values{"handles": {strings.Join(handles, ";")}}
	var users []model.RawUser
	if err := c.query(ctx, "user.info", params, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) UserStatus(ctx context.Context, handle string, count int) ([]model.RawSubmission, error) {
	params := url.Values{
		"handle": {handle},
		"from":   {"1"},
		"count":  {strconv.Itoa(count)},
	}
	var subs []model.RawSubmission
	if err := c.query(ctx, "user.status", params, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (c *Client) RatingChanges(ctx context.Context, handle string) ([]model.RawRatingChange, error) {
	params := url.Values{"handle": {handle}}
	var changes []model.RawRatingChange
	if err := c.query(ctx, "user.rating", params, &changes); err != nil {
		return nil, err
	}
	return changes, nil
}

func (c *Client) Problemset(ctx context.Context) ([]model.RawProblem, error) {
	var result struct {
		Problems []model.RawProblem `json:"problems"`
	}
	if err := c.query(ctx, "problemset.problems", nil, &result); err != nil {
		return nil, err
	}
	return result.Problems, nil
}
