package clist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cp_assistant/internal/common"
	"cp_assistant/internal/domain/model"
)

// platformResources maps the short platform names callers use to the
// resource identifiers clist.by expects.
var platformResources = map[string]string{
	"codeforces":   "codeforces.com",
	"leetcode":     "leetcode.com",
	"codechef":     "codechef.com",
	"atcoder":      "atcoder.jp",
	"topcoder":     "topcoder.com",
	"codingninjas": "codingninjas.com/codestudio",
}

// Client fetches upcoming contests from the clist.by v4 API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) UpcomingContests(ctx context.Context, platforms []string) ([]model.UpcomingContest, error) {
	resources := make([]string, 0, len(platforms))
	for _, p := range platforms {
		if r, ok := platformResources[strings.ToLower(p)]; ok {
			resources = append(resources, r)
		}
	}
	if len(resources) == 0 {
		return nil, nil
	}

	params := url.Values{
		"start__gt":    {time.Now().UTC().Format(time.RFC3339)},
		"order_by":     {"start"},
		"resource__in": {strings.Join(resources, ",")},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, common.Errorf("build clist request: %v: %w", err, common.ErrFetch)
	}
	req.Header.Set("Authorization", "ApiKey "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, common.Errorf("call clist: %v: %w", err, common.ErrFetch)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, common.Errorf("clist returned http %d: %w", resp.StatusCode, common.ErrFetch)
	}

	var payload struct {
		Objects []struct {
			Event    string `json:"event"`
			Resource string `json:"resource"`
			Start    string `json:"start"`
			End      string `json:"end"`
			Href     string `json:"href"`
		} `json:"objects"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, common.Errorf("decode clist response: %v: %w", err, common.ErrFetch)
	}

	contests := make([]model.UpcomingContest, 0, len(payload.Objects))
	for _, obj := range payload.Objects {
		start, errStart := parseClistTime(obj.Start)
		end, errEnd := parseClistTime(obj.End)
		if errStart != nil || errEnd != nil {
			continue
		}
		contests = append(contests, model.UpcomingContest{
			Event:    obj.Event,
			Resource: obj.Resource,
			Start:    start,
			End:      end,
			Duration: end.Sub(start),
			Href:     obj.Href,
		})
	}
	return contests, nil
}

// parseClistTime accepts the two timestamp shapes clist emits: RFC3339
// and RFC3339 without a zone suffix (implied UTC).
func parseClistTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}
