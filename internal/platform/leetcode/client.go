package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"

	"cp_assistant/internal/common"
	"cp_assistant/internal/domain/model"
)

const dailyQuery = `
query questionOfToday {
    activeDailyCodingChallengeQuestion {
        date
        link
        question {
            difficulty
            title
            content
            topicTags { name }
        }
    }
}`

// Client fetches the daily challenge from the LeetCode GraphQL API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) DailyProblem(ctx context.Context) (model.DailyProblem, error) {
	body, err := json.Marshal(map[string]string{"query": dailyQuery})
	if err != nil {
		return model.DailyProblem{}, common.Errorf("marshal graphql query: %v: %w", err, common.ErrFetch)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return model.DailyProblem{}, common.Errorf("build leetcode request: %v: %w", err, common.ErrFetch)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.DailyProblem{}, common.Errorf("call leetcode: %v: %w", err, common.ErrFetch)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.DailyProblem{}, common.Errorf("leetcode returned http %d: %w", resp.StatusCode, common.ErrFetch)
	}

	var payload struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
		Data struct {
			Active struct {
				Date     string `json:"date"`
				Link     string `json:"link"`
				Question struct {
					Difficulty string `json:"difficulty"`
					Title      string `json:"title"`
					Content    string `json:"content"`
					TopicTags  []struct {
						Name string `json:"name"`
					} `json:"topicTags"`
				} `json:"question"`
			} `json:"activeDailyCodingChallengeQuestion"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.DailyProblem{}, common.Errorf("decode leetcode response: %v: %w", err, common.ErrFetch)
	}
	if len(payload.Errors) > 0 {
		return model.DailyProblem{}, common.Errorf("leetcode api: %s: %w", payload.Errors[0].Message, common.ErrFetch)
	}

	q := payload.Data.Active.Question
	if q.Title == "" {
		return model.DailyProblem{}, common.Errorf("leetcode daily problem missing: %w", common.ErrFetch)
	}
	tags := make([]string, 0, len(q.TopicTags))
	for _, t := range q.TopicTags {
		tags = append(tags, t.Name)
	}
	return model.DailyProblem{
		Title:       q.Title,
		Difficulty:  q.Difficulty,
		URL:         "https://leetcode.com" + payload.Data.Active.Link,
		Tags:        tags,
		Description: StripHTML(q.Content),
		Date:        payload.Data.Active.Date,
	}, nil
}

var (
	preRe   = regexp.MustCompile(`(?s)<pre>(.*?)</pre>`)
	codeRe  = regexp.MustCompile(`(?s)<code>(.*?)</code>`)
	tagRe   = regexp.MustCompile(`<[^>]+>`)
	blankRe = regexp.MustCompile(`\n{3,}`)
)

// StripHTML converts the API's HTML problem statement to plain text:
// code blocks keep their content, all other tags are removed, entities
// unescaped, and runs of blank lines collapsed.
func StripHTML(s string) string {
	s = preRe.ReplaceAllString(s, "\n$1\n")
	s = codeRe.ReplaceAllString(s, "$1")
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = blankRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
