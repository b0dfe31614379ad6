package summarize

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// default minimum sample size - a "summary" of 1-2 reviews is not
// meaningfully distinct from just showing them, and external calls cost money
const DefaultMinReviews = 3

// failure taxonomy surfaced to the caller
// none of these is fatal; a manual retry is simply a fresh invocation
var (
	ErrNotEnoughReviews   = errors.New("not enough reviews to summarize")
	ErrServiceUnavailable = errors.New("summary service not available")
	ErrMalformedResponse  = errors.New("summary service sent an unexpected response")
)

// Client calls the external text-generation service
// single-shot request/response - no streaming, no multi-turn state
type Client struct {
	URL        string
	Token      string
	MinReviews int
	HTTPClient *http.Client
}

// request/response shapes of the external service
type summaryRequest struct {
	UnitCode string   `json:"unitCode"`
	Reviews  []string `json:"reviews"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// NewClient builds the client from the environment
func NewClient() *Client {

	minReviews, err := strconv.Atoi(os.Getenv("SUMMARIZER_MIN_REVIEWS"))
	if err != nil || minReviews < 1 {
		minReviews = DefaultMinReviews
	}

	return &Client{
		URL:        os.Getenv("SUMMARIZER_URL"),
		Token:      os.Getenv("SUMMARIZER_TOKEN"),
		MinReviews: minReviews,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second, // generation is slow, but not endless
		},
	}
}

// Summarize condenses the given review texts of one unit into a short text.
// the texts are sent exactly as given - no filtering, de-duplication or
// re-ordering, so the summary reflects what the user currently sees.
// results are never cached; every call produces a fresh summary
func (c *Client) Summarize(unitCode string, reviews []string) (string, error) {

	// gate BEFORE any network traffic
	if len(reviews) < c.MinReviews {
		return "", ErrNotEnoughReviews
	}

	body, err := json.Marshal(summaryRequest{
		UnitCode: strings.ToUpper(strings.TrimSpace(unitCode)),
		Reviews:  reviews,
	})
	if err != nil {
		return "", ErrMalformedResponse // can't really happen
	}

	req, err := http.NewRequest(http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", ErrServiceUnavailable
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		// network problem or timeout - caller may offer a manual retry
		return "", ErrServiceUnavailable
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", ErrServiceUnavailable
	}

	var data summaryResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return "", ErrMalformedResponse
	}

	// the contract is exactly one field; an empty summary counts as broken
	if strings.TrimSpace(data.Summary) == "" {
		return "", ErrMalformedResponse
	}

	return data.Summary, nil
}
