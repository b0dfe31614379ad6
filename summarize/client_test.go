package summarize

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return &Client{
		URL:        url,
		Token:      "test-token",
		MinReviews: DefaultMinReviews,
		HTTPClient: http.DefaultClient,
	}
}

func TestSummarize_OK(t *testing.T) {

	var received summaryRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_ = json.NewDecoder(r.Body).Decode(&received)
		_ = json.NewEncoder(w).Encode(summaryResponse{Summary: "students liked the assignments"})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)

	summary, err := c.Summarize("fit2004", []string{"good", "great", "ok"})

	require.NoError(t, err)
	assert.Equal(t, "students liked the assignments", summary)
	// the texts are sent exactly as given, the code uppercased
	assert.Equal(t, "FIT2004", received.UnitCode)
	assert.Equal(t, []string{"good", "great", "ok"}, received.Reviews)
}

func TestSummarize_GateBeforeNetwork(t *testing.T) {

	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)

	_, err := c.Summarize("FIT2004", []string{"good", "great"})

	assert.Equal(t, ErrNotEnoughReviews, err)
	assert.Equal(t, 0, calls) // below the minimum no request must be made
}

func TestSummarize_ServiceDown(t *testing.T) {

	// non-2xx status
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	c := newTestClient(ts.URL)

	_, err := c.Summarize("FIT2004", []string{"a", "b", "c"})
	assert.Equal(t, ErrServiceUnavailable, err)

	// unreachable server
	ts.Close()
	_, err = c.Summarize("FIT2004", []string{"a", "b", "c"})
	assert.Equal(t, ErrServiceUnavailable, err)
}

func TestSummarize_MalformedResponse(t *testing.T) {

	// not JSON at all
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("oops"))
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)
	_, err := c.Summarize("FIT2004", []string{"a", "b", "c"})
	assert.Equal(t, ErrMalformedResponse, err)

	// valid JSON, but the summary field is empty
	ts2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(summaryResponse{Summary: "  "})
	}))
	defer ts2.Close()

	c = newTestClient(ts2.URL)
	_, err = c.Summarize("FIT2004", []string{"a", "b", "c"})
	assert.Equal(t, ErrMalformedResponse, err)
}

func TestSummarize_RetryIsFreshRequest(t *testing.T) {

	// first call fails, second succeeds - nothing is remembered in between
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(summaryResponse{Summary: "fine"})
	}))
	defer ts.Close()

	c := newTestClient(ts.URL)

	_, err := c.Summarize("FIT2004", []string{"a", "b", "c"})
	assert.Equal(t, ErrServiceUnavailable, err)

	summary, err := c.Summarize("FIT2004", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "fine", summary)
	assert.Equal(t, 2, calls)
}
