// Session owns the long-lived HTTP connection to the job listing site and
// hides the retry policy behind a single fetch-and-parse call. It is meant
// for one in-flight operation at a time; never start a second fetch on the
// same session while one is outstanding.

package session

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"go-jobradar-automation/internal/logging"
)

const (
	// MaxTries bounds the attempts of a single FetchDocument call.
	MaxTries = 20

	// Backoff window for a 429: sleep a uniformly random duration in
	// [MinBackoff, MaxBackoff] before the next attempt.
	MinBackoff = 1 * time.Second
	MaxBackoff = 5 * time.Second

	requestTimeout = 15 * time.Second

	// A known-good guest endpoint used by TestConnection.
	testConnectionURL = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/" +
		"search?trk=guest_homepage-basic_guest_nav_menu_jobs&start=0"
)

// DefaultHeaders are sent with every request unless overridden per call.
var DefaultHeaders = map[string]string{
	"User-Agent": "I just want linkedin to fix their search engine",
	"Connection": "keep-alive",
}

type Session struct {
	client *http.Client
	logger *log.Entry

	maxTries   int
	minBackoff time.Duration
	maxBackoff time.Duration

	// sleep is swapped out in tests to count backoffs without waiting.
	sleep func(time.Duration)
}

// New starts a session with a fresh keep-alive HTTP client.
func New() *Session {
	s := &Session{
		logger:     logging.Component("session"),
		maxTries:   MaxTries,
		minBackoff: MinBackoff,
		maxBackoff: MaxBackoff,
		sleep:      time.Sleep,
	}
	s.Restart()
	return s
}

// Restart replaces the HTTP client. Use it after a TransportError, when the
// connection state is assumed corrupted.
func (s *Session) Restart() {
	s.logger.Info("Starting session")
	if s.client != nil {
		s.Close()
	}
	s.client = &http.Client{Timeout: requestTimeout}
}

// Close drops the pooled connections. The session can be restarted later.
func (s *Session) Close() {
	s.client.CloseIdleConnections()
}

// TestConnection performs one FetchDocument against a known-good endpoint
// and surfaces the same failure taxonomy as any other fetch.
func (s *Session) TestConnection(ctx context.Context) error {
	s.logger.Info("Testing session")
	_, err := s.FetchDocument(ctx, testConnectionURL, nil)
	return err
}

// FetchDocument GETs the URL and parses the body into a queryable document.
//
// Up to MaxTries attempts are made. A low-level transport error is retried
// immediately, a 429 is retried after a randomized backoff, a 400 stops the
// loop at once, and any other non-200 status is logged and retried without
// backoff. The error is one of *TransportError, *RateLimitedError or
// *BadStatusError, or the context error when the caller cancels.
func (s *Session) FetchDocument(ctx context.Context, url string, headers map[string]string) (*goquery.Document, error) {
	s.logger.Debugf("Fetching HTML content from url: %s", url)
	if headers == nil {
		headers = DefaultHeaders
	}

	var (
		lastStatus int
		lastErr    error
	)

	for i := 0; i < s.maxTries; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logger.Debugf("Tries remaining: %d", s.maxTries-i)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, &BadStatusError{URL: url, StatusCode: http.StatusBadRequest}
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			s.logger.Debugf("Request error: %v. Will try again.", err)
			lastErr = err
			continue
		}

		switch resp.StatusCode {
		case http.StatusOK:
			doc, err := goquery.NewDocumentFromReader(resp.Body)
			resp.Body.Close()
			if err != nil {
				// A body that cannot be parsed counts as a failed
				// attempt, same as a broken connection.
				s.logger.Debugf("Parse error: %v. Will try again.", err)
				lastErr = err
				lastStatus = 0
				continue
			}
			s.logger.Debugf("Received valid response from url: %s", url)
			return doc, nil

		case http.StatusTooManyRequests:
			resp.Body.Close()
			lastStatus = resp.StatusCode
			s.logger.Debug("Too many requests (status code 429)")
			s.sleep(s.backoff())

		case http.StatusBadRequest:
			resp.Body.Close()
			lastStatus = resp.StatusCode
			s.logger.Debug("Bad request (status code 400)")
			return nil, &BadStatusError{URL: url, StatusCode: lastStatus}

		default:
			resp.Body.Close()
			lastStatus = resp.StatusCode
			s.logger.Debugf("Unexpected status code: %d. Will try again", resp.StatusCode)
		}
	}

	switch {
	case lastStatus == 0:
		s.logger.Errorf("No usable response for url: %s", url)
		return nil, &TransportError{URL: url, Attempts: s.maxTries, Err: lastErr}
	case lastStatus == http.StatusTooManyRequests:
		s.logger.Errorf("Too many requests for url: %s", url)
		return nil, &RateLimitedError{URL: url, Attempts: s.maxTries}
	default:
		s.logger.Errorf("Bad status code %d for url: %s", lastStatus, url)
		return nil, &BadStatusError{URL: url, StatusCode: lastStatus}
	}
}

func (s *Session) backoff() time.Duration {
	window := int64(s.maxBackoff - s.minBackoff)
	return s.minBackoff + time.Duration(rand.Int63n(window+1))
}
