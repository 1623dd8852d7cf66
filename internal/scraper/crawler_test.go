package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-jobradar-automation/internal/session"
)

func listingEntry(id int) string {
	return fmt.Sprintf(`
<li>
  <h3 class="base-search-card__title"> Python Developer %d </h3>
  <h4 class="base-search-card__subtitle">Acme %d</h4>
  <span class="job-search-card__location">Amsterdam, North Holland, Netherlands</span>
  <a href="https://www.linkedin.com/jobs/view/python-developer-%d?refId=tracking&amp;trk=stuff">Python Developer</a>
  <time class="job-search-card__listdate--new" datetime="2026-08-0%d"></time>
</li>`, id, id, id, id%9+1)
}

func listingPage(firstID, n int) string {
	var b strings.Builder
	b.WriteString("<html><body><ul>")
	for i := 0; i < n; i++ {
		b.WriteString(listingEntry(firstID + i))
	}
	b.WriteString("</ul></body></html>")
	return b.String()
}

// listingServer serves the count-summary page and a fixed sequence of
// listing pages keyed by the start offset.
func listingServer(t *testing.T, countHTML string, pages map[string]string) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		switch {
		case strings.HasPrefix(r.URL.Path, "/jobs-guest/jobs/api/seeMoreJobPostings/search"):
			page, ok := pages[r.URL.Query().Get("start")]
			if !ok {
				w.Write([]byte("<html><body></body></html>"))
				return
			}
			w.Write([]byte(page))
		case strings.HasPrefix(r.URL.Path, "/jobs/search"):
			w.Write([]byte(countHTML))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func testCrawler(t *testing.T, srv *httptest.Server) *Crawler {
	t.Helper()
	c := NewCrawler(session.New(), 10, 1000)
	c.BaseURL = srv.URL
	return c
}

func testQuery(t *testing.T) SearchQuery {
	t.Helper()
	q, err := NewSearchQuery("python", 1, "Nederland", "102890719", Remote)
	require.NoError(t, err)
	return q
}

func TestScrapeJobs_TwoPagesThenEmpty(t *testing.T) {
	// No count element, so the crawler falls back to MaxJobs and stops at
	// the first page with zero entries.
	srv, _ := listingServer(t, "<html><body></body></html>", map[string]string{
		"0":  listingPage(0, 10),
		"10": listingPage(10, 10),
	})
	c := testCrawler(t, srv)

	jobs := c.ScrapeJobs(context.Background(), testQuery(t), 0)

	require.Equal(t, 20, jobs.Len())
	for i, rec := range jobs.Records {
		assert.Equal(t, fmt.Sprintf("Python Developer %d", i), rec.Title.Value(), "page-then-entry order")
		assert.Equal(t, fmt.Sprint(i), rec.ID)
		assert.Equal(t, "Acme "+fmt.Sprint(i), rec.Company.Value())
		assert.Equal(t, "Amsterdam", rec.Location.Value(), "location keeps only the part before the comma")
		assert.False(t, rec.HasDescription)
		assert.Nil(t, rec.DescriptionHTML)
	}
}

func TestScrapeJobs_CanonicalLinkStripsQueryString(t *testing.T) {
	srv, _ := listingServer(t, "<html><body></body></html>", map[string]string{
		"0": listingPage(7, 1),
	})
	c := testCrawler(t, srv)

	jobs := c.ScrapeJobs(context.Background(), testQuery(t), 0)

	require.Equal(t, 1, jobs.Len())
	assert.Equal(t, "https://www.linkedin.com/jobs/view/python-developer-7", jobs.Records[0].Link.Value())
	assert.Equal(t, "7", jobs.Records[0].ID)
	assert.Equal(t, "2026-08-08", jobs.Records[0].PostedDate.Value())
}

func TestScrapeJobs_MissingElementsBecomeUnknown(t *testing.T) {
	page := `<html><body><ul><li><h3 class="base-search-card__title">Lonely title</h3></li></ul></body></html>`
	srv, _ := listingServer(t, "<html><body></body></html>", map[string]string{"0": page})
	c := testCrawler(t, srv)

	jobs := c.ScrapeJobs(context.Background(), testQuery(t), 0)

	require.Equal(t, 1, jobs.Len())
	rec := jobs.Records[0]
	assert.Equal(t, "Lonely title", rec.Title.Value())
	assert.False(t, rec.Company.IsKnown())
	assert.False(t, rec.Location.IsKnown())
	assert.False(t, rec.Link.IsKnown())
	assert.False(t, rec.PostedDate.IsKnown())
	assert.Equal(t, SentinelUnknown, rec.ID)
	assert.Equal(t, SentinelUnknown, rec.Company.String())
}

func TestScrapeJobs_UsesJobCountCeiling(t *testing.T) {
	count := `<html><body><span class="results-context-header__job-count">20</span></body></html>`
	srv, requests := listingServer(t, count, map[string]string{
		"0":  listingPage(0, 10),
		"10": listingPage(10, 10),
		"20": listingPage(20, 10), // beyond the ceiling, must not be fetched
	})
	c := testCrawler(t, srv)

	jobs := c.ScrapeJobs(context.Background(), testQuery(t), 0)

	assert.Equal(t, 20, jobs.Len())
	assert.Equal(t, 3, *requests, "one count fetch plus two listing pages")
}

func TestScrapeJobs_FetchesTrailingPartialPage(t *testing.T) {
	count := `<html><body><span class="results-context-header__job-count">21</span></body></html>`
	srv, requests := listingServer(t, count, map[string]string{
		"0":  listingPage(0, 10),
		"10": listingPage(10, 10),
		"20": listingPage(20, 1),
	})
	c := testCrawler(t, srv)

	jobs := c.ScrapeJobs(context.Background(), testQuery(t), 0)

	assert.Equal(t, 21, jobs.Len(), "the last, not-full page still gets fetched")
	assert.Equal(t, 4, *requests, "one count fetch plus three listing pages")
}

func TestScrapeJobs_CountBelowOnePage(t *testing.T) {
	count := `<html><body><span class="results-context-header__job-count">5</span></body></html>`
	srv, _ := listingServer(t, count, map[string]string{
		"0": listingPage(0, 5),
	})
	c := testCrawler(t, srv)

	jobs := c.ScrapeJobs(context.Background(), testQuery(t), 0)

	assert.Equal(t, 5, jobs.Len(), "a search smaller than one page still yields its page")
}

func TestScrapeJobs_PartialResultsOnPageFailure(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/jobs/search") {
			w.Write([]byte("<html><body></body></html>"))
			return
		}
		requests++
		if r.URL.Query().Get("start") == "0" {
			w.Write([]byte(listingPage(0, 10)))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
	}))
	t.Cleanup(srv.Close)
	c := testCrawler(t, srv)

	jobs := c.ScrapeJobs(context.Background(), testQuery(t), 0)

	assert.Equal(t, 10, jobs.Len(), "a crawl failing on page 1 still yields page 0")
	assert.Equal(t, 2, requests)
}

func TestScrapeJobs_StartPageOffset(t *testing.T) {
	srv, _ := listingServer(t, "<html><body></body></html>", map[string]string{
		"0":  listingPage(0, 10),
		"10": listingPage(10, 10),
	})
	c := testCrawler(t, srv)

	jobs := c.ScrapeJobs(context.Background(), testQuery(t), 1)

	require.Equal(t, 10, jobs.Len())
	assert.Equal(t, "10", jobs.Records[0].ID)
}

func TestScrapeJobs_CancelledContextReturnsPartial(t *testing.T) {
	srv, _ := listingServer(t, "<html><body></body></html>", map[string]string{
		"0": listingPage(0, 10),
	})
	c := testCrawler(t, srv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := c.ScrapeJobs(ctx, testQuery(t), 0)
	assert.Equal(t, 0, jobs.Len(), "cancellation before page 0 returns an empty, valid collection")
}

func TestDetermineJobCount(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		want    int
		wantErr error
	}{
		{
			name: "plain number",
			html: `<html><body><span class="results-context-header__job-count">42</span></body></html>`,
			want: 42,
		},
		{
			name: "thousands separator and trailing plus",
			html: `<html><body><span class="results-context-header__job-count"> 1,234+ </span></body></html>`,
			want: 1234,
		},
		{
			name:    "element absent",
			html:    `<html><body><p>nothing here</p></body></html>`,
			wantErr: ErrCountUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := listingServer(t, tt.html, nil)
			c := testCrawler(t, srv)

			n, err := c.DetermineJobCount(context.Background(), testQuery(t))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestCeilDiv(t *testing.T) {
	assert.Equal(t, 2, ceilDiv(20, 10))
	assert.Equal(t, 3, ceilDiv(21, 10))
	assert.Equal(t, 0, ceilDiv(0, 10))
	assert.Equal(t, 1, ceilDiv(1, 10))
	assert.Equal(t, 1, ceilDiv(5, 10))
	assert.Equal(t, 1, ceilDiv(10, 10))
}
