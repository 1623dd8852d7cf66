// Crawler walks paginated listing pages over one Session and turns listing
// entries into JobRecords. Crawling is strictly sequential: one outstanding
// request at a time, on purpose, to stay polite with the site's rate limits.

package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"go-jobradar-automation/internal/logging"
	"go-jobradar-automation/internal/session"
)

// ErrCountUnavailable is returned by DetermineJobCount when the page does
// not carry the expected count element. Callers fall back to MaxJobs.
var ErrCountUnavailable = errors.New("job count element not found")

type Crawler struct {
	session *session.Session
	logger  *log.Entry

	// BaseURL is the site root; tests point it at a local server.
	BaseURL string
	// PageSize is the number of listing entries per page.
	PageSize int
	// MaxJobs caps the crawl when the total job count cannot be determined.
	MaxJobs int
}

func NewCrawler(s *session.Session, pageSize, maxJobs int) *Crawler {
	return &Crawler{
		session:  s,
		logger:   logging.Component("crawler"),
		BaseURL:  DefaultBaseURL,
		PageSize: pageSize,
		MaxJobs:  maxJobs,
	}
}

// ScrapeJobs fetches all listing pages for the query, starting at startPage,
// and returns one record per listing entry in page-then-entry order.
//
// A failed page fetch or a cancelled context stops the crawl and returns
// everything gathered so far; partial results are a valid outcome, not an
// error. A page with zero entries means the results are exhausted. Every
// scraped record starts with HasDescription = false.
func (c *Crawler) ScrapeJobs(ctx context.Context, query SearchQuery, startPage int) JobCollection {
	params := query.Params()
	c.logger.Infof("Fetching %q jobs from past %d day(s) with location %q, geo ID %q, and work location %q",
		query.Keywords, query.RecencyDays, query.Location, query.GeoID, params.WorkLocationCode)

	nJobs, err := c.DetermineJobCount(ctx, query)
	if err != nil {
		c.logger.Warnf("Failed determining the number of jobs (%v). Will try to fetch the maximum possible number of jobs (%d).",
			err, c.MaxJobs)
		nJobs = c.MaxJobs
	}

	jobs := JobCollection{Query: query}
	for page := startPage; page < ceilDiv(nJobs, c.PageSize); page++ {
		if ctx.Err() != nil {
			c.logger.Warn("Crawl cancelled; returning jobs gathered so far")
			break
		}

		c.logger.Infof("Fetching jobs from page %d", page)
		doc, err := c.session.FetchDocument(ctx, c.listingURL(params, page*c.PageSize), nil)
		if err != nil {
			c.logger.Warnf("Error when fetching job page: %v. It is possible that not all available job pages have been scraped.", err)
			break
		}

		entries := doc.Find(selListingEntry)
		if entries.Length() == 0 {
			c.logger.Infof("Page %d has no entries, end of results", page)
			break
		}

		entries.Each(func(_ int, entry *goquery.Selection) {
			jobs.Records = append(jobs.Records, extractRecord(entry))
		})
	}

	c.logger.Infof("Scraped %d jobs", jobs.Len())
	return jobs
}

// DetermineJobCount fetches the count-summary page and parses the total
// number of jobs, stripping thousands separators and a trailing "+".
func (c *Crawler) DetermineJobCount(ctx context.Context, query SearchQuery) (int, error) {
	params := query.Params()
	c.logger.Infof("Determining number of jobs for %q from past %d day(s) with location %q, geo ID %q, and work location %q",
		query.Keywords, query.RecencyDays, query.Location, query.GeoID, params.WorkLocationCode)

	doc, err := c.session.FetchDocument(ctx, c.jobCountURL(params), nil)
	if err != nil {
		return 0, err
	}

	el := doc.Find(selJobCount)
	if el.Length() == 0 {
		return 0, ErrCountUnavailable
	}

	raw := strings.Trim(el.First().Text(), "+ \n\t")
	raw = strings.ReplaceAll(raw, ",", "")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("unparseable job count %q: %w", raw, err)
	}
	return n, nil
}

func (c *Crawler) listingURL(p Params, start int) string {
	return fmt.Sprintf("%s%s?keywords=%s&f_TPR=r%d&location=%s&geoId=%s&f_WT=%s&start=%d",
		c.BaseURL, listingPath,
		url.QueryEscape(p.Keywords), p.Seconds, url.QueryEscape(p.Location),
		url.QueryEscape(p.GeoID), url.QueryEscape(p.WorkLocationCode), start)
}

func (c *Crawler) jobCountURL(p Params) string {
	return fmt.Sprintf("%s%s?keywords=%s&f_TPR=r%d&location=%s&geoId=%s&f_WT=%s",
		c.BaseURL, jobCountPath,
		url.QueryEscape(p.Keywords), p.Seconds, url.QueryEscape(p.Location),
		url.QueryEscape(p.GeoID), url.QueryEscape(p.WorkLocationCode))
}

func (c *Crawler) jobURL(jobID string) string {
	return c.BaseURL + jobPath + jobID
}

// extractRecord pulls one JobRecord out of a listing entry. A missing
// sub-element yields an unknown field, never an extraction failure.
func extractRecord(entry *goquery.Selection) JobRecord {
	rec := JobRecord{
		Title:      textField(entry.Find(selTitle)),
		Company:    textField(entry.Find(selCompany)),
		Location:   locationField(entry.Find(selLocation)),
		PostedDate: attrField(entry.Find(selPostedDate), "datetime"),
	}

	rec.Link = linkField(entry.Find(selLink))
	rec.ID = idFromLink(rec.Link)
	return rec
}

// textField reads the trimmed text of the first matched element.
func textField(sel *goquery.Selection) Field {
	if sel.Length() == 0 {
		return Unknown()
	}
	return Known(strings.TrimSpace(sel.First().Text()))
}

// locationField keeps only the part before the first comma ("Amsterdam,
// North Holland, Netherlands" becomes "Amsterdam").
func locationField(sel *goquery.Selection) Field {
	f := textField(sel)
	if !f.IsKnown() {
		return f
	}
	return Known(strings.TrimSpace(strings.SplitN(f.Value(), ",", 2)[0]))
}

func attrField(sel *goquery.Selection, name string) Field {
	if sel.Length() == 0 {
		return Unknown()
	}
	val, ok := sel.First().Attr(name)
	if !ok {
		return Unknown()
	}
	return Known(val)
}

// linkField canonicalizes the entry link by stripping the query string; the
// site appends volatile tracking parameters that would make the same job
// look like different URLs.
func linkField(sel *goquery.Selection) Field {
	f := attrField(sel, "href")
	if !f.IsKnown() {
		return f
	}
	return Known(strings.SplitN(f.Value(), "?", 2)[0])
}

// idFromLink derives the job identifier from the trailing segment of the
// canonical link.
func idFromLink(link Field) string {
	if !link.IsKnown() {
		return SentinelUnknown
	}
	parts := strings.Split(link.Value(), "-")
	return parts[len(parts)-1]
}

// ceilDiv is integer division rounded up, for non-negative n.
func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
