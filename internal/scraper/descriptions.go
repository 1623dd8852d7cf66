package scraper

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// FetchDescriptions fetches and attaches the long-form description for each
// record selected by subset (nil selects all), one sequential request per
// record. The input collection is not mutated.
//
// A missing description element or a failed fetch marks that record's
// description unknown; one bad record never aborts the batch. After the
// pass, HasDescription is recomputed as "description present and known" and
// the returned collection holds only the records for which that is true.
func (c *Crawler) FetchDescriptions(ctx context.Context, jobs JobCollection, subset []int) JobCollection {
	out := jobs.Clone()
	targets := out.IndexSet(subset)

	for i := range out.Records {
		if !targets[i] {
			continue
		}
		if ctx.Err() != nil {
			c.logger.Warn("Description fetch cancelled; keeping descriptions gathered so far")
			break
		}
		rec := &out.Records[i]
		descr := c.fetchDescription(ctx, rec.ID)
		rec.DescriptionHTML = &descr
	}

	for i := range out.Records {
		rec := &out.Records[i]
		rec.HasDescription = rec.DescriptionHTML != nil && rec.DescriptionHTML.IsKnown()
	}

	out.DescriptionsFetched = true
	return out.Select(func(r JobRecord) bool { return r.HasDescription })
}

// fetchDescription gets the description markup for a single posting. Any
// failure, transport or structural, degrades to an unknown field.
func (c *Crawler) fetchDescription(ctx context.Context, jobID string) Field {
	c.logger.Infof("Fetching job description for job with ID: %s", jobID)

	doc, err := c.session.FetchDocument(ctx, c.jobURL(jobID), nil)
	if err != nil {
		c.logger.Debugf("Failed fetching description for job %s: %v", jobID, err)
		return Unknown()
	}

	el := doc.Find(selDescription)
	if el.Length() == 0 {
		return Unknown()
	}

	html, err := goquery.OuterHtml(el.First())
	if err != nil {
		return Unknown()
	}
	return Known(html)
}
