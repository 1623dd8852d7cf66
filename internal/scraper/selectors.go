package scraper

// Site-specific constants: URL templates of the guest API and the structural
// selectors used to locate fields inside a rendered page. These change
// whenever the site's markup changes and carry no pipeline logic.

const DefaultBaseURL = "https://www.linkedin.com"

const (
	listingPath  = "/jobs-guest/jobs/api/seeMoreJobPostings/search"
	jobCountPath = "/jobs/search"
	jobPath      = "/jobs-guest/jobs/api/jobPosting/"
)

const (
	selListingEntry = "li"
	selTitle        = "h3.base-search-card__title"
	selCompany      = "h4.base-search-card__subtitle"
	selLocation     = "span.job-search-card__location"
	selLink         = `a[href*="linkedin.com/jobs/view"]`
	selPostedDate   = "time.job-search-card__listdate--new"
	selJobCount     = "span.results-context-header__job-count"
	selDescription  = "div.show-more-less-html__markup"
)
