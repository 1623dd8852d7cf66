package scraper

import "encoding/json"

// Verdict is a filter pass's tri-state decision on one record. The zero
// value means the pass has not looked at the record yet.
type Verdict int

const (
	VerdictNone Verdict = iota
	VerdictKeep
	VerdictDrop
	// VerdictUnknown is used when the record's description could not be
	// determined: the record is kept rather than discarded blindly.
	VerdictUnknown
)

func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v Verdict) String() string {
	switch v {
	case VerdictKeep:
		return "keep"
	case VerdictDrop:
		return "drop"
	case VerdictUnknown:
		return SentinelUnknown
	default:
		return "unset"
	}
}

// JobRecord is the normalized form of one job posting. The identity of a
// record is its ID, derived from the trailing segment of the canonical link.
type JobRecord struct {
	ID         string `json:"job_id"`
	Title      Field  `json:"title"`
	Company    Field  `json:"company"`
	Location   Field  `json:"location"`
	PostedDate Field  `json:"date"`
	Link       Field  `json:"link"`

	// DescriptionHTML is nil until a description fetch has been attempted;
	// after that it is either the description markup or unknown.
	DescriptionHTML   *Field  `json:"description_html,omitempty"`
	HasDescription    bool    `json:"has_job_description"`
	DescriptionMarked *string `json:"description_html_marked,omitempty"`

	TitleVerdict       Verdict `json:"keep_job_after_title_filter,omitempty"`
	DescriptionVerdict Verdict `json:"descr_contains_keyword,omitempty"`
}

func (r JobRecord) clone() JobRecord {
	out := r
	if r.DescriptionHTML != nil {
		d := *r.DescriptionHTML
		out.DescriptionHTML = &d
	}
	if r.DescriptionMarked != nil {
		m := *r.DescriptionMarked
		out.DescriptionMarked = &m
	}
	return out
}

// JobCollection is an ordered sequence of records (page order, then entry
// order within a page) plus the query that produced it. Duplicate ids are
// not deduplicated; pages are assumed disjoint.
type JobCollection struct {
	Query   SearchQuery
	Records []JobRecord

	// DescriptionsFetched marks that a description pass ran over this
	// collection, which the description filter requires.
	DescriptionsFetched bool
}

func (c JobCollection) Len() int { return len(c.Records) }

// Clone deep-copies the collection so a filter pass can annotate records
// without aliasing its input.
func (c JobCollection) Clone() JobCollection {
	out := JobCollection{
		Query:               c.Query,
		DescriptionsFetched: c.DescriptionsFetched,
		Records:             make([]JobRecord, len(c.Records)),
	}
	for i, r := range c.Records {
		out.Records[i] = r.clone()
	}
	return out
}

// Select returns the collection reduced to the records for which keep
// returns true, preserving order.
func (c JobCollection) Select(keep func(JobRecord) bool) JobCollection {
	out := JobCollection{
		Query:               c.Query,
		DescriptionsFetched: c.DescriptionsFetched,
	}
	for _, r := range c.Records {
		if keep(r) {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// IndexSet normalizes an optional subset selector: nil means every record,
// and out-of-range indices are dropped.
func (c JobCollection) IndexSet(subset []int) map[int]bool {
	set := make(map[int]bool, len(c.Records))
	if subset == nil {
		for i := range c.Records {
			set[i] = true
		}
		return set
	}
	for _, i := range subset {
		if i >= 0 && i < len(c.Records) {
			set[i] = true
		}
	}
	return set
}
