// Title filtering: keep a job when its title matches
// alwaysKeep OR (keep AND NOT discard), with each keyword set optional.

package filter

import (
	"errors"

	"go-jobradar-automation/internal/scraper"
)

// ErrNoKeywords is returned when a title rule carries none of its three
// keyword sets.
var ErrNoKeywords = errors.New("title filter needs at least one keyword set")

// TitleRule is the three keyword sets of the title filter. A nil set means
// the rule of that kind is absent: an absent alwaysKeep or discard set never
// matches, while an absent keep set imposes no restriction.
type TitleRule struct {
	AlwaysKeep []string
	Keep       []string
	Discard    []string
}

// ByTitle annotates each record selected by subset (nil selects all) with a
// title verdict and returns the records of the whole collection whose
// verdict is keep. Records outside the subset retain whatever verdict a
// prior pass gave them. The input collection is not mutated.
//
// A title that could not be scraped matches none of the keyword sets, so it
// is kept exactly when the keep set is absent.
func ByTitle(jobs scraper.JobCollection, rule TitleRule, subset []int) (scraper.JobCollection, error) {
	if rule.AlwaysKeep == nil && rule.Keep == nil && rule.Discard == nil {
		return scraper.JobCollection{}, ErrNoKeywords
	}

	out := jobs.Clone()
	targets := out.IndexSet(subset)

	for i := range out.Records {
		if !targets[i] {
			continue
		}
		rec := &out.Records[i]

		isAlwaysKeep := false
		isKeep := rule.Keep == nil
		isDiscard := false

		if rec.Title.IsKnown() {
			title := rec.Title.Value()
			if rule.AlwaysKeep != nil {
				isAlwaysKeep = ContainsAny(title, rule.AlwaysKeep)
			}
			if rule.Keep != nil {
				isKeep = ContainsAny(title, rule.Keep)
			}
			if rule.Discard != nil {
				isDiscard = ContainsAny(title, rule.Discard)
			}
		}

		if isAlwaysKeep || (isKeep && !isDiscard) {
			rec.TitleVerdict = scraper.VerdictKeep
		} else {
			rec.TitleVerdict = scraper.VerdictDrop
		}
	}

	return out.Select(func(r scraper.JobRecord) bool {
		return r.TitleVerdict == scraper.VerdictKeep
	}), nil
}
