package filter

import (
	"errors"

	"go-jobradar-automation/internal/scraper"
)

// ErrDescriptionsMissing is returned when the description filter runs on a
// collection that never went through a description fetch.
var ErrDescriptionsMissing = errors.New("descriptions have not been fetched for this collection")

// ByDescription annotates each record selected by subset (nil selects all)
// with a description verdict and returns the records whose verdict is keep
// or unknown. The input collection is not mutated.
//
// A record whose description was never fetched is skipped (verdict stays
// unset). A record whose description is unknown gets an unknown verdict and
// survives: a posting is not discarded blindly just because its description
// could not be retrieved. When markMatches is set, every keyword occurrence
// is wrapped in an inline highlight and the marked text is stored alongside
// the original.
func ByDescription(jobs scraper.JobCollection, keywords []string, subset []int, markMatches bool) (scraper.JobCollection, error) {
	if !jobs.DescriptionsFetched {
		return scraper.JobCollection{}, ErrDescriptionsMissing
	}

	out := jobs.Clone()
	targets := out.IndexSet(subset)

	// Every pass starts from a clean slate, like the marked column: stale
	// verdicts from an earlier pass with different keywords must not leak
	// into the returned view.
	for i := range out.Records {
		out.Records[i].DescriptionVerdict = scraper.VerdictNone
		out.Records[i].DescriptionMarked = nil
	}

	for i := range out.Records {
		if !targets[i] {
			continue
		}
		rec := &out.Records[i]

		switch {
		case rec.DescriptionHTML == nil:
			continue
		case !rec.DescriptionHTML.IsKnown():
			rec.DescriptionVerdict = scraper.VerdictUnknown
		case markMatches:
			found, marked := MarkKeywords(rec.DescriptionHTML.Value(), keywords)
			rec.DescriptionMarked = &marked
			rec.DescriptionVerdict = verdictFor(found)
		default:
			rec.DescriptionVerdict = verdictFor(ContainsAny(rec.DescriptionHTML.Value(), keywords))
		}
	}

	return out.Select(func(r scraper.JobRecord) bool {
		return r.DescriptionVerdict == scraper.VerdictKeep ||
			r.DescriptionVerdict == scraper.VerdictUnknown
	}), nil
}

func verdictFor(keep bool) scraper.Verdict {
	if keep {
		return scraper.VerdictKeep
	}
	return scraper.VerdictDrop
}
