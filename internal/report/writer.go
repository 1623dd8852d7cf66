// Report writing: one static UTF-8 HTML file per export, browsable without
// any server. Each record is a title block followed by its description,
// separated by a fixed delimiter.

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-jobradar-automation/internal/logging"
	"go-jobradar-automation/internal/scraper"
)

// InvalidFilenameError is returned when an explicit filename does not end
// with the report extension.
type InvalidFilenameError struct {
	Filename string
}

func (e *InvalidFilenameError) Error() string {
	return fmt.Sprintf("report filename %q must end with %s", e.Filename, reportExtension)
}

const (
	reportExtension = ".html"

	htmlStart = "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n"
	markStyle = "<style>\nmark { background-color: #a6e22e; }\n</style>\n"
	bodyStart = "</head>\n<body>\n"
	bodyEnd   = "</body>\n"
	htmlEnd   = "</html>\n"

	jobTitleBlock = `
<h1 class="title">
    <a class="hidden-nested-link" href="%s">%s at %s, %s</a>
</h1>
`
)

// JobSeparator is the fixed delimiter between records.
var JobSeparator = "\n" + strings.Repeat("-", 500) + "\n"

// Write serializes the collection into an HTML file under folder, creating
// the folder if needed, and returns the path written.
//
// An empty filename generates one from the current timestamp, the search
// keywords and the work-location code. Each record's description body is
// the marked version when preferMarked is set and a marked text exists,
// else the raw version, else the UNKNOWN sentinel.
func Write(jobs scraper.JobCollection, folder, filename string, preferMarked bool) (string, error) {
	params := jobs.Query.Params()

	if filename == "" {
		filename = fmt.Sprintf("%s_%s_wl=%s%s",
			time.Now().Format("20060102-150405"),
			params.Keywords, params.WorkLocationCode, reportExtension)
	} else if !strings.HasSuffix(filename, reportExtension) {
		return "", &InvalidFilenameError{Filename: filename}
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		return "", fmt.Errorf("create report folder: %w", err)
	}

	var b strings.Builder
	b.WriteString(htmlStart)
	b.WriteString(markStyle)
	b.WriteString(bodyStart)
	for _, rec := range jobs.Records {
		fmt.Fprintf(&b, jobTitleBlock,
			rec.Link, rec.Title, rec.Company, rec.Location)
		b.WriteString(descriptionBody(rec, preferMarked))
		b.WriteString(JobSeparator)
	}
	b.WriteString(bodyEnd)
	b.WriteString(htmlEnd)

	path := filepath.Join(folder, filename)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	logging.Component("report").Infof("Wrote report with %d jobs to %s", jobs.Len(), path)
	return path, nil
}

func descriptionBody(rec scraper.JobRecord, preferMarked bool) string {
	if preferMarked && rec.DescriptionMarked != nil {
		return *rec.DescriptionMarked
	}
	if rec.DescriptionHTML != nil {
		return rec.DescriptionHTML.String()
	}
	return scraper.SentinelUnknown
}
