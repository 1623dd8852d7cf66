// Logrus setup shared by the scraper binary and the test helpers.

package logging

import (
	log "github.com/sirupsen/logrus"
)

// Setup configures the global logger. Unknown levels fall back to info.
func Setup(level string) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

// Component returns a logger tagged with the component name, so log lines
// can be traced back to the session, crawler, filter, etc.
func Component(name string) *log.Entry {
	return log.WithField("component", name)
}
