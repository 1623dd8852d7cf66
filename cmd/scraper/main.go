package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"go-jobradar-automation/internal/config"
	"go-jobradar-automation/internal/dedup"
	"go-jobradar-automation/internal/filter"
	"go-jobradar-automation/internal/logging"
	"go-jobradar-automation/internal/report"
	"go-jobradar-automation/internal/scraper"
	"go-jobradar-automation/internal/session"
	"go-jobradar-automation/internal/telegram"
)

func main() {
	//load config
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)
	log.Infof("Config loaded. Keywords: %q", cfg.Keywords)

	//setup context with timeout = 30 mins; the pipeline checks it between
	//attempts, pages and description fetches
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	//start and test the session
	sess := session.New()
	defer sess.Close()
	if err := sess.TestConnection(ctx); err != nil {
		log.Fatalf("Session test failed: %v", err)
	}

	//build the search query
	workLocations := make([]scraper.WorkLocation, 0, len(cfg.WorkLocations))
	for _, name := range cfg.WorkLocations {
		wl, err := scraper.ParseWorkLocation(name)
		if err != nil {
			log.Fatalf("Invalid work location: %v", err)
		}
		workLocations = append(workLocations, wl)
	}
	query, err := scraper.NewSearchQuery(cfg.Keywords, cfg.RecencyDays, cfg.Location, cfg.GeoID, workLocations...)
	if err != nil {
		log.Fatalf("Invalid search query: %v", err)
	}

	//scrape listing pages
	crawler := scraper.NewCrawler(sess, cfg.PageSize, cfg.MaxJobs)
	jobs := crawler.ScrapeJobs(ctx, query, 0)
	log.Infof("Scraped %d jobs", jobs.Len())

	//title filter
	kept, err := filter.ByTitle(jobs, filter.TitleRule{
		AlwaysKeep: cfg.TitleAlwaysKeep,
		Keep:       cfg.TitleKeep,
		Discard:    cfg.TitleDiscard,
	}, nil)
	if err != nil {
		log.Fatalf("Title filter failed: %v", err)
	}
	log.Infof("Title filter: %d/%d jobs kept", kept.Len(), jobs.Len())

	//fetch descriptions for the surviving jobs
	withDescr := crawler.FetchDescriptions(ctx, kept, nil)
	log.Infof("Fetched descriptions for %d/%d jobs", withDescr.Len(), kept.Len())

	//description filter
	final := withDescr
	if len(cfg.DescriptionKeywords) > 0 {
		final, err = filter.ByDescription(withDescr, cfg.DescriptionKeywords, nil, cfg.MarkMatches)
		if err != nil {
			log.Fatalf("Description filter failed: %v", err)
		}
		log.Infof("Description filter: %d/%d jobs kept", final.Len(), withDescr.Len())
	}

	//write the report
	path, err := report.Write(final, cfg.OutputFolder, "", cfg.MarkMatches)
	if err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	log.Infof("Report written to %s", path)

	//json results dump next to the report
	saveJobs(final, cfg.OutputFolder)

	//telegram notifications for jobs not seen in earlier runs
	if cfg.TelegramToken != "" {
		notify(final, cfg)
	}

	log.Info("Execution finished.")
}

func notify(jobs scraper.JobCollection, cfg *config.Config) {
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		log.Warnf("Failed to init Telegram bot: %v", err)
		return
	}

	cache := dedup.NewSeenCache(cfg.CachePath)
	var unseen []scraper.JobRecord
	for _, rec := range jobs.Records {
		if !cache.IsSeen(rec.ID) {
			unseen = append(unseen, rec)
		}
	}
	log.Infof("Notification dedup: %d total -> %d unseen jobs", jobs.Len(), len(unseen))
	if len(unseen) == 0 {
		return
	}

	sent := 0
	var sentIDs []string
	for _, rec := range unseen {
		if err := bot.SendJob(rec); err != nil {
			log.Warnf("Failed to send job %s to Telegram: %v", rec.ID, err)
			continue
		}
		sentIDs = append(sentIDs, rec.ID)
		sent++
		//1 second delay to avoid 429
		time.Sleep(1 * time.Second)
	}
	cache.Add(sentIDs)

	status := fmt.Sprintf("Found %d new jobs, sent %d.", len(unseen), sent)
	if err := bot.SendStatus(status); err != nil {
		log.Warnf("Failed to send status to Telegram: %v", err)
	}
}

func saveJobs(jobs scraper.JobCollection, folder string) {
	if jobs.Len() == 0 {
		log.Info("No jobs to save.")
		return
	}

	if err := os.MkdirAll(folder, 0o755); err != nil {
		log.Warnf("Failed to create results directory: %v", err)
		return
	}

	//gen filename: job-search-YYYY-MM-DD.json
	filename := fmt.Sprintf("job-search-%s.json", time.Now().Format("2006-01-02"))
	path := filepath.Join(folder, filename)

	data, err := json.MarshalIndent(jobs.Records, "", " ")
	if err != nil {
		log.Warnf("Failed to marshal jobs to JSON: %v", err)
		return
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Warnf("Failed to write results file: %v", err)
		return
	}

	log.Infof("Results saved to %s", path)
}
