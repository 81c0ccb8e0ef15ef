package db

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/venicegeo/goes-ash-broker/abi"
	"github.com/venicegeo/goes-ash-broker/util"
)

// BeginIngestJobMessage asks the importer loop to start a job now.
const BeginIngestJobMessage = "begin"

// AbortIngestJobMessage asks a running ingest job to stop.
const AbortIngestJobMessage = "abort"

// abortCheckInterval is how many rows are written between abort checks.
const abortCheckInterval = 256

// Importer manages the state for an ingest job.
// Mainly useful when launching the job on an interval.
type Importer struct {
	archive        *abi.Archive
	product        string
	lookback       time.Duration
	dbConnProvider ConnectionProvider
	statusChan     chan chan string
}

// NewImporter intializes a new importer that indexes every archive file
// under the product prefix whose capture hour falls inside the lookback
// window.
func NewImporter(
	archive *abi.Archive,
	product string,
	lookback time.Duration,
	dbConnProvider ConnectionProvider) *Importer {
	return &Importer{
		archive:        archive,
		product:        product,
		lookback:       lookback,
		dbConnProvider: dbConnProvider,
		statusChan:     make(chan chan string, 10)}
}

// ImportWhile performs the Import() task and waits for a channel.
// Note: this is blocking
// The function will exit when messageChan is closed and any in-progress jobs complete.
// To close quickly, send AbortIngestJobMessage on messageChan before closing it.
func (imp *Importer) ImportWhile(messageChan <-chan string, maxTimeBetweenJobs time.Duration) {
	log.Println("Job loop started with frequency", maxTimeBetweenJobs)

	previousStatus := "\tNone"
	var nextScheduledStartTime time.Time
	var scheduleTimer *time.Timer

	for {
		if scheduleTimer == nil {
			scheduleTimer = time.NewTimer(maxTimeBetweenJobs)
			nextScheduledStartTime = time.Now().Add(maxTimeBetweenJobs)
		}

		select {
		case <-scheduleTimer.C:
			scheduleTimer = nil
			previousStatus = imp.Import(messageChan)
		case msg, ok := <-messageChan:
			if !ok {
				return //The message channel has been closed.
			}
			switch msg {
			case BeginIngestJobMessage:
				scheduleTimer = nil
				previousStatus = imp.Import(messageChan)
			default:
				//ignore this message. We only want ones for begin.
			}
		case respChan := <-imp.statusChan:
			select {
			case respChan <- fmt.Sprintf("%v\nStatus: Sleeping until %v\nPrevious job:\n%v",
				time.Now().Format("Mon Jan _2 15:04:05 2006"),
				nextScheduledStartTime.Format("Mon Jan _2 15:04:05 2006"),
				previousStatus): //good
			default: //ignore
			}
		}
	}
}

// GetStatus is a thread safe way to get information about the import operation.
func (imp *Importer) GetStatus() string {
	responseChan := make(chan string, 1) //Must have a buffer. reportStatus won't wait if it can't send.
	imp.statusChan <- responseChan
	status := <-responseChan
	return status
}

// Import lists the archive for the lookback window and ingests the
// resulting scene entries, returning a human-readable job summary.
func (imp *Importer) Import(messageChan <-chan string) (result string) {
	ctx := &util.BasicLogContext{}
	start := time.Now()

	entries := []abi.ListEntry{}
	for _, prefix := range imp.lookbackPrefixes(time.Now().UTC()) {
		pageEntries, err := imp.archive.ListPrefix(ctx, prefix)
		if err != nil {
			util.LogSimpleErr(ctx, "Could not list archive prefix "+prefix, err)
			return fmt.Sprintf("\tFailed listing %s: %v", prefix, err)
		}
		entries = append(entries, pageEntries...)
	}

	//Database connection is opened right before the ingest, and closed
	//immediately after.
	database, err := imp.dbConnProvider(ctx)
	if err != nil {
		util.LogSimpleErr(ctx, "Could not open database connection.", err)
		return fmt.Sprintf("\tFailed opening database: %v", err)
	}
	defer database.Close()

	inserted, skipped, err := imp.Ingest(entries, database, messageChan)
	if err != nil {
		return fmt.Sprintf("\tFailed after %d rows: %v", inserted, err)
	}

	return fmt.Sprintf("\tIndexed %d scene files (%d keys skipped); duration: %fs",
		inserted, skipped, time.Since(start).Seconds())
}

// Ingest upserts the listed scene files into the index, checking for an
// abort message periodically.
func (imp *Importer) Ingest(entries []abi.ListEntry, database *sql.DB, messageChan <-chan string) (inserted, skipped int, err error) {
	stmt, err := database.Prepare(`
		INSERT INTO public.scenes (product_id, satellite, band, acquisition_date, scene_url)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id) DO UPDATE SET scene_url = EXCLUDED.scene_url`)
	if err != nil {
		return 0, 0, err
	}
	defer stmt.Close()

	for i, entry := range entries {
		if i%abortCheckInterval == 0 && aborted(messageChan) {
			return inserted, skipped, fmt.Errorf("ingest aborted by request")
		}

		id, parseErr := abi.ParseSceneID(entry.Key)
		if parseErr != nil {
			//Listings contain manifest and index keys too. Not an error.
			skipped++
			continue
		}

		_, err = stmt.Exec(id.Name, id.Satellite, id.Channel, id.Start, imp.archive.SceneURL(entry.Key))
		if err != nil {
			return inserted, skipped, err
		}
		inserted++
	}

	return inserted, skipped, nil
}

// lookbackPrefixes enumerates the archive hour prefixes in the lookback window.
func (imp *Importer) lookbackPrefixes(now time.Time) []string {
	prefixes := []string{}
	seen := map[string]bool{}
	for t := now.Add(-imp.lookback); !t.After(now); t = t.Add(time.Hour) {
		p := abi.HourPrefix(imp.product, t)
		if !seen[p] {
			seen[p] = true
			prefixes = append(prefixes, p)
		}
	}
	final := abi.HourPrefix(imp.product, now)
	if !seen[final] {
		prefixes = append(prefixes, final)
	}
	return prefixes
}

func aborted(messageChan <-chan string) bool {
	select {
	case msg, ok := <-messageChan:
		if !ok {
			return true
		}
		return msg == AbortIngestJobMessage
	default:
		return false
	}
}
