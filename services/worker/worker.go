package worker

import (
	"context"
	"encoding/json"
	"time"

	"stayscan/hotelworker/internal/scraper"
	"stayscan/hotelworker/logger"
	"stayscan/hotelworker/services/publisher"
)

// Source produces one crawl document per run
type Source interface {
	Run(ctx context.Context) (*scraper.Document, error)
}

// DocumentSaver persists a document to a file and returns its path
type DocumentSaver interface {
	Save(doc *scraper.Document, filename string) (string, error)
}

// DatabaseSaver flattens a document into a database
type DatabaseSaver interface {
	SaveDocument(doc *scraper.Document) error
}

// Worker runs one crawl pass end to end: crawl, save the JSON document,
// publish each hotel, then flatten into the database. The publisher and
// database sinks are optional; a nil sink is skipped.
type Worker struct {
	source     Source
	saver      DocumentSaver
	outputFile string
	pub        publisher.Publisher
	db         DatabaseSaver
	log        *logger.Logger
}

// NewWorker creates a worker over an already-wired source and sinks
func NewWorker(source Source, saver DocumentSaver, outputFile string, pub publisher.Publisher, db DatabaseSaver) *Worker {
	return &Worker{
		source:     source,
		saver:      saver,
		outputFile: outputFile,
		pub:        pub,
		db:         db,
		log:        logger.ForWorker(),
	}
}

// Run executes the pass. Sink failures are logged and do not abort the
// remaining sinks; only a crawl that produced no document is fatal.
func (w *Worker) Run(ctx context.Context) error {
	start := time.Now()

	doc, err := w.source.Run(ctx)
	if doc == nil {
		return err
	}
	if err != nil {
		w.log.Warn().Err(err).Msg("Crawl ended early, flushing partial document")
	}

	w.log.Info().
		Str("city", doc.City).
		Int("hotels", len(doc.Hotels)).
		Dur("elapsed", time.Since(start)).
		Msg("Crawl finished")

	if w.saver != nil {
		path, saveErr := w.saver.Save(doc, w.outputFile)
		if saveErr != nil {
			w.log.Error().Err(saveErr).Msg("Failed to save document")
		} else {
			w.log.Info().Str("path", path).Msg("Saved document")
		}
	}

	if w.pub != nil {
		w.publish(ctx, doc)
	}

	if w.db != nil {
		if dbErr := w.db.SaveDocument(doc); dbErr != nil {
			w.log.Error().Err(dbErr).Msg("Failed to write document to database")
		} else {
			w.log.Info().Int("hotels", len(doc.Hotels)).Msg("Wrote document to database")
		}
	}

	return err
}

// publish pushes each hotel individually so consumers handle fixed-size
// messages, then trims the streams.
func (w *Worker) publish(ctx context.Context, doc *scraper.Document) {
	published := 0
	for i := range doc.Hotels {
		hotel := &doc.Hotels[i]

		data, err := json.Marshal(hotel)
		if err != nil {
			w.log.Error().Err(err).Str("hotel", hotel.Name).Msg("Failed to encode hotel")
			continue
		}

		if err := w.pub.Publish(ctx, "hotel", data); err != nil {
			w.log.Error().Err(err).Str("hotel", hotel.Name).Msg("Failed to publish hotel")
			continue
		}
		published++
	}

	w.log.Info().Int("published", published).Msg("Published hotels")

	if err := w.pub.TrimStreams(ctx); err != nil {
		w.log.Error().Err(err).Msg("Failed to trim streams")
	}
}
