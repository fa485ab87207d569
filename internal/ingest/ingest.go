package ingest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hireflow/assessment-recommender/internal/catalog"
	"github.com/hireflow/assessment-recommender/internal/embeddings"
	"github.com/hireflow/assessment-recommender/internal/index"
	"github.com/hireflow/assessment-recommender/internal/types"
	"golang.org/x/sync/errgroup"
)

// Record is one line of the ingestion input: an assessment record plus the
// representative query phrasing its embedding is generated from. The index
// is keyed by query phrasing, not by the assessment's own description.
type Record struct {
	Query string `json:"query"`
	types.Assessment
}

// LoadRecords reads a JSONL records file, one Record per line. Blank lines
// are skipped. Records without an ID get a stable one derived from the URL.
func LoadRecords(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open records file: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var record Record
		if err := json.Unmarshal(raw, &record); err != nil {
			return nil, fmt.Errorf("failed to parse record on line %d: %w", line, err)
		}
		if record.Query == "" {
			return nil, fmt.Errorf("record on line %d has no query text", line)
		}
		if record.URL == "" {
			return nil, fmt.Errorf("record on line %d has no url", line)
		}
		if record.ID == "" {
			record.ID = embeddings.Hash(record.URL)
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records file: %w", err)
	}
	return records, nil
}

// Config controls one ingestion run
type Config struct {
	// Concurrency bounds parallel embedding and tagging calls
	Concurrency int
	// Progress enables the progress bar
	Progress bool
}

// Ingestor loads assessment records into the catalog store and the vector
// index.
type Ingestor struct {
	provider embeddings.EmbeddingProvider
	index    index.VectorIndex
	store    *catalog.Store
	tagger   Tagger
	logger   *log.Logger
}

// NewIngestor creates an Ingestor. A nil tagger falls back to StaticTagger.
func NewIngestor(provider embeddings.EmbeddingProvider, idx index.VectorIndex, store *catalog.Store, tagger Tagger, logger *log.Logger) *Ingestor {
	if tagger == nil {
		tagger = StaticTagger{}
	}
	return &Ingestor{
		provider: provider,
		index:    idx,
		store:    store,
		tagger:   tagger,
		logger:   logger,
	}
}

// Run enriches, embeds, stores and indexes the given records. Tagging is
// best-effort: a tagging failure degrades the record to the static
// fallbacks instead of failing the run. Embedding or storage failures
// abort the run.
func (g *Ingestor) Run(ctx context.Context, records []Record, config Config) error {
	if config.Concurrency <= 0 {
		config.Concurrency = 4
	}

	startTime := time.Now()
	g.logger.Info("Starting ingestion", "records", len(records), "concurrency", config.Concurrency)

	var progress Progress
	if config.Progress {
		progress = NewBarProgress(len(records))
	} else {
		progress = NewNoopProgress()
	}
	defer progress.Close()

	entries := make([]index.Entry, len(records))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(config.Concurrency)

	for i, record := range records {
		eg.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			record.Assessment = g.enrich(gCtx, record.Assessment)

			vector, err := g.provider.GenerateEmbedding(gCtx, record.Query)
			if err != nil {
				return fmt.Errorf("failed to embed query for %s: %w", record.ID, err)
			}

			entries[i] = index.Entry{
				ID:        record.ID,
				QueryText: record.Query,
				Vector:    vector,
				Record:    record.Assessment,
			}

			if err := g.store.Put(gCtx, record.Assessment, record.Query); err != nil {
				return fmt.Errorf("failed to store %s: %w", record.ID, err)
			}

			return progress.Add(1)
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	if err := g.index.Upsert(ctx, entries); err != nil {
		return fmt.Errorf("failed to upsert into vector index: %w", err)
	}

	g.logger.Info("Ingestion completed",
		"records", len(records),
		"indexed", g.index.Count(),
		"duration", time.Since(startTime))

	return nil
}

// enrich fills missing test types and job roles via the tagger, degrading
// to the static fallbacks when tagging fails.
func (g *Ingestor) enrich(ctx context.Context, a types.Assessment) types.Assessment {
	if len(a.TestType) == 0 {
		codes, err := g.tagger.TagTestTypes(ctx, a.Name, a.Description)
		if err != nil {
			g.logger.Warn("Test type tagging failed", "id", a.ID, "error", err)
			codes = []string{UnknownTestType}
		}
		a.TestType = codes
	}
	if len(a.JobRoles) == 0 {
		roles, err := g.tagger.TagJobRoles(ctx, a.Name, a.Description)
		if err != nil {
			g.logger.Warn("Job role tagging failed", "id", a.ID, "error", err)
			roles = []string{GeneralRoles}
		}
		a.JobRoles = roles
	}
	return a
}
