package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/vic2tools/econstat/economy"
	"github.com/vic2tools/econstat/savefile"
)

// ErrNoSaveFiles is returned when the saves directory holds nothing to process.
var ErrNoSaveFiles = errors.New("no save files found")

// partialName is the progress file written between batches; its presence
// allows an interrupted run to resume.
const partialName = "economic_data_partial.json"

// Options configures a processing run.
type Options struct {
	// SavesDir is scanned for *.txt save files named after game dates.
	SavesDir string
	// OutputDir receives all generated JSON and CSV files.
	OutputDir string
	// Limit processes only the first N files when positive.
	Limit int
	// Resume skips files whose dates already exist in the partial file.
	Resume bool
	// BatchSize is the number of processed files between progress writes.
	BatchSize int
	// Workers caps parallelism; zero means one worker per CPU.
	Workers int
	// MajorCountries is how many countries the CSV summary covers.
	MajorCountries int
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.SavesDir == "" {
		o.SavesDir = "saves"
	}

	if o.OutputDir == "" {
		o.OutputDir = "output"
	}

	if o.BatchSize <= 0 {
		o.BatchSize = 50
	}

	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}

	if o.MajorCountries <= 0 {
		o.MajorCountries = 20
	}
}

// Processor runs the batch pipeline: parse every save, extract economic
// snapshots, and write the JSON/CSV time series.
type Processor struct {
	opts Options
	log  *slog.Logger
}

// New creates a Processor. A nil logger falls back to slog.Default.
func New(opts Options, log *slog.Logger) *Processor {
	opts.SetDefaults()

	if log == nil {
		log = slog.Default()
	}

	return &Processor{opts: opts, log: log}
}

// Run processes the saves directory. Files parse independently on a worker
// pool; results are ordered by game date before output generation.
func (p *Processor) Run(ctx context.Context) error {
	files, err := p.discover()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	snapshots, processedDates, err := p.loadPartial()
	if err != nil {
		return err
	}

	pending := make([]string, 0, len(files))

	for _, file := range files {
		stem := dateKeyOf(file)
		if _, done := processedDates[stem]; done {
			p.log.Debug("already processed", "file", filepath.Base(file))

			continue
		}

		pending = append(pending, file)
	}

	p.log.Info("processing save files",
		"total", len(files), "pending", len(pending), "workers", p.opts.Workers)

	snapshots, failed := p.processAll(ctx, pending, snapshots)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("processing interrupted: %w", err)
	}

	if len(failed) > 0 {
		p.log.Warn("some save files failed", "count", len(failed), "files", failed)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return dateKeyOfDate(snapshots[i].Date).less(dateKeyOfDate(snapshots[j].Date))
	})

	if err := writeJSON(filepath.Join(p.opts.OutputDir, "economic_data.json"), snapshots); err != nil {
		return err
	}

	// The partial file is only useful mid-run.
	_ = os.Remove(filepath.Join(p.opts.OutputDir, partialName))

	if err := p.writeTimeSeries(snapshots); err != nil {
		return err
	}

	p.log.Info("processing complete", "snapshots", len(snapshots))

	return nil
}

// ProcessFile parses a single save and extracts its snapshot.
func ProcessFile(path string) (economy.Snapshot, error) {
	text, err := savefile.ReadFile(path)
	if err != nil {
		return economy.Snapshot{}, err
	}

	return economy.BuildSnapshot(savefile.Parse(text)), nil
}

func (p *Processor) discover() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(p.opts.SavesDir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("scanning saves dir: %w", err)
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoSaveFiles, p.opts.SavesDir)
	}

	sort.Slice(files, func(i, j int) bool {
		return dateKeyOf(files[i]).less(dateKeyOf(files[j]))
	})

	if p.opts.Limit > 0 && len(files) > p.opts.Limit {
		files = files[:p.opts.Limit]
	}

	return files, nil
}

// loadPartial reads the partial progress file when resuming. Dates already
// present are skipped by the run.
func (p *Processor) loadPartial() ([]economy.Snapshot, map[dateKey]struct{}, error) {
	done := map[dateKey]struct{}{}

	if !p.opts.Resume {
		return nil, done, nil
	}

	raw, err := os.ReadFile(filepath.Join(p.opts.OutputDir, partialName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, done, nil
	}

	if err != nil {
		return nil, nil, fmt.Errorf("reading partial data: %w", err)
	}

	var snapshots []economy.Snapshot
	if err := json.Unmarshal(raw, &snapshots); err != nil {
		return nil, nil, fmt.Errorf("decoding partial data: %w", err)
	}

	for _, s := range snapshots {
		done[dateKeyOfDate(s.Date)] = struct{}{}
	}

	p.log.Info("resuming from partial data", "snapshots", len(snapshots))

	return snapshots, done, nil
}

// processAll fans the pending files out over the worker pool. Completed
// snapshots are appended to prior and progress is persisted every BatchSize
// results so an interrupted run can resume.
func (p *Processor) processAll(ctx context.Context, files []string, prior []economy.Snapshot) ([]economy.Snapshot, []string) {
	jobs := make(chan string)

	type outcome struct {
		file     string
		snapshot economy.Snapshot
		err      error
	}

	results := make(chan outcome)

	var wg sync.WaitGroup

	for range p.opts.Workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for file := range jobs {
				if ctx.Err() != nil {
					continue
				}

				snapshot, err := ProcessFile(file)
				results <- outcome{file: file, snapshot: snapshot, err: err}
			}
		}()
	}

	go func() {
		defer close(jobs)

		for _, file := range files {
			select {
			case jobs <- file:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	snapshots := prior

	var failed []string

	for res := range results {
		if res.err != nil {
			p.log.Error("processing save failed", "file", res.file, "error", res.err)
			failed = append(failed, res.file)

			continue
		}

		p.log.Info("processed save", "file", filepath.Base(res.file), "date", res.snapshot.Date)
		snapshots = append(snapshots, res.snapshot)

		if len(snapshots)%p.opts.BatchSize == 0 {
			if err := writeJSON(filepath.Join(p.opts.OutputDir, partialName), snapshots); err != nil {
				p.log.Warn("writing partial progress failed", "error", err)
			}
		}
	}

	return snapshots, failed
}
