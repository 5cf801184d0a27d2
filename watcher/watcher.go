package watcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/encoding/charmap"

	"github.com/vic2tools/econstat/economy"
)

// DefaultAutosaveName is the filename the game writes on autosave.
const DefaultAutosaveName = "autosave.v2"

// DefaultDebounce is the minimum interval between two processed autosave
// events. The game fires several filesystem events per logical save.
const DefaultDebounce = 2 * time.Second

// ErrEmptySaveDir is returned when no save directory is configured.
var ErrEmptySaveDir = errors.New("save directory must not be empty")

// ErrEmptyOutputDir is returned when no output directory is configured.
var ErrEmptyOutputDir = errors.New("output directory must not be empty")

// ErrNoDate is returned when a save file does not start with a date line.
var ErrNoDate = errors.New("save file has no date header")

// Config holds the configuration for a save watcher.
type Config struct {
	// SaveDir is the game's save games directory to watch.
	SaveDir string
	// OutputDir receives dated copies of each autosave.
	OutputDir string
	// AutosaveName is the filename to react to; other files are ignored.
	AutosaveName string
	// Debounce suppresses duplicate events within the window.
	Debounce time.Duration
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() {
	if c.AutosaveName == "" {
		c.AutosaveName = DefaultAutosaveName
	}

	if c.Debounce <= 0 {
		c.Debounce = DefaultDebounce
	}
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.SaveDir == "" {
		return ErrEmptySaveDir
	}

	if c.OutputDir == "" {
		return ErrEmptyOutputDir
	}

	return nil
}

// Watcher copies the game's autosave into the collection directory under a
// date-based name whenever the game writes it. One campaign produces a
// growing set of files named 1836.1.1.txt, 1836.2.1.txt and so on, which
// the pipeline later processes chronologically.
type Watcher struct {
	config Config

	fsw  *fsnotify.Watcher
	done chan struct{}

	mu       sync.Mutex
	lastCopy time.Time
}

// New creates a Watcher. It sets config defaults and validates the config.
func New(cfg Config) (*Watcher, error) {
	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Watcher{config: cfg}, nil
}

// Start begins watching the save directory and handles events in a
// background goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.config.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating filesystem watcher: %w", err)
	}

	if err := fsw.Add(w.config.SaveDir); err != nil {
		fsw.Close()

		return fmt.Errorf("watching %q: %w", w.config.SaveDir, err)
	}

	w.fsw = fsw
	w.done = make(chan struct{})

	slog.Info("watching for autosaves",
		"dir", w.config.SaveDir, "output", w.config.OutputDir)

	go w.loop()

	return nil
}

// Stop shuts the watcher down and waits for the event loop to exit.
func (w *Watcher) Stop(ctx context.Context) error {
	if w.fsw == nil {
		return nil
	}

	slog.Info("stopping save watcher")

	if err := w.fsw.Close(); err != nil {
		return fmt.Errorf("closing filesystem watcher: %w", err)
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for watcher loop: %w", ctx.Err())
	}
}

func (w *Watcher) loop() {
	defer close(w.done)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			slog.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
		return
	}

	if !strings.EqualFold(filepath.Base(event.Name), w.config.AutosaveName) {
		return
	}

	if !w.debounce() {
		return
	}

	slog.Info("autosave modified", "file", event.Name)

	dest, err := w.CopyAutosave(event.Name)
	if err != nil {
		slog.Error("copying autosave failed", "error", err)

		return
	}

	slog.Info("copied autosave", "dest", dest)
}

// debounce reports whether enough time has passed since the last processed
// event.
func (w *Watcher) debounce() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if now.Sub(w.lastCopy) < w.config.Debounce {
		return false
	}

	w.lastCopy = now

	return true
}

// CopyAutosave copies a save file into the output directory, named after
// the in-game date from its header. It returns the destination path.
func (w *Watcher) CopyAutosave(path string) (string, error) {
	date, err := ReadSaveDate(path)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(w.config.OutputDir, date+".txt")

	src, err := os.Open(path) // #nosec G304 -- path comes from the watched dir
	if err != nil {
		return "", fmt.Errorf("opening autosave: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("creating %q: %w", dest, err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()

		return "", fmt.Errorf("copying autosave: %w", err)
	}

	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing %q: %w", dest, err)
	}

	return dest, nil
}

// ReadSaveDate reads the in-game date from the first line of a save file,
// which is always date="YYYY.M.D". Only the header is read; the file can be
// hundreds of megabytes.
func ReadSaveDate(path string) (string, error) {
	file, err := os.Open(path) // #nosec G304 -- caller-supplied save path
	if err != nil {
		return "", fmt.Errorf("opening save file: %w", err)
	}
	defer file.Close()

	reader := bufio.NewReader(charmap.ISO8859_1.NewDecoder().Reader(file))

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading save header: %w", err)
	}

	line = strings.TrimSpace(line)

	value, found := strings.CutPrefix(line, "date=")
	if !found {
		return "", fmt.Errorf("%w: %q", ErrNoDate, line)
	}

	date := strings.Trim(value, `"`)
	if _, _, _, ok := economy.ParseGameDate(date); !ok {
		return "", fmt.Errorf("%w: %q", ErrNoDate, line)
	}

	return date, nil
}
