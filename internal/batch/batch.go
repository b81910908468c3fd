package batch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"introcut/internal/config"
	"introcut/internal/detect"
	"introcut/internal/history"
	"introcut/internal/logging"
	"introcut/internal/services"
)

// ErrLocked indicates another batch run holds the lock file.
var ErrLocked = errors.New("another batch run is active")

// Detector is the detection entry point the runner drives.
type Detector interface {
	Detect(ctx context.Context, mediaPath, subtitlePath string) detect.Result
}

// Outcome is the per-file result of a batch run.
type Outcome struct {
	RunID        string
	MediaPath    string
	SubtitlePath string
	Result       detect.Result
	Err          error
}

// Runner walks a directory tree, runs detection over every recognized media
// file with a bounded worker pool, and records outcomes in the history store.
// A lock file enforces a single concurrent run per log directory.
type Runner struct {
	detector   Detector
	store      *history.Store
	logger     *slog.Logger
	workers    int
	extensions map[string]struct{}
	lock       *flock.Flock
	lockPath   string
}

// New constructs a runner. store may be nil to skip persistence.
func New(cfg *config.Config, detector Detector, store *history.Store, logger *slog.Logger) *Runner {
	workers := cfg.Batch.Workers
	if workers < 1 {
		workers = 1
	}
	extensions := make(map[string]struct{}, len(cfg.Batch.Extensions))
	for _, ext := range cfg.Batch.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extensions[ext] = struct{}{}
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "introcut.lock")
	return &Runner{
		detector:   detector,
		store:      store,
		logger:     logging.WithComponent(logger, "batch"),
		workers:    workers,
		extensions: extensions,
		lock:       flock.New(lockPath),
		lockPath:   lockPath,
	}
}

// LockPath returns the lock file location.
func (r *Runner) LockPath() string {
	return r.lockPath
}

// Run processes every recognized media file under root and returns outcomes
// sorted by media path. It fails fast with ErrLocked when another run holds
// the lock.
func (r *Runner) Run(ctx context.Context, root string) ([]Outcome, error) {
	if err := os.MkdirAll(filepath.Dir(r.lockPath), 0o755); err != nil {
		return nil, fmt.Errorf("prepare lock directory: %w", err)
	}
	acquired, err := r.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("%w (lock file %s)", ErrLocked, r.lockPath)
	}
	defer func() {
		if unlockErr := r.lock.Unlock(); unlockErr != nil {
			r.logger.Warn("release batch lock failed", slog.Any("error", unlockErr))
		}
	}()

	files, err := r.Discover(root)
	if err != nil {
		return nil, err
	}
	r.logger.Info("batch run starting",
		slog.String("root", root),
		slog.Int("files", len(files)),
		slog.Int("workers", r.workers))

	jobs := make(chan string)
	outcomes := make([]Outcome, 0, len(files))
	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for mediaPath := range jobs {
				outcome := r.processOne(ctx, mediaPath)
				mu.Lock()
				outcomes = append(outcomes, outcome)
				mu.Unlock()
			}
		}()
	}

	for _, mediaPath := range files {
		select {
		case jobs <- mediaPath:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return outcomes, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(outcomes, func(i, j int) bool {
		return outcomes[i].MediaPath < outcomes[j].MediaPath
	})
	return outcomes, nil
}

func (r *Runner) processOne(ctx context.Context, mediaPath string) Outcome {
	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithMediaPath(ctx, mediaPath)
	logger := logging.WithContext(ctx, r.logger)

	outcome := Outcome{
		RunID:        runID,
		MediaPath:    mediaPath,
		SubtitlePath: SiblingSubtitle(mediaPath),
	}
	outcome.Result = r.detector.Detect(ctx, mediaPath, outcome.SubtitlePath)

	if r.store != nil {
		if err := r.persist(ctx, outcome); err != nil {
			logger.Warn("record detection failed", slog.Any("error", err))
			outcome.Err = err
		}
	}
	return outcome
}

func (r *Runner) persist(ctx context.Context, outcome Outcome) error {
	details := "{}"
	if len(outcome.Result.Details) > 0 {
		encoded, err := json.Marshal(outcome.Result.Details)
		if err != nil {
			return fmt.Errorf("encode details: %w", err)
		}
		details = string(encoded)
	}

	record := history.Record{
		ID:           outcome.RunID,
		MediaPath:    outcome.MediaPath,
		SubtitlePath: outcome.SubtitlePath,
		IntroEnd:     outcome.Result.IntroEnd,
		Confidence:   outcome.Result.Confidence,
		Method:       string(outcome.Result.Method),
		Details:      details,
	}
	if outcome.Result.HasOutro {
		outro := outcome.Result.OutroStart
		record.OutroStart = &outro
	}
	_, err := r.store.Save(ctx, record)
	return err
}

// Discover returns the recognized media files under root, sorted.
func (r *Runner) Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := r.extensions[ext]; ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// SiblingSubtitle returns the .srt file next to a media file, or "" when none
// exists.
func SiblingSubtitle(mediaPath string) string {
	base := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
	candidate := base + ".srt"
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate
	}
	return ""
}
