package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/san-kum/tradenet/internal/ingest"
	"golang.org/x/sync/errgroup"
)

// WriteFile writes s to path. An empty format is inferred from the path.
func (r *Registry) WriteFile(path, format string, s *Snapshot) error {
	if format == "" {
		format = FormatFromPath(path)
	}
	write, err := r.Get(format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create parent dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, s); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// BatchResult reports one result of a batch export.
type BatchResult struct {
	Name string
	Path string
	Err  error
}

// Batch lays out and writes every result into dir, at most concurrency at a
// time. Each result runs on its own engine. Failures are collected so one
// bad result does not stop the rest; the returned error joins them.
func (r *Registry) Batch(ctx context.Context, results []ingest.Result, dir, format string, opts Options, concurrency int) ([]BatchResult, error) {
	if _, err := r.Get(format); err != nil {
		return nil, err
	}
	if concurrency < 1 {
		concurrency = 4
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	out := make([]BatchResult, len(results))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, res := range results {
		path := filepath.Join(dir, fmt.Sprintf("%02d-%s.%s", i+1, slug(res.Name), format))
		out[i] = BatchResult{Name: res.Name, Path: path}
		g.Go(func() error {
			snap, err := Prepare(ctx, res, opts)
			if err == nil {
				err = r.WriteFile(path, format, snap)
			}
			if err != nil {
				out[i].Err = err
				logger.Error("export failed", "result", res.Name, "err", err)
				return nil
			}
			logger.Info("snapshot written", "result", res.Name, "path", path, "ticks", snap.Ticks)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return out, err
	}

	var errs []error
	for _, br := range out {
		if br.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", br.Name, br.Err))
		}
	}
	return out, errors.Join(errs...)
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "result"
	}
	return s
}
