package editscript

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"sqltext/pkg/sqltext"
)

// FileOptions controls batch rewriting of SQL files.
type FileOptions struct {
	OutDir  string // write results here instead of in place
	Workers int    // concurrent files (default 1)
	DryRun  bool   // compute results without writing
	Logger  *slog.Logger
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path    string `json:"path"`
	Output  string `json:"output,omitempty"`
	Written string `json:"written,omitempty"`
	Err     error  `json:"-"`
}

// ApplyFiles applies s to each file, one statement per file, with at most
// opts.Workers files in flight. Per-file failures are recorded in the
// results and joined into the returned error; they do not stop the other
// files. Context cancellation stops files that have not started.
func ApplyFiles(ctx context.Context, e *sqltext.Editor, s *Script, paths []string, opts FileOptions) ([]FileResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	if err := checkDestinations(paths, opts); err != nil {
		return nil, err
	}

	if opts.OutDir != "" && !opts.DryRun {
		if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = FileResult{Path: path, Err: err}
				return err
			}
			results[i] = applyFile(e, s, path, opts)
			if results[i].Err != nil {
				logger.Warn("edit script failed", "path", path, "error", results[i].Err)
			} else {
				logger.Debug("edit script applied", "path", path, "written", results[i].Written)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.Path, r.Err))
		}
	}
	return results, errors.Join(errs...)
}

func applyFile(e *sqltext.Editor, s *Script, path string, opts FileOptions) FileResult {
	res := FileResult{Path: path}

	data, err := os.ReadFile(path) //nolint:gosec // paths come from the caller
	if err != nil {
		res.Err = fmt.Errorf("read: %w", err)
		return res
	}

	text, terminated := splitTerminator(string(data))
	out, err := s.Apply(e, sqltext.Parse(text))
	if err != nil {
		res.Err = err
		return res
	}
	res.Output = out.String()
	if opts.DryRun {
		return res
	}

	content := res.Output
	if terminated {
		content += ";"
	}
	content += "\n"

	dest := destination(path, opts)
	if err := os.WriteFile(dest, []byte(content), 0o644); err != nil { //nolint:gosec // SQL files are not secrets
		res.Err = fmt.Errorf("write: %w", err)
		return res
	}
	res.Written = dest
	return res
}

// destination is where the rewritten path is written.
func destination(path string, opts FileOptions) string {
	if opts.OutDir != "" {
		return filepath.Join(opts.OutDir, filepath.Base(path))
	}
	return filepath.Clean(path)
}

// checkDestinations rejects inputs that would be written to the same file,
// such as a/q.sql and b/q.sql under one OutDir.
func checkDestinations(paths []string, opts FileOptions) error {
	if opts.DryRun {
		return nil
	}
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		dest := destination(path, opts)
		if prev, ok := seen[dest]; ok {
			return fmt.Errorf("%s and %s both write to %s", prev, path, dest)
		}
		seen[dest] = path
	}
	return nil
}

// splitTerminator trims surrounding whitespace and a single trailing
// semicolon, reporting whether one was present.
func splitTerminator(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if strings.HasSuffix(text, ";") {
		return strings.TrimSpace(strings.TrimSuffix(text, ";")), true
	}
	return text, false
}
