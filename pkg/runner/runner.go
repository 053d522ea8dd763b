package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/mdconv/pkg/convert"
	"github.com/yaklabco/mdconv/pkg/fsutil"
)

// Runner converts sets of files with one Converter.
type Runner struct {
	Converter *convert.Converter
}

// New creates a Runner that converts with conv.
func New(conv *convert.Converter) *Runner {
	return &Runner{Converter: conv}
}

// Run discovers the files selected by opts and converts them concurrently.
// Outcomes are reported in discovery order. A file that fails does not stop
// the others; its error is recorded on its FileOutcome.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	outDir := opts.OutputDir
	if outDir != "" && !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}
	format := opts.effectiveFormat()

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	outcomes := make([]FileOutcome, len(files))
	done := make([]bool, len(files))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			target := TargetPath(workDir, outDir, path, format)
			outcomes[i] = r.convertFile(groupCtx, path, target, format)
			done[i] = true
			return nil
		})
	}
	_ = group.Wait()

	for i, outcome := range outcomes {
		if done[i] {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) convertFile(ctx context.Context, path, target string, format Format) FileOutcome {
	outcome := FileOutcome{Path: path, Target: target}

	source, err := fsutil.ReadInput(ctx, path, nil)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.BytesIn = len(source)

	var content string
	switch format {
	case FormatAST:
		if content, err = r.Converter.ASTJSON(ctx, string(source)); err == nil {
			content += "\n"
		}
	default:
		content, err = r.Converter.HTML(ctx, string(source))
	}
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}
	outcome.BytesOut = len(content)

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		outcome.Error = fmt.Errorf("create output directory: %w", err)
		return outcome
	}

	outcome.Written, outcome.Error = fsutil.WriteOutput(ctx, target, []byte(content), nil)
	return outcome
}

// TargetPath returns where the output for source is written. With an empty
// outDir the output sits next to the source; otherwise outDir mirrors the
// layout of source below workDir. Sources outside workDir land directly in
// outDir.
func TargetPath(workDir, outDir, source string, format Format) string {
	stem := strings.TrimSuffix(source, filepath.Ext(source))
	if outDir == "" {
		return stem + format.Extension()
	}

	rel, err := filepath.Rel(workDir, stem)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(stem)
	}
	return filepath.Join(outDir, rel+format.Extension())
}
