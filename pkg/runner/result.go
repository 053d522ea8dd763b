package runner

import "errors"

// FileOutcome is the result of converting one file.
type FileOutcome struct {
	// Path is the absolute source path.
	Path string

	// Target is the output path.
	Target string

	// BytesIn and BytesOut are the sizes of the source and the output.
	BytesIn  int
	BytesOut int

	// Written is false when the target already held identical content.
	Written bool

	// Error is set when the file could not be converted or written.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesConverted  int
	FilesWritten    int
	FilesUnchanged  int
	FilesErrored    int
	BytesIn         int64
	BytesOut        int64
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per converted file, sorted by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any file failed.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// Err joins the errors of every failed file, or returns nil.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errors.Join(errs...)
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)
	r.Stats.BytesIn += int64(outcome.BytesIn)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesConverted++
	r.Stats.BytesOut += int64(outcome.BytesOut)
	if outcome.Written {
		r.Stats.FilesWritten++
	} else {
		r.Stats.FilesUnchanged++
	}
}
