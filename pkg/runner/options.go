// Package runner converts many Markdown files concurrently.
package runner

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects what a run writes for each input file.
type Format string

const (
	// FormatHTML writes rendered HTML.
	FormatHTML Format = "html"

	// FormatAST writes the compact JSON syntax tree.
	FormatAST Format = "ast"
)

// ParseFormat parses a format name case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatHTML, FormatAST:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want html or ast)", ErrUnknownFormat, name)
	}
}

// Extension returns the file extension of output files in this format.
func (f Format) Extension() string {
	if f == FormatAST {
		return ".json"
	}
	return ".html"
}

// Options controls a multi-file conversion run.
type Options struct {
	// Paths are files or directories to convert. Defaults to ".".
	Paths []string

	// WorkingDir resolves relative Paths and OutputDir. Defaults to the
	// process working directory.
	WorkingDir string

	// Extensions are the lowercase file extensions treated as Markdown.
	// Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files and directories. Patterns are
	// matched against the slash-separated path relative to WorkingDir and
	// against the base name; "**" crosses directories.
	ExcludeGlobs []string

	// FollowSymlinks walks into symlinked directories.
	FollowSymlinks bool

	// OutputDir receives the converted files, mirroring the layout below
	// WorkingDir. Empty writes each output next to its source.
	OutputDir string

	// Format is the output format. Defaults to FormatHTML.
	Format Format

	// Jobs bounds the number of files converted at once.
	// 0 or negative means runtime.NumCPU().
	Jobs int
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveFormat() Format {
	if o.Format == "" {
		return FormatHTML
	}
	return o.Format
}
