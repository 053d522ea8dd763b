// Package configloader resolves the converter options for the mdconv
// command line. Sources are layered over options.Default: the user config,
// the project config, an explicit --config file, then MDCONV_* environment
// variables.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/mdconv/pkg/fsutil"
	"github.com/yaklabco/mdconv/pkg/options"
)

// ProjectConfigName is the file written by WriteProjectConfig.
const ProjectConfigName = ".mdconv.yml"

// configFileHeader opens generated config files.
const configFileHeader = `# mdconv configuration
# Omitted keys keep their built-in defaults.`

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// WorkingDir is where the project config search starts.
	// Defaults to the current working directory.
	WorkingDir string

	// ExplicitPath is a config file given with --config.
	ExplicitPath string

	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string
}

// LoadResult is the resolved configuration plus where it came from.
type LoadResult struct {
	Options options.Options

	Paths *ConfigPaths

	// LoadedFrom lists the files that were read, lowest precedence first.
	LoadedFrom []string

	// Warnings are non-fatal problems such as unknown keys.
	Warnings []string
}

// Load resolves the options. Precedence, highest first:
//  1. Environment variables (MDCONV_*)
//  2. Explicit config file
//  3. Project config (.mdconv.yml, searched upward)
//  4. User config ($XDG_CONFIG_HOME/mdconv/config.yaml)
//  5. Defaults
//
// Every returned error matches ErrInvalidConfig.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	paths, err := DiscoverPaths(ctx, opts.WorkingDir, getenv)
	if err != nil {
		return nil, fmt.Errorf("%w: discover paths: %w", ErrInvalidConfig, err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	resolved := options.Default()

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}

	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		resolved, err = loadConfigFile(ctx, resolved, layer.path, result)
		if err != nil {
			return nil, fmt.Errorf("%w: load %s config: %w", ErrInvalidConfig, layer.name, err)
		}
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(&resolved, getenv); err != nil {
			return nil, fmt.Errorf("%w: load environment: %w", ErrInvalidConfig, err)
		}
	}

	if err := Validate(resolved); err != nil {
		return nil, err
	}

	result.Options = resolved
	return result, nil
}

func loadConfigFile(ctx context.Context, base options.Options, path string, result *LoadResult) (options.Options, error) {
	if fsutil.IsStdio(path) {
		return base, fmt.Errorf("config path %q must name a file", path)
	}

	content, err := fsutil.ReadInput(ctx, path, nil)
	if err != nil {
		return base, err
	}

	for _, w := range UnknownKeys(path, content) {
		result.Warnings = append(result.Warnings, w.Error())
	}

	merged, err := merge(base, content)
	if err != nil {
		return base, fmt.Errorf("%s: %w", path, err)
	}

	result.LoadedFrom = append(result.LoadedFrom, path)
	return merged, nil
}

// WriteProjectConfig writes opts as a commented YAML config file to path.
func WriteProjectConfig(ctx context.Context, path string, opts options.Options) error {
	content, err := opts.ToYAMLWithHeader(configFileHeader)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := fsutil.WriteAtomic(ctx, path, content, 0); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
