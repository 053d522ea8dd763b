package configloader

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdconv/pkg/options"
)

// ErrInvalidConfig marks every failure to produce a usable configuration.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError describes one problem in a configuration source.
type ValidationError struct {
	// FilePath is the config file containing the problem (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int

	// Field is the dotted key, e.g. "render.hardbreaks".
	Field string

	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// Unwrap lets callers match ErrInvalidConfig.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// knownKeys maps each section key to its field keys, from the yaml tags.
//
//nolint:gochecknoglobals // computed once from the Options type
var knownKeys = func() map[string]map[string]bool {
	keys := make(map[string]map[string]bool)
	root := reflect.TypeFor[options.Options]()
	for i := range root.NumField() {
		section := root.Field(i)
		fields := make(map[string]bool)
		for j := range section.Type.NumField() {
			fields[yamlKey(section.Type.Field(j))] = true
		}
		keys[yamlKey(section)] = fields
	}
	return keys
}()

func yamlKey(f reflect.StructField) string {
	key, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	return key
}

// UnknownKeys returns a warning for every key in data that does not name
// an option. Malformed YAML yields no warnings; decoding reports it.
func UnknownKeys(path string, data []byte) []ValidationError {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil || len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil
	}

	var warnings []ValidationError
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		fields, ok := knownKeys[key.Value]
		if !ok {
			warnings = append(warnings, ValidationError{
				FilePath: path, Line: key.Line, Field: key.Value, Message: "unknown section",
			})
			continue
		}
		if value.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(value.Content); j += 2 {
			field := value.Content[j]
			if !fields[field.Value] {
				warnings = append(warnings, ValidationError{
					FilePath: path,
					Line:     field.Line,
					Field:    key.Value + "." + field.Value,
					Message:  "unknown option",
				})
			}
		}
	}
	return warnings
}

// Validate checks the merged options.
func Validate(opts options.Options) error {
	if err := opts.Validate(); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}
