package options

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// minFrontMatterDelimiter is the shortest accepted front matter fence.
const minFrontMatterDelimiter = 3

// ErrInvalidOptions is returned by Validate for unusable option values.
var ErrInvalidOptions = errors.New("invalid options")

// ToYAML serializes the options to YAML format.
func (o Options) ToYAML() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(o); err != nil {
		return nil, fmt.Errorf("encode options: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the options with a header comment.
func (o Options) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := o.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses options from YAML bytes.
// Keys missing from data keep their Default values.
func FromYAML(data []byte) (Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("parse yaml: %w", err)
	}
	return opts, nil
}

// Validate reports option values the converter cannot work with.
func (o Options) Validate() error {
	delim := o.Extension.FrontMatterDelimiter
	if delim == "" {
		return nil
	}
	if len(delim) < minFrontMatterDelimiter {
		return fmt.Errorf("%w: front_matter_delimiter %q must be at least %d characters",
			ErrInvalidOptions, delim, minFrontMatterDelimiter)
	}
	if strings.IndexFunc(delim, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: front_matter_delimiter %q must not contain whitespace",
			ErrInvalidOptions, delim)
	}
	return nil
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
