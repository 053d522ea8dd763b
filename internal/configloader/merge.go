package configloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdconv/pkg/options"
)

// merge decodes a YAML document over base. Keys present in data replace
// the values in base, including explicit false and empty values; keys
// absent from data leave base untouched.
func merge(base options.Options, data []byte) (options.Options, error) {
	result := base

	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&result); err != nil {
		if errors.Is(err, io.EOF) {
			return base, nil
		}
		return base, fmt.Errorf("parse YAML: %w", err)
	}
	return result, nil
}

// MergeAll decodes each YAML document over options.Default in order.
func MergeAll(docs ...[]byte) (options.Options, error) {
	opts := options.Default()
	for _, doc := range docs {
		var err error
		if opts, err = merge(opts, doc); err != nil {
			return options.Options{}, err
		}
	}
	return opts, nil
}
