package configloader

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/mdconv/pkg/options"
)

// envVarPrefix is the prefix for all mdconv environment variables.
const envVarPrefix = "MDCONV_"

// envField is one option reachable from the environment.
type envField struct {
	section int
	field   int
	kind    reflect.Kind
}

// envFields maps variable names like MDCONV_RENDER_HARDBREAKS to option
// fields. Names derive from the yaml tags, so files and the environment
// always agree.
//
//nolint:gochecknoglobals // computed once from the Options type
var envFields = buildEnvFields()

func buildEnvFields() map[string]envField {
	fields := make(map[string]envField)
	root := reflect.TypeFor[options.Options]()
	for i := range root.NumField() {
		section := root.Field(i)
		for j := range section.Type.NumField() {
			f := section.Type.Field(j)
			name := envVarPrefix + envName(section) + "_" + envName(f)
			fields[name] = envField{section: i, field: j, kind: f.Type.Kind()}
		}
	}
	return fields
}

func envName(f reflect.StructField) string {
	tag, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
	return strings.ToUpper(tag)
}

// LoadFromEnv applies MDCONV_* overrides from getenv to opts.
// Unset and empty variables are ignored.
func LoadFromEnv(opts *options.Options, getenv func(string) string) error {
	if opts == nil {
		return nil
	}

	root := reflect.ValueOf(opts).Elem()
	for _, name := range EnvVarNames() {
		value := getenv(name)
		if value == "" {
			continue
		}

		field := envFields[name]
		target := root.Field(field.section).Field(field.field)
		switch field.kind {
		case reflect.Bool:
			b, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", name, value)
			}
			target.SetBool(b)
		case reflect.String:
			target.SetString(value)
		default:
			return fmt.Errorf("unsupported field type %s for %s", field.kind, name)
		}
	}

	return nil
}

// EnvVarNames returns every supported environment variable, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envFields))
	for name := range envFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
