// Package langdetect guesses the language of a code block's content.
// It backs the detect_language parse option, which labels fenced code
// blocks that declare no info string.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// classifierCandidates limits the go-enry classifier to languages that
// commonly appear in Markdown fences.
//
//nolint:gochecknoglobals // read-only lookup table
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// detector reports a fence tag, or "" when content does not match.
type detector func(content []byte) string

// detectors are tried in order; earlier entries are more specific.
//
//nolint:gochecknoglobals // read-only lookup table
var detectors = []detector{
	prefixDetector("go", "package "),
	detectPython,
	detectHTML,
	detectJSON,
	detectDockerfile,
	detectSQL,
	containsDetector("rust", "fn main()", "println!", "let mut "),
	containsDetector("javascript", "=>", "const ", "let ", "console.log"),
	detectYAML,
}

// Detect returns the fence tag for content, or fallback when no
// detector is confident.
func Detect(content []byte, fallback string) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return fallback
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	for _, detect := range detectors {
		if lang := detect(content); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return fallback
}

func prefixDetector(lang, prefix string) detector {
	return func(content []byte) string {
		if bytes.HasPrefix(bytes.TrimSpace(content), []byte(prefix)) {
			return lang
		}
		return ""
	}
}

func containsDetector(lang string, needles ...string) detector {
	return func(content []byte) string {
		for _, needle := range needles {
			if bytes.Contains(content, []byte(needle)) {
				return lang
			}
		}
		return ""
	}
}

func detectPython(content []byte) string {
	src := string(content)
	switch {
	case strings.Contains(src, "def ") && strings.Contains(src, "):"):
		return "python"
	case strings.Contains(src, "__name__"), strings.Contains(src, "__main__"):
		return "python"
	case strings.Contains(src, "import ") && !strings.Contains(src, "import ("):
		if strings.Contains(src, "from ") || strings.HasPrefix(strings.TrimSpace(src), "import ") {
			return "python"
		}
	}
	return ""
}

func detectHTML(content []byte) string {
	lower := bytes.ToLower(bytes.TrimSpace(content))
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if bytes.Contains(lower, []byte(marker)) {
			return "html"
		}
	}
	return ""
}

func detectJSON(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return "json"
	}
	return ""
}

func detectDockerfile(content []byte) string {
	if bytes.HasPrefix(bytes.TrimSpace(content), []byte("FROM ")) ||
		(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
		(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY "))) {
		return "dockerfile"
	}
	return ""
}

func detectSQL(content []byte) string {
	upper := strings.ToUpper(strings.TrimSpace(string(content)))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, verb) {
			return "sql"
		}
	}
	return ""
}

// detectYAML needs at least two key: value pairs or root list items.
func detectYAML(content []byte) string {
	count := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	if count >= 2 {
		return "yaml"
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
