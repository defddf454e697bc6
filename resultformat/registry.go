package resultformat

import (
	"path/filepath"
	"strings"
)

// registry holds every known output formatter, keyed by its canonical
// name — never by file extension; extension matching is a distinct
// lookup (byExtension) so a formatter can claim several extensions
// (.yaml and .yml) under one name.
var registry = map[string]Formatter{
	"text": &TextFormatter{},
	"json": &JSONFormatter{},
	"yaml": &YAMLFormatter{},
}

// formatAliases maps command-line spellings a user might reasonably
// type onto the registered name that actually serves them.
var formatAliases = map[string]string{
	"yml": "yaml",
	"txt": "text",
}

// Resolve picks the Formatter an eval/batch command should
// write with: an explicit --format name wins outright; failing that, if
// the command is writing to a file (outputPath non-empty) rather than
// stdout, that file's extension decides; otherwise TextFormatter.
// outputPath names where the RESULT is being written, not an input
// batch-definition file — the two are unrelated, and inferring output
// shape from an input file's extension would pick a format the caller
// never asked for. An unrecognized name or unmatched extension falls
// back to text rather than failing the command over a typo.
func Resolve(explicit, outputPath string) Formatter {
	if name := canonicalName(explicit); name != "" {
		if f, ok := registry[name]; ok {
			return f
		}
	}
	if f, ok := byExtension(outputPath); ok {
		return f
	}
	return registry["text"]
}

func canonicalName(format string) string {
	name := strings.ToLower(strings.TrimSpace(format))
	if alias, ok := formatAliases[name]; ok {
		return alias
	}
	return name
}

func byExtension(path string) (Formatter, bool) {
	if path == "" {
		return nil, false
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}
	for _, f := range registry {
		for _, candidate := range f.Extensions() {
			if candidate == ext {
				return f, true
			}
		}
	}
	return nil, false
}

// RegisterFormatter adds or replaces a named formatter, letting a custom
// build wire in an additional output format without editing this file.
func RegisterFormatter(name string, formatter Formatter) {
	registry[strings.ToLower(name)] = formatter
}
