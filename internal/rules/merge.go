// Package rules deep-merges JSON rule fragments into one consolidated
// rules document.
//
// Documents are held as raw JSON bytes and manipulated with the tidwall
// gjson/sjson stack. Merge semantics: object values recurse, everything
// else (arrays included) is replaced wholesale, later sources win ties.
package rules

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// emptyObject is the merge identity.
var emptyObject = []byte("{}")

// Merge deep-merges two JSON objects and returns the result as a new
// document. Neither input is modified.
//
// For each key in source: when both sides hold plain objects the merge
// recurses; otherwise the source value replaces the target value, arrays
// included. Keys only in target are preserved. Inputs that are not JSON
// objects are treated as empty objects.
//
// Parameters:
//   - target: the accumulating document
//   - source: the fragment whose keys win ties
//
// Returns:
//   - []byte: the merged document
func Merge(target, source []byte) []byte {
	result := normalizeObject(target)
	src := gjson.ParseBytes(normalizeObject(source))

	src.ForEach(func(key, value gjson.Result) bool {
		path := escapeKey(key.String())
		existing := gjson.GetBytes(result, path)

		var raw []byte
		if existing.IsObject() && value.IsObject() {
			raw = Merge([]byte(existing.Raw), []byte(value.Raw))
		} else {
			raw = []byte(value.Raw)
		}

		merged, err := sjson.SetRawBytes(result, path, raw)
		if err != nil {
			// Key paths come from parsed JSON, so this only trips on
			// pathological keys; keep the document we have.
			log.Debug("merge set failed", "key", key.String(), "err", err)
			return true
		}
		result = merged
		return true
	})

	return result
}

// MergeSources folds the fragments at sourcePaths, in order, into the
// document at destPath and writes the result pretty-printed with a
// trailing newline.
//
// A missing destination reads as an empty object. Fragments that are
// missing, unreadable, or not valid JSON objects are skipped silently
// and do not count. When zero fragments merge, the destination is left
// byte-for-byte untouched.
//
// Parameters:
//   - destPath: the consolidated rules document
//   - sourcePaths: fragment files, earliest first
//
// Returns:
//   - int: the number of fragments merged
//   - error: if the merged document cannot be written
func MergeSources(destPath string, sourcePaths []string) (int, error) {
	doc := readObject(destPath)

	count := 0
	for _, src := range sourcePaths {
		data, err := os.ReadFile(src)
		if err != nil {
			log.Debug("skipping unreadable rules fragment", "path", src, "err", err)
			continue
		}
		if !isObject(data) {
			log.Debug("skipping malformed rules fragment", "path", src)
			continue
		}
		doc = Merge(doc, data)
		count++
	}

	if count == 0 {
		return 0, nil
	}

	out := pretty.PrettyOptions(doc, &pretty.Options{Indent: "  "})
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	if err := os.WriteFile(destPath, out, 0644); err != nil {
		return count, fmt.Errorf("writing rules document: %w", err)
	}
	return count, nil
}

// readObject loads the existing document, treating absence or a
// malformed file as the empty object.
func readObject(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		return emptyObject
	}
	return normalizeObject(data)
}

// normalizeObject returns data when it parses as a JSON object and the
// empty object otherwise.
func normalizeObject(data []byte) []byte {
	if isObject(data) {
		return data
	}
	return emptyObject
}

// isObject reports whether data is a syntactically valid JSON object.
func isObject(data []byte) bool {
	return gjson.ValidBytes(data) && gjson.ParseBytes(data).IsObject()
}

// escapeKey escapes sjson/gjson path metacharacters so an arbitrary
// object key addresses exactly one path element.
func escapeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
