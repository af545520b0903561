package rules

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// parsed unmarshals a JSON document for structural comparison.
func parsed(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("invalid JSON %q: %v", data, err)
	}
	return m
}

func assertJSONEqual(t *testing.T, got []byte, want string) {
	t.Helper()
	if !reflect.DeepEqual(parsed(t, got), parsed(t, []byte(want))) {
		t.Fatalf("merged document = %s, want %s", got, want)
	}
}

func TestMergeDisjointKeys(t *testing.T) {
	got := Merge([]byte(`{"a":1}`), []byte(`{"b":2}`))
	assertJSONEqual(t, got, `{"a":1,"b":2}`)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	target := []byte(`{"a":{"x":1}}`)
	source := []byte(`{"a":{"y":2}}`)
	Merge(target, source)

	if string(target) != `{"a":{"x":1}}` {
		t.Fatalf("target mutated: %s", target)
	}
	if string(source) != `{"a":{"y":2}}` {
		t.Fatalf("source mutated: %s", source)
	}
}

func TestMergeObjectsRecurse(t *testing.T) {
	got := Merge(
		[]byte(`{"a":{"x":1,"keep":true},"top":"t"}`),
		[]byte(`{"a":{"x":2,"new":"n"}}`),
	)
	assertJSONEqual(t, got, `{"a":{"x":2,"keep":true,"new":"n"},"top":"t"}`)
}

func TestMergeArraysReplaceWholesale(t *testing.T) {
	got := Merge([]byte(`{"a":[1,2,3]}`), []byte(`{"a":[9]}`))
	assertJSONEqual(t, got, `{"a":[9]}`)

	// Object replaced by array, and array replaced by scalar.
	got = Merge([]byte(`{"a":{"x":1}}`), []byte(`{"a":[1]}`))
	assertJSONEqual(t, got, `{"a":[1]}`)

	got = Merge([]byte(`{"a":[1]}`), []byte(`{"a":"s"}`))
	assertJSONEqual(t, got, `{"a":"s"}`)
}

func TestMergeEmptySourceIsIdentity(t *testing.T) {
	doc := `{"a":{"b":[1,2]},"c":null}`
	got := Merge([]byte(doc), []byte(`{}`))
	assertJSONEqual(t, got, doc)
}

func TestMergeKeysWithMetacharacters(t *testing.T) {
	got := Merge([]byte(`{"a.b":1}`), []byte(`{"a.b":2,"c*d":3}`))
	assertJSONEqual(t, got, `{"a.b":2,"c*d":3}`)
}

func TestMergeSourcesLastWriterWins(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "skill-rules.json")

	paths := make([]string, 3)
	fragments := []string{
		`{"shared":{"level":"one"}}`,
		`{"shared":{"level":"two"}}`,
		`{"shared":{"level":"three"}}`,
	}
	for i, frag := range fragments {
		paths[i] = filepath.Join(dir, "frag"+string(rune('a'+i))+".json")
		if err := os.WriteFile(paths[i], []byte(frag), 0644); err != nil {
			t.Fatalf("write fragment: %v", err)
		}
	}

	count, err := MergeSources(dest, paths)
	if err != nil {
		t.Fatalf("MergeSources() error = %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 merged fragments, got %d", count)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read dest: %v", err)
	}
	assertJSONEqual(t, data, `{"shared":{"level":"three"}}`)
	if data[len(data)-1] != '\n' {
		t.Fatal("expected trailing newline")
	}
}

func TestMergeSourcesSkipsMalformedAndMissing(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "skill-rules.json")

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`not json`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	array := filepath.Join(dir, "array.json")
	if err := os.WriteFile(array, []byte(`[1,2]`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(`{"k":1}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	count, err := MergeSources(dest, []string{
		filepath.Join(dir, "missing.json"), bad, array, good,
	})
	if err != nil {
		t.Fatalf("MergeSources() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the valid fragment to count, got %d", count)
	}

	data, _ := os.ReadFile(dest)
	assertJSONEqual(t, data, `{"k":1}`)
}

func TestMergeSourcesZeroValidFragmentsLeavesDestUntouched(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "skill-rules.json")
	prior := []byte("{\n  \"kept\": true\n}\n")
	if err := os.WriteFile(dest, prior, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	before, err := os.Stat(dest)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	count, err := MergeSources(dest, []string{filepath.Join(dir, "missing.json")})
	if err != nil {
		t.Fatalf("MergeSources() error = %v", err)
	}
	if count != 0 {
		t.Fatalf("expected zero merge count, got %d", count)
	}

	data, _ := os.ReadFile(dest)
	if string(data) != string(prior) {
		t.Fatalf("destination changed: %q", data)
	}
	after, _ := os.Stat(dest)
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatal("expected no write to the destination")
	}
}

func TestMergeSourcesMissingDestinationReadsAsEmpty(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "skill-rules.json")
	frag := filepath.Join(dir, "frag.json")
	if err := os.WriteFile(frag, []byte(`{"shared":{"b":true}}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	count, err := MergeSources(dest, []string{frag})
	if err != nil {
		t.Fatalf("MergeSources() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 merged fragment, got %d", count)
	}

	data, _ := os.ReadFile(dest)
	assertJSONEqual(t, data, `{"shared":{"b":true}}`)
}
