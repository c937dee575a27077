package patterns

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestFromPatternsFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"array", `["foo", "bar"]`, []string{"foo", "bar"}},
		{"object", `{"patterns": ["foo"]}`, []string{"foo"}},
		{"empty array", `[]`, nil},
		{"object without key", `{"other": 1}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "patterns.json", tt.content)
			ps, err := FromPatternsFile(path)
			if err != nil {
				t.Fatalf("FromPatternsFile failed: %v", err)
			}
			if !reflect.DeepEqual(ps.Sources(), tt.want) {
				t.Errorf("sources: got %v, want %v", ps.Sources(), tt.want)
			}
		})
	}
}

func TestFromPatternsFile_MalformedIsError(t *testing.T) {
	path := writeFile(t, "patterns.json", `not json at all`)
	if _, err := FromPatternsFile(path); err == nil {
		t.Error("malformed patterns file must be a configuration error")
	}
}

func TestFromPatternsFile_MissingYieldsEmpty(t *testing.T) {
	ps, err := FromPatternsFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing patterns file should not error: %v", err)
	}
	if ps.Len() != 0 {
		t.Errorf("missing file should yield an empty set, got %d patterns", ps.Len())
	}
}

func TestFromHeadersFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantCount int
	}{
		{"json array", `["Authorization"]`, 2}, // header + Bearer supplement
		{"json object", `{"headers": ["Host", "Cookie"]}`, 2},
		{"newline fallback", "Host\nCookie\n\nX-API-Key\n", 3},
		{"json scalar yields nothing", `42`, 0},
		{"json non-list headers yields nothing", `{"headers": "Host"}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "headers.txt", tt.content)
			ps, err := FromHeadersFile(path, false)
			if err != nil {
				t.Fatalf("FromHeadersFile failed: %v", err)
			}
			if ps.Len() != tt.wantCount {
				t.Errorf("pattern count: got %d, want %d; sources: %v", ps.Len(), tt.wantCount, ps.Sources())
			}
		})
	}
}

func TestFromHeadersFile_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")

	// Without defaults the set silently matches nothing.
	ps, err := FromHeadersFile(missing, false)
	if err != nil {
		t.Fatalf("missing headers file should not error: %v", err)
	}
	if ps.Len() != 0 {
		t.Errorf("missing file without defaults: got %d patterns, want 0", ps.Len())
	}

	// With defaults the built-in set still applies.
	ps, err = FromHeadersFile(missing, true)
	if err != nil {
		t.Fatalf("missing headers file with defaults should not error: %v", err)
	}
	if ps.Len() != len(defaultSources) {
		t.Errorf("missing file with defaults: got %d patterns, want %d", ps.Len(), len(defaultSources))
	}
}
