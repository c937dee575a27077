package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestBuildPatternSet_Priority(t *testing.T) {
	dir := t.TempDir()
	patternsPath := filepath.Join(dir, "patterns.json")
	if err := os.WriteFile(patternsPath, []byte(`["secret\\d+"]`), 0o644); err != nil {
		t.Fatal(err)
	}
	headersPath := filepath.Join(dir, "headers.json")
	if err := os.WriteFile(headersPath, []byte(`["X-From-File"]`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		opts options
		want []string
	}{
		{
			name: "patterns file beats everything",
			opts: options{
				patternsFile: patternsPath,
				patterns:     []string{"inline"},
				headersFile:  headersPath,
				headers:      []string{"Authorization"},
			},
			want: []string{`secret\d+`},
		},
		{
			name: "explicit patterns beat headers",
			opts: options{
				patterns:    []string{"inline\\d+"},
				headersFile: headersPath,
				headers:     []string{"Authorization"},
			},
			want: []string{`inline\d+`},
		},
		{
			name: "headers file beats inline headers",
			opts: options{
				headersFile: headersPath,
				headers:     []string{"Authorization"},
			},
			want: []string{`\bX-From-File\b[:\-\s]*.*`},
		},
		{
			name: "inline headers",
			opts: options{headers: []string{"X-Custom"}},
			want: []string{`\bX-Custom\b[:\-\s]*.*`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, err := buildPatternSet(&tt.opts)
			if err != nil {
				t.Fatalf("buildPatternSet: %v", err)
			}
			if got := ps.Sources(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sources: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildPatternSet_Defaults(t *testing.T) {
	ps, err := buildPatternSet(&options{})
	if err != nil {
		t.Fatalf("buildPatternSet: %v", err)
	}
	if ps.Len() == 0 {
		t.Error("default pattern set is empty")
	}
	if len(ps.FindMatches("Authorization: Bearer tok123")) == 0 {
		t.Error("defaults do not match an Authorization line")
	}
}

func TestTrimAll(t *testing.T) {
	got := trimAll([]string{" a ", "", "  ", "b"})
	want := []string{"a", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("trimAll: got %v, want %v", got, want)
	}
}

func TestParseFillColor(t *testing.T) {
	for _, hex := range []string{"#ff0000", "ff0000", "#FF0000"} {
		c, err := parseFillColor(hex)
		if err != nil {
			t.Fatalf("parseFillColor(%q): %v", hex, err)
		}
		r, g, b, a := c.RGBA()
		if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
			t.Errorf("parseFillColor(%q): got rgba(%d,%d,%d,%d), want opaque red", hex, r, g, b, a)
		}
	}

	for _, hex := range []string{"red", "#12345", ""} {
		if _, err := parseFillColor(hex); err == nil {
			t.Errorf("parseFillColor(%q): expected error", hex)
		}
	}
}
