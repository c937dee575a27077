// Package patterns holds the ordered sets of case-insensitive regular
// expressions used to flag reconstructed OCR lines as sensitive.
package patterns

import (
	"fmt"
	"regexp"
	"strings"
)

// defaultSources covers common sensitive HTTP header lines. Each header
// pattern captures the header name and everything to the end of the line so
// the whole value is redacted, not just the label.
var defaultSources = []string{
	`\bAuthorization\b[:\-\s]*.*`,
	`\bAuth\b[:\-\s]*.*`,
	`\bBearer\b\s+[A-Za-z0-9\-\._~\+\/=]+`,
	`\bX\-API\-Key\b[:\-\s]*.*`,
	`\bAPI\s*Key\b[:\-\s]*.*`,
	`\bHost\b[:\-\s]*.*`,
	`\bCookie\b[:\-\s]*.*`,
	`\bSet\-Cookie\b[:\-\s]*.*`,
	`\bX\-Auth\-Token\b[:\-\s]*.*`,
}

// bearerValueSource matches a Bearer token value on its own, for when OCR
// line splitting separates the token from its Authorization label.
const bearerValueSource = `\bBearer\b\s+[A-Za-z0-9\-\._~\+\/=]+`

// Match records one pattern hit within a line of text.
type Match struct {
	Pattern string // source of the pattern that matched
	Start   int    // byte offset of the match start
	End     int    // byte offset one past the match end
}

// PatternSet is an ordered, deduplicated collection of compiled
// case-insensitive patterns. It is immutable after construction and safe to
// share across goroutines.
type PatternSet struct {
	sources  []string
	compiled []*regexp.Regexp
}

// compile dedups sources by exact string (first occurrence wins, order
// preserved) and compiles each with case folding.
func compile(sources []string) (*PatternSet, error) {
	seen := make(map[string]bool, len(sources))
	ps := &PatternSet{}
	for _, src := range sources {
		if seen[src] {
			continue
		}
		seen[src] = true
		re, err := regexp.Compile("(?i)" + src)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", src, err)
		}
		ps.sources = append(ps.sources, src)
		ps.compiled = append(ps.compiled, re)
	}
	return ps, nil
}

// Default returns the built-in sensitive header pattern set.
func Default() *PatternSet {
	ps, err := compile(defaultSources)
	if err != nil {
		panic(err) // defaultSources is a fixed, known-good list
	}
	return ps
}

// FromExplicit compiles each string directly as a case-insensitive pattern,
// with no escaping. Duplicate strings are dropped, keeping first-seen order.
func FromExplicit(sources []string) (*PatternSet, error) {
	return compile(sources)
}

// FromHeaderNames builds one pattern per header name, anchored on the
// escaped literal name followed by everything to the end of the line. For
// Authorization/Auth headers a standalone Bearer-value pattern is added as
// well, since the token often appears without its label once OCR merges or
// splits lines. includeDefaults appends the Default set at the end.
func FromHeaderNames(names []string, includeDefaults bool) (*PatternSet, error) {
	var sources []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sources = append(sources, `\b`+regexp.QuoteMeta(name)+`\b[:\-\s]*.*`)
		switch strings.ToLower(name) {
		case "authorization", "auth":
			sources = append(sources, bearerValueSource)
		}
	}
	if includeDefaults {
		sources = append(sources, defaultSources...)
	}
	return compile(sources)
}

// FindMatches returns every match of every pattern within text, in pattern
// order. An empty result means the line is not sensitive.
func (ps *PatternSet) FindMatches(text string) []Match {
	var matches []Match
	for i, re := range ps.compiled {
		for _, span := range re.FindAllStringIndex(text, -1) {
			matches = append(matches, Match{Pattern: ps.sources[i], Start: span[0], End: span[1]})
		}
	}
	return matches
}

// Len returns the number of patterns in the set.
func (ps *PatternSet) Len() int { return len(ps.compiled) }

// Sources returns the pattern source strings in set order.
func (ps *PatternSet) Sources() []string {
	return append([]string(nil), ps.sources...)
}
