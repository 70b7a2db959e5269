// Package mapping defines the theme mapping data model: an ordered list of
// (response, themes) entries as produced by extraction and consumed by the
// variation and comparison engines. The wire form is a JSON array of
// 2-element [response, [theme, ...]] entries; entry order is significant
// and pairing between two mappings is positional.
package mapping

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Entry is one response with its assigned themes. Themes may contain
// duplicates on input; downstream consumers treat the list as a set.
type Entry struct {
	Response string
	Themes   []string
}

// Mapping is an ordered sequence of entries.
type Mapping []Entry

// StructureError reports a malformed entry in a theme mapping document.
// Index is -1 when the document as a whole is not an array.
type StructureError struct {
	Index  int
	Reason string
}

func (e *StructureError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("malformed theme mapping: %s", e.Reason)
	}
	return fmt.Sprintf("malformed theme mapping: entry %d: %s", e.Index, e.Reason)
}

// MarshalJSON renders the entry as a 2-element [response, themes] array.
// Themes is always emitted as an array, never null.
func (e Entry) MarshalJSON() ([]byte, error) {
	themes := e.Themes
	if themes == nil {
		themes = []string{}
	}
	return json.Marshal([]any{e.Response, themes})
}

// UnmarshalJSON parses a 2-element [response, themes] array.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("entry is not an array: %w", err)
	}
	if len(raw) != 2 {
		return fmt.Errorf("entry has %d elements, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &e.Response); err != nil {
		return fmt.Errorf("response is not a string: %w", err)
	}
	if err := json.Unmarshal(raw[1], &e.Themes); err != nil {
		return fmt.Errorf("themes is not an array of strings: %w", err)
	}
	if e.Themes == nil {
		e.Themes = []string{}
	}
	return nil
}

// Decode parses a theme mapping document, returning a typed StructureError
// on any structural violation so callers can branch on error kind.
func Decode(data []byte) (Mapping, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &StructureError{Index: -1, Reason: "document is not an array"}
	}
	m := make(Mapping, 0, len(raw))
	for i, r := range raw {
		var e Entry
		if err := e.UnmarshalJSON(r); err != nil {
			return nil, &StructureError{Index: i, Reason: err.Error()}
		}
		m = append(m, e)
	}
	return m, nil
}

// Validate reports whether a decoded JSON value is a structurally valid
// theme mapping: an array of 2-element [string, array-of-string] entries.
// It never panics; any shape violation yields false. Duplicate themes
// within an entry are allowed (treated as a set downstream).
func Validate(v any) bool {
	list, ok := v.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		pair, ok := item.([]any)
		if !ok || len(pair) != 2 {
			return false
		}
		if _, ok := pair[0].(string); !ok {
			return false
		}
		themes, ok := pair[1].([]any)
		if !ok {
			return false
		}
		for _, th := range themes {
			if _, ok := th.(string); !ok {
				return false
			}
		}
	}
	return true
}

// ThemeSet returns the entry's themes as a set.
func (e Entry) ThemeSet() map[string]bool {
	set := make(map[string]bool, len(e.Themes))
	for _, th := range e.Themes {
		set[th] = true
	}
	return set
}

// UniqueThemes returns the entry's themes deduplicated, preserving the
// order of first occurrence.
func (e Entry) UniqueThemes() []string {
	seen := make(map[string]bool, len(e.Themes))
	var out []string
	for _, th := range e.Themes {
		if !seen[th] {
			seen[th] = true
			out = append(out, th)
		}
	}
	return out
}

// Universe returns the sorted set of all distinct themes across the given
// mappings. Sorted order makes candidate selection and serialization
// deterministic.
func Universe(mappings ...Mapping) []string {
	seen := make(map[string]bool)
	for _, m := range mappings {
		for _, e := range m {
			for _, th := range e.Themes {
				seen[th] = true
			}
		}
	}
	out := make([]string, 0, len(seen))
	for th := range seen {
		out = append(out, th)
	}
	sort.Strings(out)
	return out
}

// Distribution counts theme occurrences across all entries.
func (m Mapping) Distribution() map[string]int {
	counts := make(map[string]int)
	for _, e := range m {
		for _, th := range e.Themes {
			counts[th]++
		}
	}
	return counts
}
