// Package history tracks the citations already rendered for a document
// and decides whether the next one should appear in full, as a short
// form, or as "ibid."
//
// A History is scoped to one document run and is not safe for
// concurrent use; notes must be recorded in document order.
package history

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/citeflow/citeflow/internal/citation"
)

// Form is the rendering form chosen for a citation.
type Form int

const (
	// Full renders the complete citation.
	Full Form = iota
	// Ibid renders "ibid." - the source matches the immediately
	// preceding citation.
	Ibid
	// ShortForm renders an abbreviated citation - the source was cited
	// earlier in the document, but not immediately before.
	ShortForm
)

func (f Form) String() string {
	switch f {
	case Ibid:
		return "ibid"
	case ShortForm:
		return "short"
	default:
		return "full"
	}
}

// MarshalJSON encodes the form as its name.
func (f Form) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// ErrNoPredecessor is returned for an explicit ibid marker with nothing
// cited before it. The caller must surface this; silently rendering a
// full citation would hide a document error.
var ErrNoPredecessor = errors.New("history: ibid with no preceding citation")

// Decision is the outcome of classifying one citation.
type Decision struct {
	Form Form `json:"form"`
	// Page carries the page override from an explicit ibid marker
	// ("ibid., 45"), empty otherwise.
	Page string `json:"page,omitempty"`
}

// Entry is one recorded citation event.
type Entry struct {
	Record   citation.Record
	Key      citation.SourceKey
	Rendered string
}

// History is the ordered list of citation events plus a first-occurrence
// index over source keys.
type History struct {
	entries []Entry
	seen    map[citation.SourceKey]int
}

// New creates an empty History.
func New() *History {
	return &History{seen: make(map[citation.SourceKey]int)}
}

// Len returns the number of recorded citation events.
func (h *History) Len() int { return len(h.entries) }

// Last returns the most recently recorded entry.
func (h *History) Last() (Entry, bool) {
	if len(h.entries) == 0 {
		return Entry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// ClassifyNext decides the form for candidate. Ibid requires identity
// with the immediate predecessor only; ShortForm requires the source to
// appear anywhere earlier in the history. Records with no derivable
// identity always classify Full.
func (h *History) ClassifyNext(candidate *citation.Record) Decision {
	key := candidate.Key()
	if key.IsZero() {
		return Decision{Form: Full}
	}
	if last, ok := h.Last(); ok && key.Equal(last.Key) {
		return Decision{Form: Ibid}
	}
	if _, cited := h.seen[key]; cited {
		return Decision{Form: ShortForm}
	}
	return Decision{Form: Full}
}

// ExplicitIbid handles a verbatim ibid marker in the source text. The
// marker is an unconditional instruction, bypassing identity matching -
// but only when a predecessor exists.
func (h *History) ExplicitIbid(page string) (Decision, error) {
	if len(h.entries) == 0 {
		return Decision{}, ErrNoPredecessor
	}
	return Decision{Form: Ibid, Page: page}, nil
}

// Record appends a citation event. Every outcome is recorded, Ibid and
// ShortForm included, so "most recent" always reflects the latest
// citation rather than the latest full one.
func (h *History) Record(rec citation.Record, rendered string) {
	key := rec.Key()
	h.entries = append(h.entries, Entry{Record: rec, Key: key, Rendered: rendered})
	if !key.IsZero() {
		if _, ok := h.seen[key]; !ok {
			h.seen[key] = len(h.entries) - 1
		}
	}
}

// RecordIbid appends a citation event that re-affirms the immediate
// predecessor's source, keeping it "most recent" for the next note.
func (h *History) RecordIbid(rendered string) error {
	last, ok := h.Last()
	if !ok {
		return ErrNoPredecessor
	}
	h.Record(last.Record, rendered)
	return nil
}

var ibidMarker = regexp.MustCompile(`(?i)^(?:ibid(?:em)?|id)\.?(?:\s*,?\s*(?:at\s+|pp?\.?\s*)?(\d+(?:\s*[-–]\s*\d+)?))?\.?$`)

// ParseIbidMarker reports whether text is a verbatim ibid marker
// ("ibid", "ibidem", "id.", case-insensitive), returning the optional
// page reference ("ibid., 45").
func ParseIbidMarker(text string) (page string, ok bool) {
	m := ibidMarker.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
