// Package pipeline runs the full note-resolution sequence for a
// document: ibid detection, classification, AI escalation, query
// enhancement, provider search, form selection, and formatting.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/citeflow/citeflow/internal/ai"
	"github.com/citeflow/citeflow/internal/citation"
	"github.com/citeflow/citeflow/internal/classify"
	"github.com/citeflow/citeflow/internal/enhance"
	"github.com/citeflow/citeflow/internal/format"
	"github.com/citeflow/citeflow/internal/history"
	"github.com/citeflow/citeflow/internal/search"
	"github.com/citeflow/citeflow/internal/store"
)

// Result is the outcome of resolving one note.
type Result struct {
	Input     string              `json:"input"`
	Type      citation.SourceType `json:"type"`
	Form      history.Form        `json:"form"`
	Rendered  string              `json:"rendered"`
	Record    *citation.Record    `json:"record,omitempty"`
	Resolved  bool                `json:"resolved"`
	FromCache bool                `json:"from_cache,omitempty"`
	Err       string              `json:"error,omitempty"`
}

// Pipeline wires the resolution stages together. A Pipeline is safe
// for concurrent Resolve calls; Run processes one document's notes
// sequentially against a private History.
type Pipeline struct {
	classifier  *classify.Classifier
	refiner     ai.Classifier
	aiThreshold float64
	search      *search.Orchestrator
	formats     *format.Registry
	cache       *store.Store
	logger      *log.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRefiner enables AI escalation for classifications below
// threshold.
func WithRefiner(c ai.Classifier, threshold float64) Option {
	return func(p *Pipeline) {
		p.refiner = c
		if threshold > 0 {
			p.aiThreshold = threshold
		}
	}
}

// WithCache enables the persistent resolution cache.
func WithCache(s *store.Store) Option {
	return func(p *Pipeline) { p.cache = s }
}

// WithLogger sets the stage logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// New creates a Pipeline.
func New(classifier *classify.Classifier, orch *search.Orchestrator, formats *format.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{
		classifier:  classifier,
		aiThreshold: ai.DefaultThreshold,
		search:      orch,
		formats:     formats,
		logger:      log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve classifies and searches one free-standing note, without
// document history. It returns the resolved record and its
// classification; a failed search yields a nil record, not an error.
func (p *Pipeline) Resolve(ctx context.Context, text string) (classify.Result, *citation.Record) {
	res := p.classifier.Classify(text)
	res = ai.Refine(ctx, p.refiner, res, p.aiThreshold)

	cacheKey := res.Query
	if p.cache != nil {
		if entry, err := p.cache.Get(cacheKey); err == nil {
			return res, &entry.Record
		}
	}

	res.Query = enhance.Enhance(res.Query, res.Type)
	rec, ok := p.search.SearchOne(ctx, res)
	if !ok {
		return res, nil
	}

	if p.cache != nil {
		if err := p.cache.Put(cacheKey, res.Type, res.Confidence, rec); err != nil {
			p.logger.Printf("pipeline: cache store: %v", err)
		}
	}
	return res, rec
}

// Candidates returns up to maxResults candidate records for one note,
// for interactive selection.
func (p *Pipeline) Candidates(ctx context.Context, text string, maxResults int) (classify.Result, []citation.Record) {
	res := p.classifier.Classify(text)
	res = ai.Refine(ctx, p.refiner, res, p.aiThreshold)
	res.Query = enhance.Enhance(res.Query, res.Type)
	return res, p.search.Search(ctx, res, maxResults)
}

// Run resolves a document's notes in order, maintaining citation
// history so repeated sources downgrade to ibid or short form. Notes
// must be passed in document order; results are positional.
func (p *Pipeline) Run(ctx context.Context, notes []string, styleName string) ([]Result, error) {
	style, ok := p.formats.Get(styleName)
	if !ok {
		return nil, fmt.Errorf("pipeline: unknown style %q", styleName)
	}

	hist := history.New()
	results := make([]Result, 0, len(notes))

	for _, note := range notes {
		results = append(results, p.runNote(ctx, note, style, hist))
	}
	return results, nil
}

func (p *Pipeline) runNote(ctx context.Context, note string, style format.Formatter, hist *history.History) Result {
	// A verbatim ibid marker bypasses classification entirely.
	if page, ok := history.ParseIbidMarker(note); ok {
		decision, err := hist.ExplicitIbid(page)
		if err != nil {
			return Result{Input: note, Form: history.Full, Err: err.Error()}
		}
		rendered := style.FormatIbid(decision.Page)
		if err := hist.RecordIbid(rendered); err != nil {
			return Result{Input: note, Form: history.Full, Err: err.Error()}
		}
		last, _ := hist.Last()
		return Result{
			Input:    note,
			Type:     last.Record.Type,
			Form:     history.Ibid,
			Rendered: rendered,
			Resolved: true,
		}
	}

	res, rec := p.Resolve(ctx, note)
	if rec == nil {
		return Result{
			Input: note,
			Type:  res.Type,
			Form:  history.Full,
			Err:   "no source found",
		}
	}

	decision := hist.ClassifyNext(rec)
	var rendered string
	switch decision.Form {
	case history.Ibid:
		rendered = style.FormatIbid(decision.Page)
	case history.ShortForm:
		rendered = style.FormatShort(rec, decision.Page)
	default:
		rendered = style.Format(rec)
	}
	hist.Record(*rec, rendered)

	return Result{
		Input:    note,
		Type:     rec.Type,
		Form:     decision.Form,
		Rendered: rendered,
		Record:   rec,
		Resolved: true,
	}
}
