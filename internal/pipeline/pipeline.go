package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/rp-magrathea/vogsphere/internal/cache"
	"github.com/rp-magrathea/vogsphere/internal/extract"
	"github.com/rp-magrathea/vogsphere/internal/model"
	"github.com/rp-magrathea/vogsphere/internal/render"
	"github.com/rp-magrathea/vogsphere/internal/validate"
	"go.uber.org/zap"
)

// ErrNoInput is returned when neither a form nor any answers were given
var ErrNoInput = errors.New("no input: give a form, an answers file or field values")

// Pipeline turns form answers into a claim post
type Pipeline struct {
	extractor *extract.Extractor
	validator *validate.Validator
	renderer  *render.Renderer
	fetcher   *Fetcher
	logger    *zap.Logger
	config    *model.Config
}

// NewPipeline creates a pipeline for the given configuration
func NewPipeline(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Pipeline{
		extractor: extract.NewExtractor(cfg.Fields, cfg.TrueLiteral),
		validator: validate.NewValidator(),
		renderer:  render.NewRenderer(cfg.PostTag),
		fetcher:   NewFetcher(cfg.Form, cache.New(cfg.Cache), logger),
		logger:    logger,
		config:    cfg,
	}
}

// Inputs names where the answers for one run come from
type Inputs struct {
	Form    string   // File path or http(s) URL of the HTML form
	FormID  string   // Optional id of the form inside the page
	Answers string   // Optional YAML answers file
	Set     []string // name=value pairs, applied over the answers file
}

// Result is the outcome of one generation attempt: a document or a list of problems, never both
type Result struct {
	Document  string            `json:"document,omitempty"`
	Fragments *render.Fragments `json:"fragments,omitempty"`
	Problems  model.Problems    `json:"problems,omitempty"`
}

// OK reports whether a document was produced
func (r *Result) OK() bool {
	return len(r.Problems) == 0
}

// Err returns the problems as a *model.ValidationError, or nil
func (r *Result) Err() error {
	return r.Problems.Err()
}

// Source assembles the field source described by in
func (p *Pipeline) Source(ctx context.Context, in Inputs) (extract.FieldSource, error) {
	if in.Form == "" && in.Answers == "" && len(in.Set) == 0 {
		return nil, ErrNoInput
	}

	answers := extract.MapSource{}
	if in.Answers != "" {
		a, err := extract.LoadAnswersFile(in.Answers)
		if err != nil {
			return nil, err
		}
		answers = a
	}

	set, err := extract.ParseSet(in.Set)
	if err != nil {
		return nil, err
	}
	answers = extract.Merge(answers, set)

	if in.Form == "" {
		return answers, nil
	}

	form, err := p.LoadForm(ctx, in.Form, in.FormID)
	if err != nil {
		return nil, err
	}
	return extract.Overlay{Form: form, Answers: answers}, nil
}

// LoadForm loads and parses an HTML form from a file path or URL
func (p *Pipeline) LoadForm(ctx context.Context, location, formID string) (*extract.FormSource, error) {
	page, err := p.fetcher.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("load form: %w", err)
	}

	form, err := extract.ParseForm(bytes.NewReader(page), formID)
	if err != nil {
		return nil, fmt.Errorf("load form: %w", err)
	}

	p.logger.Debug("Parsed form", zap.String("location", location), zap.Int("fields", len(form.Names())))
	return form, nil
}

// Run assembles the source for in and generates from it
func (p *Pipeline) Run(ctx context.Context, in Inputs) (*Result, error) {
	src, err := p.Source(ctx, in)
	if err != nil {
		return nil, err
	}
	return p.Generate(src), nil
}

// Generate extracts, validates and renders. Nothing is rendered if any problem is found.
func (p *Pipeline) Generate(src extract.FieldSource) *Result {
	// 1. Extract answers
	extraction, problems := p.extractor.Extract(src)
	if len(problems) > 0 {
		// The record is incomplete; validating it would only add noise
		p.logger.Warn("Form is out of sync with the field manifest",
			zap.Strings("fields", fieldsOf(problems)))
		return &Result{Problems: problems}
	}

	// 2. Validate answers
	if problems := p.validator.Validate(extraction.Fields, extraction.Record); len(problems) > 0 {
		p.logger.Debug("Answers failed validation", zap.Int("problems", len(problems)))
		return &Result{Problems: problems}
	}

	// 3. Render claim post
	submission := extraction.Record.Submission()
	fragments := p.renderer.Fragments(submission)
	doc := p.renderer.Assemble(submission, fragments)

	p.logger.Debug("Rendered claim post",
		zap.String("character", submission.CharacterName),
		zap.Bool("new_lab", submission.IsNewLab),
		zap.Bool("requested", submission.IsRequested))

	return &Result{
		Document:  doc,
		Fragments: &fragments,
	}
}

func fieldsOf(problems model.Problems) []string {
	fields := make([]string, 0, len(problems))
	for _, p := range problems {
		fields = append(fields, p.Field)
	}
	return fields
}
