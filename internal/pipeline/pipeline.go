// Package pipeline orchestrates one analysis request: text acquisition,
// LLM claim extraction, per-claim evidence gathering, LLM judgment, and
// materialization of the typed result.
package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/cronkite-edu/cronkite/internal/llm"
	"github.com/cronkite-edu/cronkite/internal/model"
	"github.com/cronkite-edu/cronkite/internal/source"
	"github.com/cronkite-edu/cronkite/internal/worker"
)

// minInputChars is the floor below which input text is rejected before any
// paid LLM or search call is made.
const minInputChars = 100

// Temperatures per stage: claim extraction wants determinism, judgment
// tolerates slightly more variation for prose fields.
const (
	claimTemperature = 0.1
	judgeTemperature = 0.2
)

// TextSource acquires plain text for a URL, reporting the classified kind.
type TextSource interface {
	Extract(ctx context.Context, rawURL string) (string, source.Kind, error)
}

// Searcher gathers evidence for one claim. Implementations never fail: an
// empty result represents "no evidence found".
type Searcher interface {
	SearchClaim(ctx context.Context, claim string) []model.EvidenceItem
}

// Pipeline runs the two-stage LLM/search workflow. It holds no per-request
// state; every call to Analyse is independent.
type Pipeline struct {
	sources  TextSource
	provider llm.Provider
	searcher Searcher
	workers  int
}

// New creates a pipeline. workers bounds the concurrent evidence fan-out.
func New(sources TextSource, provider llm.Provider, searcher Searcher, workers int) *Pipeline {
	if workers <= 0 {
		workers = 1
	}
	return &Pipeline{
		sources:  sources,
		provider: provider,
		searcher: searcher,
		workers:  workers,
	}
}

// Analyse produces a fact-check and bias report for raw text or a URL.
// Text takes priority when both are supplied. Input failures surface as
// *model.ValidationError or *model.ExtractionError; everything past the
// input stage surfaces as *model.UpstreamError with no partial result.
func (p *Pipeline) Analyse(ctx context.Context, text, rawURL string) (*model.AnalysisResult, error) {
	if text == "" && rawURL != "" {
		extracted, kind, err := p.sources.Extract(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		log.Printf("pipeline: extracted %d chars from %s source", len(extracted), kind)
		text = extracted
	}

	if len(text) < minInputChars {
		return nil, model.Validationf("too short; please provide more text or a valid article URL")
	}

	claims, err := p.extractClaims(ctx, text)
	if err != nil {
		return nil, err
	}
	log.Printf("pipeline: extracted %d claims", len(claims))

	evidence := p.gatherEvidence(ctx, claims)

	return p.judge(ctx, text, rawURL, evidence)
}

// extractClaims runs the first LLM call and decodes its claim array.
func (p *Pipeline) extractClaims(ctx context.Context, text string) ([]string, error) {
	if p.provider == nil {
		return nil, &model.UpstreamError{Stage: "extract claims",
			Err: errors.New("LLM provider is not configured (set GROQ_API_KEY)")}
	}
	raw, err := p.provider.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: claimPrompt(text)}},
		Temperature: claimTemperature,
	})
	if err != nil {
		return nil, &model.UpstreamError{Stage: "extract claims", Err: err}
	}

	claims, err := extractJSONArray(raw)
	if err != nil {
		return nil, &model.UpstreamError{Stage: "extract claims", Err: err}
	}
	return claims, nil
}

// gatherEvidence fans out one search per claim and concatenates the
// claim-labeled evidence blocks in claim order.
func (p *Pipeline) gatherEvidence(ctx context.Context, claims []string) string {
	perClaim := worker.Map(ctx, claims, p.workers, func(ctx context.Context, claim string) []model.EvidenceItem {
		return p.searcher.SearchClaim(ctx, claim)
	})

	var b strings.Builder
	for i, claim := range claims {
		b.WriteString(evidenceBlock(claim, perClaim[i]))
	}
	return b.String()
}

// judge runs the second LLM call and materializes the typed result.
func (p *Pipeline) judge(ctx context.Context, text, rawURL, evidence string) (*model.AnalysisResult, error) {
	raw, err := p.provider.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: "user", Content: judgePrompt(text, rawURL, evidence)}},
		Temperature: judgeTemperature,
	})
	if err != nil {
		return nil, &model.UpstreamError{Stage: "judge", Err: err}
	}

	object, err := extractJSONObject(raw)
	if err != nil {
		return nil, &model.UpstreamError{Stage: "judge", Err: err}
	}

	result, err := materialize([]byte(object))
	if err != nil {
		return nil, &model.UpstreamError{Stage: "judge", Err: err}
	}
	return result, nil
}
