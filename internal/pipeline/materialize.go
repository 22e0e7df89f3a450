package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/cronkite-edu/cronkite/internal/model"
)

// Intermediate decode targets. Pointer fields distinguish "absent" from
// "zero" so required fields can be enforced while optional fields take the
// documented defaults. Scores decode as float64 because the model sometimes
// emits "87.0" where an integer was requested.

type rawClaim struct {
	Claim       *string  `json:"claim"`
	Verdict     *string  `json:"verdict"`
	Score       *float64 `json:"score"`
	Explanation *string  `json:"explanation"`
	Nuance      string   `json:"nuance"`
	Sources     []string `json:"sources"`
}

type rawFlag struct {
	Phrase *string `json:"phrase"`
	Issue  *string `json:"issue"`
}

type rawJudgment struct {
	OverallScore  *float64   `json:"overall_score"`
	Verdict       *string    `json:"verdict"`
	Summary       *string    `json:"summary"`
	BiasScore     *float64   `json:"bias_score"`
	BiasLabel     *string    `json:"bias_label"`
	BiasSummary   *string    `json:"bias_summary"`
	LanguageFlags []rawFlag  `json:"language_flags"`
	Claims        []rawClaim `json:"claims"`
}

// materialize decodes the judge's JSON object into an AnalysisResult,
// applying the documented defaults for every optional field. Verdict and
// bias-label values outside the known vocabularies pass through untouched:
// the model is not contractually bound to the closed sets.
func materialize(data []byte) (*model.AnalysisResult, error) {
	var raw rawJudgment
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}

	claims := make([]model.ClaimResult, 0, len(raw.Claims))
	for i, c := range raw.Claims {
		if c.Claim == nil || c.Verdict == nil || c.Score == nil || c.Explanation == nil {
			return nil, fmt.Errorf("claim %d is missing a required field (claim, verdict, score, explanation)", i)
		}
		sources := c.Sources
		if sources == nil {
			sources = []string{}
		}
		claims = append(claims, model.ClaimResult{
			Claim:       *c.Claim,
			Verdict:     *c.Verdict,
			Score:       int(*c.Score),
			Explanation: *c.Explanation,
			Nuance:      c.Nuance,
			Sources:     sources,
		})
	}

	flags := make([]model.LanguageFlag, 0, len(raw.LanguageFlags))
	for i, f := range raw.LanguageFlags {
		if f.Phrase == nil || f.Issue == nil {
			return nil, fmt.Errorf("language flag %d is missing a required field (phrase, issue)", i)
		}
		flags = append(flags, model.LanguageFlag{Phrase: *f.Phrase, Issue: *f.Issue})
	}

	result := &model.AnalysisResult{
		OverallScore:  model.DefaultOverallScore,
		Verdict:       model.DefaultVerdict,
		BiasScore:     model.DefaultBiasScore,
		BiasLabel:     model.DefaultBiasLabel,
		LanguageFlags: flags,
		Claims:        claims,
	}
	if raw.OverallScore != nil {
		result.OverallScore = int(*raw.OverallScore)
	}
	if raw.Verdict != nil {
		result.Verdict = *raw.Verdict
	}
	if raw.Summary != nil {
		result.Summary = *raw.Summary
	}
	if raw.BiasScore != nil {
		result.BiasScore = int(*raw.BiasScore)
	}
	if raw.BiasLabel != nil {
		result.BiasLabel = *raw.BiasLabel
	}
	if raw.BiasSummary != nil {
		result.BiasSummary = *raw.BiasSummary
	}

	return result, nil
}
