package pipeline

import (
	"strings"
	"testing"
)

func TestMaterialize_DefaultsWhenOptionalFieldsAbsent(t *testing.T) {
	// A judgment with only claims present: every top-level field takes its
	// documented default and the slices stay non-nil.
	raw := `{"claims": []}`

	got, err := materialize([]byte(raw))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.OverallScore != 50 {
		t.Errorf("OverallScore = %d, want 50", got.OverallScore)
	}
	if got.Verdict != "Unknown" {
		t.Errorf("Verdict = %q, want %q", got.Verdict, "Unknown")
	}
	if got.Summary != "" {
		t.Errorf("Summary = %q, want empty", got.Summary)
	}
	if got.BiasScore != 50 {
		t.Errorf("BiasScore = %d, want 50", got.BiasScore)
	}
	if got.BiasLabel != "Centre" {
		t.Errorf("BiasLabel = %q, want %q", got.BiasLabel, "Centre")
	}
	if got.BiasSummary != "" {
		t.Errorf("BiasSummary = %q, want empty", got.BiasSummary)
	}
	if got.LanguageFlags == nil {
		t.Error("LanguageFlags should be an empty slice, not nil")
	}
	if got.Claims == nil {
		t.Error("Claims should be an empty slice, not nil")
	}
}

func TestMaterialize_FullJudgment(t *testing.T) {
	raw := `{
		"overall_score": 72,
		"verdict": "Mostly True",
		"summary": "Largely accurate reporting.",
		"bias_score": 38,
		"bias_label": "Centre-Left",
		"bias_summary": "Mild framing.",
		"language_flags": [{"phrase": "shocking", "issue": "Sensationalism"}],
		"claims": [{
			"claim": "X happened",
			"verdict": "True",
			"score": 87.0,
			"explanation": "Confirmed by two outlets.",
			"nuance": "Timing disputed.",
			"sources": ["example.com"]
		}]
	}`

	got, err := materialize([]byte(raw))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.OverallScore != 72 || got.Verdict != "Mostly True" {
		t.Errorf("Unexpected top-level fields: %d %q", got.OverallScore, got.Verdict)
	}
	if len(got.LanguageFlags) != 1 || got.LanguageFlags[0].Phrase != "shocking" {
		t.Errorf("Unexpected language flags: %+v", got.LanguageFlags)
	}
	if len(got.Claims) != 1 {
		t.Fatalf("Expected 1 claim, got %d", len(got.Claims))
	}
	c := got.Claims[0]
	if c.Score != 87 {
		t.Errorf("Score = %d, want 87 (float input truncated)", c.Score)
	}
	if c.Nuance != "Timing disputed." || len(c.Sources) != 1 {
		t.Errorf("Unexpected claim: %+v", c)
	}
}

func TestMaterialize_MissingRequiredClaimField(t *testing.T) {
	// Explanation absent: the claim must be rejected, not defaulted.
	raw := `{"claims": [{"claim": "X", "verdict": "True", "score": 80}]}`

	_, err := materialize([]byte(raw))
	if err == nil {
		t.Fatal("Expected error for claim missing a required field")
	}
	if !strings.Contains(err.Error(), "claim 0") {
		t.Errorf("Error should name the claim index: %v", err)
	}
}

func TestMaterialize_MissingRequiredFlagField(t *testing.T) {
	raw := `{"claims": [], "language_flags": [{"phrase": "shocking"}]}`

	if _, err := materialize([]byte(raw)); err == nil {
		t.Fatal("Expected error for flag missing the issue field")
	}
}

func TestMaterialize_ClaimSourcesNeverNil(t *testing.T) {
	raw := `{"claims": [{"claim": "X", "verdict": "True", "score": 80, "explanation": "ok"}]}`

	got, err := materialize([]byte(raw))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Claims[0].Sources == nil {
		t.Error("Sources should be an empty slice, not nil")
	}
}

func TestMaterialize_UnknownVerdictPassesThrough(t *testing.T) {
	// The model is not bound to the known vocabulary; novel labels survive.
	raw := `{"verdict": "Partially Substantiated", "bias_label": "Far-Centre", "claims": []}`

	got, err := materialize([]byte(raw))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got.Verdict != "Partially Substantiated" {
		t.Errorf("Verdict = %q, want pass-through", got.Verdict)
	}
	if got.BiasLabel != "Far-Centre" {
		t.Errorf("BiasLabel = %q, want pass-through", got.BiasLabel)
	}
}
