package pipeline

import (
	"strings"
	"testing"

	"github.com/cronkite-edu/cronkite/internal/model"
)

func TestClaimPrompt_TruncatesLongArticles(t *testing.T) {
	article := strings.Repeat("a", maxClaimPromptChars+500)
	prompt := claimPrompt(article)
	if strings.Contains(prompt, strings.Repeat("a", maxClaimPromptChars+1)) {
		t.Error("Article text should be truncated before embedding")
	}
	if !strings.Contains(prompt, "JSON array") {
		t.Error("Prompt should request a JSON array")
	}
}

func TestEvidenceBlock(t *testing.T) {
	items := []model.EvidenceItem{
		{Source: "Tavily Web Search", Text: "Synthesized answer."},
		{Source: "news.example.com", Text: "Snippet text."},
	}
	block := evidenceBlock("The vote passed", items)

	if !strings.Contains(block, "CLAIM: The vote passed") {
		t.Errorf("Block should label the claim: %q", block)
	}
	if !strings.Contains(block, "[Tavily Web Search]: Synthesized answer.") {
		t.Errorf("Block should carry source-labeled snippets: %q", block)
	}
}

func TestEvidenceBlock_NoEvidence(t *testing.T) {
	block := evidenceBlock("Unsupported claim", nil)
	if !strings.Contains(block, "WEB EVIDENCE: None found") {
		t.Errorf("Empty evidence should be stated explicitly: %q", block)
	}
}

func TestJudgePrompt_CarriesContext(t *testing.T) {
	prompt := judgePrompt("Article body here.", "https://example.com/a", "\nCLAIM: X\nWEB EVIDENCE: None found\n")

	for _, want := range []string{
		"ARTICLE URL: https://example.com/a",
		"Article body here.",
		"CLAIM: X",
		"Return ONLY valid JSON",
		"language_flags",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Judge prompt missing %q", want)
		}
	}
}
