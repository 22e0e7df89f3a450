package pipeline

import (
	"fmt"
	"strings"

	"github.com/cronkite-edu/cronkite/internal/model"
)

// Character caps on text embedded in prompts. The claim-extraction call sees
// more of the article than the judge call, which also has to fit the rubric
// and the evidence blocks.
const (
	maxClaimPromptChars = 6000
	maxJudgePromptChars = 4000
)

// claimPrompt asks for a JSON array of 4-6 short verifiable claims.
func claimPrompt(articleText string) string {
	return fmt.Sprintf(
		"Extract 4-6 important verifiable factual claims from this article. "+
			"Ignore opinions. Return ONLY a JSON array of short claim strings.\n"+
			"ARTICLE:\n%s\n"+
			`Format: ["Claim 1", "Claim 2"]`,
		truncate(articleText, maxClaimPromptChars))
}

// evidenceBlock formats the gathered evidence for one claim. Blocks are
// claim-labeled, so their order carries no meaning for the judge.
func evidenceBlock(claim string, items []model.EvidenceItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\nCLAIM: %s\n", claim)
	if len(items) == 0 {
		b.WriteString("WEB EVIDENCE: None found\n")
		return b.String()
	}
	b.WriteString("WEB EVIDENCE:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "  [%s]: %s\n", item.Source, item.Text)
	}
	return b.String()
}

// judgePrompt combines the fact-check/bias/language rubric with the source
// text, URL, and evidence blocks, and requests a single JSON object in the
// AnalysisResult shape.
func judgePrompt(articleText, articleURL, evidence string) string {
	return "You are an expert fact-checker, media bias analyst, and linguist.\n\n" +

		"FACT-CHECKING RULES:\n" +
		"- Give a CONFIDENT verdict for every claim using web evidence AND your knowledge\n" +
		"- Only use 'Unverified' if evidence is truly absent\n" +
		"- Cite actual source domains. Aim for 2-3 sources per claim\n\n" +

		"BIAS ANALYSIS RULES:\n" +
		"- Assess the article's overall political/ideological bias\n" +
		"- bias_score: 0=Far Left, 25=Left, 50=Centre, 75=Right, 100=Far Right\n" +
		"- bias_label: Far Left | Left-Leaning | Centre-Left | Centre | Centre-Right | Right-Leaning | Far Right\n" +
		"- Look for: loaded language, selective sourcing, framing, omissions, emotional tone\n\n" +

		"LANGUAGE FLAGGING RULES — this is critical:\n" +
		"Scan the article for biased or loaded language patterns including:\n" +
		"1. IDENTITY + CRIME LINKING: Phrases that connect nationality, ethnicity, religion or immigration status with criminal acts\n" +
		"   Examples: 'Afghan knifeman', 'Muslim attacker', 'illegal immigrant criminal', 'Romanian gang'\n" +
		"   Why it matters: Implies a group's identity caused or is linked to their crime\n" +
		"2. DEHUMANISING LANGUAGE: Words that reduce people to objects or animals\n" +
		"   Examples: 'swarms of migrants', 'flooding our borders', 'cockroaches'\n" +
		"3. LOADED ADJECTIVES: Emotionally charged words that imply judgement beyond the facts\n" +
		"   Examples: 'thugs', 'savages', 'radical', 'extremist' used without evidence\n" +
		"4. SELECTIVE IDENTITY LABELLING: Mentioning someone's nationality/religion only when they commit crimes, not in positive stories\n" +
		"5. EUPHEMISMS FOR BIAS: Language that softens or normalises discriminatory views\n" +
		"6. GENERALISATION FROM INDIVIDUAL: Using one person's actions to imply group behaviour\n\n" +
		"For each flagged phrase, explain clearly why it is problematic.\n\n" +

		"For each claim also assess:\n" +
		"- False conclusions, overgeneralisations, assumptions, missing context\n\n" +

		fmt.Sprintf("ARTICLE URL: %s\n", articleURL) +
		fmt.Sprintf("ARTICLE TEXT:\n%s\n", truncate(articleText, maxJudgePromptChars)) +
		evidence + "\n\n" +

		"Return ONLY valid JSON:\n" +
		`{"overall_score": <0-100>, "verdict": "<verdict>", "summary": "<2-3 sentences>", ` +
		`"bias_score": <0-100>, ` +
		`"bias_label": "<label>", ` +
		`"bias_summary": "<2-3 sentences explaining bias>", ` +
		`"language_flags": [{"phrase": "<exact phrase from article>", "issue": "<clear explanation of why this is problematic>"}], ` +
		`"claims": [{` +
		`"claim": "<claim>", ` +
		`"verdict": "<Verified|Likely True|Mostly True|Misleading|False Conclusion|Overgeneralisation|Missing Context|Contradicted|Likely False|False|Unverified>", ` +
		`"score": <0-100>, ` +
		`"explanation": "<2-3 sentences>", ` +
		`"nuance": "<issues with conclusions/assumptions/context — empty string if none>", ` +
		`"sources": ["<source domain>"]}]}`
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
