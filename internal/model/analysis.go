package model

// ClaimResult is the judged outcome for a single extracted claim
type ClaimResult struct {
	Claim       string   `json:"claim"`       // The claim text, as extracted
	Verdict     string   `json:"verdict"`     // One of the documented verdict labels
	Score       int      `json:"score"`       // Confidence 0-100
	Explanation string   `json:"explanation"` // 2-3 sentence rationale
	Nuance      string   `json:"nuance"`      // Issues with conclusions/assumptions/context
	Sources     []string `json:"sources"`     // Cited source domains
}

// LanguageFlag marks a loaded or biased phrase found in the source text
type LanguageFlag struct {
	Phrase string `json:"phrase"` // Exact phrase from the article
	Issue  string `json:"issue"`  // Why the phrase is problematic
}

// EvidenceItem is one web-search snippet attached to a claim
type EvidenceItem struct {
	Text   string `json:"text"`   // Snippet, truncated to 400 chars
	Source string `json:"source"` // Domain, or a label for a synthesized answer
}

// AnalysisResult is the complete fact-check and bias report for one submission
type AnalysisResult struct {
	OverallScore  int            `json:"overall_score"`
	Verdict       string         `json:"verdict"`
	Summary       string         `json:"summary"`
	BiasScore     int            `json:"bias_score"`
	BiasLabel     string         `json:"bias_label"`
	BiasSummary   string         `json:"bias_summary"`
	LanguageFlags []LanguageFlag `json:"language_flags"`
	Claims        []ClaimResult  `json:"claims"`
}

// KnownVerdicts lists the labels the judge prompt instructs the model to use.
// The model is not a typed peer: values outside this list are passed through
// rather than rejected, so the list is documentation, not validation.
var KnownVerdicts = []string{
	"Verified", "Likely True", "Mostly True", "Misleading", "False Conclusion",
	"Overgeneralisation", "Missing Context", "Contradicted", "Likely False",
	"False", "Unverified",
}

// KnownBiasLabels lists the bias bands named in the judge prompt.
var KnownBiasLabels = []string{
	"Far Left", "Left-Leaning", "Centre-Left", "Centre",
	"Centre-Right", "Right-Leaning", "Far Right",
}

// Defaults applied when the judge output omits optional fields.
const (
	DefaultOverallScore = 50
	DefaultVerdict      = "Unknown"
	DefaultBiasScore    = 50
	DefaultBiasLabel    = "Centre"
)
