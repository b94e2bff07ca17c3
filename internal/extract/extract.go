// Package extract derives a structured RiskAssessment from the model's
// free-text reply. The reply format is only loosely guaranteed by the prompt,
// so this is a best-effort scraper: every field has a safe default and
// parsing never fails. A degraded structured result beats a failed analysis
// when the text itself arrived fine.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"frauddetect/internal/domain"
)

var (
	// First decimal number after the fraud_score token, same line or later.
	scoreRe = regexp.MustCompile(`(?is)fraud_score.*?(\d+(?:\.\d+)?)`)

	verdictRe = regexp.MustCompile(`(?i)Вердикт:[ \t]*([^\n]*)`)

	// Action text on the label's own line, and the numbered-section variant
	// used to find the next line when the label stands alone.
	actionRe      = regexp.MustCompile(`(?i)Рекомендуемое действие.*?:([^\n]*)`)
	actionSplitRe = regexp.MustCompile(`(?i)4\.\s*Рекомендуемое действие.*?:`)

	verdictQuotes = strings.NewReplacer("«", "", "»", "", `"`, "")
)

// Scraper is the regex-based extraction strategy. Kept behind a small type so
// a constrained-output mode can replace it without touching callers.
type Scraper struct{}

func NewScraper() *Scraper {
	return &Scraper{}
}

// Parse scrapes verdict, score, level, and recommended action out of raw.
// It always returns a complete, displayable assessment; raw is carried
// verbatim as the canonical explanation text.
func (s *Scraper) Parse(raw string) domain.RiskAssessment {
	return domain.RiskAssessment{
		Verdict:           extractVerdict(raw),
		RiskScore:         extractScore(raw),
		RiskLevel:         extractLevel(raw),
		Explanation:       []string{},
		RecommendedAction: extractAction(raw),
		RawResponse:       raw,
	}
}

// extractScore defaults to 0 when no number follows fraud_score. The value is
// deliberately not clamped to [0,1]; a malformed score passes through as-is.
func extractScore(raw string) float64 {
	m := scoreRe.FindStringSubmatch(raw)
	if m == nil {
		return 0
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return score
}

// extractLevel checks the level keywords in fixed priority order, HIGH first,
// as plain substring containment. A keyword embedded in prose still counts;
// that matches the dashboard's historical behavior and is not word-bounded
// on purpose.
func extractLevel(raw string) domain.RiskLevel {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, string(domain.RiskHigh)):
		return domain.RiskHigh
	case strings.Contains(upper, string(domain.RiskMedium)):
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func extractVerdict(raw string) string {
	m := verdictRe.FindStringSubmatch(raw)
	if m == nil {
		return domain.VerdictUnknown
	}
	verdict := strings.TrimSpace(verdictQuotes.Replace(m[1]))
	if verdict == "" {
		return domain.VerdictUnknown
	}
	return verdict
}

func extractAction(raw string) string {
	if m := actionRe.FindStringSubmatch(raw); m != nil {
		if action := strings.TrimSpace(m[1]); action != "" {
			return action
		}
		// Label and content on separate lines: take the first non-empty line
		// after the numbered section header, dropping a leading list bullet.
		if action := actionFromNextLine(raw); action != "" {
			return action
		}
	}
	return domain.ActionSeeDetails
}

func actionFromNextLine(raw string) string {
	parts := actionSplitRe.Split(raw, 2)
	if len(parts) < 2 {
		return ""
	}
	for _, line := range strings.Split(strings.TrimSpace(parts[1]), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return strings.TrimSpace(strings.TrimPrefix(line, "- "))
	}
	return ""
}
