package pipeline

import (
	"math"
	"regexp"
	"strings"
	"time"

	"golang-stock-sentiment/internal/entity"
)

// assembleText joins the trimmed, non-empty title, summary and body with single spaces.
func assembleText(c entity.SentimentContent) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Title, c.Summary, c.Body} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// prepareText applies the configured truncation. Lengths count runes.
func prepareText(c entity.SentimentContent, mode Truncation, maxChars int) string {
	if mode == TruncationHead {
		return headRunes(assembleText(c), maxChars)
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{c.Title, c.Summary} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	combined := strings.Join(parts, " ")

	body := strings.TrimSpace(c.Body)
	if used := runeLen(combined); body != "" && used < maxChars {
		remaining := maxChars - used - 1
		if excerpt := headRunes(body, remaining); excerpt != "" {
			parts = append(parts, excerpt)
		}
	}
	return headRunes(strings.Join(parts, " "), maxChars)
}

func runeLen(s string) int {
	return len([]rune(s))
}

func headRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// countTickerMentions counts case-insensitive whole-word occurrences of ticker.
func countTickerMentions(ticker, text string) int {
	if ticker == "" {
		return 0
	}
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(ticker) + `\b`)
	return len(re.FindAllStringIndex(text, -1))
}

// freshnessScore decays linearly by 0.1 per week of age. Unknown publish time scores 0.5.
func freshnessScore(publishedAt *time.Time, now time.Time) float64 {
	if publishedAt == nil {
		return 0.5
	}
	ageHours := now.Sub(*publishedAt).Hours()
	return math.Min(1, math.Max(0, 1-(ageHours/168)*0.1))
}
