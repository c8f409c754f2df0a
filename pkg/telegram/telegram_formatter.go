package telegram

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang-stock-sentiment/internal/entity"
	"golang-stock-sentiment/pkg/utils"
)

// MaxMessageLength keeps messages under the 4096 character Telegram limit.
const MaxMessageLength = 4090

// markdownEscaper escapes the legacy Markdown control characters.
var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

func trendIcon(trend entity.MarketTrend) string {
	switch trend {
	case entity.MarketTrendGreedy:
		return "🤑"
	case entity.MarketTrendBullish:
		return "😊"
	case entity.MarketTrendBearish:
		return "😟"
	case entity.MarketTrendFearful:
		return "😱"
	default:
		return "😐"
	}
}

func signalIcon(signal entity.Signal) string {
	switch signal {
	case entity.SignalStrongBuy, entity.SignalBuy:
		return "🟢"
	case entity.SignalStrongSell, entity.SignalSell:
		return "🔴"
	default:
		return "🟡"
	}
}

// FormatSentimentDigest formats a watchlist run into Markdown messages, each at most
// MaxMessageLength bytes. Later parts carry a continuation header.
func FormatSentimentDigest(reports []*entity.SentimentReport) []string {
	if len(reports) == 0 {
		return []string{"No sentiment reports were generated for the watchlist."}
	}

	var messages []string
	var currentMessage strings.Builder
	part := 1

	startNewPart := func() {
		currentMessage.Reset()
		if part == 1 {
			currentMessage.WriteString("📰 *Watchlist Sentiment Digest* 📰\n\n")
		} else {
			currentMessage.WriteString(fmt.Sprintf("---*Watchlist Sentiment Digest Part %d*---\n\n", part))
		}
	}
	startNewPart()

	for _, r := range reports {
		var entry strings.Builder
		entry.WriteString(fmt.Sprintf("📈 *- - - - - %s - - - - -*\n", r.Ticker))
		entry.WriteString(fmt.Sprintf("💬 *Summary:* %s\n", markdownEscaper.Replace(r.Summary)))
		entry.WriteString(fmt.Sprintf("%s *Trend:* %s (%.2f)\n", trendIcon(r.MarketTrend), r.MarketTrend, r.SentimentScore))
		entry.WriteString(fmt.Sprintf("%s *Signal:* %s\n", signalIcon(r.Signal), r.Signal))
		entry.WriteString(fmt.Sprintf("💥 *Impact:* %.2f  🎯 *Relevance:* %.2f\n", r.ImpactScore, r.RelevanceScore))
		entry.WriteString(fmt.Sprintf("🧮 *Items:* %d (+%d / -%d / =%d)\n\n",
			r.Breakdown.Total(), r.Breakdown.PositiveCount, r.Breakdown.NegativeCount, r.Breakdown.NeutralCount))

		entryString := entry.String()
		if currentMessage.Len()+len(entryString) > MaxMessageLength {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}
		currentMessage.WriteString(entryString)
	}

	messages = append(messages, currentMessage.String())
	return messages
}

// FormatSentimentReport formats one report with its highlights and recommendations.
func FormatSentimentReport(report *entity.SentimentReport) string {
	var builder strings.Builder

	builder.WriteString("--- 📰 *Sentiment Report* ---\n\n")
	builder.WriteString(fmt.Sprintf("📈 *Ticker:* `%s`\n", report.Ticker))
	builder.WriteString(fmt.Sprintf("🗓 *Period:* %s → %s\n\n",
		utils.PrettyDate(report.TimePeriod[0]), utils.PrettyDate(report.TimePeriod[1])))

	builder.WriteString(fmt.Sprintf("%s *Trend:* %s\n", trendIcon(report.MarketTrend), report.MarketTrend))
	builder.WriteString(fmt.Sprintf("%s *Signal:* %s\n", signalIcon(report.Signal), report.Signal))
	builder.WriteString(fmt.Sprintf("📊 *Sentiment:* %.2f  💥 *Impact:* %.2f  🎯 *Relevance:* %.2f\n\n",
		report.SentimentScore, report.ImpactScore, report.RelevanceScore))

	builder.WriteString(fmt.Sprintf("💬 %s\n\n", markdownEscaper.Replace(report.Summary)))

	if len(report.Highlights) > 0 {
		builder.WriteString("🔑 *Highlights:*\n")
		for _, h := range report.Highlights {
			builder.WriteString(fmt.Sprintf("  - %s\n", markdownEscaper.Replace(h)))
		}
		builder.WriteString("\n")
	}

	if len(report.Recommendations) > 0 {
		builder.WriteString("💡 *Recommendations:*\n")
		for _, r := range report.Recommendations {
			builder.WriteString(fmt.Sprintf("  - %s\n", markdownEscaper.Replace(r)))
		}
		builder.WriteString("\n")
	}

	builder.WriteString(fmt.Sprintf("🤔 *Reasoning:*\n_%s_\n\n", markdownEscaper.Replace(report.Reasoning)))
	builder.WriteString("--- 🔚 *End of Report* ---\n")

	msg := builder.String()
	if len(msg) > MaxMessageLength {
		msg = truncateUTF8(msg, MaxMessageLength)
	}
	return msg
}

// FormatErrorAlertMessage formats a failure notice.
func FormatErrorAlertMessage(t time.Time, errType string, errMsg string, data string) string {
	return fmt.Sprintf("📛 [ERROR ALERT]\n%s\n🔧 %s\n⚠️ %s\n\n📄 Data: %s\n",
		utils.PrettyDate(t), errType, markdownEscaper.Replace(errMsg), markdownEscaper.Replace(data))
}

func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
