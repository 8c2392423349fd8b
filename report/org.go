package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
)

// FormatTradeOrg renders a trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in a PROPERTIES drawer for easy search; any rule
// violations are listed before the narrative placeholders.
func FormatTradeOrg(t journal.Trade, violations []risk.Violation) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Symbol, t.Direction, shortID(t.ID))
	// Use RFC3339 for copy/paste friendliness.
	entry := t.EntryDate.UTC().Format(time.RFC3339)
	exit := "open"
	if t.HasExit() {
		exit = t.ExitDate.UTC().Format(time.RFC3339)
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", t.Symbol))
	if t.AssetClass != "" {
		b.WriteString(fmt.Sprintf(":ASSET_CLASS: %s\n", t.AssetClass))
	}
	b.WriteString(fmt.Sprintf(":SIZE: %g\n", t.Size))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.5f\n", t.ExitPrice))
	b.WriteString(fmt.Sprintf(":ENTRY_TIME: %s\n", entry))
	b.WriteString(fmt.Sprintf(":EXIT_TIME: %s\n", exit))
	b.WriteString(fmt.Sprintf(":NET_PL: %s\n", money(t.NetPnL)))
	b.WriteString(fmt.Sprintf(":RISK: %s\n", money(t.RiskAmount)))
	b.WriteString(fmt.Sprintf(":R_MULTIPLE: %.2f\n", t.RiskMultiple))
	for _, p := range [][2]string{
		{"STRATEGY", t.Strategy},
		{"SETUP", t.Setup},
		{"TIMEFRAME", t.Timeframe},
		{"SESSION", string(t.Session)},
	} {
		if p[1] != "" {
			b.WriteString(fmt.Sprintf(":%s: %s\n", p[0], p[1]))
		}
	}
	if t.Confidence > 0 {
		b.WriteString(fmt.Sprintf(":CONFIDENCE: %d\n", t.Confidence))
	}
	b.WriteString(fmt.Sprintf(":STATUS: %s\n", t.Status))
	b.WriteString(":END:\n")
	b.WriteString("\n")

	if len(violations) > 0 {
		b.WriteString("*** Violations\n")
		for _, v := range violations {
			b.WriteString(fmt.Sprintf("- [%s] %s\n", v.Code, v.Msg))
		}
		b.WriteString("\n")
	}

	thesis := "- "
	if t.Notes != "" {
		thesis = "- " + t.Notes
	}
	b.WriteString("*** Thesis\n" + thesis + "\n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")
	for _, img := range t.Images {
		b.WriteString(fmt.Sprintf("[[%s]]\n", img))
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
// violations is keyed by trade id, as returned by risk.Rules.CheckAll.
func FormatTradesOrg(trades []journal.Trade, violations map[string][]risk.Violation) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t, violations[t.ID]))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
