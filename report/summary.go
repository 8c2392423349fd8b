package report

import (
	"fmt"
	"io"
	"sort"
	"text/template"
	"time"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
)

// Summary is the data behind the Org-mode performance report.
type Summary struct {
	Title    string
	Account  string
	Currency string
	Created  time.Time

	// Period covered by the closed trades
	Start time.Time
	End   time.Time

	Metrics   analytics.Metrics
	ReturnPct float64
	OpenCount int

	Monthly    []analytics.MonthlyReturn
	Strategies []analytics.Group

	// Violation counts by code, most frequent first
	Violations []ViolationCount
	Flagged    int

	Notes []string
}

type ViolationCount struct {
	Code  string
	Count int
}

// NewSummary computes everything the report shows from a trade list.
func NewSummary(title string, trades []journal.Trade, startingBalance float64, rules risk.Rules, profile *risk.Profile) Summary {
	m := analytics.ComputeMetrics(trades, startingBalance)

	s := Summary{
		Title:      title,
		Metrics:    m,
		Monthly:    analytics.MonthlyPnL(trades),
		Strategies: analytics.Breakdown(trades, startingBalance, analytics.ByStrategy),
	}
	if profile != nil {
		s.Currency = profile.Currency
	}
	if startingBalance > 0 {
		s.ReturnPct = m.NetProfit / startingBalance * 100
	}

	for _, t := range trades {
		if !t.IsClosed() {
			s.OpenCount++
			continue
		}
		if s.Start.IsZero() || t.EntryDate.Before(s.Start) {
			s.Start = t.EntryDate
		}
		if t.ExitDate.After(s.End) {
			s.End = t.ExitDate
		}
	}

	counts := map[string]int{}
	for _, vs := range rules.CheckAll(trades, profile) {
		s.Flagged++
		for _, v := range vs {
			counts[v.Code]++
		}
	}
	for code, n := range counts {
		s.Violations = append(s.Violations, ViolationCount{Code: code, Count: n})
	}
	sort.Slice(s.Violations, func(i, j int) bool {
		if s.Violations[i].Count != s.Violations[j].Count {
			return s.Violations[i].Count > s.Violations[j].Count
		}
		return s.Violations[i].Code < s.Violations[j].Code
	})
	return s
}

var summaryOrgFuncs = template.FuncMap{
	"money": money,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.UTC().Format("2006-01-02")
	},
	"month": func(t time.Time) string { return t.Format("2006-01") },
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
	"pf": profitFactor,
}

var summaryOrg = template.Must(template.New("summary").Funcs(summaryOrgFuncs).Parse(SummaryOrgTemplate))

// WriteSummaryOrg renders the summary as an Org-mode document.
func WriteSummaryOrg(w io.Writer, s Summary) error {
	if err := summaryOrg.Execute(w, s); err != nil {
		return fmt.Errorf("render summary: %w", err)
	}
	return nil
}

const SummaryOrgTemplate = `* JOURNAL: {{if .Title}}{{.Title}}{{else}}Performance Summary{{end}}
:PROPERTIES:
:ACCOUNT:     {{if .Account}}{{.Account}}{{else}}(account?){{end}}
:CURRENCY:    {{if .Currency}}{{.Currency}}{{else}}(currency?){{end}}
:START_DATE:  {{date .Start}}
:END_DATE:    {{date .End}}
:START_BAL:   {{money .Metrics.StartingBalance}}
:END_BAL:     {{money .Metrics.FinalEquity}}
:NET_PL:      {{money .Metrics.NetProfit}}
:RETURN_PCT:  {{printf "%.2f" .ReturnPct}}
:MAX_DD_PCT:  {{printf "%.2f" .Metrics.MaxDrawdownPercent}}
:TRADES:      {{.Metrics.TotalTrades}}
:WINS:        {{.Metrics.Wins}}
:LOSSES:      {{.Metrics.Losses}}
:WIN_RATE:    {{printf "%.2f" .Metrics.WinRate}}
:PROFIT_FAC:  {{pf .Metrics.ProfitFactor}}
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:END:

** Performance Summary
- Net P/L:          *{{money .Metrics.NetProfit}}*
- Return:           *{{printf "%.2f" .ReturnPct}}%*
- Max Drawdown:     *{{money .Metrics.MaxDrawdown}} ({{printf "%.2f" .Metrics.MaxDrawdownPercent}}%)*
- Win Rate:         *{{printf "%.2f" .Metrics.WinRate}}%*
- Profit Factor:    *{{pf .Metrics.ProfitFactor}}*
- Expectancy:       *{{money .Metrics.Expectancy}}*
- Average R:        *{{printf "%.2f" .Metrics.AverageR}}*
- Current Streak:   *{{.Metrics.CurrentStreak}}*

** Trade Distribution
| Outcome      | Count | Amount |
|--------------+-------+--------|
| Wins         | {{.Metrics.Wins}} | {{money .Metrics.GrossProfit}} |
| Losses       | {{.Metrics.Losses}} | {{money .Metrics.GrossLoss}} |
| Total        | {{.Metrics.TotalTrades}} | {{money .Metrics.NetProfit}} |
| Largest Win  | | {{money .Metrics.LargestWin}} |
| Largest Loss | | {{money .Metrics.LargestLoss}} |
| Open         | {{.OpenCount}} | |

{{- if .Monthly }}

** Monthly P/L
| Month | Trades | Net P/L |
|-------+--------+---------|
{{- range .Monthly }}
| {{month .Month}} | {{.Trades}} | {{money .NetPnL}} |
{{- end }}
{{- end }}

{{- if .Strategies }}

** Strategies
| Strategy | Trades | Win Rate | Net P/L | PF |
|----------+--------+----------+---------+----|
{{- range .Strategies }}
| {{.Name}} | {{.Metrics.TotalTrades}} | {{printf "%.2f" .Metrics.WinRate}}% | {{money .Metrics.NetProfit}} | {{pf .Metrics.ProfitFactor}} |
{{- end }}
{{- end }}

** Rule Violations
{{- if .Violations }}
{{.Flagged}} trade(s) flagged.
| Rule | Count |
|------+-------|
{{- range .Violations }}
| {{.Code}} | {{.Count}} |
{{- end }}
{{- else }}
- none
{{- end }}

{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`
