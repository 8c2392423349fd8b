package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/pkg/id"
	"github.com/rustyeddy/tradejournal/report"
	"github.com/rustyeddy/tradejournal/risk"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Add, edit and list journal trades",
	Long: `Manage the trades in the journal.

Subcommands:
  add     - Log a new trade
  get     - Show one trade as an Org-mode block with its violations
  list    - List trades
  update  - Change fields of a trade
  delete  - Remove a trade
  clear   - Remove every trade
  import  - Import trades from a CSV or JSON file

Examples:
  tradejournal trade add --symbol EURUSD --direction long --entry "2024-05-01 08:30" --size 100000
  tradejournal trade update <trade-id> --exit "2024-05-01 11:00" --net 250 --status closed
  tradejournal trade import trades.csv`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a new trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeGetCmd = &cobra.Command{
	Use:   "get <trade-id>",
	Short: "Show a trade with its rule violations",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeGet,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades, oldest entry first",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeUpdateCmd = &cobra.Command{
	Use:   "update <trade-id>",
	Short: "Change fields of a trade",
	Long: `Change the fields given as flags; every other field keeps its value.
Derived fields (net P/L, risk amount, R-multiple) are filled in when missing.`,
	Args: cobra.ExactArgs(1),
	RunE: runTradeUpdate,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Remove a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

var tradeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every trade from the journal",
	Args:  cobra.NoArgs,
	RunE:  runTradeClear,
}

var tradeImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import trades from a CSV or JSON file",
	Long: `Import trades from a CSV file with a header row or a JSON array of trades.
The format follows the file extension unless --format is given.
Trades without an id get a new one.`,
	Args: cobra.ExactArgs(1),
	RunE: runTradeImport,
}

// tradeFlags holds the field flags shared by add and update.
type tradeFlags struct {
	symbol, assetClass, direction string
	entry, exit                   string
	entryPrice, exitPrice, size   float64
	gross, commission, swap, net  float64
	stop, riskAmount              float64
	strategy, setup, timeframe    string
	session, notes, status        string
	confidence                    int
	images                        []string
}

var (
	addFlags    tradeFlags
	updateFlags tradeFlags

	listStatus string
	listSymbol string

	clearYes     bool
	importFormat string
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeGetCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeUpdateCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)
	tradeCmd.AddCommand(tradeClearCmd)
	tradeCmd.AddCommand(tradeImportCmd)

	addFlags.register(tradeAddCmd.Flags())
	tradeAddCmd.MarkFlagRequired("symbol")
	tradeAddCmd.MarkFlagRequired("entry")
	updateFlags.register(tradeUpdateCmd.Flags())

	tradeListCmd.Flags().StringVar(&listStatus, "status", "", "only trades with this status (open, closed, pending)")
	tradeListCmd.Flags().StringVar(&listSymbol, "symbol", "", "only trades on this symbol")

	tradeClearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm removing every trade")

	tradeImportCmd.Flags().StringVar(&importFormat, "format", "", "csv or json (default: from file extension)")
}

func (f *tradeFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.symbol, "symbol", "s", "", "instrument symbol, e.g. EURUSD")
	fs.StringVar(&f.assetClass, "asset-class", "", "forex, crypto, indices, commodities or stocks")
	fs.StringVar(&f.direction, "direction", "", "long or short")
	fs.StringVar(&f.entry, "entry", "", "entry time (RFC3339, \"YYYY-MM-DD HH:MM\" UTC, or epoch ms)")
	fs.StringVar(&f.exit, "exit", "", "exit time; empty while the trade is open")
	fs.Float64Var(&f.entryPrice, "entry-price", 0, "entry price")
	fs.Float64Var(&f.exitPrice, "exit-price", 0, "exit price")
	fs.Float64Var(&f.size, "size", 0, "position size")
	fs.Float64Var(&f.gross, "gross", 0, "gross P/L")
	fs.Float64Var(&f.commission, "commission", 0, "commission paid")
	fs.Float64Var(&f.swap, "swap", 0, "swap paid")
	fs.Float64Var(&f.net, "net", 0, "net P/L (default: gross - commission - swap)")
	fs.Float64Var(&f.stop, "stop", 0, "initial stop loss price")
	fs.Float64Var(&f.riskAmount, "risk", 0, "planned risk amount (default: from size and stop)")
	fs.StringVar(&f.strategy, "strategy", "", "strategy name")
	fs.StringVar(&f.setup, "setup", "", "setup name")
	fs.StringVar(&f.timeframe, "timeframe", "", "chart timeframe, e.g. H1")
	fs.StringVar(&f.session, "session", "", "asia, london, ny or overlap")
	fs.IntVar(&f.confidence, "confidence", 0, "confidence 1-5")
	fs.StringVar(&f.notes, "notes", "", "free-form notes")
	fs.StringSliceVar(&f.images, "image", nil, "screenshot path or URL (repeatable)")
	fs.StringVar(&f.status, "status", "", "open, closed or pending (default: closed when --exit is set)")
}

// apply copies every flag the user set onto t.
func (f *tradeFlags) apply(fs *pflag.FlagSet, t *journal.Trade) error {
	var err error
	set := fs.Changed

	if set("symbol") {
		t.Symbol = market.Normalize(f.symbol)
	}
	if set("asset-class") {
		t.AssetClass = journal.AssetClass(strings.ToUpper(f.assetClass))
	}
	if set("direction") {
		t.Direction = journal.Direction(strings.ToUpper(f.direction))
	}
	if set("entry") {
		if t.EntryDate, err = parseTime(f.entry); err != nil {
			return fmt.Errorf("--entry: %w", err)
		}
	}
	if set("exit") {
		if t.ExitDate, err = parseTime(f.exit); err != nil {
			return fmt.Errorf("--exit: %w", err)
		}
	}
	nums := []struct {
		name string
		dst  *float64
		val  float64
	}{
		{"entry-price", &t.EntryPrice, f.entryPrice},
		{"exit-price", &t.ExitPrice, f.exitPrice},
		{"size", &t.Size, f.size},
		{"gross", &t.GrossPnL, f.gross},
		{"commission", &t.Commission, f.commission},
		{"swap", &t.Swap, f.swap},
		{"net", &t.NetPnL, f.net},
		{"stop", &t.InitialStopLoss, f.stop},
		{"risk", &t.RiskAmount, f.riskAmount},
	}
	for _, n := range nums {
		if set(n.name) {
			*n.dst = n.val
		}
	}
	if set("strategy") {
		t.Strategy = f.strategy
	}
	if set("setup") {
		t.Setup = f.setup
	}
	if set("timeframe") {
		t.Timeframe = f.timeframe
	}
	if set("session") {
		t.Session = journal.Session(strings.ToUpper(f.session))
	}
	if set("confidence") {
		t.Confidence = f.confidence
	}
	if set("notes") {
		t.Notes = f.notes
	}
	if set("image") {
		t.Images = f.images
	}
	switch {
	case set("status"):
		t.Status = journal.Status(strings.ToUpper(f.status))
	case set("exit") && t.HasExit() && t.Status == journal.StatusOpen:
		t.Status = journal.StatusClosed
	case t.Status == "" && t.HasExit():
		t.Status = journal.StatusClosed
	case t.Status == "":
		t.Status = journal.StatusOpen
	}
	return nil
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	var t journal.Trade
	if err := addFlags.apply(cmd.Flags(), &t); err != nil {
		return err
	}
	t = risk.Complete(fillFromSymbol(t))
	if err := t.Validate(); err != nil {
		return err
	}
	tid, err := id.NewAt(t.EntryDate)
	if err != nil {
		return fmt.Errorf("--entry: %w", err)
	}
	t.ID = tid

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if err := st.Add(ctx, t); err != nil {
		return fmt.Errorf("add trade: %w", err)
	}
	slog.Info("trade added", "id", t.ID, "symbol", t.Symbol)

	all, err := st.List(ctx)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	vs := cfg.Rules().Check(t, all, cfg.Profile())
	fmt.Fprintln(cmd.OutOrStdout(), report.FormatTradeOrg(t, vs))
	return nil
}

func runTradeGet(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	t, err := st.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}
	all, err := st.List(ctx)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	vs := cfg.Rules().Check(t, all, cfg.Profile())
	fmt.Fprintln(cmd.OutOrStdout(), report.FormatTradeOrg(t, vs))
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	all, err := loadAll(cmd.Context())
	if err != nil {
		return err
	}
	vs := cfg.Rules().CheckAll(all, cfg.Profile())

	var shown []journal.Trade
	for _, t := range all {
		if listStatus != "" && !strings.EqualFold(string(t.Status), listStatus) {
			continue
		}
		if listSymbol != "" && !strings.EqualFold(t.Symbol, listSymbol) {
			continue
		}
		shown = append(shown, t)
	}
	return report.PrintTrades(cmd.OutOrStdout(), shown, vs)
}

func runTradeUpdate(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	t, err := st.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}
	if err := updateFlags.apply(cmd.Flags(), &t); err != nil {
		return err
	}
	t = fillFromSymbol(t)

	// Derived fields follow the edited inputs. An explicit --net wins, and
	// a net recorded without a gross is kept.
	flags := cmd.Flags()
	costs := flags.Changed("commission") || flags.Changed("swap")
	if !flags.Changed("net") && (flags.Changed("gross") || (costs && t.GrossPnL != 0)) {
		t.NetPnL = 0
	}
	for _, name := range []string{"gross", "commission", "swap", "net", "stop", "risk", "size", "exit", "status"} {
		if flags.Changed(name) {
			t.RiskMultiple = 0
			break
		}
	}
	t = risk.Complete(t)

	if err := st.Update(ctx, t); err != nil {
		return fmt.Errorf("update trade: %w", err)
	}
	slog.Info("trade updated", "id", t.ID)

	all, err := st.List(ctx)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}
	vs := cfg.Rules().Check(t, all, cfg.Profile())
	fmt.Fprintln(cmd.OutOrStdout(), report.FormatTradeOrg(t, vs))
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %s\n", args[0])
	return nil
}

func runTradeClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return errors.New("refusing to remove every trade without --yes")
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := st.DeleteAll(cmd.Context())
	if err != nil {
		return fmt.Errorf("clear journal: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %d trades\n", n)
	return nil
}

func runTradeImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	format := strings.ToLower(importFormat)
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}

	var trades []journal.Trade
	switch format {
	case "csv":
		trades, err = journal.ReadCSV(f)
	case "json":
		trades, err = journal.ReadJSON(f)
	default:
		return fmt.Errorf("unknown import format %q (supported: csv, json)", format)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	for i, t := range trades {
		if err := st.Add(ctx, risk.Complete(t)); err != nil {
			return fmt.Errorf("import trade %d (%s): %w", i+1, t.ID, err)
		}
	}
	slog.Info("trades imported", "file", path, "count", len(trades))
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades from %s\n", len(trades), path)
	return nil
}

// fillFromSymbol sets the asset class and gross P/L of a known symbol
// when the trade was logged without them.
func fillFromSymbol(t journal.Trade) journal.Trade {
	sym, ok := market.Lookup(t.Symbol)
	if !ok {
		return t
	}
	if t.AssetClass == "" {
		t.AssetClass = sym.AssetClass
	}
	if t.GrossPnL == 0 && t.NetPnL == 0 && t.HasExit() && t.Size > 0 && t.EntryPrice > 0 && t.ExitPrice > 0 {
		pl, err := sym.PnL(t.Direction, t.Size, t.EntryPrice, t.ExitPrice, cfg.Account.Currency)
		if err != nil {
			slog.Debug("gross P/L not derived", "symbol", t.Symbol, "err", err)
			return t
		}
		t.GrossPnL = pl
	}
	return t
}

// parseTime accepts RFC3339, "YYYY-MM-DD HH:MM" or "YYYY-MM-DD" in UTC,
// or epoch milliseconds.
func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return journal.FromMillis(ms), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
