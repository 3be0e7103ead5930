package cmd

import (
	"fmt"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/quant/journal"
	"github.com/rustyeddy/quant/market"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Import and query the SQLite trade journal",
	Long: `Manage the SQLite trade journal and the log of recorded metrics runs.

Subcommands:
  import - Copy trades from a CSV file into the journal
  list   - List trades, optionally only those closed on one day
  trade  - Show a single trade by ID
  runs   - List recorded metrics runs

Examples:
  quant journal import --trades trades.csv --db quant.sqlite
  quant journal list --day 2024-01-15
  quant journal trade 01HZX3K4Q8M1V9ABCDEFGHJKMN
  quant journal runs`,
}

var journalImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import trades from CSV",
	Args:  cobra.NoArgs,
	RunE:  runJournalImport,
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades as Org entries",
	Args:  cobra.NoArgs,
	RunE:  runJournalList,
}

var journalTradeCmd = &cobra.Command{
	Use:   "trade <trade-id>",
	Short: "Get details of a specific trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrade,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded metrics runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var (
	journalDBPath string
	journalTrades string
	journalDay    string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalImportCmd)
	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalTradeCmd)
	journalCmd.AddCommand(journalRunsCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./quant.sqlite", "path to SQLite journal DB")
	journalImportCmd.Flags().StringVarP(&journalTrades, "trades", "t", "", "trades CSV file (required)")
	journalImportCmd.MarkFlagRequired("trades")
	journalListCmd.Flags().StringVar(&journalDay, "day", "", "only trades closed on this day (YYYY-MM-DD, local time)")
}

func openJournal(cmd *cobra.Command) (*journal.SQLite, error) {
	path := journalDBPath
	if !cmd.Flags().Changed("db") && cfg.Journal.DBPath != "" {
		path = cfg.Journal.DBPath
	}
	j, err := journal.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

func runJournalImport(cmd *cobra.Command, args []string) error {
	trades, err := journal.LoadTradesCSV(journalTrades)
	if err != nil {
		return err
	}

	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.RecordTrades(cmd.Context(), trades); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	slog.Info("trades imported", "file", journalTrades, "count", len(trades))
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d trades\n", len(trades))
	return nil
}

func runJournalList(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	ctx := cmd.Context()
	var recs []market.Trade
	if journalDay == "" {
		recs, err = j.ListTrades(ctx)
	} else {
		start, end, derr := dayBounds(time.Local, journalDay)
		if derr != nil {
			return fmt.Errorf("date: %w", derr)
		}
		recs, err = j.ListTradesClosedBetween(ctx, start, end)
	}
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(recs))
	return nil
}

func runJournalTrade(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.GetTrade(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec))
	return nil
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	runs, err := j.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN ID\tCREATED\tSOURCE\tTRADES\tNET P/L\tRETURN %\tMAX DD %\tWIN %\tPF\tSHARPE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%.2f\t%.2f\t%.2f\t%.1f\t%.2f\t%.3f\n",
			r.RunID, r.Created.Local().Format("2006-01-02 15:04"), r.Source, r.Trades,
			r.NetPL, r.ReturnPct, r.MaxDDPct, r.WinRate*100, r.ProfitFactor, r.Sharpe)
	}
	return tw.Flush()
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
