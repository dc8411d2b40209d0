package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/warp/settlement-engine/config"
	"github.com/warp/settlement-engine/dataset"
	"github.com/warp/settlement-engine/fees"
	"github.com/warp/settlement-engine/generic"
	"github.com/warp/settlement-engine/indexation"
	"github.com/warp/settlement-engine/injury"
	"github.com/warp/settlement-engine/report"
	"github.com/warp/settlement-engine/severance"
	"github.com/warp/settlement-engine/store/sqlite"
	"github.com/warp/settlement-engine/wagebase"
)

// =============================================================================
// ROOT COMMAND
// =============================================================================

// app carries the global flags and what PersistentPreRunE builds from them.
type app struct {
	configPath string
	dataDir    string
	dbPath     string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "calc",
		Short:         "Labor settlement calculators",
		Long:          "Computes Argentine labor claims (Ley 24.557, Ley 20.744) and court fees from the published reference tables.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "configuration file")
	pf.StringVar(&a.dataDir, "data", "", "reference data directory (overrides data.dir)")
	pf.StringVar(&a.dbPath, "db", "", "SQLite database path (overrides data.database)")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (overrides logging.level)")

	root.AddCommand(
		a.datasetsCmd(),
		a.injuryCmd(),
		a.severanceCmd(),
		a.indexCmd(),
		a.wageBaseCmd(),
		a.jusCmd(),
		a.regulationCmd(),
		a.importCmd(),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dataDir != "" {
		cfg.Data.Dir = a.dataDir
	}
	if a.dbPath != "" {
		cfg.Data.Database = a.dbPath
	}
	logger, err := config.NewLogger(cfg.Logging, a.logLevel)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

func (a *app) loader() *dataset.Loader {
	return dataset.NewLoader(a.cfg.Data.Dir, a.cfg.Data.Files, a.logger)
}

// tables loads the reference tables from the database when one is
// configured, otherwise straight from the CSV files.
func (a *app) tables(ctx context.Context) (*generic.Tables, error) {
	if a.cfg.Data.Database == "" {
		return a.loader().LoadTables(ctx)
	}
	db, err := sqlite.Open(ctx, a.cfg.Data.Database, a.loader(), a.logger)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.LoadTables(ctx)
}

// =============================================================================
// DATASETS AND IMPORT
// =============================================================================

func (a *app) datasetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "Show the latest value of every reference table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.tables(cmd.Context())
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), report.Summary(tables.Summary()))
		},
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import the reference CSV files into the SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if a.cfg.Data.Database == "" {
				return errors.New("no database configured: pass --db or set data.database")
			}
			db, err := sqlite.New(a.cfg.Data.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if _, err := db.Import(ctx, a.loader()); err != nil {
				return err
			}
			imports, err := db.Imports(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Importado en %s\n", a.cfg.Data.Database)
			for _, rec := range imports {
				fmt.Fprintf(out, "%s:\t%d filas\n", rec.Table, rec.Rows)
			}
			return nil
		},
	}
}

// =============================================================================
// CLAIM CALCULATORS
// =============================================================================

func (a *app) injuryCmd() *cobra.Command {
	var pmi, final, ibm, disability string
	var age int
	var additional bool

	cmd := &cobra.Command{
		Use:   "injury",
		Short: "Ley 24.557 indemnity (Art. 14 inc. 2 a) updated to the final date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := injury.Input{Age: age, Additional: additional}
			var err error
			if in.PMI, err = parseDate("pmi", pmi); err != nil {
				return err
			}
			if in.Final, err = parseDate("final", final); err != nil {
				return err
			}
			if in.IBM, err = parseDecimal("ibm", ibm); err != nil {
				return err
			}
			if in.Disability, err = parseDecimal("disability", disability); err != nil {
				return err
			}

			tables, err := a.tables(cmd.Context())
			if err != nil {
				return err
			}
			res, err := injury.Calculate(tables, in)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), report.Injury(res))
		},
	}

	f := cmd.Flags()
	f.StringVar(&pmi, "pmi", "", "date of the first disabling manifestation")
	f.StringVar(&final, "final", today(), "settlement date")
	f.StringVar(&ibm, "ibm", "", "monthly base income")
	f.IntVar(&age, "age", 0, "age at the PMI")
	f.StringVar(&disability, "disability", "", "disability percentage")
	f.BoolVar(&additional, "additional", false, "add the 20% additional (Art. 3 Ley 26.773)")
	markRequired(cmd, "pmi", "ibm", "age", "disability")
	return cmd
}

func (a *app) severanceCmd() *cobra.Command {
	var hire, dismissal, settlement, salary string
	var noticeGiven bool

	cmd := &cobra.Command{
		Use:   "severance",
		Short: "Ley 20.744 dismissal settlement updated to the settlement date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := severance.Input{NoticeGiven: noticeGiven}
			var err error
			if in.Hire, err = parseDate("hire", hire); err != nil {
				return err
			}
			if in.Dismissal, err = parseDate("dismissal", dismissal); err != nil {
				return err
			}
			if in.Settlement, err = parseDate("settlement", settlement); err != nil {
				return err
			}
			if in.Salary, err = parseDecimal("salary", salary); err != nil {
				return err
			}

			tables, err := a.tables(cmd.Context())
			if err != nil {
				return err
			}
			res, err := severance.Calculate(tables, in)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), report.Severance(res))
		},
	}

	f := cmd.Flags()
	f.StringVar(&hire, "hire", "", "hire date")
	f.StringVar(&dismissal, "dismissal", "", "dismissal date")
	f.StringVar(&settlement, "settlement", today(), "settlement date")
	f.StringVar(&salary, "salary", "", "best normal and habitual monthly salary")
	f.BoolVar(&noticeGiven, "notice-given", false, "notice was given (no substitute notice owed)")
	markRequired(cmd, "hire", "dismissal", "salary")
	return cmd
}

func (a *app) indexCmd() *cobra.Command {
	var amount, from, to, ripteRate, ipcRate string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Update an amount by RIPTE, Tasa Activa and IPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in indexation.Input
			var err error
			if in.Amount, err = parseDecimal("amount", amount); err != nil {
				return err
			}
			if in.From, err = parseDate("from", from); err != nil {
				return err
			}
			if in.To, err = parseDate("to", to); err != nil {
				return err
			}
			if in.RIPTERate, err = parseDecimal("ripte-rate", ripteRate); err != nil {
				return err
			}
			if in.IPCRate, err = parseDecimal("ipc-rate", ipcRate); err != nil {
				return err
			}

			tables, err := a.tables(cmd.Context())
			if err != nil {
				return err
			}
			res, err := indexation.Calculate(tables, in)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), report.Indexation(res))
		},
	}

	f := cmd.Flags()
	f.StringVar(&amount, "amount", "", "amount to update")
	f.StringVar(&from, "from", "", "start date")
	f.StringVar(&to, "to", today(), "end date")
	f.StringVar(&ripteRate, "ripte-rate", "0", "pure rate on top of RIPTE, percent")
	f.StringVar(&ipcRate, "ipc-rate", "0", "pure rate on top of IPC, percent")
	markRequired(cmd, "amount", "from")
	return cmd
}

func (a *app) wageBaseCmd() *cobra.Command {
	var pmi string
	var salaries []string

	cmd := &cobra.Command{
		Use:   "wage-base",
		Short: "Monthly base income (IBM) from the salaries before the PMI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := wagebase.Input{}
			var err error
			if in.PMI, err = parseDate("pmi", pmi); err != nil {
				return err
			}
			for _, s := range salaries {
				salary, err := parseSalary(s)
				if err != nil {
					return err
				}
				in.Salaries = append(in.Salaries, salary)
			}

			tables, err := a.tables(cmd.Context())
			if err != nil {
				return err
			}
			res, err := wagebase.Calculate(tables.RIPTE, in)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), report.WageBase(res))
		},
	}

	f := cmd.Flags()
	f.StringVar(&pmi, "pmi", "", "date of the first disabling manifestation")
	f.StringArrayVar(&salaries, "salary", nil, "salary for one month as YYYY-MM=amount (repeatable)")
	markRequired(cmd, "pmi")
	return cmd
}

// =============================================================================
// FEE CALCULATORS
// =============================================================================

func (a *app) jusCmd() *cobra.Command {
	var amount, date, asOf string

	cmd := &cobra.Command{
		Use:   "jus",
		Short: "Convert an amount to JUS and value it again at a later date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := parseDecimal("amount", amount)
			if err != nil {
				return err
			}
			at, err := parseDate("date", date)
			if err != nil {
				return err
			}
			var later generic.Date
			if asOf != "" {
				if later, err = parseDate("as-of", asOf); err != nil {
					return err
				}
			}

			tables, err := a.tables(cmd.Context())
			if err != nil {
				return err
			}
			c, err := fees.ConvertToJUS(tables.JUS, value, at, later)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), report.JUSConversion(c))
		},
	}

	f := cmd.Flags()
	f.StringVar(&amount, "amount", "", "amount in pesos")
	f.StringVar(&date, "date", "", "date the amount refers to")
	f.StringVar(&asOf, "as-of", "", "date to value the JUS at (default: --date)")
	markRequired(cmd, "amount", "date")
	return cmd
}

func (a *app) regulationCmd() *cobra.Command {
	var amount, date, plaintiff string
	var plaintiffVAT, defendantVAT bool
	var plaintiffContribution, defendantContribution int
	var experts []string

	cmd := &cobra.Command{
		Use:     "regulation",
		Aliases: []string{"fees"},
		Short:   "Ley 24.432 fee sheet with the 25% cap",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := fees.RegulationInput{
				Defendant: fees.Charges{VAT: defendantVAT, Contribution: defendantContribution},
			}
			var err error
			if in.Amount, err = parseDecimal("amount", amount); err != nil {
				return err
			}
			if in.Date, err = parseDate("date", date); err != nil {
				return err
			}
			pct, err := parseDecimal("plaintiff", plaintiff)
			if err != nil {
				return err
			}
			in.Plaintiff = fees.Fee{Percent: pct, Charges: fees.Charges{VAT: plaintiffVAT, Contribution: plaintiffContribution}}
			for _, e := range experts {
				fee, err := parseExpert(e)
				if err != nil {
					return err
				}
				in.Experts = append(in.Experts, fee)
			}

			tables, err := a.tables(cmd.Context())
			if err != nil {
				return err
			}
			reg, err := fees.Regulate(tables, in)
			if err != nil {
				return err
			}
			return write(cmd.OutOrStdout(), report.Regulation(reg))
		},
	}

	f := cmd.Flags()
	f.StringVar(&amount, "amount", "", "case amount")
	f.StringVar(&date, "date", "", "regulation date")
	f.StringVar(&plaintiff, "plaintiff", "0", "plaintiff counsel percentage")
	f.BoolVar(&plaintiffVAT, "plaintiff-vat", false, "plaintiff counsel charges VAT")
	f.IntVar(&plaintiffContribution, "plaintiff-contribution", fees.ContributionDefault, "plaintiff counsel contribution rate (5 or 10)")
	f.StringArrayVar(&experts, "expert", nil, "expert as percent[:vat][:5|10] (repeatable, up to 4)")
	f.BoolVar(&defendantVAT, "defendant-vat", false, "defendant counsel charges VAT")
	f.IntVar(&defendantContribution, "defendant-contribution", fees.ContributionDefault, "defendant counsel contribution rate (5 or 10)")
	markRequired(cmd, "amount", "date")
	return cmd
}

// =============================================================================
// FLAG PARSING
// =============================================================================

func parseDate(flag, s string) (generic.Date, error) {
	d, err := generic.ParseDate(s)
	if err != nil {
		return generic.Date{}, generic.Invalid(flag, "%v", err)
	}
	return d, nil
}

// parseDecimal accepts "1234.56" and the Argentine "1.234,56".
func parseDecimal(flag, s string) (decimal.Decimal, error) {
	d, err := dataset.ParseNumber(s)
	if err != nil {
		return decimal.Zero, generic.Invalid(flag, "%q is not a number", s)
	}
	return d, nil
}

// parseSalary reads "YYYY-MM=amount".
func parseSalary(s string) (wagebase.Salary, error) {
	month, amount, ok := strings.Cut(s, "=")
	if !ok {
		return wagebase.Salary{}, generic.Invalid("salary", "%q must be YYYY-MM=amount", s)
	}
	m, err := parseDate("salary", month)
	if err != nil {
		return wagebase.Salary{}, err
	}
	value, err := parseDecimal("salary", amount)
	if err != nil {
		return wagebase.Salary{}, err
	}
	return wagebase.Salary{Month: m, Amount: value}, nil
}

// parseExpert reads "percent[:vat][:5|10]".
func parseExpert(s string) (fees.Fee, error) {
	parts := strings.Split(s, ":")
	pct, err := parseDecimal("expert", parts[0])
	if err != nil {
		return fees.Fee{}, err
	}
	fee := fees.Fee{Percent: pct}
	for _, p := range parts[1:] {
		switch p = strings.ToLower(strings.TrimSpace(p)); {
		case p == "vat" || p == "iva":
			fee.VAT = true
		default:
			rate, err := strconv.Atoi(p)
			if err != nil {
				return fees.Fee{}, generic.Invalid("expert", "unknown option %q in %q", p, s)
			}
			fee.Contribution = rate
		}
	}
	return fee, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func markRequired(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		_ = cmd.MarkFlagRequired(name)
	}
}

func write(w io.Writer, text string) error {
	_, err := io.WriteString(w, text)
	return err
}

func today() string {
	return time.Now().Format("2006-01-02")
}
