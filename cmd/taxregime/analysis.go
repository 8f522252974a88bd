package main

import (
	"encoding/csv"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rgehrsitz/taxregime/internal/breakeven"
	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/output"
	"github.com/spf13/cobra"
)

func breakEvenCmd() *cobra.Command {
	var (
		in                   inputFlags
		target               string
		minIncome, maxIncome amountFlag
		format               string
	)
	cmd := &cobra.Command{
		Use:   "break-even [profiles-file]",
		Short: "Find where the Old and New regimes trade places",
		Long: `Search for the gross income at which the cheaper regime flips, holding
deductions fixed, and for the extra Section 80C investment that makes the Old
regime match the New one. --target limits the search to one of them.`,
		Example: `  taxregime break-even profiles.yaml --profile Asha
  taxregime break-even --gross 1500000 --80c 150000 --target deduction
  taxregime break-even --80c 150000 --hra 200000 --rent 240000 --basic 600000 --target income --max 3000000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := in.load(args)
			if err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver(sess.engine)
			req := breakeven.Request{
				Input:     sess.input,
				Regimes:   sess.regimes,
				Options:   sess.options,
				MinIncome: minIncome.value,
				MaxIncome: maxIncome.value,
			}.WithDefaultRange()

			pretty := strings.ToLower(format) == "json"
			if !pretty && format != "" && strings.ToLower(format) != "table" {
				return fmt.Errorf("unknown format %q (valid: table, json)", format)
			}
			out := cmd.OutOrStdout()

			if strings.TrimSpace(target) == "" {
				combined, err := solver.SolveAll(cmd.Context(), req)
				if err != nil {
					return err
				}
				if pretty {
					s, err := (&breakeven.JSONFormatter{Pretty: true}).FormatCombined(combined)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, s)
					return nil
				}
				fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatCombined(combined))
				return nil
			}

			req.Target, err = breakeven.ParseTarget(strings.ToLower(strings.TrimSpace(target)))
			if err != nil {
				return err
			}
			result, err := solver.Solve(cmd.Context(), req)
			if err != nil {
				return err
			}
			if pretty {
				s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&target, "target", "", "Search target: income or deduction (default: both)")
	cmd.Flags().Var(&minIncome, "min", "Lowest gross income searched (default 0)")
	cmd.Flags().Var(&maxIncome, "max", "Highest gross income searched (default 50,00,000)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	return cmd
}

func sweepCmd() *cobra.Command {
	var (
		in             inputFlags
		from, to, step amountFlag
		format         string
	)
	cmd := &cobra.Command{
		Use:   "sweep [profiles-file]",
		Short: "Tabulate both regimes across a range of gross incomes",
		Example: `  taxregime sweep --80c 150000 --from 500000 --to 2500000 --step 250000
  taxregime sweep profiles.yaml --profile Asha --to 3000000 --step 100000 --format csv`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := in.load(args)
			if err != nil {
				return err
			}
			sweep := calculation.IncomeSweep{From: from.value, To: to.value, Step: step.value}
			points, err := sess.engine.Sweep(cmd.Context(), sess.input, sess.regimes, sess.options, sweep)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "json":
				return writeJSON(out, points)
			case "csv":
				w := csv.NewWriter(out)
				_ = w.Write([]string{"Gross Income", "Old Regime Tax", "New Regime Tax", "Cheaper", "Savings"})
				for _, p := range points {
					_ = w.Write([]string{p.GrossIncome.String(), p.OldTax.String(), p.NewTax.String(), string(p.Cheaper), p.Savings.String()})
				}
				w.Flush()
				return w.Error()
			case "table", "":
				tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
				fmt.Fprintf(tw, "Gross Income\tOld Regime\tNew Regime\tCheaper\tSavings\t\n")
				for _, p := range points {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n",
						output.FormatRupees(p.GrossIncome), output.FormatRupees(p.OldTax), output.FormatRupees(p.NewTax),
						p.Cheaper, output.FormatRupees(p.Savings))
				}
				return tw.Flush()
			}
			return fmt.Errorf("unknown format %q (valid: table, csv, json)", format)
		},
	}
	in.register(cmd)
	cmd.Flags().Var(&from, "from", "First gross income")
	cmd.Flags().Var(&to, "to", "Last gross income")
	cmd.Flags().Var(&step, "step", "Income step")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("step")
	// the swept income replaces --gross
	_ = cmd.Flags().MarkHidden("gross")
	return cmd
}
