package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/output"
	"github.com/rgehrsitz/taxregime/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taxregime",
		Short: "Indian income tax regime calculator",
		Long: "Computes income tax under the Old and New regimes for an assessment year, " +
			"recommends the cheaper one and explores what-if changes, break-even points and income sweeps.",
		SilenceUsage: true,
	}

	root.AddCommand(
		calculateCmd(),
		compareCmd(),
		breakEvenCmd(),
		sweepCmd(),
		regimesCmd(),
		validateCmd(),
		templatesCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxregime %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func calculateCmd() *cobra.Command {
	var (
		in         inputFlags
		format     string
		regimeName string
		save       bool
	)
	cmd := &cobra.Command{
		Use:   "calculate [profiles-file]",
		Short: "Compare both regimes for one taxpayer",
		Long: `Compare the Old and New regimes for one taxpayer, read either from a
profiles file (--profile selects the entry) or from the amount flags.`,
		Example: `  taxregime calculate --gross 850000 --80c 100000 --hra 60000 --rent 120000 --basic 400000 --age 35
  taxregime calculate profiles.yaml --profile Asha --format csv
  taxregime calculate profiles.yaml --format xlsx --save`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := in.load(args)
			if err != nil {
				return err
			}

			if regimeName != "" {
				name, err := domain.ParseRegimeName(strings.ToLower(regimeName))
				if err != nil {
					return err
				}
				regime, err := sess.regimes.Get(name)
				if err != nil {
					return err
				}
				result, err := sess.engine.Calculate(sess.input, regime.WithOptions(sess.options))
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), result)
			}

			comparison, err := sess.engine.CompareYear(sess.input, sess.regimes, sess.options)
			if err != nil {
				return err
			}
			report := output.NewReport(sess.profileName, comparison)

			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (valid: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}
			if save || output.IsBinary(formatter) {
				filename, err := output.WriteFormatted(formatter, report, formatter.Name())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}
			data, err := formatter.Format(report)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	in.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, json, csv, xlsx)")
	cmd.Flags().StringVar(&regimeName, "regime", "", "Evaluate a single regime (old or new) and print the JSON breakdown")
	cmd.Flags().BoolVar(&save, "save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func validateCmd() *cobra.Command {
	var regimesFile string
	cmd := &cobra.Command{
		Use:   "validate [profiles-file]",
		Short: "Validate a profiles file and, optionally, a regimes file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && regimesFile == "" {
				return fmt.Errorf("nothing to validate: pass a profiles file or --regimes")
			}
			parser := config.NewInputParser()
			if regimesFile != "" {
				set, err := parser.LoadRegimes(regimesFile)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Regimes file %s is valid (%s)\n", regimesFile, strings.Join(set.AvailableYears(), ", "))
			}
			if len(args) == 1 {
				profiles, err := parser.LoadProfiles(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Profiles file %s is valid (%d profiles)\n", args[0], len(profiles.Profiles))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&regimesFile, "regimes", "", "Regimes file to validate")
	return cmd
}

func regimesCmd() *cobra.Command {
	var (
		regimesFile string
		year        string
		asJSON      bool
	)
	cmd := &cobra.Command{
		Use:   "regimes",
		Short: "List assessment years or show one year's slab tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := config.NewInputParser().LoadRegimesOrDefault(regimesFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if year == "" {
				if asJSON {
					return writeJSON(out, map[string]interface{}{
						"defaultYear": set.DefaultYear,
						"years":       set.AvailableYears(),
						"metadata":    set.Metadata,
					})
				}
				for _, y := range set.AvailableYears() {
					marker := ""
					if y == set.DefaultYear {
						marker = " (default)"
					}
					fmt.Fprintf(out, "%s%s\n", y, marker)
				}
				return nil
			}

			regimes, err := set.Lookup(year)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, regimes)
			}
			writeRegime(out, regimes.Old)
			fmt.Fprintln(out)
			writeRegime(out, regimes.New)
			return nil
		},
	}
	cmd.Flags().StringVar(&regimesFile, "regimes", "", "Regimes file (default: built-in tables)")
	cmd.Flags().StringVarP(&year, "year", "y", "", "Assessment year to show, e.g. 2024-25")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func writeRegime(w io.Writer, rc domain.RegimeConfig) {
	fmt.Fprintf(w, "%s (AY %s)\n", rc.DisplayName(), rc.AssessmentYear)
	fmt.Fprintln(w, strings.Repeat("-", 40))
	lower := decimal.Zero
	for _, slab := range rc.Slabs {
		upper := "and above"
		if !slab.IsUnbounded() {
			upper = "to " + output.FormatRupees(*slab.UpperBound)
		}
		fmt.Fprintf(w, "  %-12s %-18s %s\n", output.FormatRupees(lower), upper, output.FormatRate(slab.Rate))
		if !slab.IsUnbounded() {
			lower = *slab.UpperBound
		}
	}
	fmt.Fprintf(w, "Standard deduction:  %s\n", output.FormatRupees(rc.StandardDeduction))
	fmt.Fprintf(w, "Itemized deductions: %t\n", rc.AllowsItemizedDeductions)
	if rc.RebateEnabled {
		fmt.Fprintf(w, "87A rebate up to:    %s\n", output.FormatRupees(rc.RebateThreshold))
	}
	for _, band := range rc.AgeBands {
		fmt.Fprintf(w, "Age %d+: exemption %s\n", band.MinAge, output.FormatRupees(band.FirstSlabUpperBound))
	}
}

func templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the built-in what-if templates and transforms",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Transforms (use with --transform name:param=value):")
			for _, name := range transform.NewTransformRegistry().List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
