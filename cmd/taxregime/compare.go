package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/compare"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	var (
		in            inputFlags
		baseName      string
		templatesStr  string
		profilesStr   string
		transforms    []string
		format        string
		compact       bool
		listTemplates bool
	)
	cmd := &cobra.Command{
		Use:   "compare [profiles-file]",
		Short: "Compare profiles and what-if templates against a base profile",
		Long: `Compare a base profile against other profiles from the same file and
against built-in what-if templates applied to it. Every entry is evaluated
under both regimes for the same assessment year.`,
		Example: `  taxregime compare profiles.yaml --base Asha --with max_80c,no_rent
  taxregime compare profiles.yaml --profiles Ravi,Meera --format csv
  taxregime compare --gross 1200000 --with max_80c --transform set_80d:amount=25000
  taxregime compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if listTemplates {
				fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}

			if baseName != "" {
				in.profile = baseName
			}
			sess, err := in.load(args)
			if err != nil {
				return err
			}

			base, err := applyTransformSpecs(sess.input, transforms)
			if err != nil {
				return err
			}
			profiles := withBaseInput(sess, base)

			engine := compare.NewCompareEngine(sess.engine)
			compSet, err := engine.Compare(cmd.Context(), profiles, sess.regimes, compare.CompareOptions{
				BaseProfileName:     sess.profileName,
				Templates:           transform.ParseTemplateList(templatesStr),
				AlternativeProfiles: transform.ParseTemplateList(profilesStr),
				Options:             sess.options,
			})
			if err != nil {
				return err
			}
			if len(args) > 0 {
				compSet.ProfilesPath = args[0]
			}

			switch strings.ToLower(format) {
			case "csv":
				s, err := (&compare.CSVFormatter{}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprint(out, s)
			case "json":
				s, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			case "table", "":
				tf := &compare.TableFormatter{}
				if compact {
					fmt.Fprintln(out, tf.FormatCompact(compSet))
				} else {
					fmt.Fprint(out, tf.Format(compSet))
				}
			default:
				return fmt.Errorf("unknown format %q (valid: table, csv, json)", format)
			}
			return nil
		},
	}
	in.register(cmd)
	cmd.Flags().StringVar(&baseName, "base", "", "Base profile name (default: first profile)")
	cmd.Flags().StringVar(&templatesStr, "with", "", "Comma-separated list of templates to apply to the base profile")
	cmd.Flags().StringVar(&profilesStr, "profiles", "", "Comma-separated list of other profiles to compare (default: all)")
	cmd.Flags().StringArrayVarP(&transforms, "transform", "t", nil, "Edit the base profile first, e.g. set_80c:amount=150000 (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().BoolVar(&compact, "compact", false, "One line per entry in table output")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List all available what-if templates")
	// --profile is spelled --base here
	_ = cmd.Flags().MarkHidden("profile")
	return cmd
}

// applyTransformSpecs parses "name:param=value" specs and applies them in order
func applyTransformSpecs(input domain.TaxInput, specs []string) (domain.TaxInput, error) {
	if len(specs) == 0 {
		return input, nil
	}
	registry := transform.NewTransformRegistry()
	transforms := make([]transform.InputTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := registry.ParseTransformSpec(spec)
		if err != nil {
			return domain.TaxInput{}, err
		}
		transforms = append(transforms, t)
	}
	return transform.ApplyTransforms(input, transforms)
}

// withBaseInput returns the session's profiles with the base profile's input
// replaced. Flag input becomes a single profile named "Input".
func withBaseInput(sess *session, base domain.TaxInput) *domain.ProfileFile {
	if sess.profiles == nil {
		sess.profileName = "Input"
		return &domain.ProfileFile{
			AssessmentYear: sess.regimes.New.AssessmentYear,
			Options:        sess.options,
			Profiles:       []domain.Profile{{Name: sess.profileName, Input: base}},
		}
	}
	profiles := &domain.ProfileFile{
		AssessmentYear: sess.profiles.AssessmentYear,
		Options:        sess.options,
		Profiles:       make([]domain.Profile, len(sess.profiles.Profiles)),
	}
	copy(profiles.Profiles, sess.profiles.Profiles)
	for i := range profiles.Profiles {
		if profiles.Profiles[i].Name == sess.profileName {
			profiles.Profiles[i].Input = base
		}
	}
	return profiles
}
