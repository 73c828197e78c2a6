// =============================================================================
// Repeater List Creator - Validate Command
// =============================================================================
//
// COMMAND USAGE:
//   rlist validate [flags]
//
// FLAGS:
//   --input-dir, -i : Directory containing the listing CSV files
//   --report        : Write all findings to a text file
//   --strict        : Treat warnings as errors
//
// Checks every listing in the input directory without asking for group
// metadata or writing the repeater list.
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/repeater-list-creator/internal/config"
	"github.com/ginjaninja78/repeater-list-creator/internal/csvparser"
	"github.com/ginjaninja78/repeater-list-creator/internal/validation"
	"github.com/ginjaninja78/repeater-list-creator/pkg/utils"
)

var (
	validateReport string
	validateStrict bool
)

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check repeater listing CSV files without converting them",
	Long: `The validate command parses every listing CSV in the input directory and
reports header problems, unparsable frequencies and values that would convert
into something unexpected. It exits with an error if any listing is invalid.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadMainConfig(viper.GetViper())
		if err != nil {
			return err
		}
		if dir, _ := cmd.Flags().GetString("input-dir"); dir != "" {
			cfg.InputDir = dir
		}

		options := validation.Options{TreatWarningsAsErrors: validateStrict}
		results, err := runValidate(cfg, options)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		invalid := 0
		for _, result := range results {
			fmt.Fprintf(out, "%s: %d row(s) checked, %d skipped\n", result.File, result.RowsChecked, result.RowsSkipped)
			if len(result.Issues) > 0 {
				fmt.Fprint(out, validation.FormatIssues(result.Issues))
			}
			if !result.IsValid {
				invalid++
			}
		}

		if validateReport != "" {
			if err := validation.WriteReport(results, validateReport); err != nil {
				return errors.Wrapf(err, "write %s", validateReport)
			}
			log.WithField("file", validateReport).Info("wrote validation report")
		}

		if invalid > 0 {
			return errors.Errorf("%d of %d listing(s) failed validation", invalid, len(results))
		}
		fmt.Fprintf(out, "All %d listing(s) are valid.\n", len(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("input-dir", "i", "", "directory containing the listing CSV files")
	validateCmd.Flags().StringVar(&validateReport, "report", "", "write all findings to this file")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "treat warnings as errors")
}

// runValidate checks every CSV file in the configured input directory.
func runValidate(cfg *config.MainConfig, options validation.Options) ([]*validation.Result, error) {
	if cfg.InputDir == "" {
		return nil, errors.New("input directory is required (--input-dir or input_dir)")
	}
	if err := utils.EnsureInputDir(cfg.InputDir); err != nil {
		return nil, err
	}

	files, err := utils.DiscoverInputFiles(cfg.InputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no CSV files found in %s", cfg.InputDir)
	}

	validator := validation.NewValidatorWithOptions(options)
	results := make([]*validation.Result, 0, len(files))
	for _, file := range files {
		name := filepath.Base(file)
		data, err := csvparser.Parse(file, cfg.CSV)
		if err != nil {
			return nil, errors.Wrapf(err, "parse %s", name)
		}

		result := validator.Validate(name, data)
		log.WithFields(log.Fields{
			"file":     name,
			"errors":   result.ErrorCount,
			"warnings": result.WarningCount,
		}).Debug("validated listing")
		results = append(results, result)
	}

	return results, nil
}
