// =============================================================================
// Repeater List Creator - Process Command
// =============================================================================
//
// This file defines the 'process' command, which builds the consolidated
// repeater list. It orchestrates the whole pipeline.
//
// COMMAND USAGE:
//   rlist process [flags]
//
// FLAGS:
//   --input-dir, -i : Directory containing the listing CSV files
//   --output, -o    : Output filename (".csv" appended when omitted)
//   --groups        : YAML file with per-file group metadata
//   --xlsx          : Also write an Excel copy of the list
//   --dry-run       : Build the list without writing any file
//
// PROCESSING PIPELINE:
//   1. Ask for the input directory and output filename if not configured
//   2. Validate the output filename and the input directory
//   3. Discover CSV files in the input directory
//   4. For each file, in name order:
//      a. Parse the CSV file
//      b. Get the group metadata (groups file or questions)
//      c. Convert the rows
//   5. Merge and sort all rows
//   6. Write the output file(s)
//
// =============================================================================

package cmd

import (
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/repeater-list-creator/internal/config"
	"github.com/ginjaninja78/repeater-list-creator/internal/converter"
	"github.com/ginjaninja78/repeater-list-creator/internal/csvparser"
	"github.com/ginjaninja78/repeater-list-creator/internal/listwriter"
	"github.com/ginjaninja78/repeater-list-creator/internal/prompt"
	"github.com/ginjaninja78/repeater-list-creator/internal/repeater"
	"github.com/ginjaninja78/repeater-list-creator/pkg/utils"
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Merge repeater listing CSV files into one import file",
	Long: `The process command scans a directory for repeater listing CSV files and
merges them into one CSV for radio programming software.

Each file becomes one memory group. Unless a groups file is given, the command
asks for the group number, group name and UTC offset of every file, shows the
first few Location and output frequency values, and asks which of the two to
use for the Name column.

Nothing is written if the output filename has an extension other than .csv,
if the input directory does not exist, or if any file fails to convert.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadMainConfig(viper.GetViper())
		if err != nil {
			return err
		}
		return runProcess(cfg, prompt.New(cmd.InOrStdin(), cmd.OutOrStdout()))
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("input-dir", "i", "", "directory containing the listing CSV files")
	processCmd.Flags().StringP("output", "o", "", "output repeater list filename")
	processCmd.Flags().String("groups", "", "YAML file with group metadata for each input file")
	processCmd.Flags().Bool("xlsx", false, "also write an Excel copy of the list")
	processCmd.Flags().Bool("dry-run", false, "build the list without writing any file")

	viper.BindPFlag("input_dir", processCmd.Flags().Lookup("input-dir"))
	viper.BindPFlag("output_file", processCmd.Flags().Lookup("output"))
	viper.BindPFlag("groups_file", processCmd.Flags().Lookup("groups"))
	viper.BindPFlag("xlsx", processCmd.Flags().Lookup("xlsx"))
	viper.BindPFlag("dry_run", processCmd.Flags().Lookup("dry-run"))
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess builds the consolidated list. Filename and directory problems
// are reported through the prompter and end the run without an error, so
// the command exits cleanly as the interactive tool always has.
func runProcess(cfg *config.MainConfig, p *prompt.Prompter) error {
	var err error

	// =========================================================================
	// STEP 1: INPUT DIRECTORY AND OUTPUT NAME
	// =========================================================================

	inputDir := cfg.InputDir
	if inputDir == "" {
		if inputDir, err = p.Ask("Please enter the path to the directory containing the CSV files"); err != nil {
			return err
		}
	}

	outputName := cfg.OutputFile
	if outputName == "" {
		if outputName, err = p.Ask("Please enter the output repeater list filename"); err != nil {
			return err
		}
	}

	// =========================================================================
	// STEP 2: VALIDATION
	// =========================================================================

	outputFile, err := utils.ResolveOutputFileName(outputName)
	if err != nil {
		p.Problem("Error: Filename entry must either have no extension or end with '.csv'.")
		log.WithError(err).Debug("invalid output filename")
		return nil
	}

	if err := utils.EnsureInputDir(inputDir); err != nil {
		p.Problem("Error: The directory '%s' does not exist.", inputDir)
		log.WithError(err).Debug("invalid input directory")
		return nil
	}

	var groups map[string]*config.GroupConfig
	if cfg.GroupsFile != "" {
		if groups, err = config.LoadGroupConfigs(cfg.GroupsFile); err != nil {
			return errors.Wrapf(err, "load %s", cfg.GroupsFile)
		}
		log.WithField("groups", len(groups)).Debug("loaded groups file")
	}

	// =========================================================================
	// STEP 3: DISCOVER INPUT FILES
	// =========================================================================

	files, err := utils.DiscoverInputFiles(inputDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Errorf("no CSV files found in %s", inputDir)
	}

	log.WithField("dir", inputDir).Debugf("found %d file(s) to process", len(files))

	// =========================================================================
	// STEP 4: CONVERT FILES
	// =========================================================================

	converted := make([][]repeater.OutputRow, 0, len(files))
	for _, file := range files {
		name := filepath.Base(file)
		p.Heading("Processing file: %s", name)

		rows, err := processFile(file, cfg, groups, p)
		if err != nil {
			return errors.Wrapf(err, "process %s", name)
		}
		converted = append(converted, rows)
	}

	// =========================================================================
	// STEP 5: MERGE
	// =========================================================================

	rows := listwriter.Merge(converted...)

	// =========================================================================
	// STEP 6: WRITE OUTPUT
	// =========================================================================

	if cfg.DryRun {
		p.Success("Dry run: %d repeater(s) from %d file(s), nothing written.", len(rows), len(files))
		return nil
	}

	if err := listwriter.WriteCSV(outputFile, rows); err != nil {
		return errors.Wrapf(err, "write %s", outputFile)
	}

	if cfg.XLSX {
		xlsxFile := utils.ReplaceExtension(outputFile, ".xlsx")
		if err := listwriter.WriteXLSX(xlsxFile, rows); err != nil {
			return errors.Wrapf(err, "write %s", xlsxFile)
		}
		log.WithField("file", xlsxFile).Info("wrote spreadsheet copy")
	}

	p.Success("Output CSV saved to %s", outputFile)
	return nil
}

// processFile parses one listing, collects its group metadata and converts
// it.
func processFile(file string, cfg *config.MainConfig, groups map[string]*config.GroupConfig, p *prompt.Prompter) ([]repeater.OutputRow, error) {
	name := filepath.Base(file)

	data, err := csvparser.Parse(file, cfg.CSV)
	if err != nil {
		return nil, err
	}

	var meta repeater.Metadata
	if groups != nil {
		group, ok := groups[name]
		if !ok {
			return nil, errors.Errorf("no entry for %s in groups file", name)
		}
		meta = group.Metadata()
	} else {
		if meta, err = p.GroupMetadata(name, data, cfg.PreviewRows); err != nil {
			return nil, err
		}
	}

	result := converter.New(data, meta, log.WithField("file", name)).Run()
	if !result.Success {
		return nil, result.Error
	}

	return result.Rows, nil
}
