// =============================================================================
// Repeater List Creator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI.
//
// COBRA CLI STRUCTURE:
//   rootCmd (rlist)
//   ├── processCmd  (rlist process)
//   ├── validateCmd (rlist validate)
//   └── versionCmd  (rlist version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose, --log-level)
//   2. Loading .env and the main configuration file through viper
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ginjaninja78/repeater-list-creator/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "rlist",
	Short: "Repeater List Creator - merge repeater listings into one radio import file",
	Long: `Repeater List Creator combines repeater listing CSV exports, one per
geographic group, into a single CSV that radio programming software can import.

For every listing it keeps the analog FM and D-STAR repeaters, works out the
duplex direction, offset, tone settings and D-STAR callsigns, tags each row with
the group number, group name and UTC offset, and finally sorts everything by
group and frequency.

Example Usage:
  rlist process                              # Ask for everything interactively
  rlist process --input-dir ./listings -o co # Ask only for per-file groups
  rlist process --groups groups.yaml --xlsx  # Non-interactive, with XLSX copy
  rlist validate -i ./listings --strict      # Check listings without converting`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetString("log_level"), verbose)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("rlist failed")
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to configuration file (default ./rlist.yaml or ~/.config/rlist/rlist.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	config.SetDefaults(viper.GetViper())
}

// initConfig reads .env, the configuration file and RLIST_* environment
// variables, in increasing order of precedence below flags.
func initConfig() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.WithError(err).Warning("error loading .env file")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rlist")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rlist"))
		}
	}

	viper.SetEnvPrefix("RLIST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		switch err.(type) {
		case viper.ConfigFileNotFoundError:
			log.Debug("no configuration file found, using defaults")
		default:
			log.WithError(err).WithField("config", cfgFile).Fatal("read configuration file error")
		}
		return
	}

	log.WithField("config", viper.ConfigFileUsed()).Debug("using configuration file")
}

// setupLogging configures the standard logrus logger.
func setupLogging(level string, verbose bool) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{
		DisableTimestamp: true,
	})

	if verbose {
		log.SetLevel(log.DebugLevel)
		return nil
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	return nil
}
