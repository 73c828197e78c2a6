// =============================================================================
// Repeater List Creator - Configuration Module
// =============================================================================
//
// This module loads the two configuration sources of the tool.
//
// CONFIGURATION FILES:
//   1. Main Config (rlist.yaml): directories, output name, logging. Read by
//      viper, so every key can also come from a flag or an RLIST_* variable.
//   2. Groups File (groups.yaml): per-input-file group metadata, replacing
//      the interactive questions when present.
//
// Any value missing from both sources is asked for interactively by the
// process command.
//
// =============================================================================

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/repeater-list-creator/internal/repeater"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// InputDir is the directory scanned for listing CSV files.
	// Empty means "ask".
	InputDir string `mapstructure:"input_dir" yaml:"input_dir"`

	// OutputFile is the consolidated list filename. ".csv" is appended when
	// the name has no extension. Empty means "ask".
	OutputFile string `mapstructure:"output_file" yaml:"output_file"`

	// GroupsFile is an optional YAML file with per-file group metadata.
	GroupsFile string `mapstructure:"groups_file" yaml:"groups_file"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// XLSX also writes an Excel copy of the list next to the CSV.
	XLSX bool `mapstructure:"xlsx" yaml:"xlsx"`

	// DryRun builds the list without writing any file.
	DryRun bool `mapstructure:"dry_run" yaml:"dry_run"`

	// PreviewRows is how many Location and frequency values are shown before
	// asking which column to use for Name.
	// Default: 5
	PreviewRows int `mapstructure:"preview_rows" yaml:"preview_rows"`

	// CSV holds the input reader settings.
	CSV CSVSettings `mapstructure:"csv" yaml:"csv"`
}

// CSVSettings holds input CSV parsing settings.
type CSVSettings struct {
	// Delimiter is the field separator. Accepts a single character or one of
	// "tab", "pipe", "semicolon".
	// Default: ","
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// =============================================================================
// MAIN CONFIGURATION LOADING
// =============================================================================

// SetDefaults registers the default value of every main configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("input_dir", "")
	v.SetDefault("output_file", "")
	v.SetDefault("groups_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("xlsx", false)
	v.SetDefault("dry_run", false)
	v.SetDefault("preview_rows", 5)
	v.SetDefault("csv.delimiter", ",")
}

// LoadMainConfig decodes the main configuration from an initialized viper
// instance and applies defaults for anything left empty.
func LoadMainConfig(v *viper.Viper) (*MainConfig, error) {
	var config MainConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "decode configuration")
	}

	applyMainConfigDefaults(&config)

	return &config, nil
}

func applyMainConfigDefaults(config *MainConfig) {
	config.InputDir = strings.TrimSpace(config.InputDir)
	config.OutputFile = strings.TrimSpace(config.OutputFile)

	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.PreviewRows <= 0 {
		config.PreviewRows = 5
	}
	if config.CSV.Delimiter == "" {
		config.CSV.Delimiter = ","
	}
}

// =============================================================================
// GROUPS FILE
// =============================================================================

// GroupsFile is the top-level structure of groups.yaml.
//
// EXAMPLE:
//   groups:
//     - file: denver.csv
//       group_no: 1
//       group_name: Denver
//       utc_offset: -7
//       name_column: location
type GroupsFile struct {
	Groups []GroupConfig `yaml:"groups"`
}

// GroupConfig is the metadata for one input file.
type GroupConfig struct {
	// File is the input file name, matched against the base name of each
	// discovered CSV.
	File string `yaml:"file"`

	// GroupNo is the memory group number.
	GroupNo int `yaml:"group_no"`

	// GroupName is the memory group label.
	GroupName string `yaml:"group_name"`

	// UTCOffset is the whole-hour offset from UTC.
	UTCOffset int `yaml:"utc_offset"`

	// NameColumn selects the Name source: "location" or "frequency".
	// The literal header names ("Location", "146Output Freq") are accepted.
	// Default: "location"
	NameColumn string `yaml:"name_column"`
}

// LoadGroupConfigs reads a groups file and returns the entries keyed by
// file name.
func LoadGroupConfigs(path string) (map[string]*GroupConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read groups file")
	}

	var file GroupsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "parse groups file")
	}

	configs := make(map[string]*GroupConfig, len(file.Groups))
	for i := range file.Groups {
		group := &file.Groups[i]
		applyGroupConfigDefaults(group)

		if err := validateGroupConfig(group); err != nil {
			return nil, errors.Wrapf(err, "groups[%d]", i)
		}

		key := filepath.Base(group.File)
		if _, ok := configs[key]; ok {
			return nil, errors.Errorf("groups[%d]: duplicate entry for %s", i, key)
		}
		configs[key] = group
	}

	return configs, nil
}

func applyGroupConfigDefaults(group *GroupConfig) {
	group.File = strings.TrimSpace(group.File)
	group.GroupName = strings.TrimSpace(group.GroupName)
	if strings.TrimSpace(group.NameColumn) == "" {
		group.NameColumn = string(repeater.NameFromLocation)
	}
}

func validateGroupConfig(group *GroupConfig) error {
	if group.File == "" {
		return errors.New("file is required")
	}
	if _, ok := repeater.ParseNameSource(group.NameColumn, ""); !ok {
		if repeater.FindOutputFreqColumn([]string{strings.TrimSpace(group.NameColumn)}) == "" {
			return errors.Errorf("name_column %q must be location or frequency", group.NameColumn)
		}
	}
	return nil
}

// Metadata converts the entry into the transformer's metadata. A literal
// output-frequency header in name_column selects the frequency.
func (g *GroupConfig) Metadata() repeater.Metadata {
	source, ok := repeater.ParseNameSource(g.NameColumn, "")
	if !ok {
		source = repeater.NameFromFrequency
	}
	return repeater.Metadata{
		GroupNo:    g.GroupNo,
		GroupName:  g.GroupName,
		UTCOffset:  strconv.Itoa(g.UTCOffset),
		NameSource: source,
	}
}
