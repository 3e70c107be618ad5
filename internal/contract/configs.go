package contract

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tmorling/headcount/schema"
)

// DateFormat is the calendar date representation used on the CLI.
var DateFormat = time.DateOnly

// Config holds the runtime configuration for a report run.
// This struct remains the "final, validated" config.
type Config struct {
	EventsPath  string
	OffsetsPath string
	HistoryPath string

	ReferenceDate time.Time
	Weeks         int

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	ArchiveBackend   schema.DatabaseBackend
	ArchiveDBConnect string // Please use env var as this is plaintext

	RunID  int64 // Archive run selector for show/export
	Latest bool  // Select the newest archived run instead of RunID

	Verbose bool
	LogFile string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored cells in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	EventsPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Offsets          string `mapstructure:"offsets"`
	History          string `mapstructure:"history"`
	Date             string `mapstructure:"date"`
	Weeks            int    `mapstructure:"weeks"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	ArchiveBackend   string `mapstructure:"archive-backend"`
	ArchiveDBConnect string `mapstructure:"archive-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`
	Verbose          bool   `mapstructure:"verbose"`
	LogFile          string `mapstructure:"log-file"`

	// --- Fields from archive subcommand flags ---
	Run    int64 `mapstructure:"run"`
	Latest bool  `mapstructure:"latest"`
}

// Clone returns a copy of the Config struct. The config holds no
// reference types, so a value copy is a full copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Every failure wraps
// schema.ErrConfiguration: nothing here reads input file contents, so a
// failing run dies before any stream is parsed.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := ValidateCommonInputs(cfg, input); err != nil {
		return err
	}
	if err := processReferenceDate(cfg, input); err != nil {
		return err
	}
	if err := processWeeks(cfg, input); err != nil {
		return err
	}
	if err := resolveInputPaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// ProcessWindow resolves the report window alone (reference date and
// weeks). The MCP server builds its base configuration with this since
// tool calls carry their own input paths.
func ProcessWindow(cfg *Config, input *ConfigRawInput) error {
	if err := processReferenceDate(cfg, input); err != nil {
		return err
	}
	return processWeeks(cfg, input)
}

// ValidateCommonInputs processes the fields shared by every subcommand:
// output selection, display toggles and archive backend settings. Archive
// subcommands use this directly since they never touch input streams.
func ValidateCommonInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose
	cfg.LogFile = input.LogFile
	cfg.RunID = input.Run
	cfg.Latest = input.Latest

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("%w: invalid --emoji value: %s", schema.ErrConfiguration, err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("%w: invalid --color value: %s", schema.ErrConfiguration, err)
	}
	cfg.UseColors = colors

	// --- 1. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("%w: invalid output format '%s'. must be table, csv, json", schema.ErrConfiguration, input.Output)
	}

	// --- 2. Backend Validation ---
	return validateBackendConfig(cfg, input)
}

// validateBackendConfig validates the archive backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.ArchiveBackend = schema.DatabaseBackend(strings.ToLower(input.ArchiveBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.ArchiveBackend]; !ok {
		return fmt.Errorf("%w: invalid archive backend '%s'. must be sqlite, mysql, postgresql, none", schema.ErrConfiguration, input.ArchiveBackend)
	}
	cfg.ArchiveDBConnect = input.ArchiveDBConnect
	if err := ValidateDatabaseConnectionString(cfg.ArchiveBackend, cfg.ArchiveDBConnect); err != nil {
		return fmt.Errorf("%w: %s", schema.ErrConfiguration, err)
	}
	return nil
}

// processReferenceDate parses the reference date, defaulting to the
// current UTC day. The reference date names the final week-ending column.
func processReferenceDate(cfg *Config, input *ConfigRawInput) error {
	if input.Date == "" {
		now := time.Now().UTC()
		cfg.ReferenceDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		return nil
	}
	date, err := schema.ParseDate(input.Date)
	if err != nil {
		return fmt.Errorf("%w: invalid --date value: %s", schema.ErrConfiguration, err)
	}
	cfg.ReferenceDate = date
	return nil
}

// processWeeks validates the report window length.
func processWeeks(cfg *Config, input *ConfigRawInput) error {
	if input.Weeks < 1 {
		return fmt.Errorf("%w: weeks must be at least 1 (received %d)", schema.ErrConfiguration, input.Weeks)
	}
	cfg.Weeks = input.Weeks
	return nil
}

// resolveInputPaths checks that the configured input files exist. The
// events stream is required; offsets and history are optional, but a path
// that was explicitly configured has to exist.
func resolveInputPaths(cfg *Config, input *ConfigRawInput) error {
	if input.EventsPathStr == "" {
		return fmt.Errorf("%w: an events file is required", schema.ErrConfiguration)
	}
	if err := statInputFile(input.EventsPathStr, "events"); err != nil {
		return err
	}
	cfg.EventsPath = input.EventsPathStr

	cfg.OffsetsPath = strings.TrimSpace(input.Offsets)
	if cfg.OffsetsPath != "" {
		if err := statInputFile(cfg.OffsetsPath, "offsets"); err != nil {
			return err
		}
	}

	cfg.HistoryPath = strings.TrimSpace(input.History)
	if cfg.HistoryPath != "" {
		if err := statInputFile(cfg.HistoryPath, "history"); err != nil {
			return err
		}
	}
	return nil
}

// statInputFile verifies a configured input path points at a regular file.
func statInputFile(path, role string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s file %q not found", schema.ErrConfiguration, role, path)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s path %q is a directory", schema.ErrConfiguration, role, path)
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("archive-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
