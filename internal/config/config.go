package config

import (
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hurou927/db-normalize/internal/analyze"
	"github.com/hurou927/db-normalize/internal/notation"
	"github.com/hurou927/db-normalize/internal/relational"
)

// Config represents the top-level YAML configuration.
type Config struct {
	Notation   Notation   `yaml:"notation"`
	Limits     Limits     `yaml:"limits"`
	Decompose  Decompose  `yaml:"decompose"`
	LogLevel   string     `yaml:"log_level"`
	Connection Connection `yaml:"connection"`
	Schemas    []string   `yaml:"schemas"`
	Tables     []string   `yaml:"tables"`
	Output     string     `yaml:"output"`
}

// Notation holds the separators of the FD text format.
type Notation struct {
	Delimiter  string `yaml:"delimiter"`
	Arrow      string `yaml:"arrow"`
	MultiArrow string `yaml:"multi_arrow"`
}

// Limits bounds the exponential algorithms; 0 disables a bound.
type Limits struct {
	MaxSubsets uint64 `yaml:"max_subsets"`
	MaxFDs     int    `yaml:"max_fds"`
	MaxSplits  int    `yaml:"max_splits"`
}

// Decompose selects the normal form and how BCNF fragments carry dependencies.
type Decompose struct {
	Form       string `yaml:"form"`
	Projection string `yaml:"projection"`
	Prefix     string `yaml:"prefix"`
}

// Connection holds database connection parameters.
type Connection struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN builds a PostgreSQL connection string.
func (c *Connection) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode,
	)
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		Notation: Notation{
			Delimiter:  notation.Default.Delimiter,
			Arrow:      notation.Default.Arrow,
			MultiArrow: notation.Default.MultiArrow,
		},
		Limits: Limits{
			MaxSubsets: relational.DefaultLimits.MaxSubsets,
			MaxFDs:     relational.DefaultLimits.MaxFDs,
			MaxSplits:  relational.DefaultLimits.MaxSplits,
		},
		Decompose: Decompose{Form: analyze.FormBCNF, Projection: "closure", Prefix: "R"},
		LogLevel:  "info",
	}
	cfg.applyEnv()
	_ = cfg.validate()
	return cfg
}

// Load reads and parses a YAML config file. Keys missing from the file keep
// their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// applyEnv fills in empty Connection fields from environment variables.
// YAML values take precedence; env vars are used only as fallback.
func (c *Config) applyEnv() {
	conn := &c.Connection
	if conn.Host == "" {
		conn.Host = envOr("PGHOST", "POSTGRES_HOST")
	}
	if conn.Port == 0 {
		if s := envOr("PGPORT", "POSTGRES_PORT"); s != "" {
			if p, err := strconv.Atoi(s); err == nil {
				conn.Port = p
			}
		}
	}
	if conn.Database == "" {
		conn.Database = envOr("PGDATABASE", "POSTGRES_DB")
	}
	if conn.User == "" {
		conn.User = envOr("PGUSER", "POSTGRES_USER")
	}
	if conn.Password == "" {
		conn.Password = envOr("PGPASSWORD", "POSTGRES_PASSWORD")
	}
	if conn.SSLMode == "" {
		conn.SSLMode = envOr("PGSSLMODE")
	}
}

// envOr returns the first non-empty value from the given env var names.
func envOr(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}

// validate checks enum values and fills defaults (sufficient for file-based
// commands).
func (c *Config) validate() error {
	if c.Notation.Arrow == "" {
		return fmt.Errorf("notation.arrow is required")
	}
	if c.Notation.MultiArrow == c.Notation.Arrow {
		return fmt.Errorf("notation.multi_arrow must differ from notation.arrow")
	}
	switch c.Decompose.Form {
	case "":
		c.Decompose.Form = analyze.FormBCNF
	case analyze.FormBCNF, analyze.Form3NF:
	default:
		return fmt.Errorf("decompose.form must be %q or %q, got %q", analyze.FormBCNF, analyze.Form3NF, c.Decompose.Form)
	}
	if _, err := relational.ParseProjection(c.Decompose.Projection); err != nil {
		return fmt.Errorf("decompose.projection: %w", err)
	}
	if c.Decompose.Prefix == "" {
		c.Decompose.Prefix = "R"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.Connection.Port == 0 {
		c.Connection.Port = 5432
	}
	if c.Connection.SSLMode == "" {
		c.Connection.SSLMode = "disable"
	}
	if len(c.Schemas) == 0 {
		c.Schemas = []string{"public"}
	}
	return nil
}

// ValidateForIntrospect checks the fields required to reach the database.
func (c *Config) ValidateForIntrospect() error {
	if c.Connection.Host == "" {
		return fmt.Errorf("connection.host is required")
	}
	if c.Connection.Database == "" {
		return fmt.Errorf("connection.database is required")
	}
	if c.Connection.User == "" {
		return fmt.Errorf("connection.user is required")
	}
	return nil
}

// TableSet returns the table filter for O(1) lookup; nil means every table.
func (c *Config) TableSet() map[string]bool {
	if len(c.Tables) == 0 {
		return nil
	}
	set := make(map[string]bool, len(c.Tables))
	for _, t := range c.Tables {
		set[t] = true
	}
	return set
}

// Codec returns the configured text notation.
func (c *Config) Codec() notation.Notation {
	return notation.Notation{
		Delimiter:  c.Notation.Delimiter,
		Arrow:      c.Notation.Arrow,
		MultiArrow: c.Notation.MultiArrow,
	}
}

// RelationalLimits converts the limits section.
func (c *Config) RelationalLimits() relational.Limits {
	return relational.Limits{
		MaxSubsets: c.Limits.MaxSubsets,
		MaxFDs:     c.Limits.MaxFDs,
		MaxSplits:  c.Limits.MaxSplits,
	}
}

// AnalyzeOptions converts the decompose and limits sections for the analyzer.
func (c *Config) AnalyzeOptions() analyze.Options {
	return analyze.Options{Form: c.Decompose.Form, Decompose: c.DecomposeOptions()}
}

// DecomposeOptions converts the decompose and limits sections. The
// projection has already been checked by validate.
func (c *Config) DecomposeOptions() relational.DecomposeOptions {
	p, _ := relational.ParseProjection(c.Decompose.Projection)
	return relational.DecomposeOptions{
		Limits:     c.RelationalLimits(),
		Projection: p,
		Prefix:     c.Decompose.Prefix,
	}
}
