package cli

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"

	securesql "github.com/biyonik/go-secure-sql"
)

const (
	maxWalkDepth = 25
	envPrefix    = "SECURESQL"
)

// configNames are tried in order in every directory during discovery.
var configNames = []string{"securesql.yaml", "securesql.yml"}

// Config represents the securesql configuration from securesql.yaml.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Apply    ApplyConfig    `mapstructure:"apply" json:"apply"`
	Log      LogConfig      `mapstructure:"log" json:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics" json:"metrics"`
}

// DatabaseConfig holds MySQL connection settings. DSN, when set, wins over
// the discrete fields.
type DatabaseConfig struct {
	DSN          string        `mapstructure:"dsn" json:"dsn,omitempty"`
	Host         string        `mapstructure:"host" json:"host"`
	Port         int           `mapstructure:"port" json:"port"`
	Name         string        `mapstructure:"name" json:"name"`
	User         string        `mapstructure:"user" json:"user"`
	Password     string        `mapstructure:"password" json:"-"`
	Charset      string        `mapstructure:"charset" json:"charset"`
	Collation    string        `mapstructure:"collation" json:"collation"`
	TLS          bool          `mapstructure:"tls" json:"tls"`
	MaxOpenConns int           `mapstructure:"max_open_conns" json:"max_open_conns"`
	MaxIdleConns int           `mapstructure:"max_idle_conns" json:"max_idle_conns"`
	ConnMaxLife  time.Duration `mapstructure:"conn_max_life" json:"conn_max_life"`
}

// ApplyConfig holds apply command settings.
type ApplyConfig struct {
	DryRun bool `mapstructure:"dry_run" json:"dry_run"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	PushGateway string `mapstructure:"push_gateway" json:"push_gateway,omitempty"`
	Job         string `mapstructure:"job" json:"job"`
}

// LoadConfig discovers and loads configuration with proper precedence:
// flags > env > config file > defaults.
//
// Returns the loaded config, the path to the config file (empty if none found),
// and any error encountered.
func LoadConfig(explicitConfigPath string) (*Config, string, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath, err := findConfigFile(explicitConfigPath)
	if err != nil {
		return nil, "", err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, configPath, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, configPath, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, configPath, nil
}

func setDefaults(v *viper.Viper) {
	d := securesql.DefaultConfig()

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", d.Host)
	v.SetDefault("database.port", d.Port)
	v.SetDefault("database.name", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.charset", d.Charset)
	v.SetDefault("database.collation", d.Collation)
	v.SetDefault("database.tls", false)
	v.SetDefault("database.max_open_conns", d.MaxOpenConns)
	v.SetDefault("database.max_idle_conns", d.MaxIdleConns)
	v.SetDefault("database.conn_max_life", d.ConnMaxLife)

	v.SetDefault("apply.dry_run", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("metrics.push_gateway", "")
	v.SetDefault("metrics.job", "securesql")
}

// findConfigFile finds the config file to use.
// If explicitPath is provided, it validates the file exists.
// Otherwise, it walks up from cwd looking for securesql.yaml or securesql.yml,
// stopping at a .git directory or after maxWalkDepth levels.
func findConfigFile(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicitPath)
		}
		return explicitPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	dir := cwd
	for i := 0; i < maxWalkDepth; i++ {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}

		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", nil
}

// ClientConfig converts the database section into a securesql.Config.
// When database.dsn is set its fields override the discrete settings.
func (c *Config) ClientConfig() (*securesql.Config, error) {
	db := c.Database
	out := &securesql.Config{
		Host:         db.Host,
		Port:         db.Port,
		Database:     db.Name,
		Username:     db.User,
		Password:     db.Password,
		Charset:      db.Charset,
		Collation:    db.Collation,
		TLS:          db.TLS,
		MaxOpenConns: db.MaxOpenConns,
		MaxIdleConns: db.MaxIdleConns,
		ConnMaxLife:  db.ConnMaxLife,
	}

	if db.DSN != "" {
		if err := overrideFromDSN(out, db.DSN); err != nil {
			return nil, err
		}
	}

	if out.Database == "" {
		return nil, fmt.Errorf("database.name is required when database.dsn does not name one")
	}
	if out.Username == "" {
		return nil, fmt.Errorf("database.user is required when database.dsn does not name one")
	}
	return out, nil
}

// overrideFromDSN copies the parts of a go-sql-driver/mysql DSN onto cfg.
func overrideFromDSN(cfg *securesql.Config, dsn string) error {
	mc, err := mysql.ParseDSN(dsn)
	if err != nil {
		return fmt.Errorf("parsing database.dsn: %w", err)
	}

	if mc.Addr != "" {
		host, port, err := splitAddr(mc.Addr)
		if err != nil {
			return fmt.Errorf("parsing database.dsn address: %w", err)
		}
		cfg.Host, cfg.Port = host, port
	}
	if mc.DBName != "" {
		cfg.Database = mc.DBName
	}
	if mc.User != "" {
		cfg.Username = mc.User
		cfg.Password = mc.Passwd
	}

	// charset and collation are read from the raw query; the driver keeps
	// charset private and fills a default collation.
	if _, rawQuery, ok := strings.Cut(dsn, "?"); ok {
		q, err := url.ParseQuery(rawQuery)
		if err != nil {
			return fmt.Errorf("parsing database.dsn params: %w", err)
		}
		if cs := q.Get("charset"); cs != "" {
			cfg.Charset = strings.Split(cs, ",")[0]
		}
		if col := q.Get("collation"); col != "" {
			cfg.Collation = col
		}
	}
	if mc.TLSConfig != "" && mc.TLSConfig != "false" {
		cfg.TLS = true
	}
	return nil
}

func splitAddr(addr string) (string, int, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return "", 0, err
	}
	return host, n, nil
}
