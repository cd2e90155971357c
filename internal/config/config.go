// Package config reads the server settings from flags, MISSIONS_* environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const EnvPrefix = "MISSIONS"

type Config struct {
	HTTP HTTPConfig
	DB   DBConfig
	Log  LogConfig
}

type HTTPConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type DBConfig struct {
	DSN             string
	User            string
	Password        string
	Host            string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// flag name -> config key
var flagKeys = map[string]string{
	"addr":                 "http.addr",
	"shutdown-timeout":     "http.shutdown_timeout",
	"db-dsn":               "db.dsn",
	"db-user":              "db.user",
	"db-password":          "db.password",
	"db-host":              "db.host",
	"db-name":              "db.name",
	"db-max-open-conns":    "db.max_open_conns",
	"db-max-idle-conns":    "db.max_idle_conns",
	"db-conn-max-lifetime": "db.conn_max_lifetime",
	"log-level":            "log.level",
	"log-format":           "log.format",
}

func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.host", "127.0.0.1:3306")
	v.SetDefault("db.name", "missions")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 3*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	return v
}

// RegisterFlags declares the flags on fs and binds them to v.
func RegisterFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.String("addr", "", "HTTP listen address")
	fs.Duration("shutdown-timeout", 0, "time allowed for in-flight requests on shutdown")
	fs.String("db-dsn", "", "full MySQL DSN, takes precedence over the other db-* flags")
	fs.String("db-user", "", "MySQL user")
	fs.String("db-password", "", "MySQL password")
	fs.String("db-host", "", "MySQL host:port")
	fs.String("db-name", "", "MySQL database name")
	fs.Int("db-max-open-conns", 0, "maximum number of open connections")
	fs.Int("db-max-idle-conns", 0, "maximum number of idle connections")
	fs.Duration("db-conn-max-lifetime", 0, "maximum lifetime of a connection")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("log-format", "", "log format: json or console")

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file, if one is given, and returns the validated config.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	cfg := Config{
		HTTP: HTTPConfig{
			Addr:            v.GetString("http.addr"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		DB: DBConfig{
			DSN:             v.GetString("db.dsn"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			Host:            v.GetString("db.host"),
			Name:            v.GetString("db.name"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.HTTP.Addr); err != nil {
		return fmt.Errorf("invalid http address %q: %w", c.HTTP.Addr, err)
	}
	if c.DB.DSN == "" && (c.DB.User == "" || c.DB.Name == "") {
		return fmt.Errorf("database is not configured: set db.dsn or db.user and db.name")
	}
	if _, err := c.DB.FormatDSN(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format %q", c.Log.Format)
	}
	return nil
}

// FormatDSN returns the driver DSN. Dates are only scanned into time values
// when parseTime is on, so it is always forced.
func (c DBConfig) FormatDSN() (string, error) {
	var cfg *mysql.Config
	if c.DSN != "" {
		parsed, err := mysql.ParseDSN(c.DSN)
		if err != nil {
			return "", fmt.Errorf("invalid db dsn: %w", err)
		}
		cfg = parsed
	} else {
		cfg = mysql.NewConfig()
		cfg.User = c.User
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = c.Host
		cfg.DBName = c.Name
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}
