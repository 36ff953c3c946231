// Package config loads the service configuration and opens the database.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config keys.
const (
	KeyServerAddr            = "server.addr"
	KeyServerShutdownTimeout = "server.shutdown_timeout"
	KeyDatabaseDriver        = "database.driver"
	KeyDatabaseDSN           = "database.dsn"
	KeyDatabaseMaxOpenConns  = "database.max_open_conns"
	KeyLogLevel              = "log.level"
	KeyLogFormat             = "log.format"
	KeySpotifyClientID       = "spotify.client_id"
	KeySpotifyClientSecret   = "spotify.client_secret"
	KeySpotifyMarket         = "spotify.market"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// EnvPrefix prefixes every environment override, e.g. STADIUM_DATABASE_DSN.
const EnvPrefix = "STADIUM"

type Config struct {
	Server   Server
	Database Database
	Log      Log
	Spotify  Spotify
}

type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type Database struct {
	Driver       string
	DSN          string
	MaxOpenConns int
}

type Log struct {
	Level  string
	Format string
}

type Spotify struct {
	ClientID     string
	ClientSecret string
	Market       string
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyServerAddr, ":8080")
	v.SetDefault(KeyServerShutdownTimeout, 10*time.Second)
	v.SetDefault(KeyDatabaseDriver, DriverSQLite)
	v.SetDefault(KeyDatabaseDSN, "stadium.db")
	v.SetDefault(KeyDatabaseMaxOpenConns, 0)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeySpotifyMarket, "")
}

// NewViper returns a viper instance with defaults and STADIUM_ environment
// overrides installed.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the typed configuration out of v.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Server: Server{
			Addr:            v.GetString(KeyServerAddr),
			ShutdownTimeout: v.GetDuration(KeyServerShutdownTimeout),
		},
		Database: Database{
			Driver:       strings.ToLower(strings.TrimSpace(v.GetString(KeyDatabaseDriver))),
			DSN:          v.GetString(KeyDatabaseDSN),
			MaxOpenConns: v.GetInt(KeyDatabaseMaxOpenConns),
		},
		Log: Log{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Spotify: Spotify{
			ClientID:     v.GetString(KeySpotifyClientID),
			ClientSecret: v.GetString(KeySpotifyClientSecret),
			Market:       v.GetString(KeySpotifyMarket),
		},
	}

	switch cfg.Database.Driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return Config{}, fmt.Errorf("%s must not be empty", KeyDatabaseDSN)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	return cfg, nil
}
