package config

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/faizan/stadium/models"
)

// OpenDB connects to the configured database. Constraint violations are
// translated to gorm.ErrDuplicatedKey and gorm.ErrForeignKeyViolated.
func OpenDB(cfg Database, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverMySQL:
		dsn, err := MySQLDSN(cfg.DSN)
		if err != nil {
			return nil, err
		}
		dialector = mysql.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite, "":
		dialector = sqlite.Open(SQLiteDSN(cfg.DSN))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	maxOpen := cfg.MaxOpenConns
	if cfg.Driver == DriverSQLite || cfg.Driver == "" {
		// A single writer avoids SQLITE_BUSY between concurrent transactions.
		maxOpen = 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	return db, nil
}

// SQLiteDSN enables foreign key enforcement, which SQLite leaves off by
// default and which the cascade rules depend on.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

// MySQLDSN turns on parseTime, without which DATE columns scan as bytes
// instead of time.Time.
func MySQLDSN(dsn string) (string, error) {
	parsed, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	parsed.ParseTime = true
	return parsed.FormatDSN(), nil
}

// Migrate creates or upgrades the catalog tables, unique indexes and
// foreign keys with their ON DELETE rules.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&models.Artist{},
		&models.Album{},
		&models.Choreography{},
		&models.Track{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	// NULL artist_id values compare distinct in idx_album_title_artist.
	// MySQL has no partial indexes and relies on the repository check alone.
	switch db.Dialector.Name() {
	case "sqlite", "postgres":
		err = db.WithContext(ctx).Exec(
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_album_artistless_title ON albums (title) WHERE artist_id IS NULL",
		).Error
		if err != nil {
			return fmt.Errorf("migrate: artistless album index: %w", err)
		}
	}
	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func newGormLogger(logger *slog.Logger) gormlogger.Interface {
	if logger == nil {
		return gormlogger.Default.LogMode(gormlogger.Silent)
	}
	return gormlogger.New(slogWriter{logger: logger.With("component", "gorm")}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
