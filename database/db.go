package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/resilience"
)

// DB wraps a GORM database with shell logging.
type DB struct {
	GormDB *gorm.DB
	log    *logger.Logger
	cfg    Config
	closed bool
	mu     sync.Mutex
}

// Result reports the outcome of a write statement.
type Result struct {
	RowsAffected int64 `json:"rowsAffected"`
	LastInsertID int64 `json:"lastInsertId"`
}

// Open opens the SQLite database described by cfg.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*DB, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewWithContext(ctx, sqlite.Open(cfg.DSN()), cfg, log)
}

// NewWithContext opens a database through dialector, retrying failed
// opens with exponential backoff. The context cancels pending retries.
func NewWithContext(ctx context.Context, dialector gorm.Dialector, cfg Config, log *logger.Logger) (*DB, error) {
	cfg.ApplyDefaults()
	log = log.WithFields(map[string]interface{}{"db": cfg.Path})

	slowThreshold, _ := time.ParseDuration(cfg.SlowQueryThreshold)
	backoff, _ := time.ParseDuration(cfg.RetryBackoff)

	gormCfg := &gorm.Config{
		Logger: newGormLogger(log, slowThreshold, parseLogLevel(cfg.LogLevel)),
	}

	retry := resilience.DefaultRetryConfig()
	retry.MaxAttempts = cfg.MaxRetries
	retry.InitialBackoff = backoff
	retry.OnRetry = func(attempt int, err error, wait time.Duration) {
		log.Warn("Database open failed, retrying", map[string]interface{}{
			"attempt": attempt,
			"error":   err.Error(),
			"backoff": wait.String(),
		})
	}

	attempts := 0
	db, err := resilience.Retry(ctx, retry, func() (*gorm.DB, error) {
		attempts++
		return openAndPing(ctx, dialector, gormCfg)
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("database open canceled: %w", err)
		}
		return nil, fmt.Errorf("failed to open database after %d attempts: %w", attempts, err)
	}

	sqlDB, _ := db.DB()
	configurePool(sqlDB, cfg)
	log.Debug("Database opened", map[string]interface{}{"attempt": attempts})
	return &DB{GormDB: db, log: log, cfg: cfg}, nil
}

func openAndPing(ctx context.Context, dialector gorm.Dialector, gormCfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func configurePool(sqlDB *sql.DB, cfg Config) {
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	if idleTime, err := time.ParseDuration(cfg.ConnMaxIdleTime); err == nil {
		sqlDB.SetConnMaxIdleTime(idleTime)
	}
}

// Config returns the effective configuration.
func (d *DB) Config() Config { return d.cfg }

// Close closes the underlying sql.DB connection pool. Safe to call multiple times.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}

	sqlDB, err := d.GormDB.DB()
	if err != nil {
		return err
	}
	d.log.Debug("Closing database")
	d.closed = true
	return sqlDB.Close()
}

// IsClosed reports whether Close was called.
func (d *DB) IsClosed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

// PingContext verifies the database connection is alive, respecting the context.
func (d *DB) PingContext(ctx context.Context) error {
	sqlDB, err := d.GormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// WithContext returns a GORM session scoped to the given context.
func (d *DB) WithContext(ctx context.Context) *gorm.DB {
	return d.GormDB.WithContext(ctx)
}

// Exec runs a write statement. SQL text goes to the driver without
// expression rewriting apart from "$N" parameters, so literal "@"
// characters are left alone and args bind by parameter number. The insert id comes from the
// same connection as the statement.
func (d *DB) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	var res Result
	err := d.GormDB.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		begin := time.Now()
		r, err := conn.Statement.ConnPool.ExecContext(ctx, numberedParams(query), args...)
		if err == nil {
			res.RowsAffected, err = r.RowsAffected()
		}
		if err == nil {
			res.LastInsertID, err = r.LastInsertId()
		}
		conn.Logger.Trace(ctx, begin, func() (string, int64) { return query, res.RowsAffected }, err)
		return err
	})
	return res, err
}

// Query runs a read statement and returns every row as a column map.
// TEXT and BLOB values are returned as strings.
func (d *DB) Query(ctx context.Context, query string, args ...any) ([]map[string]any, error) {
	out := make([]map[string]any, 0)
	err := d.GormDB.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		begin := time.Now()
		rows, err := conn.Statement.ConnPool.QueryContext(ctx, numberedParams(query), args...)
		if err == nil {
			out, err = scanRows(rows, out)
		}
		conn.Logger.Trace(ctx, begin, func() (string, int64) { return query, int64(len(out)) }, err)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// scanRows reads every row into a map keyed by column name and closes rows.
func scanRows(rows *sql.Rows, out []map[string]any) ([]map[string]any, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// TransactionFunc defines a function that runs within a transaction.
type TransactionFunc func(tx *gorm.DB) error

// WithTransaction executes fn within a transaction with panic recovery.
func (d *DB) WithTransaction(ctx context.Context, fn TransactionFunc) error {
	tx := d.GormDB.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			d.log.Error("Transaction rolled back due to panic", map[string]interface{}{
				"panic": fmt.Sprintf("%v", r),
			})
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return fmt.Errorf("transaction failed: %w, rollback failed: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
