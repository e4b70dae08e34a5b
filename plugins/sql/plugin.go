// Package sql exposes SQLite databases to the frontend.
//
// Databases are addressed by URL ("sqlite:gollama.db"). Relative paths live
// in the application data directory and "sqlite::memory:" is a private
// in-memory database. Statements use $1, $2, ... placeholders.
package sql

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/kbukum/gollama/database"
	"github.com/kbukum/gollama/database/migration"
	apperrors "github.com/kbukum/gollama/errors"
	"github.com/kbukum/gollama/logger"
	"github.com/kbukum/gollama/observability"
	"github.com/kbukum/gollama/plugin"
	"github.com/kbukum/gollama/validation"
)

// Name is the plugin's registry name.
const Name = "sql"

var (
	_ plugin.Plugin      = (*Plugin)(nil)
	_ plugin.Binder      = (*Plugin)(nil)
	_ plugin.Describable = (*Plugin)(nil)
)

// Option configures the plugin.
type Option func(*Plugin)

// WithLogger sets the plugin logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Plugin) { p.log = l }
}

// WithMetrics records query counters and durations.
func WithMetrics(m *observability.Metrics) Option {
	return func(p *Plugin) { p.metrics = m }
}

// WithDataDir sets the directory relative database paths resolve against.
func WithDataDir(dir string) Option {
	return func(p *Plugin) { p.dataDir = dir }
}

// Plugin manages the set of open databases.
type Plugin struct {
	cfg     Config
	dataDir string
	log     *logger.Logger
	metrics *observability.Metrics

	mu  sync.Mutex
	dbs map[string]*database.DB
	ctx context.Context

	// loads collapses concurrent Load calls for one URL into a single open.
	loads singleflight.Group
}

// New creates the SQL plugin.
func New(cfg Config, opts ...Option) *Plugin {
	p := &Plugin{
		cfg: cfg,
		dbs: make(map[string]*database.DB),
		ctx: context.Background(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.GetGlobalLogger()
	}
	p.log = p.log.WithComponent(Name)
	return p
}

// Name returns the plugin name.
func (p *Plugin) Name() string { return Name }

// Start opens the preloaded databases.
func (p *Plugin) Start(ctx context.Context) error {
	if err := p.cfg.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	p.ctx = context.WithoutCancel(ctx)
	p.mu.Unlock()

	for _, url := range p.cfg.Preload {
		if _, err := p.Load(ctx, url); err != nil {
			return err
		}
	}
	return nil
}

// Stop closes every open database.
func (p *Plugin) Stop(_ context.Context) error {
	_, err := p.Close("")
	return err
}

// Health reports the number of open databases.
func (p *Plugin) Health(_ context.Context) plugin.Health {
	return plugin.Health{
		Name:    Name,
		Status:  plugin.StatusHealthy,
		Message: fmt.Sprintf("%d open", len(p.Loaded())),
	}
}

// Describe returns summary info for the startup display.
func (p *Plugin) Describe() plugin.Description {
	details := "sqlite"
	if p.dataDir != "" {
		details += " dir=" + p.dataDir
	}
	if n := len(p.cfg.Preload); n > 0 {
		details += fmt.Sprintf(" preload=%d", n)
	}
	return plugin.Description{Name: "SQL", Type: "database", Details: details}
}

// Bindings exposes the Bridge to the frontend.
func (p *Plugin) Bindings() []any {
	return []any{&Bridge{p: p}}
}

// Loaded returns the URLs of the open databases, sorted.
func (p *Plugin) Loaded() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	urls := make([]string, 0, len(p.dbs))
	for u := range p.dbs {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls
}

type loadRequest struct {
	DB string `json:"db" validate:"required,dburl"`
}

type queryRequest struct {
	DB    string `json:"db" validate:"required,dburl"`
	Query string `json:"query" validate:"required"`
}

// Load opens the database at url, applying its migrations. Loading an open
// database is a no-op.
func (p *Plugin) Load(ctx context.Context, url string) (string, error) {
	if err := validation.Validate(loadRequest{DB: url}); err != nil {
		return "", err
	}

	if p.isLoaded(url) {
		return url, nil
	}
	_, err, _ := p.loads.Do(url, func() (any, error) {
		return nil, p.load(ctx, url)
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

func (p *Plugin) isLoaded(url string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.dbs[url]
	return ok
}

// load opens url without holding p.mu, so queries against other databases
// are not held up by retries or migrations.
func (p *Plugin) load(ctx context.Context, url string) error {
	if p.isLoaded(url) {
		return nil
	}

	op := observability.NewOperationContext(Name, "load", url, p.metrics)
	ctx, span := op.Start(ctx, observability.SpanDBLoad)
	db, err := p.open(ctx, url)
	op.End(ctx, span, err)
	if err != nil {
		p.log.Error("Database load failed", logger.Fields("db", url, logger.FieldError, err.Error()))
		return err
	}

	p.mu.Lock()
	if _, ok := p.dbs[url]; ok {
		p.mu.Unlock()
		_ = db.Close()
		return nil
	}
	p.dbs[url] = db
	p.mu.Unlock()

	if p.metrics != nil {
		p.metrics.DatabaseOpened(ctx, 1)
	}
	p.log.Info("Database loaded", logger.Fields("db", url, "path", db.Config().Path))
	return nil
}

func (p *Plugin) open(ctx context.Context, url string) (*database.DB, error) {
	cfg := p.cfg.Database
	cfg.Path = resolvePath(p.dataDir, url)
	if cfg.Path != database.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, apperrors.Database("load", err)
		}
	}

	db, err := database.Open(ctx, cfg, p.log)
	if err != nil {
		return nil, database.FromDatabase("load", err)
	}

	if src, ok := p.cfg.Migrations[url]; ok {
		if err := migration.Up(db.GormDB, src); err != nil {
			_ = db.Close()
			return nil, apperrors.Database("migrate", err)
		}
	}
	return db, nil
}

// baseContext is the context IPC calls run under. It outlives Start's
// deadline but keeps its values.
func (p *Plugin) baseContext() context.Context {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctx
}

func (p *Plugin) get(url string) (*database.DB, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	db, ok := p.dbs[url]
	if !ok {
		return nil, apperrors.DatabaseNotLoaded(url)
	}
	return db, nil
}

// Execute runs a write statement against a loaded database.
func (p *Plugin) Execute(ctx context.Context, url, query string, values []any) (database.Result, error) {
	if err := validation.Validate(queryRequest{DB: url, Query: query}); err != nil {
		return database.Result{}, err
	}
	db, err := p.get(url)
	if err != nil {
		return database.Result{}, err
	}

	op := observability.NewOperationContext(Name, "execute", url, p.metrics)
	ctx, span := op.Start(ctx, observability.SpanDBExec)
	res, err := db.Exec(ctx, query, bindValues(values)...)
	op.End(ctx, span, err)
	if err != nil {
		return database.Result{}, database.FromDatabase("execute", err)
	}
	return res, nil
}

// Select runs a read statement against a loaded database.
func (p *Plugin) Select(ctx context.Context, url, query string, values []any) ([]map[string]any, error) {
	if err := validation.Validate(queryRequest{DB: url, Query: query}); err != nil {
		return nil, err
	}
	db, err := p.get(url)
	if err != nil {
		return nil, err
	}

	op := observability.NewOperationContext(Name, "select", url, p.metrics)
	ctx, span := op.Start(ctx, observability.SpanDBQuery)
	rows, err := db.Query(ctx, query, bindValues(values)...)
	op.End(ctx, span, err)
	if err != nil {
		return nil, database.FromDatabase("select", err)
	}
	return rows, nil
}

// Close closes one database, or all of them when url is empty. It reports
// whether anything was closed.
func (p *Plugin) Close(url string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var targets []string
	if url == "" {
		for u := range p.dbs {
			targets = append(targets, u)
		}
	} else {
		if _, ok := p.dbs[url]; !ok {
			return false, apperrors.DatabaseNotLoaded(url)
		}
		targets = []string{url}
	}

	var errs []error
	for _, u := range targets {
		if err := p.dbs[u].Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", u, err))
		}
		delete(p.dbs, u)
		if p.metrics != nil {
			p.metrics.DatabaseOpened(p.ctx, -1)
		}
		p.log.Debug("Database closed", logger.Fields("db", u))
	}
	if len(errs) > 0 {
		return len(targets) > 0, apperrors.Database("close", stderrors.Join(errs...))
	}
	return len(targets) > 0, nil
}

// bindValues prepares JSON-decoded IPC values for the driver. Arrays and
// objects are stored as their JSON text.
func bindValues(values []any) []any {
	out := make([]any, len(values))
	for i, v := range values {
		switch v.(type) {
		case []any, map[string]any:
			b, err := json.Marshal(v)
			if err != nil {
				out[i] = fmt.Sprint(v)
				continue
			}
			out[i] = string(b)
		default:
			out[i] = v
		}
	}
	return out
}
