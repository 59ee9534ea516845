package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/zjrosen/dbug/internal/cachemanager"
	"github.com/zjrosen/dbug/internal/config"
	"github.com/zjrosen/dbug/internal/infrastructure/sqlite"
	"github.com/zjrosen/dbug/internal/ingest"
	"github.com/zjrosen/dbug/internal/jsonview"
	"github.com/zjrosen/dbug/internal/log"
	"github.com/zjrosen/dbug/internal/paths"
	"github.com/zjrosen/dbug/internal/payload"
	"github.com/zjrosen/dbug/internal/tracing"
	"github.com/zjrosen/dbug/internal/ui/styles"
)

const (
	renderCacheTTL     = 10 * time.Minute
	renderCacheCleanup = 20 * time.Minute
)

// store is an opened payload service and the database behind it, if any.
type store struct {
	svc    *payload.Service
	db     *sqlite.DB
	dbPath string
}

func (s *store) Close() {
	s.svc.Close()
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.ErrorErr(log.CatDB, "Closing database failed", err, "path", s.dbPath)
		}
	}
}

// openStore opens the configured payload store. In-memory stores have an
// empty dbPath.
func openStore(sc config.StorageConfig) (*store, error) {
	if sc.InMemory {
		log.Info(log.CatDB, "Using in-memory store")
		return &store{svc: payload.NewService(payload.NewMemoryRepository())}, nil
	}

	dbPath := paths.ResolveDBPath(sc.Path)
	db, err := sqlite.NewDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening payload database %s: %w", dbPath, err)
	}
	log.Info(log.CatDB, "Opened payload database", "path", dbPath)
	return &store{
		svc:    payload.NewService(db.PayloadRepository()),
		db:     db,
		dbPath: dbPath,
	}, nil
}

// applyTheme installs cfg's palette for lipgloss styles and jsonview colors.
func applyTheme(tc config.ThemeConfig) error {
	return styles.ApplyTheme(styles.ThemeConfig{
		Preset: tc.Preset,
		Colors: tc.FlattenedColors(),
	})
}

// newRenderer returns a memoizing renderer, or nil when caching is off.
func newRenderer(ui config.UIConfig) *jsonview.Renderer {
	if !ui.RenderCache {
		return nil
	}
	cache := cachemanager.NewInMemoryCacheManager[string, []jsonview.ColoredToken](
		"render_lines", renderCacheTTL, renderCacheCleanup)
	return jsonview.NewRenderer(cache)
}

// newTracing builds the tracing provider, filling in the default traces
// file when none is configured.
func newTracing(tc config.TracingConfig) (*tracing.Provider, error) {
	filePath := tc.FilePath
	if filePath == "" {
		filePath = config.DefaultTracesFilePath()
	}
	return tracing.NewProvider(tracing.Config{
		Enabled:      tc.Enabled,
		Exporter:     tc.Exporter,
		FilePath:     paths.ExpandHome(filePath),
		OTLPEndpoint: tc.OTLPEndpoint,
		SampleRate:   tc.SampleRate,
		ServiceName:  "dbug",
	})
}

// newServer binds the ingestion endpoint. The caller runs Start.
func newServer(sc config.ServerConfig, svc *payload.Service, tp *tracing.Provider) (*ingest.Server, error) {
	return ingest.NewServer(ingest.ServerConfig{
		Addr:         sc.Addr,
		Service:      svc,
		MaxBodyBytes: sc.MaxBodyBytes,
		CORS:         sc.CORS,
		Tracer:       tp.Tracer(),
	})
}

// debugEnabled reports whether --debug or DBUG_DEBUG asks for a debug log.
func debugEnabled() bool {
	return debugFlag || os.Getenv("DBUG_DEBUG") != ""
}

// initDebugLog enables file logging when debug is set. The returned
// cleanup is never nil.
func initDebugLog(debug bool, prefix string) (func(), error) {
	if !debug {
		return func() {}, nil
	}
	logPath := os.Getenv("DBUG_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return func() {}, fmt.Errorf("initializing debug log: %w", err)
	}
	log.Info(log.CatConfig, "dbug starting", "debug", true, "logPath", logPath, "version", version)
	return cleanup, nil
}
