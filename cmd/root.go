package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/dbug/internal/app"
	"github.com/zjrosen/dbug/internal/config"
	"github.com/zjrosen/dbug/internal/ingest"
	"github.com/zjrosen/dbug/internal/log"
	"github.com/zjrosen/dbug/internal/paths"
	"github.com/zjrosen/dbug/internal/pubsub"
	"github.com/zjrosen/dbug/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const shutdownTimeout = 5 * time.Second

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	// configErr is reported by commands that need a valid config.
	configErr error
)

var rootCmd = &cobra.Command{
	Use:   "dbug",
	Short: "A local webhook inspector",
	Long: `dbug receives JSON over HTTP and shows every payload as a foldable,
colorized outline in the terminal.

POST any JSON body to the endpoint (default http://127.0.0.1:53821/) and it
appears at the top of the list. Payloads are kept in ~/.dbug/payloads.db.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/dbug/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (path from DBUG_LOG, default debug.log)")
	rootCmd.PersistentFlags().String("db", "",
		"payload database file or directory (default: ~/.dbug/payloads.db)")
	rootCmd.PersistentFlags().Bool("memory", false,
		"keep payloads in memory only")

	rootCmd.Flags().StringP("addr", "a", "", "address for the ingestion endpoint")
	rootCmd.Flags().Bool("no-server", false, "do not start the ingestion endpoint")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"do not reload when another process writes the database")
	rootCmd.Flags().StringP("theme", "t", "", "theme preset (see 'dbug themes')")

	_ = viper.BindPFlag("storage.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("storage.in_memory", rootCmd.PersistentFlags().Lookup("memory"))
	_ = viper.BindPFlag("server.addr", rootCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("theme.preset", rootCmd.Flags().Lookup("theme"))
}

// setDefaults registers every default so flags and files only override
// what they name.
func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("server.enabled", d.Server.Enabled)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.max_body_bytes", d.Server.MaxBodyBytes)
	v.SetDefault("server.cors.allowed_origins", d.Server.CORS.AllowedOrigins)
	v.SetDefault("server.cors.allowed_methods", d.Server.CORS.AllowedMethods)
	v.SetDefault("server.cors.allowed_headers", d.Server.CORS.AllowedHeaders)
	v.SetDefault("server.cors.max_age", d.Server.CORS.MaxAge)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.in_memory", d.Storage.InMemory)
	v.SetDefault("auto_refresh", d.AutoRefresh)
	v.SetDefault("ui.indent_size", d.UI.IndentSize)
	v.SetDefault("ui.line_numbers", d.UI.LineNumbers)
	v.SetDefault("ui.auto_expand_newest", d.UI.AutoExpandNewest)
	v.SetDefault("ui.render_cache", d.UI.RenderCache)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
	v.SetDefault("ui.list_limit", d.UI.ListLimit)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// defaultConfigPath is where a missing config is created.
func defaultConfigPath() string {
	if dir := paths.ConfigDir(); dir != "" {
		return filepath.Join(dir, "config.yaml")
	}
	return filepath.Join(".dbug", "config.yaml")
}

func initConfig() {
	setDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .dbug/config.yaml (current directory)
		// 2. ~/.config/dbug/config.yaml (user config)
		if _, err := os.Stat(".dbug/config.yaml"); err == nil {
			viper.SetConfigFile(".dbug/config.yaml")
		} else {
			if dir := paths.ConfigDir(); dir != "" {
				viper.AddConfigPath(dir)
			}
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// First run: write the commented default so users can find it.
			defaultPath := defaultConfigPath()
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
		} else {
			configErr = fmt.Errorf("reading config: %w", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil && configErr == nil {
		configErr = fmt.Errorf("decoding config: %w", err)
	}
}

// configFilePath is the file theme changes are saved to.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return defaultConfigPath()
}

func runApp(cmd *cobra.Command, _ []string) error {
	debug := debugEnabled()
	cleanupLog, err := initDebugLog(debug, "dbug")
	if err != nil {
		return err
	}
	defer cleanupLog()

	if configErr != nil {
		return configErr
	}
	if noServer, _ := cmd.Flags().GetBool("no-server"); noServer {
		cfg.Server.Enabled = false
	}
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := applyTheme(cfg.Theme); err != nil {
		return fmt.Errorf("invalid theme configuration: %w", err)
	}

	st, err := openStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer st.Close()

	tp, err := newTracing(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	}()

	autoRefresh := cfg.AutoRefresh && st.dbPath != ""

	var endpoint string
	if cfg.Server.Enabled {
		srv, err := newServer(cfg.Server, st.svc, tp)
		switch {
		case err != nil && !autoRefresh:
			return fmt.Errorf("starting ingestion endpoint: %w", err)
		case err != nil:
			// Usually another dbug owns the port. Its writes still reach
			// this viewer through the database watcher.
			log.Warn(log.CatServer, "Ingestion endpoint unavailable, viewing only", "addr", cfg.Server.Addr, "error", err)
		default:
			endpoint = srv.URL()
			go func() {
				if err := srv.Start(); err != nil {
					log.ErrorErr(log.CatServer, "Ingestion endpoint stopped", err)
				}
			}()
			defer stopServer(srv)
		}
	}

	var notices pubsub.Subscriber[watcher.Notice]
	if autoRefresh {
		w, err := watcher.New(watcher.DefaultConfig(st.dbPath))
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			_ = w.Stop()
			return fmt.Errorf("watching %s: %w", st.dbPath, err)
		}
		defer func() { _ = w.Stop() }()
		notices = w
	}

	var logs pubsub.Subscriber[string]
	if debug {
		logs = log.Source{}
	}

	zone.NewGlobal()

	model := app.New(app.Config{
		Service:    st.svc,
		Watcher:    notices,
		Logs:       logs,
		Renderer:   newRenderer(cfg.UI),
		UI:         cfg.UI,
		Theme:      cfg.Theme,
		ConfigPath: configFilePath(),
		Endpoint:   endpoint,
		Mouse:      true,
	})
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func stopServer(srv *ingest.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.ErrorErr(log.CatServer, "Stopping ingestion endpoint failed", err)
	}
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
