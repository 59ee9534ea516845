package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/dbug/internal/config"
	"github.com/zjrosen/dbug/internal/log"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the ingestion endpoint without the viewer",
	Long: `Run only the HTTP ingestion endpoint. Payloads are written to the
database, where any running 'dbug' viewer picks them up.

Logs go to stderr.

Example:
  dbug serve                        # listen on 127.0.0.1:53821
  dbug serve --addr 0.0.0.0:8080    # listen on every interface
  dbug serve --log-level warn       # only warnings and errors`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "address to listen on (overrides config)")
	serveCmd.Flags().String("log-level", "info", "minimum log level: debug, info, warn, error")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if configErr != nil {
		return configErr
	}
	if debugEnabled() {
		cleanup, err := initDebugLog(true, "dbug-serve")
		if err != nil {
			return err
		}
		defer cleanup()
	} else {
		log.InitWriter(cmd.ErrOrStderr())
		level, _ := cmd.Flags().GetString("log-level")
		log.SetMinLevel(log.ParseLevel(level))
	}

	sc := cfg.Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		sc.Addr = addr
	}
	if err := config.ValidateServer(sc); err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}
	if err := config.ValidateTracing(cfg.Tracing); err != nil {
		return fmt.Errorf("invalid tracing configuration: %w", err)
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

	srv, err := newServer(sc, st.svc, tp)
	if err != nil {
		return fmt.Errorf("starting ingestion endpoint: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "dbug listening on %s\n", srv.URL())
	if st.dbPath != "" {
		_, _ = fmt.Fprintf(out, "Storing payloads in %s\n", st.dbPath)
	}
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug(log.CatConfig, "Loaded config", "path", used)
	}
	_, _ = fmt.Fprintln(out, "Press Ctrl+C to stop")

	select {
	case sig := <-sigCh:
		_, _ = fmt.Fprintf(out, "\nReceived %s, shutting down...\n", sig)
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.ErrorErr(log.CatServer, "Error stopping ingestion endpoint", err)
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.ErrorErr(log.CatTrace, "Error shutting down tracing", err)
	}

	_, _ = fmt.Fprintln(out, "dbug stopped")
	return nil
}
