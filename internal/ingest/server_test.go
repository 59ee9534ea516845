package ingest

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dbug/internal/config"
)

func TestServer_Lifecycle(t *testing.T) {
	svc, _ := newTestService(t)

	srv, err := NewServer(ServerConfig{
		Addr:    "127.0.0.1:0",
		Service: svc,
		CORS:    config.DefaultCORS(),
	})
	require.NoError(t, err)
	require.NotZero(t, srv.Port())
	require.True(t, strings.HasPrefix(srv.URL(), "http://127.0.0.1:"))

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	resp, err := http.Post(srv.URL()+"/hook", "application/json", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, `hello {"a":1}!`, string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, srv.Stop(ctx))

	select {
	case err := <-done:
		require.NoError(t, err, "clean shutdown returns nil")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestNewServer_AddressInUse(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Service: svc})
	require.NoError(t, err)
	defer first.Stop(context.Background())

	_, err = NewServer(ServerConfig{Addr: first.Addr(), Service: svc})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to listen")
}
