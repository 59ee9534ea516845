package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dbug/internal/clock"
	"github.com/zjrosen/dbug/internal/config"
	"github.com/zjrosen/dbug/internal/payload"
	"github.com/zjrosen/dbug/internal/pubsub"
)

var t0 = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (*payload.Service, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(t0)
	n := 0
	svc := payload.NewService(payload.NewMemoryRepository(),
		payload.WithClock(clk),
		payload.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	t.Cleanup(svc.Close)
	return svc, clk
}

func newTestHandler(t *testing.T, maxBody int64) (http.Handler, *payload.Service, *clock.Manual) {
	t.Helper()
	svc, clk := newTestService(t)
	h := NewHandler(HandlerConfig{
		Service:      svc,
		MaxBodyBytes: maxBody,
		CORS:         config.DefaultCORS(),
	})
	return h.Routes(), svc, clk
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestIngest_StoresAndGreets(t *testing.T) {
	h, svc, _ := newTestHandler(t, 0)

	rec := do(t, h, http.MethodPost, "/stripe/events", "{\n  \"b\": 1,\n  \"a\": [true, null]\n}")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, `hello {"b":1,"a":[true,null]}!`, rec.Body.String())

	stored, err := svc.Get(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "/stripe/events", stored.Path)
	assert.Equal(t, t0, stored.ReceivedAt)
	assert.JSONEq(t, `{"b":1,"a":[true,null]}`, string(stored.Body))
}

func TestIngest_RootPath(t *testing.T) {
	h, svc, _ := newTestHandler(t, 0)

	rec := do(t, h, http.MethodPost, "/", `42`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello 42!", rec.Body.String())

	p, err := svc.Get(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "/", p.Path)
}

func TestIngest_PublishesCreatedEvent(t *testing.T) {
	h, svc, _ := newTestHandler(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := svc.Subscribe(ctx)

	do(t, h, http.MethodPost, "/hook", `{"ok":true}`)

	select {
	case evt := <-events:
		assert.Equal(t, pubsub.CreatedEvent, evt.Type)
		require.NotNil(t, evt.Payload.Payload)
		assert.Equal(t, "id-1", evt.Payload.Payload.ID)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}
}

func TestIngest_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{name: "empty", body: "", status: http.StatusBadRequest, code: "empty_body"},
		{name: "whitespace", body: " \n\t ", status: http.StatusBadRequest, code: "empty_body"},
		{name: "invalid", body: `{"a":`, status: http.StatusBadRequest, code: "invalid_json"},
		{name: "trailing garbage", body: `{} {}`, status: http.StatusBadRequest, code: "invalid_json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, svc, _ := newTestHandler(t, 0)
			rec := do(t, h, http.MethodPost, "/hook", tt.body)

			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.code, decodeError(t, rec).Code)

			n, err := svc.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, n, "rejected bodies are not stored")
		})
	}
}

func TestIngest_BodyTooLarge(t *testing.T) {
	h, _, _ := newTestHandler(t, 16)

	rec := do(t, h, http.MethodPost, "/", `{"message":"this is longer than sixteen bytes"}`)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "body_too_large", resp.Code)
	assert.Equal(t, "limit is 16 bytes", resp.Details)
}

// brokenBody fails part way through, like a client that disconnects.
type brokenBody struct{ sent bool }

func (b *brokenBody) Read(p []byte) (int, error) {
	if b.sent {
		return 0, io.ErrUnexpectedEOF
	}
	b.sent = true
	return copy(p, `{"partial":`), nil
}

func TestIngest_ReadFailure(t *testing.T) {
	h, svc, _ := newTestHandler(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/hook", &brokenBody{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "read_failed", resp.Code)
	assert.Contains(t, resp.Details, io.ErrUnexpectedEOF.Error())

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestList(t *testing.T) {
	h, _, clk := newTestHandler(t, 0)
	for i := range 3 {
		do(t, h, http.MethodPost, "/", fmt.Sprintf(`{"n":%d}`, i))
		clk.Advance(time.Second)
	}

	rec := do(t, h, http.MethodGet, "/payloads", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListPayloadsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Payloads, 3)
	assert.Equal(t, "id-3", resp.Payloads[0].ID, "newest first")
	assert.JSONEq(t, `{"n":2}`, string(resp.Payloads[0].Body))

	rec = do(t, h, http.MethodGet, "/payloads?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	resp = ListPayloadsResponse{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Total)
	require.Len(t, resp.Payloads, 1)
	assert.Equal(t, "id-3", resp.Payloads[0].ID)
}

func TestList_EmptyIsArray(t *testing.T) {
	h, _, _ := newTestHandler(t, 0)

	rec := do(t, h, http.MethodGet, "/payloads", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"payloads":[],"total":0}`, rec.Body.String())
}

func TestList_InvalidLimit(t *testing.T) {
	h, _, _ := newTestHandler(t, 0)

	for _, q := range []string{"abc", "-1"} {
		rec := do(t, h, http.MethodGet, "/payloads?limit="+q, "")
		require.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Equal(t, "invalid_limit", decodeError(t, rec).Code)
	}
}

func TestGet(t *testing.T) {
	h, _, _ := newTestHandler(t, 0)
	do(t, h, http.MethodPost, "/gh", `{"action":"opened"}`)

	rec := do(t, h, http.MethodGet, "/payloads/id-1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PayloadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "id-1", resp.ID)
	assert.Equal(t, "/gh", resp.Path)
	assert.True(t, t0.Equal(resp.ReceivedAt))

	rec = do(t, h, http.MethodGet, "/payloads/missing", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestDelete(t *testing.T) {
	h, svc, _ := newTestHandler(t, 0)
	do(t, h, http.MethodPost, "/", `1`)

	rec := do(t, h, http.MethodDelete, "/payloads/id-1", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, err := svc.Get(context.Background(), "id-1")
	require.True(t, payload.IsNotFound(err))

	rec = do(t, h, http.MethodDelete, "/payloads/id-1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Code)
}

func TestClear(t *testing.T) {
	h, svc, _ := newTestHandler(t, 0)
	do(t, h, http.MethodPost, "/", `1`)
	do(t, h, http.MethodPost, "/", `2`)

	rec := do(t, h, http.MethodDelete, "/payloads", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removed":2}`, rec.Body.String())

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestHandler(t, 0)
	do(t, h, http.MethodPost, "/", `{}`)

	rec := do(t, h, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","payloads":1}`, rec.Body.String())
}

func TestUnknownMethodOnIngestPath(t *testing.T) {
	h, _, _ := newTestHandler(t, 0)

	rec := do(t, h, http.MethodPut, "/hook", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
