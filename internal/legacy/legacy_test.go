package legacy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/dbug/internal/payload"
)

const sample = `[
  ["1700000000000", {"event": "push", "ref": "main"}],
  ["1700000060000", [1, 2, 3]],
  ["not-a-time", "plain string"],
  ["1700000120000"],
  [42, {"bad": "id"}],
  {"not": "a pair"}
]`

func TestParse(t *testing.T) {
	fallback := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)

	records, skipped, err := Parse([]byte(sample), fallback)
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, records, 3)

	assert.Equal(t, "1700000000000", records[0].ID)
	assert.Equal(t, time.UnixMilli(1700000000000).UTC(), records[0].ReceivedAt)
	assert.JSONEq(t, `{"event":"push","ref":"main"}`, string(records[0].Value))

	assert.Equal(t, time.UnixMilli(1700000060000).UTC(), records[1].ReceivedAt)
	assert.JSONEq(t, `[1,2,3]`, string(records[1].Value))

	assert.Equal(t, fallback, records[2].ReceivedAt, "invalid id falls back")
	assert.JSONEq(t, `"plain string"`, string(records[2].Value))
}

func TestParse_Empty(t *testing.T) {
	records, skipped, err := Parse([]byte(`[]`), time.Now())
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Zero(t, skipped)
}

func TestParse_NotAnArray(t *testing.T) {
	_, _, err := Parse([]byte(`{"a":1}`), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing legacy data")
}

func TestLoad_UsesModTimeFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[["x", 1]]`), 0600))
	mtime := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, mtime, mtime))

	records, _, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, mtime.Equal(records[0].ReceivedAt))
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

type mockAdder struct {
	mock.Mock
}

func (m *mockAdder) AddAt(ctx context.Context, path string, body []byte, at time.Time) (*payload.Payload, error) {
	args := m.Called(ctx, path, string(body), at)
	p, _ := args.Get(0).(*payload.Payload)
	return p, args.Error(1)
}

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestImport(t *testing.T) {
	path := writeSample(t, `[["1700000000000", {"a": 1}], ["1700000001000", {"b": 2}], ["bad"]]`)

	adder := &mockAdder{}
	adder.On("AddAt", mock.Anything, ImportPath, `{"a": 1}`, time.UnixMilli(1700000000000).UTC()).
		Return(&payload.Payload{ID: "1"}, nil).Once()
	adder.On("AddAt", mock.Anything, ImportPath, `{"b": 2}`, time.UnixMilli(1700000001000).UTC()).
		Return(nil, payload.ErrInvalidJSON).Once()

	res, err := Import(context.Background(), adder, path)
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 1, Skipped: 2}, res)
	adder.AssertExpectations(t)
}

func TestImport_StoreFailureAborts(t *testing.T) {
	path := writeSample(t, `[["1", 1], ["2", 2]]`)

	adder := &mockAdder{}
	adder.On("AddAt", mock.Anything, ImportPath, "1", mock.Anything).
		Return(nil, errors.New("disk full")).Once()

	res, err := Import(context.Background(), adder, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Zero(t, res.Imported)
	adder.AssertExpectations(t)
}

func TestImport_IntoService(t *testing.T) {
	path := writeSample(t, sample)
	svc := payload.NewService(payload.NewMemoryRepository())
	defer svc.Close()

	res, err := Import(context.Background(), svc, path)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Imported)

	list, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	for _, p := range list {
		assert.Equal(t, ImportPath, p.Path)
	}
}
