package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/dbug/internal/payload"
)

var base = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func samplePayload(id string, offsetSec int) *payload.Payload {
	return &payload.Payload{
		ID:         id,
		ReceivedAt: base.Add(time.Duration(offsetSec) * time.Second),
		Path:       "/hooks/" + id,
		Body:       []byte(fmt.Sprintf(`{"id":%q,"nested":{"n":[1,2,3]}}`, id)),
	}
}

func TestPayloadRepository_SaveFind(t *testing.T) {
	repo := newTestDB(t).PayloadRepository()
	ctx := context.Background()

	p := samplePayload("abc", 5)
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.FindByID(ctx, "abc")
	require.NoError(t, err)
	require.Equal(t, p, got)

	_, err = repo.FindByID(ctx, "missing")
	require.True(t, payload.IsNotFound(err))

	require.Error(t, repo.Save(ctx, p), "duplicate id violates UNIQUE")
}

func TestPayloadRepository_PreservesKeyOrder(t *testing.T) {
	repo := newTestDB(t).PayloadRepository()
	ctx := context.Background()

	p := &payload.Payload{ID: "o", ReceivedAt: base, Path: "/", Body: []byte(`{"z":1,"a":2,"m":{"y":true,"b":null}}`)}
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.FindByID(ctx, "o")
	require.NoError(t, err)
	require.Equal(t, string(p.Body), string(got.Body))
}

func TestPayloadRepository_ListOrderAndLimit(t *testing.T) {
	repo := newTestDB(t).PayloadRepository()
	ctx := context.Background()

	for _, p := range []*payload.Payload{
		samplePayload("old", 0),
		samplePayload("tie-1", 10),
		samplePayload("tie-2", 10),
		samplePayload("new", 20),
	} {
		require.NoError(t, repo.Save(ctx, p))
	}

	all, err := repo.List(ctx, payload.ListFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"new", "tie-2", "tie-1", "old"}, payloadIDs(all))

	top, err := repo.List(ctx, payload.ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"new", "tie-2"}, payloadIDs(top))
}

func TestPayloadRepository_DeleteAndClear(t *testing.T) {
	repo := newTestDB(t).PayloadRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, samplePayload("a", 0)))
	require.NoError(t, repo.Save(ctx, samplePayload("b", 1)))

	require.NoError(t, repo.Delete(ctx, "a"))
	require.True(t, payload.IsNotFound(repo.Delete(ctx, "a")))

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	list, err := repo.List(ctx, payload.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestPayloadRepository_ListIsNewestFirst(t *testing.T) {
	db, err := NewDB(filepath.Join(t.TempDir(), "prop.db"))
	require.NoError(t, err)
	defer db.Close()
	repo := db.PayloadRepository()

	rapid.Check(t, func(r *rapid.T) {
		ctx := context.Background()
		if _, err := repo.DeleteAll(ctx); err != nil {
			r.Fatalf("DeleteAll: %v", err)
		}

		offsets := rapid.SliceOfN(rapid.IntRange(0, 50), 1, 20).Draw(r, "offsets")
		for i, off := range offsets {
			if err := repo.Save(ctx, samplePayload(fmt.Sprintf("p%d", i), off)); err != nil {
				r.Fatalf("Save: %v", err)
			}
		}

		list, err := repo.List(ctx, payload.ListFilter{})
		if err != nil {
			r.Fatalf("List: %v", err)
		}
		if len(list) != len(offsets) {
			r.Fatalf("listed %d of %d payloads", len(list), len(offsets))
		}
		sorted := sort.SliceIsSorted(list, func(i, j int) bool {
			return list[i].ReceivedAt.After(list[j].ReceivedAt)
		})
		if !sorted {
			r.Fatalf("payloads not newest first: %v", payloadIDs(list))
		}
	})
}

func payloadIDs(ps []*payload.Payload) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
