package payload

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a := &Payload{ID: "a", ReceivedAt: epoch, Path: "/", Body: []byte(`1`)}
	b := &Payload{ID: "b", ReceivedAt: epoch, Path: "/", Body: []byte(`2`)}
	c := &Payload{ID: "c", ReceivedAt: epoch.Add(-time.Hour), Path: "/", Body: []byte(`3`)}
	for _, p := range []*Payload{a, b, c} {
		require.NoError(t, repo.Save(ctx, p))
	}
	require.Error(t, repo.Save(ctx, a), "duplicate id")

	list, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a", "c"}, ids(list))

	list[0].Body[0] = 'X'
	got, err := repo.FindByID(ctx, "b")
	require.NoError(t, err)
	require.Equal(t, `2`, string(got.Body), "results are copies")

	list, err = repo.List(ctx, ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "a"}, ids(list))

	require.NoError(t, repo.Delete(ctx, "a"))
	require.True(t, IsNotFound(repo.Delete(ctx, "a")))
	_, err = repo.FindByID(ctx, "a")
	require.True(t, IsNotFound(err))

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func ids(ps []*Payload) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}
