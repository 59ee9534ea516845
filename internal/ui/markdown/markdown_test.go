package markdown

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestNew_Styles(t *testing.T) {
	for _, style := range []string{"", "dark", "light"} {
		r, err := New(40, style)
		require.NoError(t, err, style)
		require.Equal(t, 40, r.Width())
	}

	_, err := New(40, "neon")
	require.ErrorContains(t, err, "unknown markdown style")
}

func TestRender(t *testing.T) {
	r, err := New(60, "dark")
	require.NoError(t, err)

	out, err := r.Render("# Sending payloads\n\nPOST any JSON body to `http://127.0.0.1:53821/`.")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "Sending payloads")
	require.Contains(t, plain, "http://127.0.0.1:53821/")
}
