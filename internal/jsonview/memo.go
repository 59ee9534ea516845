package jsonview

import (
	"context"
	"time"

	"github.com/zjrosen/dbug/internal/cachemanager"
	"github.com/zjrosen/dbug/internal/log"
)

const lineCacheTTL = 10 * time.Minute

type lineInput struct {
	text  string
	theme Theme
}

// Renderer is Render with the colored tokens of each distinct line text
// memoized per theme. Its output is identical to Render. Returned token
// slices are shared between calls and must not be modified.
type Renderer struct {
	lines *cachemanager.ReadThroughCache[string, []ColoredToken, lineInput]
}

// NewRenderer memoizes into cache. A nil cache disables memoization.
func NewRenderer(cache cachemanager.CacheManager[string, []ColoredToken]) *Renderer {
	fn := func(_ context.Context, in lineInput) ([]ColoredToken, error) {
		return colorize(Tokenize(in.text), in.theme), nil
	}
	return &Renderer{
		lines: cachemanager.NewReadThroughCache(cache, fn, cache == nil),
	}
}

func lineKey(theme Theme, trimmed string) string {
	return theme.Name() + "\x00" + trimmed
}

// Render is safe for concurrent use when the underlying cache is.
func (r *Renderer) Render(doc Document, collapsed *CollapsedSet, theme Theme) []RenderLine {
	ctx := context.Background()
	return render(doc, collapsed, func(trimmed string) []ColoredToken {
		toks, err := r.lines.GetWithRefresh(ctx, lineKey(theme, trimmed), lineInput{text: trimmed, theme: theme}, lineCacheTTL)
		if err != nil {
			log.ErrorErr(log.CatRender, "line colorization failed", err)
			return colorize(Tokenize(trimmed), theme)
		}
		return toks
	})
}
