// Package changeview renders a computed change-set as an indented,
// optionally colored text tree, one line per change.
package changeview

import (
	"strings"

	"github.com/totem-project/totem/pkg/changeset"
)

// RenderOptions controls the text layout.
type RenderOptions struct {
	IndentSize int
}

var DefaultRenderOptions = RenderOptions{
	IndentSize: 2,
}

// Render renders set with the given theme and the default options. It fails
// only when set has not been computed yet.
func Render(set *changeset.Set, theme Theme) (string, error) {
	return RenderWithOptions(set, theme, DefaultRenderOptions)
}

// RenderWithOptions renders set with custom options.
func RenderWithOptions(set *changeset.Set, theme Theme, opts RenderOptions) (string, error) {
	var sb strings.Builder
	if err := renderSet(&sb, set, theme, opts, 0); err != nil {
		return "", err
	}
	return sb.String(), nil
}
