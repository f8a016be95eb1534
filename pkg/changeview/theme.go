package changeview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/totem-project/totem/pkg/changeset"
)

type Theme struct {
	KeyStyle    lipgloss.Style
	StringStyle lipgloss.Style
	NumberStyle lipgloss.Style
	BoolStyle   lipgloss.Style
	NullStyle   lipgloss.Style

	AddedLine    lipgloss.Style
	RemovedLine  lipgloss.Style
	ModifiedLine lipgloss.Style
}

var DarkTheme = Theme{
	KeyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
	StringStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF")),
	NumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF")),
	BoolStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
	NullStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true),

	AddedLine:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A9DC76")),
	RemovedLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("#E06C75")),
	ModifiedLine: lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
}

// PlainTheme renders without any styling, useful for piped output.
var PlainTheme = Theme{}

func (t Theme) SyntaxHighlight(kind string, content string) string {
	switch kind {
	case "key":
		return t.KeyStyle.Render(content)
	case "string":
		return t.StringStyle.Render(content)
	case "number":
		return t.NumberStyle.Render(content)
	case "bool":
		return t.BoolStyle.Render(content)
	case "null":
		return t.NullStyle.Render(content)
	default:
		return content
	}
}

func (t Theme) MarkHighlight(kind changeset.Kind, content string) string {
	switch kind {
	case changeset.Addition:
		return t.AddedLine.Render(content)
	case changeset.Removal:
		return t.RemovedLine.Render(content)
	case changeset.Modification:
		return t.ModifiedLine.Render(content)
	default:
		return content
	}
}
