package changeview

import (
	"fmt"
	"strings"

	"github.com/totem-project/totem/pkg/changeset"
)

func renderSet(sb *strings.Builder, set *changeset.Set, theme Theme, opts RenderOptions, indent int) error {
	all, err := set.All()
	if err != nil {
		return err
	}

	space := strings.Repeat(" ", indent*opts.IndentSize)
	for key, change := range all {
		keyStr := theme.SyntaxHighlight("key", key)

		switch change.Kind() {
		case changeset.Addition:
			line := fmt.Sprintf("+ %s: %s", keyStr, renderValue(change.New(), theme))
			sb.WriteString(space + theme.MarkHighlight(changeset.Addition, line) + "\n")

		case changeset.Removal:
			line := fmt.Sprintf("- %s: %s", keyStr, renderValue(change.Old(), theme))
			sb.WriteString(space + theme.MarkHighlight(changeset.Removal, line) + "\n")

		case changeset.Modification:
			line := fmt.Sprintf("~ %s: %s -> %s",
				keyStr, renderValue(change.Old(), theme), renderValue(change.New(), theme))
			sb.WriteString(space + theme.MarkHighlight(changeset.Modification, line) + "\n")

		case changeset.NestedSet:
			sb.WriteString(space + "  " + keyStr + ":\n")
			// nested sets are always computed, so this cannot fail
			if err := renderSet(sb, change.Nested(), theme, opts, indent+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func renderValue(v any, theme Theme) string {
	switch t := v.(type) {
	case nil:
		return theme.SyntaxHighlight("null", "null")
	case string:
		return theme.SyntaxHighlight("string", fmt.Sprintf("%q", t))
	case bool:
		return theme.SyntaxHighlight("bool", fmt.Sprintf("%v", t))
	case int, int64, float64, uint, uint64:
		return theme.SyntaxHighlight("number", fmt.Sprintf("%v", t))
	default:
		return fmt.Sprintf("%v", t)
	}
}
