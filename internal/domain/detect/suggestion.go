package detect

import "github.com/locaudit/locaudit/internal/domain"

var tableTags = map[string]bool{
	"table": true, "thead": true, "tbody": true, "tfoot": true,
	"tr": true, "td": true, "th": true,
}

var controlTags = map[string]bool{
	"button": true, "a": true, "label": true, "select": true,
}

// Suggest returns advisory fix text for an overflow direction and tag.
func Suggest(direction, tag string) string {
	if tableTags[tag] {
		return "Wrap the table in a container with overflow-x: auto so long translations scroll instead of breaking the layout."
	}

	switch direction {
	case domain.DirectionHorizontal:
		if controlTags[tag] {
			return "Replace the fixed width with min-width and horizontal padding so the control grows with its label."
		}
		return "Allow the text to wrap (remove white-space: nowrap or the fixed width), or truncate with text-overflow: ellipsis and a title attribute."
	case domain.DirectionVertical:
		return "Clamp long text with -webkit-line-clamp, or give the container overflow-y: auto instead of a fixed height."
	case domain.DirectionBoth:
		if controlTags[tag] {
			return "Remove the fixed width and height on the control and size it with min-width and padding."
		}
		return "Avoid fixing both width and height; let the container size to its content or use min-height and min-width."
	}
	return ""
}
