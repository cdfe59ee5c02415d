package github

// fallbackColor is the site accent used for languages outside the table.
const fallbackColor = "#6366f1"

// languageColors mirrors the linguist colors for the languages that show up
// in this profile.
var languageColors = map[string]string{
	"JavaScript": "#f1e05a",
	"TypeScript": "#3178c6",
	"Python":     "#3572A5",
	"C++":        "#f34b7d",
	"Java":       "#b07219",
	"PHP":        "#4F5D95",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"Shell":      "#89e051",
}

func languageColor(name string) string {
	if color, ok := languageColors[name]; ok {
		return color
	}
	return fallbackColor
}
