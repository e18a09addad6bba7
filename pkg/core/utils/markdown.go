package utils

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Scenario reports use pipe tables for the inputs section, so validation
// runs with the GFM extensions enabled.
var reportMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

var fenceLabels = []string{"```markdown", "```md", "```"}

// CleanMarkdown unwraps an advisor narrative that arrived as one big code
// block. Model responses frequently come back as ```markdown ... ``` or
// ```md ... ```. The fence is stripped only when it wraps the whole payload,
// so fenced snippets inside a narrative survive.
func CleanMarkdown(input string) string {
	cleaned := strings.TrimSpace(input)

	for _, label := range fenceLabels {
		if len(cleaned) > len(label)+3 &&
			strings.HasPrefix(cleaned, label) && strings.HasSuffix(cleaned, "```") {
			inner := strings.TrimSuffix(strings.TrimPrefix(cleaned, label), "```")
			return strings.TrimSpace(inner)
		}
	}
	return cleaned
}

// ValidateMarkdown reports whether input parses as GFM markdown. The parser
// is permissive; this guards against report-builder bugs producing content
// the parser cannot build a tree for.
func ValidateMarkdown(input string) bool {
	doc := reportMarkdown.Parser().Parse(text.NewReader([]byte(input)))
	return doc != nil
}
