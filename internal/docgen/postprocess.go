package docgen

import (
	"regexp"
	"strings"
)

var (
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
	deepHeadings     = regexp.MustCompile(`(?m)^#{4,}`)
	boldSpanSpace    = regexp.MustCompile(`\*\*[ \t]*([^*\n]+?)[ \t]*\*\*`)
	codeSpanSpace    = regexp.MustCompile("`[ \t]*([^`\n]+?)[ \t]*`")
	placeholderMark  = regexp.MustCompile(`(?i)\[placeholder\]`)
	todoMark         = regexp.MustCompile(`(?i)\[todo\]`)
)

// PostProcess normalizes raw model output into publishable markdown.
// It is idempotent: applying it to its own output changes nothing.
func PostProcess(content, filename string) string {
	processed := strings.TrimSpace(content)

	// Collapse runs of blank lines.
	processed = excessBlankLines.ReplaceAllString(processed, "\n\n")

	// Markdown only has three useful heading levels here.
	processed = deepHeadings.ReplaceAllString(processed, "###")

	if !strings.Contains(processed, filename) {
		processed = "# " + filename + " Documentation\n\n" + processed
	}

	// Trim padding inside delimiter pairs only; spacing between spans is
	// regular prose and stays untouched.
	processed = boldSpanSpace.ReplaceAllString(processed, "**$1**")
	processed = codeSpanSpace.ReplaceAllString(processed, "`$1`")
	processed = placeholderMark.ReplaceAllString(processed, "[Details from code analysis]")
	processed = todoMark.ReplaceAllString(processed, "[Implementation specific]")

	return processed
}
