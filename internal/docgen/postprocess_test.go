package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostProcess_CollapsesBlankLines(t *testing.T) {
	got := PostProcess("# hello.py\n\n\n\n\nBody", "hello.py")
	assert.Equal(t, "# hello.py\n\nBody", got)
}

func TestPostProcess_ClampsHeadingDepth(t *testing.T) {
	got := PostProcess("# hello.py\n\n#### Deep\n\n##### Deeper", "hello.py")
	assert.Equal(t, "# hello.py\n\n### Deep\n\n### Deeper", got)
}

func TestPostProcess_PrependsTitleWhenFilenameMissing(t *testing.T) {
	got := PostProcess("Some documentation body", "hello.py")
	assert.Equal(t, "# hello.py Documentation\n\nSome documentation body", got)
}

func TestPostProcess_NoTitleWhenFilenamePresent(t *testing.T) {
	got := PostProcess("# Documentation for hello.py\n\nBody", "hello.py")
	assert.Equal(t, "# Documentation for hello.py\n\nBody", got)
}

func TestPostProcess_FixesBoldAndCodeSpacing(t *testing.T) {
	got := PostProcess("# a.py\n\n** bold ** and ` code `", "a.py")
	assert.Equal(t, "# a.py\n\n**bold** and `code`", got)
}

func TestPostProcess_SpacingFixesKeepProseBetweenSpans(t *testing.T) {
	got := PostProcess("# a.py\n\nuse `foo` and `bar` here, **a** or **b**", "a.py")
	assert.Equal(t, "# a.py\n\nuse `foo` and `bar` here, **a** or **b**", got)
}

func TestPostProcess_SpacingFixesKeepNewlines(t *testing.T) {
	got := PostProcess("# a.py\n\n```\ncode\n```\n\n**bold**", "a.py")
	assert.Equal(t, "# a.py\n\n```\ncode\n```\n\n**bold**", got)
}

func TestPostProcess_ReplacesPlaceholders(t *testing.T) {
	got := PostProcess("# a.py\n\n[Placeholder] then [placeholder]\n[TODO] and [todo]", "a.py")
	assert.Equal(t, "# a.py\n\n[Details from code analysis] then [Details from code analysis]\n[Implementation specific] and [Implementation specific]", got)
}

func TestPostProcess_Idempotent(t *testing.T) {
	inputs := []string{
		"Some documentation body",
		"# hello.py\n\n\n\n#### Deep\n\n** bold ** ` code ` [Placeholder] [TODO]",
		"   \n\n# hello.py\n\nBody\n\n\n",
	}
	for _, in := range inputs {
		once := PostProcess(in, "hello.py")
		twice := PostProcess(once, "hello.py")
		assert.Equal(t, once, twice)
	}
}
