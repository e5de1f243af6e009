package docgen

import "fmt"

// PromptStyle selects between the two documentation prompt templates.
type PromptStyle string

const (
	// StyleStandard is the default template used for first-time generation.
	StyleStandard PromptStyle = "standard"
	// StyleAlternative is a question-driven template used to regenerate a
	// document with a different angle.
	StyleAlternative PromptStyle = "alternative"
)

const standardPromptTemplate = `Generate comprehensive technical documentation for the following code file:

Filename: %s

Code:
` + "```" + `
%s
` + "```" + `

Please include:
- Overview and purpose
- Key functionality
- Architecture and design decisions
- Usage examples
- Error handling and edge cases
- Integration notes
- Maintenance tips

Format your response in Markdown.`

const alternativePromptTemplate = `As a technical documentation specialist, create detailed documentation for this code file:

FILENAME: %s
CODE:
` + "```" + `
%s
` + "```" + `

Focus on creating documentation that answers these key questions:
1. What problem does this code solve?
2. How does it solve the problem (architecture/approach)?
3. What are the key components and how do they interact?
4. What are the inputs, outputs, and side effects?
5. What could go wrong and how is it handled?
6. How would someone use/integrate this code?
7. What should developers know for maintenance?

Structure your response as a comprehensive technical reference document with:
- Executive summary
- Detailed technical analysis
- Usage examples with real code
- Troubleshooting guide
- Integration notes

Be specific and avoid generic statements. Use actual function names, variables, and logic from the code.`

// BuildPrompt renders the prompt for the given source file and style.
// Unknown styles fall back to the standard template.
func BuildPrompt(style PromptStyle, filename, content string) string {
	if style == StyleAlternative {
		return fmt.Sprintf(alternativePromptTemplate, filename, content)
	}
	return fmt.Sprintf(standardPromptTemplate, filename, content)
}
