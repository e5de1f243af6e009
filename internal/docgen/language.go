package docgen

import (
	"path/filepath"
	"strings"
)

// languageByExtension maps file extensions to display language names.
var languageByExtension = map[string]string{
	".js":     "JavaScript",
	".jsx":    "JavaScript (React)",
	".ts":     "TypeScript",
	".tsx":    "TypeScript (React)",
	".py":     "Python",
	".java":   "Java",
	".go":     "Go",
	".php":    "PHP",
	".rb":     "Ruby",
	".cs":     "C#",
	".cpp":    "C++",
	".c":      "C",
	".h":      "C/C++ Header",
	".sql":    "SQL",
	".vue":    "Vue.js",
	".svelte": "Svelte",
	".kt":     "Kotlin",
	".rs":     "Rust",
	".swift":  "Swift",
}

// DetectLanguage infers the programming language from a filename's
// extension. Unrecognized extensions report "Unknown".
func DetectLanguage(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if lang, ok := languageByExtension[ext]; ok {
		return lang
	}
	return "Unknown"
}
