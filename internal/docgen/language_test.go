package docgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"app.js":        "JavaScript",
		"App.jsx":       "JavaScript (React)",
		"index.ts":      "TypeScript",
		"Page.tsx":      "TypeScript (React)",
		"main.PY":       "Python",
		"Server.java":   "Java",
		"main.go":       "Go",
		"schema.sql":    "SQL",
		"widget.vue":    "Vue.js",
		"card.svelte":   "Svelte",
		"program.cs":    "C#",
		"engine.cpp":    "C++",
		"kernel.c":      "C",
		"script.rb":     "Ruby",
		"index.php":     "PHP",
		"Main.kt":       "Kotlin",
		"lib.rs":        "Rust",
		"View.swift":    "Swift",
		"defs.h":        "C/C++ Header",
		"mystery.xyz":   "Unknown",
		"noextension":   "Unknown",
		"archive.tar.c": "C",
	}
	for filename, want := range cases {
		assert.Equal(t, want, DetectLanguage(filename), filename)
	}
}
