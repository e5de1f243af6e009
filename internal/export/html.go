package export

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

const htmlPageHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Exported Documentation</title>
<style>
body {
  font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Oxygen, Ubuntu, Cantarell, 'Open Sans', 'Helvetica Neue', sans-serif;
  line-height: 1.6;
  padding: 2em;
  max-width: 900px;
  margin: 0 auto;
}
pre {
  background-color: #f5f5f5;
  padding: 1em;
  border-radius: 4px;
  overflow-x: auto;
}
code {
  font-family: 'Courier New', Courier, monospace;
}
</style>
</head>
<body>
`

const htmlPageFooter = `</body>
</html>
`

// renderHTML converts markdown to a standalone styled HTML page.
func renderHTML(content string) ([]byte, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(content), &body); err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	var out bytes.Buffer
	out.WriteString(htmlPageHeader)
	out.Write(body.Bytes())
	out.WriteString(htmlPageFooter)
	return out.Bytes(), nil
}
