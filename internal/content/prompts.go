package content

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var prompts = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

// promptData is the union of fields referenced by the prompt templates.
type promptData struct {
	Language string
	Code     string

	Word     string
	NotFound string
	Topic    string
	Scenario string
	Prompt   string
	Text     string

	QuestionInLanguage string
	QuestionEnglish    string

	Kind  string
	Avoid []string

	Count   int
	Options int
}

// renderPrompt executes the named template (file name without extension).
func renderPrompt(name string, data promptData) (string, error) {
	var buf bytes.Buffer
	if err := prompts.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template %s: %w", name, err)
	}
	return buf.String(), nil
}
