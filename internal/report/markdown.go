package report

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

var markdownFuncs = template.FuncMap{
	"cell": func(s string) string {
		s = strings.ReplaceAll(s, "|", `\|`)
		return strings.ReplaceAll(s, "\n", "<br>")
	},
}

var markdownTemplate = template.Must(template.New("diary").Funcs(markdownFuncs).Parse(`# Internship Diary: {{.Label}}

**FOR THE WEEK ENDING Sunday: {{.WeekEnding}}**
{{if .TrainingMode}}
Training mode: {{.TrainingMode}}
{{end}}
| Day | Date | Description |
|-----|------|-------------|
{{range .Days}}| {{.Weekday}} | {{.Date}} | {{cell .Description}} |
{{end}}
## Notes

{{if .Notes}}{{.Notes}}{{else}}None{{end}}
{{if .Leave}}
## Leave
{{range .Leave}}
- {{.Date}}: {{if .Reason}}{{.Reason}}{{else}}no reason given{{end}}{{end}}
{{end}}
## Signatures

| | Student | Supervisor |
|---|---|---|
| Designation | {{.Designations.Student}} | {{.Designations.Supervisor}} |
| Signature | {{with .Signatures.Student}}![student signature]({{.}}){{end}} | {{with .Signatures.Supervisor}}![supervisor signature]({{.}}){{end}} |
`))

// MarkdownRenderer writes the diary as a Markdown document.
type MarkdownRenderer struct{}

func NewMarkdownRenderer() *MarkdownRenderer { return &MarkdownRenderer{} }

func (MarkdownRenderer) Render(ctx context.Context, r WeeklyReport, outputPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := markdownTemplate.Execute(&buf, r); err != nil {
		return fmt.Errorf("rendering diary: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing diary: %w", err)
	}
	return nil
}
