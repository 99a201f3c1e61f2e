package command

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/google/uuid"
)

// DefaultPathTemplate matches config.DefaultOutputTemplate.
const DefaultPathTemplate = "{{.Workspace}}_{{.Plugin}}_output-{{.Token}}.xml"

// PathVars are the fields available to an output file name template.
type PathVars struct {
	Workspace string
	Plugin    string
	Token     string
}

// PathTemplate renders output file names under Dir. Every call draws a fresh random
// token, so concurrent scans in one workspace never share a report file.
type PathTemplate struct {
	Dir  string
	tmpl *template.Template // nil for the default name
}

// NewPathTemplate parses text as an output file name template. An empty text selects
// DefaultPathTemplate.
func NewPathTemplate(dir, text string) (*PathTemplate, error) {
	if text == "" || text == DefaultPathTemplate {
		return &PathTemplate{Dir: dir}, nil
	}
	t, err := template.New("output").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse output template: %w", err)
	}
	return &PathTemplate{Dir: dir, tmpl: t}, nil
}

// Next returns a new output path for workspace and plugin.
func (p *PathTemplate) Next(workspace, plugin string) (string, error) {
	if p.tmpl == nil {
		return NewOutputPath(p.Dir, workspace, plugin), nil
	}
	var buf bytes.Buffer
	vars := PathVars{Workspace: workspace, Plugin: plugin, Token: uuid.NewString()}
	if err := p.tmpl.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("failed to render output template: %w", err)
	}
	name := filepath.Base(buf.String())
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("output template produced no file name")
	}
	return filepath.Join(p.Dir, name), nil
}

// NewOutputPath returns <dir>/<workspace>_<plugin>_output-<uuid>.xml. The file always
// lands directly in dir.
func NewOutputPath(dir, workspace, plugin string) string {
	name := fmt.Sprintf("%s_%s_output-%s.xml", workspace, plugin, uuid.NewString())
	return filepath.Join(dir, filepath.Base(name))
}
