package template

import (
	"bytes"
	"fmt"
	"strings"
	texttemplate "text/template"
)

// DefaultPort is the plain-HTTP port every generated virtual host listens on.
const DefaultPort = 80

// DefaultPanelName is shown on generated placeholder pages.
const DefaultPanelName = "vhostpanel"

// VHostData contains data for rendering a virtual host definition
type VHostData struct {
	Domain       string
	Email        string
	DocumentRoot string
	Port         int
}

// IndexData contains data for rendering the placeholder index page
type IndexData struct {
	Domain    string
	PanelName string
}

var (
	vhostTmpl = mustParse(vhostTemplate)
	indexTmpl = mustParse(indexTemplate)
)

func mustParse(name string) *texttemplate.Template {
	content, err := templateFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("template: missing embedded %s: %v", name, err))
	}
	return texttemplate.Must(texttemplate.New(name).Parse(string(content)))
}

// RenderVHost renders the Apache virtual host definition.
// The ${APACHE_LOG_DIR} token is emitted literally for Apache to expand.
func RenderVHost(data VHostData) (string, error) {
	if data.Port == 0 {
		data.Port = DefaultPort
	}
	if strings.ContainsAny(data.Email+data.DocumentRoot, "\r\n") {
		return "", fmt.Errorf("template values must be single-line")
	}
	return execute(vhostTmpl, data)
}

// RenderIndex renders the placeholder document placed in a new document root.
func RenderIndex(data IndexData) (string, error) {
	if data.PanelName == "" {
		data.PanelName = DefaultPanelName
	}
	out, err := execute(indexTmpl, data)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

func execute(tmpl *texttemplate.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
