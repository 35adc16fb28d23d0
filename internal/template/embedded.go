package template

import "embed"

//go:embed apache/*.tmpl site/*.tmpl
var templateFS embed.FS

const (
	vhostTemplate = "apache/vhost.conf.tmpl"
	indexTemplate = "site/index.html.tmpl"
)
