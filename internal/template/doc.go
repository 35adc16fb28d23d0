// Package template renders the files a new site is created with, from
// templates embedded in the binary.
//
//	apache/vhost.conf.tmpl  virtual host definition written to sites-available
//	site/index.html.tmpl    placeholder page written to the document root
//
// Rendering a definition:
//
//	conf, err := template.RenderVHost(template.VHostData{
//	    Domain:       "example.com",
//	    Email:        "admin@example.com",
//	    DocumentRoot: "/var/www/html/example.com",
//	})
//
// Inputs are expected to be validated by the caller (see package domain);
// RenderVHost only refuses values that would break the line structure.
package template
