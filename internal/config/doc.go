// Package config builds the panel configuration once at startup.
//
// A single Config value selects between real system paths and commands
// (production) and a local sandbox (development), and is passed explicitly
// to every component. Nothing in the module reads configuration from
// package-level state.
//
// # Sources
//
// Values are merged in order of increasing precedence:
//   - mode defaults (see New)
//   - the YAML file, by default ~/.config/vhostpanel/config.yaml
//   - dotenv files (.env in the working directory)
//   - the process environment
//
// Example config.yaml:
//
//	mode: production
//	addr: 127.0.0.1:5000
//	secret_key: change-me-to-a-long-random-string-please
//	paths:
//	  available: /etc/apache2/sites-available
//	  enabled: /etc/apache2/sites-enabled
//	  logs: /var/log/apache2
//	  web_root: /var/www/html
//	reload_command: sudo systemctl reload apache2
//	certbot_command: sudo certbot --apache
//	certbot_timeout: 5m
//	strict_reload: false
//
// # Environment
//
//	APP_MODE               production | development
//	SECRET_KEY             cookie secret, >= 32 characters
//	PANEL_ADDR             listen address
//	PANEL_SANDBOX_DIR      development sandbox root (default ./mock_fs)
//	PANEL_SITES_AVAILABLE  PANEL_SITES_ENABLED  PANEL_LOG_DIR  PANEL_WEB_ROOT
//	PANEL_RELOAD_CMD       PANEL_CERTBOT_CMD
//	PANEL_RELOAD_TIMEOUT   PANEL_CERTBOT_TIMEOUT
//	PANEL_STRICT_RELOAD    PANEL_LOG_LINES  PANEL_VERBOSE
//
// Commands are configured as strings and split into argument vectors with
// shell quoting rules; they are never run through a shell.
package config
