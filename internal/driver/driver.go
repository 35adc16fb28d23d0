package driver

import "context"

// Driver is the interface to a web server's site definition stores
type Driver interface {
	// Name returns the driver name
	Name() string

	// Paths returns the driver's store directories
	Paths() Paths

	// Write creates or replaces the definition of domain in the available store
	Write(domain, content string) error

	// Remove deletes the definition from the available store.
	// It reports whether a file was removed; a missing file is not an error.
	Remove(domain string) (bool, error)

	// Enable adds the enabled-store entry for domain.
	// It reports false when the entry already existed.
	Enable(domain string) (bool, error)

	// Disable removes the enabled-store entry for domain.
	// It reports false when there was no entry.
	Disable(domain string) (bool, error)

	// List scans the available store
	List() ([]Entry, error)

	// Exists checks if a definition is present in the available store
	Exists(domain string) (bool, error)

	// IsEnabled checks if an enabled-store entry is present
	IsEnabled(domain string) (bool, error)

	// Reload asks the running web server to re-read its definitions
	Reload(ctx context.Context) error
}

// Paths contains the web server config directory paths
type Paths struct {
	Available string // config available directory
	Enabled   string // config enabled directory
}

// Entry is one definition found in the available store
type Entry struct {
	Domain  string `json:"domain"`
	File    string `json:"file"`
	Enabled bool   `json:"enabled"`
}
