// Package driver manages Apache site definitions on disk.
//
// A site is a "<domain>.conf" file in the available store. It is active
// while an entry with the same name exists in the enabled store. Entries
// are symlinks where the platform allows them and plain copies elsewhere;
// the Linker is chosen once at startup from platform.SupportsSymlink.
//
// # Basic Usage
//
//	drv := driver.NewApache(
//	    driver.Paths{Available: "/etc/apache2/sites-available", Enabled: "/etc/apache2/sites-enabled"},
//	    []string{"sudo", "systemctl", "reload", "apache2"},
//	    driver.WithLinker(driver.NewLinker(platform.SupportsSymlink(enabledDir))),
//	)
//
//	changed, err := drv.Enable("example.com")
//
// Every path is resolved through domain.Within, so a name that would leave
// its store is rejected before the filesystem is touched.
//
// # Testing
//
// WithExecutor swaps the command runner used by Reload, and MockDriver
// records calls for code that depends on the Driver interface.
package driver
