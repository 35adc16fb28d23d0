// Package site is the repository of Apache sites managed by the panel.
//
// The file system is the database: every call re-scans the available and
// enabled stores through a driver.Driver, and nothing is cached between
// calls. A site is made of three things on disk:
//
//   - <available>/<domain>.conf, the rendered VirtualHost definition
//   - <enabled>/<domain>.conf, present only while the site is active
//   - <web root>/<domain>/index.html, the placeholder document root
//
// Mutating operations return a Result that keeps the outcome of the
// definition change apart from the outcome of the web server reload that
// follows it. Whether a failed reload fails the operation is decided by
// WithStrictReload.
//
// No locking is done around the stores. Two concurrent calls for the same
// domain race at the file-system level.
package site
