package driver

import (
	"fmt"
	"io"
	"os"
)

// Linker creates the enabled-store entry that activates a definition.
type Linker interface {
	Link(source, target string) error
	Name() string
}

// NewLinker picks the linker for the platform capability detected at startup.
func NewLinker(supportsSymlink bool) Linker {
	if supportsSymlink {
		return SymlinkLinker{}
	}
	return CopyLinker{}
}

// SymlinkLinker activates definitions with symbolic links, as a2ensite does.
type SymlinkLinker struct{}

// Name returns the linker name
func (SymlinkLinker) Name() string { return "symlink" }

// Link creates target as a symlink to source
func (SymlinkLinker) Link(source, target string) error {
	return os.Symlink(source, target)
}

// CopyLinker activates definitions with a plain copy on platforms without symlinks.
type CopyLinker struct{}

// Name returns the linker name
func (CopyLinker) Name() string { return "copy" }

// Link copies source to a new file at target
func (CopyLinker) Link(source, target string) error {
	in, err := os.Open(source)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(target)
		return fmt.Errorf("copy %s: %w", source, err)
	}
	return out.Close()
}
