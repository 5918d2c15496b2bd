// Package storage defines the vault file-system abstraction.
package storage

// Provider is the interface for vault file operations.
type Provider interface {
	// Root returns the absolute path of the vault directory.
	Root() string
	// List returns the slash-separated paths (relative to vault root) of every
	// .md file under dir, in walk order, skipping hidden files and directories.
	List(dir string) ([]string, error)
	// Read returns the raw bytes of the file at path (relative to vault root).
	Read(path string) ([]byte, error)
	// Write atomically writes content to path (relative to vault root).
	Write(path string, content []byte) error
}
