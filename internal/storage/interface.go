package storage

// KV is the opaque string blob store the engine persists through. The core
// never depends on the storage medium; anything that can get and set strings
// by key qualifies.
type KV interface {
	// Get returns the value for key and whether it existed.
	Get(key string) (string, bool, error)
	// Set writes the value for key, creating it if needed.
	Set(key, value string) error
	// Path returns the backing file path, used for backups and diagnostics.
	Path() string
	// Close releases the underlying resources.
	Close() error
}
