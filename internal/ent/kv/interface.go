package kv

// KeyVal is a persistent key-value cache.
type KeyVal interface {
	// Open opens the key-value store.
	Open() error

	// Close closes the key-value store.
	Close() error

	// GetValue returns the value for a key, or nil when the key is
	// not in the store.
	GetValue(key []byte) ([]byte, error)

	// SetValue stores a key-value pair.
	SetValue(key, val []byte) error
}
