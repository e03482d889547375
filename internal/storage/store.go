// Package storage provides the key/value persistence layer: a narrow
// Store interface with swappable backends and typed codecs for each
// persisted record kind.
package storage

// Store is the narrow key/value interface every backend implements.
// Values are opaque byte payloads; the Records layer owns encoding.
type Store interface {
	// Get returns the value for key, with found=false for a missing key.
	Get(key string) (value []byte, found bool, err error)
	// Set writes the value for key, overwriting any previous value.
	Set(key string, value []byte) error
	// Remove deletes the key. Removing a missing key is not an error.
	Remove(key string) error
	// Has reports whether the key exists.
	Has(key string) (bool, error)
}
