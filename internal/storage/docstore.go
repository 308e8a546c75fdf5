package storage

import "errors"

var (
	// ErrNotExist is returned by Get when the key is absent.
	ErrNotExist = errors.New("storage: document does not exist")
	// ErrBadKey is returned when a key would escape the collection.
	ErrBadKey = errors.New("storage: invalid key")
)

// DocStore is a key-value surface over named document collections. Values are
// opaque serialized documents; the store never inspects them.
type DocStore interface {
	Put(namespace, key string, doc []byte) error
	Get(namespace, key string) ([]byte, error)
	List(namespace string) ([][]byte, error)
}
