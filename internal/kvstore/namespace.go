package kvstore

import "context"

// Namespaced prefixes every key before delegating to the wrapped Storage.
// Closing a Namespaced store does not close the wrapped backend.
type Namespaced struct {
	inner  Storage
	prefix string
}

// Namespace returns a view of inner whose keys all start with prefix.
func Namespace(inner Storage, prefix string) *Namespaced {
	return &Namespaced{inner: inner, prefix: prefix}
}

// Prefix returns the namespace prefix.
func (n *Namespaced) Prefix() string {
	return n.prefix
}

// Get retrieves a value from the namespace.
func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

// Set stores a value in the namespace.
func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.inner.Set(ctx, n.prefix+key, value)
}

// Delete removes a key from the namespace.
func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

// Close is a no-op; the wrapped backend is owned by the caller.
func (n *Namespaced) Close() error {
	return nil
}
