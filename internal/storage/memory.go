package storage

// MemoryStore is a process-local KV. Nothing survives exit; it backs tests and
// the "memory" backend for throwaway sessions.
type MemoryStore struct {
	values map[string][]byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

// Get implements KV.
func (m *MemoryStore) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put implements KV.
func (m *MemoryStore) Put(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Delete implements KV.
func (m *MemoryStore) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	delete(m.values, key)
	return nil
}

// Close implements KV.
func (m *MemoryStore) Close() error {
	return nil
}
