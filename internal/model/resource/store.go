package resource

// Store exposes library retrieval for HTTP handlers.
type Store interface {
	List() []Resource
	ListByCategory(category Category) []Resource
	FindByID(id string) (Resource, bool)
}

// MemoryStore implements Store with an in-memory slice; the library is static
// product content.
type MemoryStore struct {
	items []Resource
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied resources.
func NewMemoryStore(items []Resource) *MemoryStore {
	return &MemoryStore{items: append([]Resource(nil), items...)}
}

// List returns every library entry.
func (s *MemoryStore) List() []Resource {
	return append([]Resource(nil), s.items...)
}

// ListByCategory returns the entries matching one category.
func (s *MemoryStore) ListByCategory(category Category) []Resource {
	filtered := make([]Resource, 0, len(s.items))
	for _, item := range s.items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// FindByID looks up a library entry by identifier.
func (s *MemoryStore) FindByID(id string) (Resource, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Resource{}, false
}
