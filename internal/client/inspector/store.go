package inspector

import "sync"

// Store holds recorded HTTP exchanges for the inspector UI.
type Store interface {
	Add(exchange HTTPExchange) int64
	List() []HTTPExchange
	Get(id int64) (*HTTPExchange, bool)
	Clear()
}

// InMemoryStore is a bounded, newest-first exchange store.
type InMemoryStore struct {
	mu        sync.RWMutex
	exchanges []HTTPExchange
	capacity  int
	nextID    int64
}

// NewInMemoryStore creates a store keeping at most capacity exchanges.
func NewInMemoryStore(capacity int) *InMemoryStore {
	if capacity <= 0 {
		capacity = 100
	}
	return &InMemoryStore{capacity: capacity, nextID: 1}
}

// Add stores an exchange and returns its assigned id. The oldest
// exchange is dropped once the store is full.
func (s *InMemoryStore) Add(exchange HTTPExchange) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	exchange.ID = s.nextID
	s.nextID++

	s.exchanges = append([]HTTPExchange{exchange}, s.exchanges...)
	if len(s.exchanges) > s.capacity {
		s.exchanges = s.exchanges[:s.capacity]
	}
	return exchange.ID
}

// List returns all stored exchanges, newest first.
func (s *InMemoryStore) List() []HTTPExchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]HTTPExchange, len(s.exchanges))
	copy(out, s.exchanges)
	return out
}

// Get returns the exchange with the given id.
func (s *InMemoryStore) Get(id int64) (*HTTPExchange, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.exchanges {
		if s.exchanges[i].ID == id {
			ex := s.exchanges[i]
			return &ex, true
		}
	}
	return nil, false
}

// Clear drops all stored exchanges.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exchanges = nil
}
