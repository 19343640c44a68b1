package cart

import "sync"

// Latch admits one in-flight operation per key. A second Acquire on a held
// key fails instead of waiting.
type Latch struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLatch creates an empty latch.
func NewLatch() *Latch {
	return &Latch{held: make(map[string]struct{})}
}

// Acquire takes key. When ok is false the key is already held and release is
// nil. The returned release is idempotent.
func (l *Latch) Acquire(key string) (release func(), ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[key]; busy {
		return nil, false
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, true
}

// Held reports whether key is currently held.
func (l *Latch) Held(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.held[key]
	return ok
}
