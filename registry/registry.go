package registry

import (
	"errors"
	"log"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

var ErrNotFound = errors.New("not found")
var ErrAlreadyExists = errors.New("already exists")

type Entry[T any] struct {
	Id        string
	Name      string
	CreatedAt time.Time
	Value     T
}

// Registry keeps named values and the lifecycle status of the process serving
// them.
type Registry[T any] struct {
	mutex   sync.RWMutex
	status  string
	entries map[string]*Entry[T]
	exit    chan struct{}
	once    sync.Once
}

func New[T any]() *Registry[T] {
	return &Registry[T]{
		status:  StatusOpening,
		entries: map[string]*Entry[T]{},
		exit:    make(chan struct{}),
	}
}

func (r *Registry[T]) GetStatus() string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.status
}

func (r *Registry[T]) Create(name string, value T) (*Entry[T], error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.entries[name]; exists {
		return nil, ErrAlreadyExists
	}

	e := &Entry[T]{
		Id:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Value:     value,
	}
	r.entries[name] = e
	return e, nil
}

func (r *Registry[T]) Get(name string) (*Entry[T], error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	e, exists := r.entries[name]
	if !exists {
		return nil, ErrNotFound
	}
	return e, nil
}

// List returns the entries sorted by name.
func (r *Registry[T]) List() []*Entry[T] {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	result := make([]*Entry[T], 0, len(r.entries))
	for _, name := range slices.Sorted(maps.Keys(r.entries)) {
		result = append(result, r.entries[name])
	}
	return result
}

func (r *Registry[T]) Drop(name string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.entries[name]; !exists {
		return ErrNotFound
	}
	delete(r.entries, name)
	return nil
}

// Load marks the registry as operating. Tables are not persisted, so there is
// nothing to read.
func (r *Registry[T]) Load() error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.status == StatusClosing {
		return errors.New("registry is closing")
	}
	r.status = StatusOperating
	return nil
}

// Start loads the registry and blocks until Stop is called.
func (r *Registry[T]) Start() error {
	t0 := time.Now()
	err := r.Load()
	if err != nil {
		return err
	}
	log.Println("registry operating in", time.Since(t0))

	<-r.exit

	return nil
}

func (r *Registry[T]) Stop() error {
	r.mutex.Lock()
	r.status = StatusClosing
	n := len(r.entries)
	r.mutex.Unlock()

	log.Printf("closing registry with %d tables\n", n)
	r.once.Do(func() {
		close(r.exit)
	})
	return nil
}
