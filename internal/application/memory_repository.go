package application

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryRepository struct {
	mu      sync.RWMutex
	storage map[string]Application
}

// NewMemoryRepository builds an in-memory application store for testing. Its
// filter semantics mirror the Postgres repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[string]Application)}
}

func (r *memoryRepository) Create(_ context.Context, app Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage[app.ID] = app
	return nil
}

func (r *memoryRepository) Find(_ context.Context, f Filter) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := []Application{}
	for _, app := range r.storage {
		if matches(app, f) {
			apps = append(apps, app)
		}
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].SubmittedAt.After(apps[j].SubmittedAt)
	})
	return apps, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.storage[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *memoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[id]; !ok {
		return ErrNotFound
	}
	delete(r.storage, id)
	return nil
}

func matches(app Application, f Filter) bool {
	if f.Search != "" && !matchesSearch(app, f.Search) {
		return false
	}
	if f.Gender != "" && app.Gender != f.Gender {
		return false
	}
	if f.LoanCategory != "" && app.LoanCategory != f.LoanCategory {
		return false
	}
	if f.From != nil && app.SubmittedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && app.SubmittedAt.After(*f.To) {
		return false
	}
	return true
}

func matchesSearch(app Application, term string) bool {
	needle := strings.ToLower(term)
	for _, field := range []string{
		app.Name, app.PhoneNumber, app.PrimaryContactNumber, app.Address,
		app.ReferralName1, app.ReferralName2, app.ReferralPhone1, app.ReferralPhone2,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
