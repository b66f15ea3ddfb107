package bulk

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
	"github.com/thomasdelmas/Ecommerce-sub000/store"
)

var errBoom = errors.New("store unavailable")

// fakeStore is an in-memory gateway that records every call.
type fakeStore[E any] struct {
	mu sync.Mutex

	key    func(E) string
	id     func(E) string
	assign func(E)

	records map[string]E

	// undeletable ids survive DeleteManyByIDs
	undeletable map[string]bool
	// report overrides the DeleteReport returned by DeleteManyByIDs
	report *store.DeleteReport

	// createShort drops this many records from the CreateMany reply
	createShort int

	findErr       error
	createErr     error
	findManyErr   error
	deleteErr     error
	verifyErr     error
	findCalls     int
	createCalls   [][]E
	findManyCalls int
	deleteCalls   [][]string
}

func newProductStore() *fakeStore[*entity.Product] {
	return &fakeStore[*entity.Product]{
		key:         func(p *entity.Product) string { return p.Name },
		id:          func(p *entity.Product) string { return p.ID.String() },
		assign:      func(p *entity.Product) { p.ID = uuid.New() },
		records:     make(map[string]*entity.Product),
		undeletable: make(map[string]bool),
	}
}

func newUserStore() *fakeStore[*entity.User] {
	return &fakeStore[*entity.User]{
		key:         func(u *entity.User) string { return u.Username },
		id:          func(u *entity.User) string { return u.ID.String() },
		assign:      func(u *entity.User) { u.ID = uuid.New() },
		records:     make(map[string]*entity.User),
		undeletable: make(map[string]bool),
	}
}

func (f *fakeStore[E]) put(record E) E {
	f.assign(record)
	f.records[strings.ToLower(f.id(record))] = record
	return record
}

func seedProducts(f *fakeStore[*entity.Product], names ...string) []*entity.Product {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Product, 0, len(names))
	for _, name := range names {
		out = append(out, f.put(&entity.Product{Name: name, Currency: entity.DefaultCurrency}))
	}
	return out
}

func (f *fakeStore[E]) FindByUniqueField(ctx context.Context, value string) (E, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++

	var zero E
	if f.findErr != nil {
		return zero, false, f.findErr
	}
	for _, record := range f.records {
		if f.key(record) == value {
			return record, true, nil
		}
	}
	return zero, false, nil
}

func (f *fakeStore[E]) CreateMany(ctx context.Context, records []E) ([]E, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, append([]E(nil), records...))

	if f.createErr != nil {
		return nil, f.createErr
	}
	out := make([]E, 0, len(records))
	for _, record := range records {
		out = append(out, f.put(record))
	}
	return out[:max(len(out)-f.createShort, 0)], nil
}

func (f *fakeStore[E]) FindManyByIDs(ctx context.Context, ids []string) ([]E, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findManyCalls++

	if f.findManyErr != nil {
		return nil, f.findManyErr
	}
	if f.findManyCalls > 1 && f.verifyErr != nil {
		return nil, f.verifyErr
	}

	var out []E
	seen := make(map[string]bool)
	for _, id := range ids {
		key := strings.ToLower(id)
		if seen[key] {
			continue
		}
		seen[key] = true
		if record, ok := f.records[key]; ok {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeStore[E]) DeleteManyByIDs(ctx context.Context, ids []string) (store.DeleteReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, append([]string(nil), ids...))

	if f.deleteErr != nil {
		return store.DeleteReport{}, f.deleteErr
	}

	deleted := 0
	for _, id := range ids {
		key := strings.ToLower(id)
		if _, ok := f.records[key]; !ok || f.undeletable[key] {
			continue
		}
		delete(f.records, key)
		deleted++
	}

	if f.report != nil {
		return *f.report, nil
	}
	return store.DeleteReport{Acknowledged: true, DeletedCount: deleted}, nil
}

func (f *fakeStore[E]) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) {
	return "", errors.New("hasher exhausted")
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "plain:" + password, nil
}
