package models

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/JovanaT99/eventsApp/predicate"
)

// In-memory repositories. They back STORE=memory for local runs and the
// handler tests; each one is safe for concurrent use.

type MemoryEventRepo struct {
	mu    sync.RWMutex
	order []string
	items map[string]Event
}

func NewMemoryEventRepository() *MemoryEventRepo {
	return &MemoryEventRepo{items: make(map[string]Event)}
}

func (m *MemoryEventRepo) Find(_ context.Context, p predicate.Predicate) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []Event{}
	for _, id := range m.order {
		if e := m.items[id]; predicate.Match(p, e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MemoryEventRepo) GetByID(_ context.Context, id string) (Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.items[id]
	if !ok {
		return Event{}, ErrNotFound
	}
	return e, nil
}

func (m *MemoryEventRepo) Create(_ context.Context, e *Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.items[e.ID]; ok {
		return ErrDuplicate
	}
	if e.Geo == nil {
		e.Geo = NewGeoPoint(e.Lat, e.Lng)
	}
	m.items[e.ID] = *e
	m.order = append(m.order, e.ID)
	return nil
}

func (m *MemoryEventRepo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

type MemoryUserRepo struct {
	mu    sync.RWMutex
	users []User
}

func NewMemoryUserRepository() *MemoryUserRepo { return &MemoryUserRepo{} }

func (m *MemoryUserRepo) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrDuplicate
		}
	}
	u.ID = int64(len(m.users) + 1)
	m.users = append(m.users, *u)
	return nil
}

func (m *MemoryUserRepo) GetByID(_ context.Context, id int64) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (m *MemoryUserRepo) GetByEmail(_ context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

type MemoryCategoryRepo struct {
	mu   sync.RWMutex
	cats []Category
}

func NewMemoryCategoryRepository() *MemoryCategoryRepo { return &MemoryCategoryRepo{} }

func (m *MemoryCategoryRepo) Create(_ context.Context, c *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	c.ID = int64(len(m.cats) + 1)
	m.cats = append(m.cats, *c)
	return nil
}

func (m *MemoryCategoryRepo) GetByID(_ context.Context, id int64) (Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.cats {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

type attendanceKey struct {
	eventID string
	userID  int64
}

type MemoryAttendanceRepo struct {
	mu   sync.Mutex
	rows map[attendanceKey]EventAttendance
}

func NewMemoryAttendanceRepository() *MemoryAttendanceRepo {
	return &MemoryAttendanceRepo{rows: make(map[attendanceKey]EventAttendance)}
}

func (m *MemoryAttendanceRepo) Upsert(_ context.Context, a EventAttendance) (EventAttendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows[attendanceKey{a.EventID, a.UserID}] = a
	return a, nil
}

func (m *MemoryAttendanceRepo) Get(_ context.Context, eventID string, userID int64) (EventAttendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.rows[attendanceKey{eventID, userID}]
	if !ok {
		return EventAttendance{}, ErrNotFound
	}
	return a, nil
}

func (m *MemoryAttendanceRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type MemoryMessageRepo struct {
	mu   sync.Mutex
	msgs []EventMessage
}

func NewMemoryMessageRepository() *MemoryMessageRepo { return &MemoryMessageRepo{} }

func (m *MemoryMessageRepo) Create(_ context.Context, msg *EventMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	msg.CreatedAt = time.Now().UTC()
	m.msgs = append(m.msgs, *msg)
	return nil
}

func (m *MemoryMessageRepo) All() []EventMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]EventMessage(nil), m.msgs...)
}
