package models

import (
	"context"
	"errors"
	"time"

	"github.com/JovanaT99/eventsApp/predicate"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// storeTimeout bounds every single store round-trip.
const storeTimeout = 5 * time.Second

// ===== Events =====

type Event struct {
	ID                   string    `json:"id" bson:"id"` // UUID, shared key across stores
	UserID               int64     `json:"userId" bson:"userId"`
	CategoryID           int64     `json:"categoryId" bson:"categoryId"`
	Name                 string    `json:"name" bson:"name"`
	Description          string    `json:"description" bson:"description"`
	SubCategory          string    `json:"subCategory" bson:"subCategory"`
	Location             string    `json:"location" bson:"location"`
	Lat                  float64   `json:"lat" bson:"lat"`
	Lng                  float64   `json:"lng" bson:"lng"`
	StartAt              time.Time `json:"startAt" bson:"startAt"`
	Duration             float64   `json:"duration" bson:"duration"` // hours
	SuggestedPeopleCount int       `json:"suggestedPeopleCount" bson:"suggestedPeopleCount"`
	CreatedAt            time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt" bson:"updatedAt"`

	Geo *GeoPoint `json:"-" bson:"geo,omitempty"`
}

// GeoPoint is a GeoJSON point. Coordinates are [lng, lat].
type GeoPoint struct {
	Type        string     `bson:"type"`
	Coordinates [2]float64 `bson:"coordinates"`
}

func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: [2]float64{lng, lat}}
}

func (e Event) Lookup(f predicate.Field) (any, bool) {
	switch f {
	case predicate.FieldName:
		return e.Name, true
	case predicate.FieldDescription:
		return e.Description, true
	case predicate.FieldSubCategory:
		return e.SubCategory, true
	case predicate.FieldCategoryID:
		return e.CategoryID, true
	case predicate.FieldStartAt:
		return e.StartAt, true
	case predicate.FieldDuration:
		return e.Duration, true
	case predicate.FieldLat:
		return e.Lat, true
	case predicate.FieldLng:
		return e.Lng, true
	}
	return nil, false
}

type EventRepository interface {
	// Find returns every event satisfying p, in store order.
	Find(ctx context.Context, p predicate.Predicate) ([]Event, error)
	GetByID(ctx context.Context, id string) (Event, error)
	Create(ctx context.Context, e *Event) error
}

// ===== Users =====

type User struct {
	ID          int64  `json:"id"`
	Nickname    string `json:"nickname"`
	Email       string `json:"email"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Type        string `json:"type"`
	CompanyID   *int64 `json:"companyId"`
	Reputation  int    `json:"reputation"`
	PhoneNumber string `json:"phoneNumber"`
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

// ===== Categories =====

type Category struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ImageURL      string `json:"imageUrl,omitempty"`
	Priority      int    `json:"priority"`
	SubCategories string `json:"subCategories"`
}

type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetByID(ctx context.Context, id int64) (Category, error)
}

// ===== Attendance =====

type AttendanceStatus string

const (
	Attending    AttendanceStatus = "attending"
	NotAttending AttendanceStatus = "notAttending"
)

func (s AttendanceStatus) Valid() bool {
	return s == Attending || s == NotAttending
}

type EventAttendance struct {
	EventID      string           `json:"eventId"`
	UserID       int64            `json:"userId"`
	Status       AttendanceStatus `json:"status"`
	AttendanceAt time.Time        `json:"attendanceAt"`
}

type AttendanceRepository interface {
	// Upsert creates or overwrites the record keyed by (EventID, UserID)
	// atomically and returns the stored row.
	Upsert(ctx context.Context, a EventAttendance) (EventAttendance, error)
	Get(ctx context.Context, eventID string, userID int64) (EventAttendance, error)
}

// ===== Messages =====

type EventMessage struct {
	ID             string    `json:"id"`
	EventID        string    `json:"eventId"`
	UserID         int64     `json:"userId"`
	Content        string    `json:"content"`
	AttendanceOnly bool      `json:"attendanceOnly"`
	CreatedAt      time.Time `json:"createdAt"`
}

type MessageRepository interface {
	Create(ctx context.Context, m *EventMessage) error
}
