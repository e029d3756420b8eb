// Package todos is the client side of the remote todos API: the task model,
// list filters and an HTTP client implementing Loader and Mutator.
package todos

import (
	"context"
	"time"
)

const (
	// DefaultNotifyAt and DefaultNotifyAtValue are what the task form sends:
	// a reminder ten minutes before the task starts.
	DefaultNotifyAt      = "before"
	DefaultNotifyAtValue = "10m"
)

// Task is a todo as stored by the API. Timestamps are ISO 8601 strings and
// are kept verbatim; use the *Time helpers to parse them.
type Task struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Completed     bool   `json:"completed"`
	CreatedAt     string `json:"created_at"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	NotifyAt      string `json:"notify_at"`
	NotifyAtValue string `json:"notify_at_value"`
}

// CreatePayload is a Task without its server-assigned ID.
type CreatePayload struct {
	Title         string `json:"title"`
	Completed     bool   `json:"completed"`
	CreatedAt     string `json:"created_at"`
	StartsAt      string `json:"starts_at"`
	EndsAt        string `json:"ends_at"`
	NotifyAt      string `json:"notify_at"`
	NotifyAtValue string `json:"notify_at_value"`
}

// Patch is a partial replacement. Nil fields are not sent.
type Patch struct {
	ID            string  `json:"-"`
	Title         *string `json:"title,omitempty"`
	Completed     *bool   `json:"completed,omitempty"`
	CreatedAt     *string `json:"created_at,omitempty"`
	StartsAt      *string `json:"starts_at,omitempty"`
	EndsAt        *string `json:"ends_at,omitempty"`
	NotifyAt      *string `json:"notify_at,omitempty"`
	NotifyAtValue *string `json:"notify_at_value,omitempty"`
}

// Loader lists tasks.
type Loader interface {
	List(ctx context.Context, filter Filter) ([]Task, error)
}

// Mutator changes tasks. Every method returns the task as the API reports it.
type Mutator interface {
	Create(ctx context.Context, payload CreatePayload) (Task, error)
	Replace(ctx context.Context, patch Patch) (Task, error)
	Delete(ctx context.Context, id string) (Task, error)
}

// Service is both halves of the API.
type Service interface {
	Loader
	Mutator
}

// NewPayload builds the payload the task form submits: not completed, with
// the default reminder. Times are formatted as RFC 3339 in UTC.
func NewPayload(title string, day, startsAt, endsAt time.Time) CreatePayload {
	return CreatePayload{
		Title:         title,
		Completed:     false,
		CreatedAt:     FormatTime(day),
		StartsAt:      FormatTime(startsAt),
		EndsAt:        FormatTime(endsAt),
		NotifyAt:      DefaultNotifyAt,
		NotifyAtValue: DefaultNotifyAtValue,
	}
}

// Payload returns the task without its ID.
func (t Task) Payload() CreatePayload {
	return CreatePayload{
		Title:         t.Title,
		Completed:     t.Completed,
		CreatedAt:     t.CreatedAt,
		StartsAt:      t.StartsAt,
		EndsAt:        t.EndsAt,
		NotifyAt:      t.NotifyAt,
		NotifyAtValue: t.NotifyAtValue,
	}
}

// WithID attaches an ID to the payload.
func (p CreatePayload) WithID(id string) Task {
	return Task{
		ID:            id,
		Title:         p.Title,
		Completed:     p.Completed,
		CreatedAt:     p.CreatedAt,
		StartsAt:      p.StartsAt,
		EndsAt:        p.EndsAt,
		NotifyAt:      p.NotifyAt,
		NotifyAtValue: p.NotifyAtValue,
	}
}

// ReplacePatch turns a full payload into a Patch for task id, the way the
// edit form submits it.
func ReplacePatch(id string, p CreatePayload) Patch {
	return Patch{
		ID:            id,
		Title:         &p.Title,
		Completed:     &p.Completed,
		CreatedAt:     &p.CreatedAt,
		StartsAt:      &p.StartsAt,
		EndsAt:        &p.EndsAt,
		NotifyAt:      &p.NotifyAt,
		NotifyAtValue: &p.NotifyAtValue,
	}
}

// ToggleCompletedPatch flips the completed flag of t.
func ToggleCompletedPatch(t Task) Patch {
	completed := !t.Completed
	return Patch{ID: t.ID, Completed: &completed}
}

// Apply returns t with every non-nil field of p written over it.
func (p Patch) Apply(t Task) Task {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	set(&t.Title, p.Title)
	set(&t.CreatedAt, p.CreatedAt)
	set(&t.StartsAt, p.StartsAt)
	set(&t.EndsAt, p.EndsAt)
	set(&t.NotifyAt, p.NotifyAt)
	set(&t.NotifyAtValue, p.NotifyAtValue)

	if p.Completed != nil {
		t.Completed = *p.Completed
	}

	return t
}

// CreatedTime parses CreatedAt.
func (t Task) CreatedTime() (time.Time, error) {
	return ParseTime(t.CreatedAt)
}

// StartsTime parses StartsAt.
func (t Task) StartsTime() (time.Time, error) {
	return ParseTime(t.StartsAt)
}

// EndsTime parses EndsAt.
func (t Task) EndsTime() (time.Time, error) {
	return ParseTime(t.EndsAt)
}
