package audit

import "time"

// Event is an immutable, append-only record of a session or guard outcome.
//
// Invariants:
// - Events are never updated or deleted.
// - Actor and IP capture are best-effort; never block an auth flow on audit.
// - No raw tokens or passwords are ever written here.
type Event struct {
	ID string `json:"id" db:"id"`

	// Type indicates the auth outcome being recorded.
	Type EventType `json:"type" db:"type"`

	// ActorUserID is the authenticated user, when known. Login failures
	// have no actor.
	ActorUserID string `json:"actor_user_id,omitempty" db:"actor_user_id"`
	// ActorRole is the resolved role name at decision time.
	ActorRole string `json:"actor_role,omitempty" db:"actor_role"`

	// IPAddress is the resolved client IP when available.
	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`

	// Path is the request path that triggered the event (guard denials).
	Path string `json:"path,omitempty" db:"path"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	// Metadata is optional JSON for full details.
	Metadata string `json:"metadata,omitempty" db:"metadata"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeLoginSuccess EventType = "login_success"
	EventTypeLoginFailure EventType = "login_failure"
	EventTypeSignOut      EventType = "sign_out"
	EventTypeAccessDenied EventType = "access_denied"
)
