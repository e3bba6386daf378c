package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit events.
//
// It MUST be append-only. No Update/Delete methods are provided by design.
type Repository interface {
	Append(ctx context.Context, e Event) error
}

// Service records auth outcomes.
//
// Audit is internal-only and best-effort: callers log append failures and
// move on, they never fail the auth flow.
type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEvent = errors.New("audit: invalid event")

func (s *Service) Append(ctx context.Context, e Event) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.Type == "" {
		return ErrInvalidEvent
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

// LogLogin records a successful sign-in.
func (s *Service) LogLogin(ctx context.Context, userID, role, ip string) error {
	return s.Append(ctx, Event{
		Type:        EventTypeLoginSuccess,
		ActorUserID: userID,
		ActorRole:   role,
		IPAddress:   ip,
		Message:     "sign-in",
	})
}

// LogLoginFailure records a rejected sign-in attempt. The reason must not
// contain credentials.
func (s *Service) LogLoginFailure(ctx context.Context, ip, reason string) error {
	return s.Append(ctx, Event{
		Type:      EventTypeLoginFailure,
		IPAddress: ip,
		Message:   reason,
	})
}

// LogSignOut records an explicit sign-out.
func (s *Service) LogSignOut(ctx context.Context, userID, ip string) error {
	return s.Append(ctx, Event{
		Type:        EventTypeSignOut,
		ActorUserID: userID,
		IPAddress:   ip,
		Message:     "sign-out",
	})
}

// LogAccessDenied records a guard denial (forbidden or login redirect for a
// credential that failed to decode).
func (s *Service) LogAccessDenied(ctx context.Context, role, ip, path, message string) error {
	return s.Append(ctx, Event{
		Type:      EventTypeAccessDenied,
		ActorRole: role,
		IPAddress: ip,
		Path:      path,
		Message:   message,
	})
}
