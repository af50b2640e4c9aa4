package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chronohr/attendance-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

var ErrNoSession = errors.New("no authenticated session in context")

// Session is the authenticated caller extracted from the verified JWT.
// It is populated at login, carried per request, and read-only everywhere else.
type Session struct {
	UserID     string
	EmployeeID string
	Email      string
	Role       user.Role
	Timezone   string
}

func (s Session) IsAdmin() bool {
	return s.Role.IsAdmin()
}

func (s Session) CanApprove() bool {
	return s.Role.CanApprove()
}

// Location resolves the session timezone, falling back to UTC.
func (s Session) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// FromContext extracts the session from the request's verified JWT claims.
func FromContext(ctx context.Context) (Session, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrNoSession, err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Session{}, fmt.Errorf("%w: user_id claim is missing or invalid", ErrNoSession)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return Session{}, fmt.Errorf("%w: employee_id claim is missing or invalid", ErrNoSession)
	}

	sess := Session{
		UserID:     userID,
		EmployeeID: employeeID,
	}

	if email, ok := claims["email"].(string); ok {
		sess.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		sess.Role = user.Role(role)
	}
	if tz, ok := claims["timezone"].(string); ok {
		sess.Timezone = tz
	}

	return sess, nil
}
