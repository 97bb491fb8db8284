package auth

import "context"

var _ Checker = (*SessionTestChecker)(nil)

// SessionTestChecker is an in-memory Checker for handler tests.
type SessionTestChecker struct {
	LoggedSessions map[string]int
}

func NewSessionTestChecker() *SessionTestChecker {
	return &SessionTestChecker{
		LoggedSessions: map[string]int{},
	}
}

func (c *SessionTestChecker) UserID(_ context.Context, token string) (int, error) {
	userID, ok := c.LoggedSessions[token]
	if !ok {
		return 0, ErrNotLoggedIn
	}
	return userID, nil
}
