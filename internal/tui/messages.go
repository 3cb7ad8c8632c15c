package tui

import (
	"time"

	"github.com/dewakost/dewakost/internal/domain"
)

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// sessionMsg reports a login or logout. Next is the screen to open afterwards.
type sessionMsg struct {
	account *domain.Account
	next    Screen
}

// syncTickMsg fires on the store polling interval
type syncTickMsg time.Time

// syncMsg carries the store versions and the current session
type syncMsg struct {
	versions map[string]int64
	account  *domain.Account
	err      error
}
