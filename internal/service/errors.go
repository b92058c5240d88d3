package service

import "errors"

// Sentinel errors returned by the learning service. Check with errors.Is.
var (
	// ErrNoActiveSession is returned when rating or ending with no session
	// in progress.
	ErrNoActiveSession = errors.New("no active session")

	// ErrCardMismatch is returned when a rating names a card other than the
	// one the session currently expects. It signals a stale UI or a rating
	// request racing with navigation.
	ErrCardMismatch = errors.New("rated card is not the current card")
)
