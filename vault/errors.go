// Package vault - lock/unlock state machine for the private bookmark folder
package vault

import "errors"

// ErrInvalidPassword the supplied password is not acceptable (e.g. empty)
var ErrInvalidPassword = errors.New("invalid password")

// ErrAlreadyInitialized a private record already exists
var ErrAlreadyInitialized = errors.New("private record already initialized")

// ErrNotLocked the operation requires the folder to be locked
var ErrNotLocked = errors.New("private folder is not locked")

// ErrNotUnlocked the operation requires the folder to be unlocked
var ErrNotUnlocked = errors.New("private folder is not unlocked")
