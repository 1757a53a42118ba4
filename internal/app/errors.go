package app

import "errors"

// Application-level errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoFile indicates no file was given to open.
	ErrNoFile = errors.New("no file to open")
)
