package domain

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrReminderNotFound = errors.New("reminder not found")
)

var ErrCredentialNotFound = errors.New("credential not found")
