package model

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrSessionCompleted = errors.New("session already completed")
	ErrCounterSaturated = errors.New("all questions already answered")
)
