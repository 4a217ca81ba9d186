package service

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrNotFound         = errors.New("not found")
	ErrCommentsDisabled = errors.New("comments disabled")
)
