package service

import "errors"

var (
	ErrNotFound      = errors.New("no uv data found")
	ErrEmptyLocation = errors.New("location is required")
)
