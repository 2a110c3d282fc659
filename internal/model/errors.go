package model

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("email already registered")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrTokenExhausted  = errors.New("could not generate a unique token")
	ErrInvalidToken    = errors.New("invalid token")
)
