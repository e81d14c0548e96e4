package model

import "errors"

var (
	ErrNotFound      = errors.New("node not found")
	ErrNotFolder     = errors.New("parent is not a folder")
	ErrRootImmutable = errors.New("the mobile root cannot be modified")
	ErrInvalidMove   = errors.New("folder cannot be moved into itself")
	ErrEmptyTitle    = errors.New("folder title is required")
	ErrInvalidURL    = errors.New("invalid URL")
)
