package model

import "github.com/google/uuid"

// NewGUID creates a new node GUID.
func NewGUID() string {
	return uuid.New().String()
}
