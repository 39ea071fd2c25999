package service

import "errors"

var (
	ErrNotFound = errors.New("resource not found")
	ErrNotOwner = errors.New("not the owner")
)
