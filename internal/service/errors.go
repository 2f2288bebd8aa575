package service

import "errors"

var (
	ErrNotAuthorized    = errors.New("not authorized")
	ErrNotFound         = errors.New("not found")
	ErrAssetNotFound    = errors.New("asset not found")
	ErrBoundaryNotFound = errors.New("boundary not found")
	ErrBoundaryExists   = errors.New("boundary already exists")
	ErrBoundaryLimit    = errors.New("boundary limit reached")
	ErrInvalidBoundary  = errors.New("invalid boundary")
	ErrInvalidInput     = errors.New("invalid input")

	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidTimestamp   = errors.New("invalid timestamp")
)
