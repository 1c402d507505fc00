package domain

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrUpstreamAuth        = errors.New("upstream auth failed")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrParse               = errors.New("model output not decodable")
	ErrPersistence         = errors.New("persistence failed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
)
