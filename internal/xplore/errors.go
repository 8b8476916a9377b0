// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xplore

import "errors"

var (
	// ErrUnsupportedField is returned by SearchField for names outside the
	// allowed search fields. The query is left unchanged.
	ErrUnsupportedField = errors.New("unsupported search field")

	// ErrInvalidOption is returned by setters given a value outside their
	// accepted set (output type, data format, sort order).
	ErrInvalidOption = errors.New("invalid option")

	// ErrNoCriteria is returned when a query is built before any parameter,
	// filter or open-access article has been provided.
	ErrNoCriteria = errors.New("no search criteria provided")

	// ErrParse wraps malformed JSON or XML responses.
	ErrParse = errors.New("parsing response")
)
