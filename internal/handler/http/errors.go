// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request errors produced by the transport before a service is called.
// All of them are reported with status 400.
var (
	// ErrInvalidJSON is returned when the body is empty, malformed or too
	// large.
	ErrInvalidJSON = errors.New("invalid JSON was passed")

	// ErrInvalidPathID is returned when a numeric path parameter does not
	// parse.
	ErrInvalidPathID = errors.New("invalid id in path")

	// ErrInvalidGzip is returned when a gzip encoded body cannot be read.
	ErrInvalidGzip = errors.New("invalid gzip data")

	// ErrInvalidQueryParam is returned when skip or limit are not integers.
	ErrInvalidQueryParam = errors.New("invalid query parameter")
)
