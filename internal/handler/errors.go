// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// errNoHandlersAreCreated is returned by NewHandlers when the server config
// names neither an HTTP nor a gRPC address.
var errNoHandlersAreCreated = errors.New("no handlers are created")
