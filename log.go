// Copyright ©2024 The Krylov Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"os"

	"github.com/rs/zerolog"
)

// log is the package-level logger consulted whenever a solver's Verbose
// option is non-zero. It is disabled by default so that a caller who never
// touches Verbose pays nothing for it; SetLogger lets an application wire
// it into its own structured-logging setup.
var log = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.Disabled)

// SetLogger replaces the package-level logger used for Verbose tracing.
func SetLogger(l zerolog.Logger) { log = l }
