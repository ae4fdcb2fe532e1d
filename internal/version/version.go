// Copyright 2026 Assetforge Contributors
// Licensed under the AGPLv3, see LICENCE file for details.

// Package version holds the current tool version.
package version

import (
	"github.com/juju/version/v2"
)

// Current is the version of the assetforge tool.
var Current = version.MustParse("0.4.1")
