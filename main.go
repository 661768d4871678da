// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"github.com/asset3d/facility-service/cmd"
)

func main() {
	cmd.Execute()
}
