// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/conda-project/internal/adapters/archive"
	_ "go.trai.ch/conda-project/internal/adapters/conda"
	_ "go.trai.ch/conda-project/internal/adapters/config"
	_ "go.trai.ch/conda-project/internal/adapters/fs"
	_ "go.trai.ch/conda-project/internal/adapters/logger"
	_ "go.trai.ch/conda-project/internal/adapters/shell"
	_ "go.trai.ch/conda-project/internal/adapters/store"
	_ "go.trai.ch/conda-project/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/conda-project/internal/app"
	_ "go.trai.ch/conda-project/internal/engine/lifecycle"
	_ "go.trai.ch/conda-project/internal/engine/runner"
)
