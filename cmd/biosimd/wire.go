//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/cory-johannsen/biosim/internal/app"
	"github.com/cory-johannsen/biosim/internal/config"
)

func initializeDaemon(ctx context.Context, cfg config.Config, service app.ServiceName) (*daemon, func(), error) {
	wire.Build(app.DaemonSet, newDaemon)
	return nil, nil, nil
}
