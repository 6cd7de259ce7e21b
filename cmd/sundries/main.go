package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/sundries-services/sundries/internal/clock"
	"github.com/sundries-services/sundries/internal/config"
	"github.com/sundries-services/sundries/internal/logger"
	"github.com/sundries-services/sundries/internal/migration"
	"github.com/sundries-services/sundries/internal/scheduler"
	"github.com/sundries-services/sundries/internal/server"
	"github.com/sundries-services/sundries/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		clock.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		server.Module,
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
