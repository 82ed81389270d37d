package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/workbenchhq/workbench/internal/config"
	"github.com/workbenchhq/workbench/internal/migration"
	"github.com/workbenchhq/workbench/internal/observability"
	"github.com/workbenchhq/workbench/internal/server"
	"github.com/workbenchhq/workbench/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
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
