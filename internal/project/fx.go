package project

import (
	"github.com/workbenchhq/workbench/internal/project/repository"
	"github.com/workbenchhq/workbench/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
