package organization

import (
	"github.com/workbenchhq/workbench/internal/organization/repository"
	"github.com/workbenchhq/workbench/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
