package auth

import (
	"github.com/bwmarrin/snowflake"
	"github.com/workbenchhq/workbench/internal/auth/domain"
	"github.com/workbenchhq/workbench/internal/auth/repository"
	"github.com/workbenchhq/workbench/internal/auth/service"
	"github.com/workbenchhq/workbench/internal/auth/token"
	"github.com/workbenchhq/workbench/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.New),
	fx.Provide(repository.NewTokenRepository),
	fx.Provide(newIssuer),
	fx.Provide(service.New),
)

func newIssuer(cfg config.Config, repo domain.TokenRepository, genID *snowflake.Node) (*token.Issuer, error) {
	return token.NewIssuer(cfg.AuthJWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, repo, genID)
}
