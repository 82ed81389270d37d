package migration

import (
	authdomain "github.com/workbenchhq/workbench/internal/auth/domain"
	"github.com/workbenchhq/workbench/internal/config"
	orgdomain "github.com/workbenchhq/workbench/internal/organization/domain"
	projectdomain "github.com/workbenchhq/workbench/internal/project/domain"
	"github.com/workbenchhq/workbench/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&orgdomain.Organization{},
				&orgdomain.OrganizationAdmin{},
				&authdomain.User{},
				&authdomain.RefreshToken{},
				&projectdomain.Project{},
			); err != nil {
				return err
			}
		}

		if cfg.BootstrapDefaultOrg {
			return seed.EnsureDefaultOrgAndAdmin(conn)
		}
		return nil
	}),
)
