package router

import (
	"github.com/samersoltani/dewini-server/internal/application"
	"github.com/samersoltani/dewini-server/internal/container"
	pginfra "github.com/samersoltani/dewini-server/internal/infrastructure/postgres"
	handlers "github.com/samersoltani/dewini-server/internal/interface/http"
	"github.com/samersoltani/dewini-server/internal/router/modules"
)

// InitModules builds the services from container singletons and registers
// the feature modules. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userSvc := application.NewUserService(
		pginfra.NewUserRepository(pool),
		container.GetTokenStore(),
		container.GetMailer(),
		cfg.ResetPasswordURL,
		cfg.ResetTokenTTL,
		logger,
	)
	docSvc := application.NewDocumentService(
		pginfra.NewDocumentRepository(pool),
		container.GetBlobStore(),
		container.GetBlobDir(),
		logger,
	)

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger)))
	r.Add(modules.NewDocumentModule(handlers.NewDocumentHandler(docSvc, logger)))
}
