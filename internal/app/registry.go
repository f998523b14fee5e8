package app

import (
	"go-estateflow/internal/auth"
	"go-estateflow/internal/company"
	"go-estateflow/internal/config"
	"go-estateflow/internal/credential"
	"go-estateflow/internal/employee"
	"go-estateflow/internal/lifecycle"
	"go-estateflow/internal/middleware"
	"go-estateflow/internal/project"
	"go-estateflow/internal/rbac"
	"go-estateflow/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(router *gin.Engine, cfg config.Config, infra *Infra, logger *zap.Logger) error {
	// --- Shared lifecycle collaborators ---
	deps := lifecycle.Deps{
		Publisher: infra.Publisher,
		Logger:    logger,
	}
	if infra.Redis != nil {
		deps.Cache = lifecycle.NewRecordCache(infra.Redis, cfg.Redis.CacheTTL, logger)
	}

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer(cfg.RBAC.ModelPath, cfg.RBAC.PolicyPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	creds := credential.NewBcryptManager(cfg.Password.BcryptCost, cfg.Password.MaxConcurrentHash, logger)
	tokens := auth.NewTokenManager(auth.TokenConfig{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
	})

	companyService := company.NewService(infra.Store, deps)
	userService := user.NewService(infra.Store, creds, deps)
	employeeService := employee.NewService(infra.Store, infra.Counters, deps)
	projectService := project.NewService(infra.Store, deps)
	authService := auth.NewService(userService, tokens, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction())
	companyHandler := company.NewHandler(companyService, logger)
	userHandler := user.NewHandler(userService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	projectHandler := project.NewHandler(projectService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	chain := middleware.NewChain(tokens, rbacService, nil)
	if infra.Redis != nil {
		chain.Redis = infra.Redis
	}

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, chain)
		company.RegisterRoutes(api, companyHandler, chain)
		user.RegisterRoutes(api, userHandler, chain)
		employee.RegisterRoutes(api, employeeHandler, chain)
		project.RegisterRoutes(api, projectHandler, chain)
		rbac.RegisterRoutes(api, rbacHandler, chain)
	}

	return nil
}
