package server

import (
	"prodtrack/internal/access"
	"prodtrack/internal/auth"
	"prodtrack/internal/config"
	"prodtrack/internal/handlers"
	"prodtrack/internal/logger"
	"prodtrack/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, db *gorm.DB, log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	h := handlers.New(db, tokens, log)
	authn := middleware.NewAuthenticator(db, tokens, log)

	// the request log runs inside the auth group too so it can see the caller
	public := r.Group("/", middleware.RequestLogger(log))
	public.GET("/", h.Index)
	public.GET("/health", h.Health)
	public.POST("/token", h.Login)

	api := r.Group("/", middleware.RequestLogger(log), authn.RequireAuth())

	// ORGANIZATIONS
	api.POST("/organizations", middleware.RequireRole(access.OpOrganizationCreate), h.CreateOrganization)
	api.GET("/organizations", middleware.RequireRole(access.OpOrganizationRead), h.ListOrganizations)
	api.GET("/organizations/:id", middleware.RequireRole(access.OpOrganizationRead), h.GetOrganization)

	// ACCOUNTS
	api.POST("/accounts", middleware.RequireRole(access.OpAccountCreate), h.CreateAccount)
	api.GET("/accounts", middleware.RequireRole(access.OpAccountRead), h.ListAccounts)
	api.GET("/accounts/me", h.Me)

	// PROJECTS
	api.POST("/projects", middleware.RequireRole(access.OpProjectCreate), h.CreateProject)
	api.GET("/projects", h.ListProjects)
	api.GET("/projects/:id", h.GetProject)
	api.PUT("/projects/:id", h.UpdateProject)
	api.DELETE("/projects/:id", h.DeleteProject)

	// MEMBERS
	api.POST("/projects/:id/members", h.CreateMember)
	api.GET("/projects/:id/members", h.ListMembers)
	api.DELETE("/members/:id", h.DeleteMember)

	// SHOTS
	api.POST("/projects/:id/shots", h.CreateShot)
	api.GET("/projects/:id/shots", h.ListShots)
	api.GET("/shots/:id", h.GetShot)
	api.PUT("/shots/:id", h.UpdateShot)
	api.DELETE("/shots/:id", h.DeleteShot)

	// ASSETS
	api.POST("/projects/:id/assets", h.CreateAsset)
	api.GET("/projects/:id/assets", h.ListAssets)
	api.GET("/assets/:id", h.GetAsset)
	api.PUT("/assets/:id", h.UpdateAsset)
	api.DELETE("/assets/:id", h.DeleteAsset)

	// TASKS
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks/:id", h.GetTask)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.DELETE("/tasks/:id", h.DeleteTask)
	api.GET("/projects/:id/tasks", h.ListProjectTasks)
	api.GET("/tasks/project/:id", h.ListProjectTasks)
	api.GET("/tasks/:id/dependencies", h.ListDependencies)
	api.POST("/tasks/:id/dependencies", h.AddDependency)
	api.DELETE("/tasks/:id/dependencies/:dependency_id", h.RemoveDependency)

	// FILES
	api.POST("/storage-locations", middleware.RequireRole(access.OpStorageCreate), h.CreateStorageLocation)
	api.GET("/storage-locations", middleware.RequireRole(access.OpStorageRead), h.ListStorageLocations)
	api.POST("/projects/:id/files", h.RegisterFile)
	api.GET("/projects/:id/files", h.ListFiles)
	api.GET("/files/:file_id", h.GetFile)

	// AUDIT
	api.GET("/audit", middleware.RequireRole(access.OpAuditRead), h.ListAuditLogs)

	return r
}
