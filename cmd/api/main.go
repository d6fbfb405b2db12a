package main

import (
	"context"
	"fmt"
	"time"

	common_api "vfx-dashboard/internal/common/api"
	"vfx-dashboard/internal/config"
	"vfx-dashboard/internal/database"
	"vfx-dashboard/internal/features/analytics"
	"vfx-dashboard/internal/features/audit"
	"vfx-dashboard/internal/features/auth"
	"vfx-dashboard/internal/features/organization"
	"vfx-dashboard/internal/features/project"
	"vfx-dashboard/internal/features/realtime"
	"vfx-dashboard/internal/features/resource"
	"vfx-dashboard/internal/features/system"
	"vfx-dashboard/internal/features/task"
	"vfx-dashboard/internal/features/user"
	"vfx-dashboard/internal/logger"
	"vfx-dashboard/internal/middleware"
	"vfx-dashboard/pkg/utils"

	_ "vfx-dashboard/docs" // Import swagger docs

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          common_api.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(middleware.CORSMiddleware(cfg))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.RequestLogger(log))

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, log *zap.Logger) {
	for _, route := range routes {
		log.Debug("setting up route", zap.String("api", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
	log.Info("all routes registered", zap.Int("count", len(routes)))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, app *fiber.App, cfg *config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				log.Info("http server listening", zap.String("addr", port))
				if err := app.Listen(port); err != nil {
					log.Error("http server stopped", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}

// Indexer is implemented by every repository owning a collection.
type Indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	log *zap.Logger,
	userRepo user.UserRepository,
	orgRepo organization.OrganizationRepository,
	auditRepo audit.AuditRepository,
	projectRepo project.ProjectRepository,
	taskRepo task.TaskRepository,
	resourceRepo resource.ResourceRepository,
	snapshotRepo analytics.SnapshotRepository,
) {
	indexers := map[string]Indexer{
		"users":           userRepo,
		"organizations":   orgRepo,
		"audit_logs":      auditRepo,
		"projects":        projectRepo,
		"tasks":           taskRepo,
		"resources":       resourceRepo,
		"stats_snapshots": snapshotRepo,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				// Use a background context with timeout for index creation
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				for collection, idx := range indexers {
					if err := idx.EnsureIndexes(ctx); err != nil {
						log.Error("failed to ensure indexes", zap.String("collection", collection), zap.Error(err))
					}
				}
			}()
			return nil
		},
	})
}

// ConfigureTokens applies the JWT settings before any request is served.
func ConfigureTokens(cfg *config.Config) {
	utils.SetSecret(cfg.JWTSecret)
	utils.SetExpiry(cfg.JWTExpiry)
}

func RunSnapshotJob(lc fx.Lifecycle, job *analytics.SnapshotJob) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return job.Start()
		},
		OnStop: func(ctx context.Context) error {
			job.Stop()
			return nil
		},
	})
}

func CloseHub(lc fx.Lifecycle, hub *realtime.Hub) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			hub.Close()
			return nil
		},
	})
}

// @title           VFX Studio Dashboard API
// @version         1.0
// @description     Team, project and analytics backend for VFX studios.

// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,
			func(db *database.MongodbDB) system.Pinger { return db },

			// Realtime hub
			realtime.NewHub,
			func(h *realtime.Hub) realtime.Publisher { return h },

			// Initialize Repository
			organization.NewOrganizationRepository,
			user.NewUserRepository,
			audit.NewAuditRepository,
			project.NewProjectRepository,
			task.NewTaskRepository,
			resource.NewResourceRepository,
			analytics.NewSnapshotRepository,

			// Interface Adapters to break circular dependencies and satisfy Fx
			func(r user.UserRepository) audit.UserFinder { return r },
			func(r user.UserRepository) task.MemberFinder { return r },
			func(r user.UserRepository) resource.MemberFinder { return r },
			func(r user.UserRepository) project.MemberFinder { return r },
			func(r user.UserRepository) analytics.UserLister { return r },
			func(r organization.OrganizationRepository) analytics.OrganizationLister { return r },
			func(r task.TaskRepository) project.TaskCleaner { return r },

			// Initialize Service
			audit.NewAuditService,
			auth.NewAuthService,
			user.NewUserService,
			project.NewProjectService,
			task.NewTaskService,
			resource.NewResourceService,
			analytics.NewAnalyticsService,
			analytics.NewSnapshotJob,

			// Initialize Controller
			auth.NewAuthController,
			user.NewUserController,
			audit.NewAuditController,
			project.NewProjectController,
			task.NewTaskController,
			resource.NewResourceController,
			analytics.NewAnalyticsController,
			realtime.NewWebSocketController,
			system.NewHealthController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(user.NewUserApi),
			AsRoute(audit.NewAuditApi),
			AsRoute(project.NewProjectApi),
			AsRoute(task.NewTaskApi),
			AsRoute(resource.NewResourceApi),
			AsRoute(analytics.NewAnalyticsApi),
			AsRoute(realtime.NewWebSocketApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewSwaggerApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			ConfigureTokens,
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			InitializeIndexes,
			RunSnapshotJob,
			CloseHub,
		),
	)

	app.Run()
}
