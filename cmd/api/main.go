package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"easyweb/internal/database"
	"easyweb/internal/domain"
	"easyweb/internal/middleware"
	"easyweb/internal/modules/auth"
	"easyweb/internal/modules/preview"
	"easyweb/internal/modules/project"
	"easyweb/internal/modules/publish"
	"easyweb/internal/modules/user"
	"easyweb/internal/modules/version"
	jwtsvc "easyweb/internal/pkg/jwt"
	"easyweb/internal/repository"
)

func main() {
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	dsn := envOr("DATABASE_URL", "data/easyweb.db")
	staticRoot := envOr("STATIC_ROOT", "./static")
	uploadsDir := envOr("UPLOADS_DIR", "./uploads")

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	versionRepo := repository.NewVersionRepository(db)
	permRepo := repository.NewPermissionRepository(db)

	if err := ensureAdmin(userRepo); err != nil {
		log.Fatal(err)
	}

	j := jwtsvc.New(secret, 24*time.Hour)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	projectService := project.NewService(projectRepo, permRepo, userRepo)
	projectHandler := project.NewHandler(projectService)

	versionService := version.NewService(versionRepo, projectRepo, permRepo, staticRoot)
	versionHandler := version.NewHandler(versionService)

	publishService := publish.NewService(projectRepo, versionRepo, permRepo, versionService, publish.Config{
		StaticRoot: staticRoot,
		UploadsDir: uploadsDir,
	})
	publishHandler := publish.NewHandler(publishService)

	previewHandler := preview.NewHandler(versionRepo, staticRoot)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().Format(time.RFC3339)})
		})

		// public
		preview.RegisterRoutes(api, &r.RouterGroup, previewHandler)

		protected := api.Group("/")
		protected.Use(middleware.Auth(j))
		{
			auth.RegisterRoutes(api, protected, authHandler)
			user.RegisterRoutes(protected, userHandler)
			project.RegisterRoutes(protected, projectHandler)
			version.RegisterRoutes(protected, versionHandler)
			publish.RegisterRoutes(protected, publishHandler)
		}
	}

	addr := ":" + envOr("PORT", "8080")
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

// ensureAdmin creates the default admin account on first start so a fresh
// deployment is reachable.
func ensureAdmin(users *repository.UserRepository) error {
	ctx := context.Background()
	if _, err := users.GetByUsername(ctx, "admin"); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		Username:     "admin",
		Email:        "admin@easyweb.local",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}

	log.Println("Default admin user created: admin / admin123, change the password")
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
