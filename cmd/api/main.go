package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/hadirku/hadirku-backend-go/internal/config"
	"github.com/hadirku/hadirku-backend-go/internal/fixtures"
	appHTTP "github.com/hadirku/hadirku-backend-go/internal/handler/http"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/database"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/geocode"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/jwt"
	"github.com/hadirku/hadirku-backend-go/internal/pkg/storage"
	"github.com/hadirku/hadirku-backend-go/internal/repository/collections"
	"github.com/hadirku/hadirku-backend-go/internal/repository/docstore"
	attendanceService "github.com/hadirku/hadirku-backend-go/internal/service/attendance"
	authService "github.com/hadirku/hadirku-backend-go/internal/service/auth"
	configService "github.com/hadirku/hadirku-backend-go/internal/service/config"
	"github.com/hadirku/hadirku-backend-go/internal/service/file"
	leaveService "github.com/hadirku/hadirku-backend-go/internal/service/leave"
	reportService "github.com/hadirku/hadirku-backend-go/internal/service/report"
	userService "github.com/hadirku/hadirku-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	ctx := context.Background()

	var store docstore.Store
	switch cfg.Database.Driver {
	case "postgres":
		db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Failed to connect to database: ", err)
		}
		store, err = docstore.NewPostgresStore(ctx, db)
		if err != nil {
			log.Fatal("Failed to initialize postgres store: ", err)
		}
	case "sqlite":
		store, err = docstore.NewSQLiteStore(ctx, cfg.Database.SQLitePath)
		if err != nil {
			log.Fatal("Failed to initialize sqlite store: ", err)
		}
	default:
		log.Fatal("Unsupported database driver: ", cfg.Database.Driver)
	}

	userRepo := collections.NewUserRepository(store)
	attendanceRepo := collections.NewAttendanceRepository(store)
	leaveRequestRepo := collections.NewLeaveRequestRepository(store)
	configRepo := collections.NewConfigRepository(store)

	if err := fixtures.SeedDefaultAdmin(ctx, userRepo); err != nil {
		log.Fatal("Failed to seed default admin: ", err)
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage: ", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	geocoder := geocode.NewClient(cfg.Geocoder.BaseURL, cfg.Geocoder.Timeout)
	fileService := file.NewFileService(fileStorage)

	authSvc := authService.NewAuthService(userRepo, jwtService)
	userSvc := userService.NewUserService(userRepo)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		configRepo,
		fileService,
		geocoder,
		cfg.App.LateCutoff,
		location,
	)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo)
	configSvc := configService.NewConfigService(configRepo)
	reportSvc := reportService.NewReportService(attendanceRepo)

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, userSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		User:       appHTTP.NewUserHandler(userSvc),
		Config:     appHTTP.NewConfigHandler(configSvc),
		Report:     appHTTP.NewReportHandler(reportSvc),
	}, cfg.Storage.BasePath)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
