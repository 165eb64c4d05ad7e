package main

import (
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Tayttopaikka/tayttopaikka-backend/client"
	"github.com/Tayttopaikka/tayttopaikka-backend/config"
	"github.com/Tayttopaikka/tayttopaikka-backend/controller"
	"github.com/Tayttopaikka/tayttopaikka-backend/db"
	"github.com/Tayttopaikka/tayttopaikka-backend/middleware"
	"github.com/Tayttopaikka/tayttopaikka-backend/migration"
	"github.com/Tayttopaikka/tayttopaikka-backend/repository"
	"github.com/Tayttopaikka/tayttopaikka-backend/service"
	"github.com/Tayttopaikka/tayttopaikka-backend/service/cleanup"
	"github.com/Tayttopaikka/tayttopaikka-backend/utils"
	"github.com/Tayttopaikka/tayttopaikka-backend/view"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	configPath := flag.String("config", os.Getenv("TAYTTOPAIKKA_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.TechnicalParameters.LogDirectory)
	utils.PrintConfig(cfg)

	instanceId := cfg.TechnicalParameters.InstanceId
	if instanceId == "" {
		instanceId = uuid.New().String()
	}

	creds := &view.DbCredentials{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		Database: cfg.Database.Name,
	}
	if err := migration.UpMigrations(creds); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	cp := db.NewConnectionProvider(creds)

	userRepository := repository.NewUserRepository(cp)
	userCleanupRepository := repository.NewUserCleanupRepository(cp)
	cylinderSetRepository := repository.NewCylinderSetRepository(cp)
	gasRepository := repository.NewGasRepository(cp)
	fillEventRepository := repository.NewFillEventRepository(cp)
	lockRepository := repository.NewLockRepository(cp)

	emailClient := client.NewEmailClient(cfg.Email)
	notificationService := service.NewCleanupNotificationService(emailClient, cfg.Email)
	lockService := service.NewLockService(lockRepository, instanceId)
	userService := service.NewUserService(userRepository, userCleanupRepository)
	archivedUsersService := service.NewArchivedUsersService(userCleanupRepository)
	cylinderSetService := service.NewCylinderSetService(cylinderSetRepository, userRepository)
	gasService := service.NewGasService(gasRepository)
	fillEventService := service.NewFillEventService(fillEventRepository, userRepository, cylinderSetRepository)

	readyChan := make(chan bool)
	healthController := controller.NewHealthController(readyChan)
	userController := controller.NewUserController(userService)
	archivedUsersController := controller.NewArchivedUsersController(archivedUsersService)
	cylinderSetController := controller.NewCylinderSetController(cylinderSetService)
	gasController := controller.NewGasController(gasService)
	fillEventController := controller.NewFillEventController(fillEventService)

	if cfg.Cleanup.UserCleanup.Enabled {
		cleanupService := cleanup.NewCleanupService()
		err = cleanupService.CreateUserCleanupJob(
			userCleanupRepository,
			fillEventRepository,
			notificationService,
			lockService,
			instanceId,
			cfg.Cleanup.UserCleanup.Schedule,
			cfg.Cleanup.UserCleanup.Timezone,
		)
		if err != nil {
			log.Fatalf("Failed to schedule user cleanup job: %v", err)
		}
	} else {
		log.Warn("User cleanup job is disabled")
	}

	r := mux.NewRouter()
	r.Use(middleware.PrometheusMiddleware)

	r.HandleFunc("/api/users", userController.CreateUser).Methods(http.MethodPost)
	r.HandleFunc("/api/users", userController.GetUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userId}", userController.GetUserById).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userId}", userController.UpdateUser).Methods(http.MethodPatch)
	r.HandleFunc("/api/users/{userId}", userController.DeleteUser).Methods(http.MethodDelete)

	r.HandleFunc("/api/archived-users", archivedUsersController.GetArchivedUsers).Methods(http.MethodGet)
	r.HandleFunc("/api/archived-users/{userId}/unarchive", archivedUsersController.UnarchiveUser).Methods(http.MethodPost)
	r.HandleFunc("/api/archived-users/{userId}/history", archivedUsersController.GetCleanupHistory).Methods(http.MethodGet)

	r.HandleFunc("/api/cylinder-sets", cylinderSetController.CreateCylinderSet).Methods(http.MethodPost)
	r.HandleFunc("/api/cylinder-sets/{setId}", cylinderSetController.GetCylinderSet).Methods(http.MethodGet)
	r.HandleFunc("/api/cylinder-sets/{setId}", cylinderSetController.ArchiveCylinderSet).Methods(http.MethodDelete)
	r.HandleFunc("/api/users/{userId}/cylinder-sets", cylinderSetController.GetCylinderSetsByOwner).Methods(http.MethodGet)

	r.HandleFunc("/api/gases", gasController.GetGases).Methods(http.MethodGet)

	r.HandleFunc("/api/fill-events", fillEventController.CreateFillEvent).Methods(http.MethodPost)
	r.HandleFunc("/api/fill-events/{fillEventId}", fillEventController.GetFillEvent).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userId}/fill-events", fillEventController.GetFillEventsByUser).Methods(http.MethodGet)
	r.HandleFunc("/api/users/{userId}/fill-events/unpaid", fillEventController.GetUnpaidFillEvents).Methods(http.MethodGet)

	r.HandleFunc("/live", healthController.HandleLiveRequest).Methods(http.MethodGet)
	r.HandleFunc("/ready", healthController.HandleReadyRequest).Methods(http.MethodGet)
	if cfg.Monitoring.Enabled {
		r.Path("/metrics").Handler(promhttp.Handler())
	}

	var handler http.Handler = r
	if len(cfg.TechnicalParameters.AllowedOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(cfg.TechnicalParameters.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete}),
			handlers.AllowedHeaders([]string{"Content-Type", "X-User-Id"}),
		)(r)
	}

	srv := &http.Server{
		Handler:      handler,
		Addr:         cfg.TechnicalParameters.ListenAddress,
		WriteTimeout: 60 * time.Second,
		ReadTimeout:  60 * time.Second,
	}

	utils.SafeAsync(func() {
		readyChan <- true
	})

	log.Infof("Starting server on %s (instance %s)", cfg.TechnicalParameters.ListenAddress, instanceId)
	log.Fatal(srv.ListenAndServe())
}

func setupLogging(logDirectory string) {
	log.SetFormatter(&prefixed.TextFormatter{
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	})

	if logDirectory == "" {
		return
	}
	if err := os.MkdirAll(logDirectory, 0o755); err != nil {
		log.Warnf("Failed to create log directory %s: %v. Logging to stdout only.", logDirectory, err)
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(logDirectory, "tayttopaikka-backend.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
	})
}
