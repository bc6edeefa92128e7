package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"foodgo/cmd"
	"foodgo/internal/adapters/out/postgres/orderrepo"
	"foodgo/internal/adapters/out/postgres/partnerrepo"
)

func main() {
	config := getConfig()

	gormDB, err := gorm.Open(gormpostgres.Open(dsn(config)), &gorm.Config{
		// Needed so unique violations surface as gorm.ErrDuplicatedKey.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("connecting to postgres: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &partnerrepo.PartnerDTO{}); err != nil {
		log.Fatalf("migrating schema: %v", err)
	}

	root, err := cmd.NewCompositionRoot(config, gormDB, nil)
	if err != nil {
		log.Fatalf("building composition root: %v", err)
	}
	defer func() {
		_ = root.Close()
	}()

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	root.CreateHTTPServer().RegisterRoutes(e, []byte(config.JWTSecret))
	root.CreateWSHandler().Register(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)))
}

func getConfig() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Warnf("no .env file, relying on the environment: %v", err)
	}

	staleMinutes, _ := strconv.Atoi(os.Getenv("PRESENCE_STALE_MINUTES"))

	return cmd.Config{
		HTTPPort:           envOr("HTTP_PORT", "8080"),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             envOr("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSslMode:          envOr("DB_SSLMODE", "disable"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		KafkaBrokers:       os.Getenv("KAFKA_BROKERS"),
		KafkaTopic:         envOr("KAFKA_TOPIC", "delivery.events"),
		RebroadcastSpec:    os.Getenv("REBROADCAST_CRON"),
		PresenceSweepSpec:  os.Getenv("PRESENCE_SWEEP_CRON"),
		PresenceStaleAfter: time.Duration(staleMinutes) * time.Minute,
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func dsn(config cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword,
		config.DBName, config.DBSslMode)
}
