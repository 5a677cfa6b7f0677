package main

import (
	"calendar-backend/cmd/calendar/apis"
	"calendar-backend/cmd/calendar/repository"
	"calendar-backend/cmd/calendar/service"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const envPrefix = "CALENDAR"

type EnvCfg struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" required:"true"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPAddr   string `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	Timezone   string `envconfig:"TIMEZONE" default:"UTC"`
	MaxMembers int    `envconfig:"MAX_MEMBERS" default:"10"`
	Debug      bool   `envconfig:"DEBUG" default:"false"`
}

func loadConfig() (EnvCfg, error) {
	var cfg EnvCfg
	err := envconfig.Process(envPrefix, &cfg)
	return cfg, err
}

func formatConnectionString(cfg EnvCfg) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
	)
}

func openDB(cfg EnvCfg) (*gorm.DB, error) {

	level := gormlogger.Warn
	if cfg.Debug {
		level = gormlogger.Info
	}

	return gorm.Open(
		postgres.Open(formatConnectionString(cfg)),
		&gorm.Config{
			Logger: gormlogger.Default.LogMode(level),
		},
	)
}

func main() {

	err := os.Setenv("TZ", "UTC")
	if err != nil {
		panic(err)
	}

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "calendar",
		Usage:  "Event scheduling backend with per-user conflict detection.",
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API.",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "Create or update the database schema.",
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrate(_ *cli.Context) error {

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	if err := repository.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	log.Info("database migrated", zap.String("db_name", cfg.DBName))

	return nil
}

func serve(c *cli.Context) error {

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	e := newServer(db, cfg, loc, log)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return e.Shutdown(shutdownCtx)
}

func newServer(db *gorm.DB, cfg EnvCfg, loc *time.Location, log *zap.Logger) *echo.Echo {

	e := echo.New()
	e.HideBanner = true
	e.Validator = apis.NewRequestValidator()
	e.Use(apis.RequestLogger(log), apis.Metrics())

	rootg := e.Group("")
	v1g := rootg.Group("/api/v1", apis.RequireOwner())

	apis.
		NewHealthCheckAPI(db, log).
		Setup(rootg)

	eventRepo := repository.NewEventRepo(db)
	memberRepo := repository.NewMemberRepo(db)
	txRunner := repository.NewTxRunner(db)

	eventService := service.NewEventService(eventRepo, txRunner, log)
	calendarService := service.NewCalendarService(eventRepo, loc)
	memberService := service.NewMemberService(eventRepo, memberRepo, txRunner, cfg.MaxMembers, log)

	apis.
		NewEventAPI(eventService, memberService, loc, log).
		Setup(v1g)

	apis.
		NewCalendarAPI(calendarService, loc, log).
		Setup(v1g)

	apis.
		NewMemberAPI(memberService, log).
		Setup(v1g)

	apis.
		NewTransferAPI(eventService, loc, log, cfg.Debug).
		Setup(v1g)

	return e
}
