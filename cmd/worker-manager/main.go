// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"visa-workers/internal/common/camunda"
	"visa-workers/internal/common/config"
	"visa-workers/internal/common/database"
	"visa-workers/internal/common/logger"
	"visa-workers/internal/common/observability"
	"visa-workers/internal/visa/application"
	"visa-workers/internal/visa/catalog"
	"visa-workers/internal/visa/eligibility"
	"visa-workers/internal/visa/pricing"

	car "visa-workers/internal/workers/application/create-application-record"
	sn "visa-workers/internal/workers/application/send-notification"
	va "visa-workers/internal/workers/application/validate-application"
	ce "visa-workers/internal/workers/visa/classify-eligibility"
	cp "visa-workers/internal/workers/visa/compose-pricing"
	lr "visa-workers/internal/workers/visa/lookup-requirements"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting worker manager",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Static domain data, validated before anything connects ---
	// A bad requirement table or pricing row must stop the process here, not
	// surface on a lookup or a quote.
	catalogs := catalog.Catalogs()
	for dest, c := range catalogs {
		if err := c.Validate(); err != nil {
			zapLog.Fatal("requirement catalog integrity check failed",
				zap.String("destination", dest),
				zap.Error(err),
			)
		}
	}

	priceTable, err := pricing.DefaultTable()
	if err != nil {
		zapLog.Fatal("pricing table integrity check failed", zap.Error(err))
	}

	classifier := eligibility.NewClassifier(eligibility.DefaultTables())
	validator := application.NewValidator()

	// --- Init Zeebe client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		if err != nil {
			return err
		}
		return camundaClient.HealthCheck(ctx)
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected")

	// --- Init Redis with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected")

	// --- Register workers ---
	var workers []*camunda.CamundaWorker

	register := func(taskType string, handler camunda.JobHandler) {
		wcfg := cfg.Workers[taskType]
		if !wcfg.Enabled {
			zapLog.Info("worker disabled", zap.String("taskType", taskType))
			return
		}
		w := camunda.NewWorker(zeebeClient, taskType, camunda.WorkerOptions{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       config.GetDuration(wcfg.Timeout),
		}, handler, zapLog)
		workers = append(workers, w)
	}

	register(ce.TaskType, ce.NewHandler(ce.LoadConfig(), classifier, log))

	register(lr.TaskType, lr.NewHandler(&lr.Config{
		Timeout:  config.GetDuration(cfg.Workers[lr.TaskType].Timeout),
		CacheTTL: time.Duration(cfg.Catalog.CacheTTL) * time.Second,
	}, catalogs, redisClient, log))

	register(cp.TaskType, cp.NewHandler(cp.LoadConfig(), priceTable, log))

	register(va.TaskType, va.NewHandler(va.LoadConfig(), validator, log))

	register(car.TaskType, car.NewHandler(&car.Config{
		Timeout: config.GetDuration(cfg.Workers[car.TaskType].Timeout),
	}, pg.DB, log))

	if cfg.Workers[sn.TaskType].Enabled {
		snHandler, err := sn.NewHandler(&sn.Config{
			EmailEnabled: cfg.Notifications.Email.Enabled,
			SMSEnabled:   cfg.Notifications.SMS.Enabled,
			FromEmail:    cfg.Notifications.Email.FromEmail,
			SMSSenderID:  cfg.Notifications.SMS.SenderID,
			AWSRegion:    cfg.Notifications.AWS.Region,
			Timeout:      config.GetDuration(cfg.Workers[sn.TaskType].Timeout),
		}, pg.DB, log)
		if err != nil {
			zapLog.Fatal("failed to create send-notification handler", zap.Error(err))
		}
		register(sn.TaskType, snHandler)
	}

	zapLog.Info("all workers registered", zap.Int("count", len(workers)))

	// --- Health & metrics server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("health/metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("health/metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received, stopping workers")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Stop(shutdownCtx)
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("worker manager stopped")
}
