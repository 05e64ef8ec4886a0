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

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"admissions-workers/internal/common/aws"
	"admissions-workers/internal/common/config"
	"admissions-workers/internal/common/crm"
	"admissions-workers/internal/common/database"
	httpclient "admissions-workers/internal/common/http"
	"admissions-workers/internal/common/logger"
	"admissions-workers/internal/common/observability"

	// Data Access Workers (2)
	qe "admissions-workers/internal/workers/data-access/query-elasticsearch"
	qp "admissions-workers/internal/workers/data-access/query-postgresql"

	// Application Lifecycle Workers (4)
	as "admissions-workers/internal/workers/application/advance-status"
	car "admissions-workers/internal/workers/application/create-application-record"
	sn "admissions-workers/internal/workers/application/send-notification"
	vad "admissions-workers/internal/workers/application/validate-application-data"

	// Review Workers (2)
	rr "admissions-workers/internal/workers/review/record-review"
	sr "admissions-workers/internal/workers/review/score-review"

	// Profile, Document & CRM Workers (3)
	sl "admissions-workers/internal/workers/crm/sync-lead"
	vd "admissions-workers/internal/workers/document/verify-document"
	cpc "admissions-workers/internal/workers/profile/check-profile-completion"
)

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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient zbc.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

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
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init External Service Clients ---
	crmClient := crm.NewClient(cfg.Integrations.CRM.BaseURL, cfg.Integrations.CRM.AuthToken)

	sesClient, err := aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
	if err != nil {
		zapLog.Fatal("failed to create SES client", zap.Error(err))
	}
	snsClient, err := aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
	if err != nil {
		zapLog.Fatal("failed to create SNS client", zap.Error(err))
	}

	zapLog.Info("All external service clients initialized")

	// --- Register Workers ---

	// --- 1. Data Access Workers (2) ---
	if cfg.Workers[qp.TaskType].Enabled {
		handler := qp.NewHandler(
			&qp.Config{
				Timeout: time.Duration(cfg.Workers[qp.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, qp.TaskType, cfg.Workers[qp.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[qe.TaskType].Enabled {
		handler := qe.NewHandler(
			&qe.Config{
				Timeout: time.Duration(cfg.Workers[qe.TaskType].Timeout) * time.Millisecond,
			},
			esClient.Client, log,
		)
		startWorker(zeebeClient, qe.TaskType, cfg.Workers[qe.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Application Lifecycle Workers (4) ---
	if cfg.Workers[vad.TaskType].Enabled {
		handler := vad.NewHandler(
			&vad.Config{
				Timeout: time.Duration(cfg.Workers[vad.TaskType].Timeout) * time.Millisecond,
			},
			log,
		)
		startWorker(zeebeClient, vad.TaskType, cfg.Workers[vad.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[car.TaskType].Enabled {
		handler := car.NewHandler(
			&car.Config{
				Timeout: time.Duration(cfg.Workers[car.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, car.TaskType, cfg.Workers[car.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[as.TaskType].Enabled {
		handler := as.NewHandler(
			&as.Config{
				Timeout: time.Duration(cfg.Workers[as.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, as.TaskType, cfg.Workers[as.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sn.TaskType].Enabled {
		handler := sn.NewHandler(
			&sn.Config{
				Timeout:     time.Duration(cfg.Workers[sn.TaskType].Timeout) * time.Millisecond,
				SenderEmail: cfg.Notifications.Email.FromEmail,
			},
			pg.DB, sesClient, snsClient, log,
		)
		startWorker(zeebeClient, sn.TaskType, cfg.Workers[sn.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Review Workers (2) ---
	if cfg.Workers[sr.TaskType].Enabled {
		handler := sr.NewHandler(
			&sr.Config{
				CacheTTL: 10 * time.Minute,
				Timeout:  time.Duration(cfg.Workers[sr.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, sr.TaskType, cfg.Workers[sr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[rr.TaskType].Enabled {
		handler := rr.NewHandler(
			&rr.Config{
				Timeout: time.Duration(cfg.Workers[rr.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, rr.TaskType, cfg.Workers[rr.TaskType], handler.Handle, zapLog)
	}

	// --- 4. Profile, Document & CRM Workers (3) ---
	if cfg.Workers[cpc.TaskType].Enabled {
		handler := cpc.NewHandler(
			&cpc.Config{
				Timeout: time.Duration(cfg.Workers[cpc.TaskType].Timeout) * time.Millisecond,
			},
			pg.DB, log,
		)
		startWorker(zeebeClient, cpc.TaskType, cfg.Workers[cpc.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[vd.TaskType].Enabled {
		timeout := time.Duration(cfg.Services.DocumentVerification.Timeout) * time.Millisecond
		handler := vd.NewHandler(
			&vd.Config{
				BaseURL: cfg.Services.DocumentVerification.BaseURL,
				APIKey:  cfg.Services.DocumentVerification.APIKey,
				Timeout: timeout,
			},
			httpclient.NewClient(timeout),
			log,
		)
		startWorker(zeebeClient, vd.TaskType, cfg.Workers[vd.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[sl.TaskType].Enabled {
		handler := sl.NewHandler(
			&sl.Config{
				Timeout: time.Duration(cfg.Workers[sl.TaskType].Timeout) * time.Millisecond,
			},
			crmClient,
			log,
		)
		startWorker(zeebeClient, sl.TaskType, cfg.Workers[sl.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All 11 workers registered successfully")

	// --- Health & Metrics Server ---
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
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	if err := zeebeClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
