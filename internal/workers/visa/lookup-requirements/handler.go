// internal/workers/visa/lookup-requirements/handler.go
package lookuprequirements

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"visa-workers/internal/common/database"
	"visa-workers/internal/common/logger"
	"visa-workers/internal/common/metrics"
	"visa-workers/internal/visa/catalog"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "lookup-requirements"
)

var (
	ErrUnsupportedDestination = errors.New("UNSUPPORTED_DESTINATION")
)

type Handler struct {
	config   *Config
	catalogs map[string]*catalog.DestinationCatalog
	cache    *database.RedisClient
	logger   logger.Logger
}

// NewHandler wires the in-process catalog behind a Redis read-through cache.
// cache may be nil; lookups then always hit the catalog directly.
func NewHandler(config *Config, catalogs map[string]*catalog.DestinationCatalog, cache *database.RedisClient, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		catalogs: catalogs,
		cache:    cache,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "UNSUPPORTED_DESTINATION", err.Error())
		return
	}

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	destination := strings.ToLower(strings.TrimSpace(input.Destination))
	category := strings.TrimSpace(input.VisaCategory)

	cat, err := catalog.ForDestination(h.catalogs, destination)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedDestination, err)
	}

	// Category resolution never fails: unknown or empty names fall back to the
	// destination default, so the cache key is built from the resolved name.
	reqs := cat.RequirementsByCategory(category)

	if cached, ok := h.cacheGet(ctx, destination, reqs.Name); ok {
		metrics.CatalogCacheHits.WithLabelValues("hit").Inc()
		return &Output{
			Destination:  destination,
			VisaCategory: reqs.Name,
			Requirements: *cached,
			FromCache:    true,
		}, nil
	}
	metrics.CatalogCacheHits.WithLabelValues("miss").Inc()

	h.cacheSet(ctx, destination, reqs.Name, reqs)

	return &Output{
		Destination:  destination,
		VisaCategory: reqs.Name,
		Requirements: *reqs,
		FromCache:    false,
	}, nil
}

func cacheKey(destination, category string) string {
	return fmt.Sprintf("visa:requirements:%s:%s", destination, strings.ToLower(category))
}

// cacheGet degrades silently: a broken cache must never fail a lookup the
// catalog can answer.
func (h *Handler) cacheGet(ctx context.Context, destination, category string) (*catalog.CategoryRequirements, bool) {
	if h.cache == nil {
		return nil, false
	}

	raw, err := h.cache.Get(ctx, cacheKey(destination, category))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			h.logger.Warn("requirement cache read failed", map[string]interface{}{
				"error":       err,
				"destination": destination,
			})
		}
		return nil, false
	}

	var reqs catalog.CategoryRequirements
	if err := json.Unmarshal([]byte(raw), &reqs); err != nil {
		h.logger.Warn("requirement cache entry corrupt, ignoring", map[string]interface{}{
			"error":       err,
			"destination": destination,
		})
		return nil, false
	}
	return &reqs, true
}

func (h *Handler) cacheSet(ctx context.Context, destination, category string, reqs *catalog.CategoryRequirements) {
	if h.cache == nil {
		return
	}

	payload, err := json.Marshal(reqs)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, cacheKey(destination, category), payload, h.config.CacheTTL); err != nil {
		h.logger.Warn("requirement cache write failed", map[string]interface{}{
			"error":       err,
			"destination": destination,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, errorCode).Inc()

	_, _ = client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
