// internal/workers/visa/compose-pricing/handler.go
package composepricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"visa-workers/internal/common/logger"
	"visa-workers/internal/common/metrics"
	"visa-workers/internal/visa/eligibility"
	"visa-workers/internal/visa/pricing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "compose-pricing"
)

var (
	ErrPricingUnavailable = errors.New("PRICING_UNAVAILABLE")
)

type Handler struct {
	config *Config
	table  *pricing.Table
	logger logger.Logger
}

func NewHandler(config *Config, table *pricing.Table, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		table:  table,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "PRICING_UNAVAILABLE", err.Error())
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	visaType := eligibility.VisaTypeCode(strings.ToLower(strings.TrimSpace(input.VisaType)))
	tier := pricing.Tier(strings.ToLower(strings.TrimSpace(input.ServiceTier)))

	if visaType == "" {
		return nil, fmt.Errorf("%w: visaType is required", ErrPricingUnavailable)
	}
	if tier == "" {
		tier = pricing.TierStandard
	}

	// Entry falls back to the standard tier for a known visa type, so only a
	// visa type with no rows at all reaches the error path.
	entry, ok := h.table.Entry(visaType, tier)
	if !ok {
		return nil, fmt.Errorf("%w: no pricing for visa type %q", ErrPricingUnavailable, visaType)
	}

	breakdown := pricing.Compose(entry)

	h.logger.Info("pricing composed", map[string]interface{}{
		"visaType":    string(entry.VisaType),
		"serviceTier": string(entry.Tier),
		"total":       breakdown.Total.String(),
		"currency":    breakdown.Currency,
	})

	return &Output{
		VisaType:       string(entry.VisaType),
		ServiceTier:    string(entry.Tier),
		PriceBreakdown: breakdown,
	}, nil
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
