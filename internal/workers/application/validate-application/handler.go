// internal/workers/application/validate-application/handler.go
package validateapplication

import (
	"context"
	"encoding/json"

	"visa-workers/internal/common/logger"
	"visa-workers/internal/common/metrics"
	"visa-workers/internal/visa/application"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "validate-application"
)

type Handler struct {
	config    *Config
	validator *application.Validator
	logger    logger.Logger
}

func NewHandler(config *Config, validator *application.Validator, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		validator: validator,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		// A payload the validator cannot even interpret is a process defect,
		// not a user-correctable form error.
		h.failJob(client, job, "MALFORMED_PAYLOAD", err.Error())
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

// execute completes with the accumulated field errors rather than throwing:
// the process routes invalid applications back to the form, which needs the
// full error list to render.
func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	normalized, fieldErrors, err := h.validator.Validate(input.Application)
	if err != nil {
		return nil, err
	}

	if len(fieldErrors) > 0 {
		h.logger.Info("application rejected by validation", map[string]interface{}{
			"errorCount": len(fieldErrors),
		})
		return &Output{
			IsValid:          false,
			ValidationErrors: fieldErrors,
		}, nil
	}

	h.logger.Info("application validated", map[string]interface{}{
		"nationality": normalized.Nationality,
	})
	return &Output{
		IsValid:       true,
		ValidatedData: normalized,
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
