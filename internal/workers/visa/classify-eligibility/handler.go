// internal/workers/visa/classify-eligibility/handler.go
package classifyeligibility

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"visa-workers/internal/common/logger"
	"visa-workers/internal/common/metrics"
	"visa-workers/internal/visa/eligibility"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "classify-eligibility"
)

var (
	ErrInvalidTripDetails = errors.New("INVALID_TRIP_DETAILS")
)

type Handler struct {
	config     *Config
	classifier *eligibility.Classifier
	logger     logger.Logger
}

func NewHandler(config *Config, classifier *eligibility.Classifier, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		classifier: classifier,
		logger:     log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "INVALID_TRIP_DETAILS", err.Error())
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
	nationality := strings.ToUpper(strings.TrimSpace(input.Nationality))
	destination := strings.ToLower(strings.TrimSpace(input.Destination))
	purpose := strings.ToLower(strings.TrimSpace(input.Purpose))

	if nationality == "" || destination == "" || purpose == "" {
		return nil, fmt.Errorf("%w: nationality, destination and purpose are required", ErrInvalidTripDetails)
	}
	if input.PlannedDurationDays <= 0 {
		return nil, fmt.Errorf("%w: plannedDurationDays must be positive", ErrInvalidTripDetails)
	}

	// Classification is total: an unknown destination is a terminal outcome
	// the process gateway routes on, not a job failure.
	decision := h.classifier.Classify(eligibility.Input{
		Nationality:         nationality,
		DestinationGroup:    destination,
		Purpose:             eligibility.Purpose(purpose),
		PlannedDurationDays: input.PlannedDurationDays,
	})

	metrics.EligibilityDecisions.WithLabelValues(destination, string(decision.Outcome)).Inc()

	h.logger.Info("eligibility classified", map[string]interface{}{
		"nationality": nationality,
		"destination": destination,
		"purpose":     purpose,
		"outcome":     decision.Outcome,
		"visaType":    decision.VisaType,
		"matchedRule": decision.MatchedRule,
	})

	return &Output{
		Outcome:     string(decision.Outcome),
		VisaType:    string(decision.VisaType),
		MatchedRule: decision.MatchedRule,
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
