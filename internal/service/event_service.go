package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/batch-intake-api/internal/models"
	"github.com/noah-isme/batch-intake-api/pkg/jobs"
	"github.com/noah-isme/batch-intake-api/pkg/middleware/requestid"
)

// EventApplicationSubmitted is the type of the event emitted after a successful intake.
const EventApplicationSubmitted = "application.submitted"

type eventProducer interface {
	Publish(ctx context.Context, key, value []byte) error
}

// ApplicationSubmittedEvent is the broker payload announcing a stored application.
type ApplicationSubmittedEvent struct {
	Type          string               `json:"type"`
	CandidateID   string               `json:"candidate_id"`
	FullName      string               `json:"full_name"`
	Email         string               `json:"email"`
	Qualification models.Qualification `json:"qualification"`
	Batch         string               `json:"batch"`
	Reference     string               `json:"reference"`
	SubmittedAt   time.Time            `json:"submitted_at"`
	RequestID     string               `json:"request_id,omitempty"`
}

// EventServiceConfig tunes the background publisher.
type EventServiceConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// EventService hands domain events to the broker on a background queue so that
// a slow or unavailable broker never affects the request that produced them.
type EventService struct {
	producer eventProducer
	queue    *jobs.Queue
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewEventService constructs an EventService. The queue is not running until Start.
func NewEventService(producer eventProducer, metrics *MetricsService, logger *zap.Logger, cfg EventServiceConfig) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &EventService{producer: producer, metrics: metrics, logger: logger}
	svc.queue = jobs.NewQueue("events", svc.handle, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return svc
}

// Start launches the publishing workers.
func (s *EventService) Start(ctx context.Context) {
	if s == nil {
		return
	}
	s.queue.Start(ctx)
}

// Stop halts the workers. Events still buffered are dropped.
func (s *EventService) Stop() {
	if s == nil {
		return
	}
	s.queue.Stop()
}

// ApplicationSubmitted schedules the announcement of a stored candidate. Failures
// are logged and never returned.
func (s *EventService) ApplicationSubmitted(ctx context.Context, candidate models.Candidate) {
	if s == nil || s.producer == nil {
		return
	}
	event := ApplicationSubmittedEvent{
		Type:          EventApplicationSubmitted,
		CandidateID:   candidate.ID,
		FullName:      candidate.FullName,
		Email:         candidate.Email,
		Qualification: candidate.Qualification,
		Batch:         candidate.Batch,
		Reference:     candidate.Reference,
		SubmittedAt:   candidate.CreatedAt,
		RequestID:     requestid.FromContext(ctx),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal event", zap.String("type", event.Type), zap.Error(err))
		return
	}
	job := jobs.Job{ID: candidate.ID, Type: event.Type, Key: []byte(candidate.ID), Payload: payload}
	if err := s.queue.Enqueue(job); err != nil {
		s.metrics.RecordEventPublish(false)
		s.logger.Warn("event not queued", zap.String("type", event.Type), zap.String("candidate_id", candidate.ID), zap.Error(err))
	}
}

func (s *EventService) handle(ctx context.Context, job jobs.Job) error {
	err := s.producer.Publish(ctx, job.Key, job.Payload)
	s.metrics.RecordEventPublish(err == nil)
	return err
}
