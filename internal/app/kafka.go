package app

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"tech-assigner/internal/config"
	"tech-assigner/internal/domain"
	"tech-assigner/internal/logx"
	"tech-assigner/internal/repository"
	"tech-assigner/internal/service/assigner"
	"tech-assigner/internal/transport/kafka"
)

// makeAssignmentAudit builds the handler that lands backend assignment
// events in the local audit trail. Record failures bubble up so the
// consumer redelivers; the trail's id conflict handling makes the
// redelivery harmless.
func makeAssignmentAudit(rec assigner.AuditRecorder, consumed prometheus.Counter) kafka.HandleFunc {
	return func(ctx context.Context, a domain.AssignmentAction) error {
		recCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		if err := rec.Record(recCtx, a); err != nil {
			return err
		}
		if consumed != nil {
			consumed.Inc()
		}
		return nil
	}
}

type kafkaHandlerIn struct {
	dig.In

	Repo     *repository.AuditRepo
	Consumed prometheus.Counter `name:"assignment_events_consumed_total"`
}

func newKafkaHandler(in kafkaHandlerIn) kafka.HandleFunc {
	return makeAssignmentAudit(in.Repo, in.Consumed)
}

func newKafkaConsumer(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
	return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		newKafkaHandler,
		newKafkaConsumer,
	)
}
