package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"swiftship/internal/config"
	"swiftship/internal/gateway/partner"
	"swiftship/internal/logx"
	"swiftship/internal/repository"
	"swiftship/internal/service/shipments"
	"swiftship/internal/transport/kafka"
)

// MustBuildWorkerContainer builds the DI container for the partner-events
// worker.
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

// MustBuildWorker builds and returns the worker dig container.
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

type partnerGatewayIn struct {
	dig.In
	Cfg     *config.Config
	Logger  logx.Logger
	Retries prometheus.Counter `name:"gateway_retries_total"`
}

func newPartnerGateway(in partnerGatewayIn) *partner.RetryingGateway {
	next := partner.NewHTTPGateway(in.Cfg.Partner.BaseURL, &http.Client{Timeout: 10 * time.Second})
	if next == nil {
		return nil
	}
	return partner.NewRetryingGateway(next, in.Logger, in.Retries, partner.RetryConfig{
		MaxAttempts: in.Cfg.Partner.MaxAttempts,
		BaseDelay:   in.Cfg.Partner.BaseDelay,
		MaxDelay:    in.Cfg.Partner.MaxDelay,
	})
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		repository.NewBookingRepo,
		repository.NewDriverRepo,
		func(b *repository.BookingRepo, d *repository.DriverRepo, logger logx.Logger) *shipments.Processor {
			return shipments.NewProcessor(b, d, logger)
		},
		newPartnerGateway,
		func(p *shipments.Processor, gw *partner.RetryingGateway) kafka.HandleFunc {
			if gw == nil {
				return makeShipmentsKafka(p, nil)
			}
			return makeShipmentsKafka(p, gw)
		},
		func(cfg *config.Config, logger logx.Logger, h kafka.HandleFunc) (*kafka.Consumer, error) {
			return kafka.NewConsumer(logger, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, h)
		},
	)
}
