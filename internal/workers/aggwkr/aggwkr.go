package aggwkr

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/lotwise/backend/internal/app/appconfig"
	"github.com/lotwise/backend/internal/constant"
	"github.com/lotwise/backend/internal/pkg/observability"
	"github.com/lotwise/backend/internal/service"
)

type WorkerDeps struct {
	fx.In
	AggregationService *service.Aggregation
	NatsConn           *nats.Conn
	RedSync            *redsync.Redsync
}

type Worker struct {
	// count counts batches worker has completed so far
	count int

	// sep describes the separation time in-between different jobs
	sep time.Duration

	// interval describes the interval in-between different batches of job running
	interval time.Duration

	// timeout bounds a single refresh batch
	timeout time.Duration

	WorkerDeps
}

func Start(conf *appconfig.Config, deps WorkerDeps) {
	if !conf.WorkerEnabled {
		log.Info().Msg("worker is disabled due to configuration")
		return
	}
	w := &Worker{
		sep:        conf.WorkerSeparation,
		interval:   conf.WorkerInterval,
		timeout:    conf.WorkerTimeout,
		WorkerDeps: deps,
	}
	w.subscribeInventoryUpdates()
	w.do()
}

func (w *Worker) do() context.CancelFunc {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		for {
			w.refreshBatch(ctx)

			w.count++
			time.Sleep(w.interval)
		}
	}()

	return cancel
}

// refreshBatch recomputes the baseline summary under a distributed lock so
// only one instance does the heavy lifting per interval.
func (w *Worker) refreshBatch(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, w.timeout)
	defer cancel()

	log.Info().
		Int("count", w.count).
		Msg("worker batch started")

	mutex := w.RedSync.NewMutex("mutex:aggwkr:refresh", redsync.WithExpiry(w.timeout))
	if err := mutex.LockContext(ctx); err != nil {
		log.Info().Err(err).Msg("worker: another instance holds the refresh lock, skipping batch")
		return
	}
	defer func() {
		if _, err := mutex.UnlockContext(ctx); err != nil {
			log.Warn().Err(err).Msg("worker: failed to release refresh lock")
		}
	}()

	start := time.Now()
	if err := w.AggregationService.RefreshBaseline(ctx); err != nil {
		log.Error().Err(err).Msg("worker: failed to refresh baseline summary")
		return
	}
	observability.WorkerRefreshDuration.
		WithLabelValues("baseline").
		Set(time.Since(start).Seconds())

	time.Sleep(w.sep)

	log.Info().
		Int("count", w.count).
		Dur("duration", time.Since(start)).
		Msg("worker batch finished")
}

// subscribeInventoryUpdates flushes aggregation caches whenever the ingest
// pipeline lands a new inventory snapshot, then recomputes the baseline so
// the next request never pays for it.
func (w *Worker) subscribeInventoryUpdates() {
	_, err := w.NatsConn.Subscribe(constant.SubjectInventoryUpdated, func(msg *nats.Msg) {
		log.Info().
			Str("subject", msg.Subject).
			Msg("worker: inventory updated, flushing aggregation caches")

		if err := w.AggregationService.FlushCaches(); err != nil {
			log.Error().Err(err).Msg("worker: failed to flush aggregation caches")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
		defer cancel()
		if err := w.AggregationService.RefreshBaseline(ctx); err != nil {
			log.Error().Err(err).Msg("worker: failed to refresh baseline after inventory update")
		}
	})
	if err != nil {
		log.Error().Err(err).Msg("worker: failed to subscribe to inventory updates")
	}
}

func (w *Worker) Count() int {
	return w.count
}
