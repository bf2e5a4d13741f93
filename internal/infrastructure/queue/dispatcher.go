package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskboard/board-service/internal/core/domain"
	"github.com/taskboard/board-service/internal/core/ports"
	"github.com/taskboard/board-service/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	publishTimeout = 5 * time.Second
)

// Dispatcher fans stored notifications out to a fixed set of workers using
// consistent hashing on the recipient id, so each user receives their
// notifications in the order they were created.
type Dispatcher struct {
	workers   []chan domain.Notification
	publisher ports.NotificationPublisher
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher ports.NotificationPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.Notification, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands n to the worker responsible for its recipient. When that
// worker's buffer is full the notification is dropped from live delivery;
// it remains stored and is picked up on the client's next inbox fetch.
func (d *Dispatcher) Enqueue(n domain.Notification) {
	idx := d.shardIndex(n.RecipientID)
	select {
	case d.workers[idx] <- n:
		metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.NotificationsPublishedTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().
			Str("recipient_id", n.RecipientID).
			Int("worker_id", idx).
			Msg("notification queue full, live delivery skipped")
	}
}

// shardIndex maps a recipient id deterministically to a worker index.
func (d *Dispatcher) shardIndex(recipientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recipientID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Notification) {
	depth := metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))

			pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
			err := d.publisher.Publish(pubCtx, n)
			cancel()
			if err != nil {
				metrics.NotificationsPublishedTotal.WithLabelValues("failed").Inc()
				d.log.Error().Err(err).
					Str("notification_id", n.ID).
					Str("recipient_id", n.RecipientID).
					Int("worker_id", id).
					Msg("notification publish failed")
				continue
			}
			metrics.NotificationsPublishedTotal.WithLabelValues("published").Inc()
		}
	}
}
