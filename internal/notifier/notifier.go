// Package notifier batches activity events and relays them to the
// widget/push endpoint so home-screen streak widgets refresh promptly.
package notifier

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"devotional-api/internal/config"

	"go.uber.org/zap"
)

// Event describes one piece of user activity worth relaying.
type Event struct {
	UserID     string    `json:"user_id"`
	Kind       string    `json:"kind"` // "completion", "journal", or "bookmark"
	OccurredAt time.Time `json:"occurred_at"`
}

// Notifier buffers events and controls the relay lifecycle.
type Notifier interface {
	Add(ev Event)
	Start()
	Stop()
}

type notifier struct {
	log    *zap.Logger
	cfg    *config.Config
	client *http.Client
	events []Event
	mu     sync.Mutex
	ticker *time.Ticker
	quit   chan struct{}
}

// New initializes a Notifier flushing on the configured size and interval.
func New(cfg *config.Config, logger *zap.Logger) Notifier {
	return &notifier{
		log:    logger,
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
		quit:   make(chan struct{}),
		ticker: time.NewTicker(cfg.BatchInterval),
	}
}

// Add appends an event to the buffer, flushing early once the batch is full.
func (n *notifier) Add(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	if len(n.events) >= n.cfg.BatchSize {
		go n.flush()
	}
}

// Start runs the periodic flush loop until Stop is called.
func (n *notifier) Start() {
	for {
		select {
		case <-n.ticker.C:
			n.flush()
		case <-n.quit:
			n.flush()
			n.ticker.Stop()
			return
		}
	}
}

// Stop flushes any buffered events and shuts the loop down.
func (n *notifier) Stop() {
	close(n.quit)
}

func (n *notifier) flush() {
	n.mu.Lock()
	if len(n.events) == 0 {
		n.mu.Unlock()
		return
	}
	batch := n.events
	n.events = nil
	n.mu.Unlock()

	payload, err := json.Marshal(batch)
	if err != nil {
		n.log.Error("failed to marshal event batch", zap.Error(err))
		return
	}

	start := time.Now()
	var resp *http.Response
	for i := 1; i <= 3; i++ {
		req, _ := http.NewRequest(http.MethodPost, n.cfg.RelayEndpoint, bytes.NewBuffer(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err = n.client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				break
			}
		}
		n.log.Warn("relay POST failed", zap.Int("attempt", i), zap.Error(err))
		time.Sleep(n.cfg.RetryBackoff)
	}

	if err != nil || resp.StatusCode >= 300 {
		n.log.Error("event batch dropped after 3 attempts", zap.Int("size", len(batch)), zap.Error(err))
		return
	}

	n.log.Info("event batch relayed",
		zap.Int("size", len(batch)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))
}
