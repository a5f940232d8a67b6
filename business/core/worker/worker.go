// Package worker implements the background workflows of the explorer, which
// today is following the chain tip and announcing new blocks.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ardanlabs/blockexplorer/business/data/node"
)

// EventTip is the event type published when the chain tip moves.
const EventTip = "tip"

// EventHandler defines a function that is called when events
// occur in the processing of the workflows.
type EventHandler func(v string, args ...any)

// TipFetcher represents the behavior required to read the chain tip.
type TipFetcher interface {
	Tip(ctx context.Context) (node.Tip, error)
}

// Publisher represents the behavior required to announce events.
type Publisher interface {
	Send(kind string, data any) error
}

// Config represents the mandatory settings for the worker.
type Config struct {
	Node      TipFetcher
	Publisher Publisher
	Interval  time.Duration
	Timeout   time.Duration
	OnNewTip  func(tip node.Tip)
	EvHandler EventHandler
}

// Worker manages the tip polling workflow.
type Worker struct {
	node      TipFetcher
	publisher Publisher
	onNewTip  func(tip node.Tip)
	timeout   time.Duration
	ticker    *time.Ticker
	wg        sync.WaitGroup
	shut      chan struct{}
	evHandler EventHandler

	mu  sync.RWMutex
	tip node.Tip
}

// Run creates a worker and starts up all the background processes.
func Run(cfg Config) *Worker {
	ev := cfg.EvHandler
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	interval := cfg.Interval
	if interval <= 0 {
		interval = 15 * time.Second
	}

	w := Worker{
		node:      cfg.Node,
		publisher: cfg.Publisher,
		onNewTip:  cfg.OnNewTip,
		timeout:   cfg.Timeout,
		ticker:    time.NewTicker(interval),
		shut:      make(chan struct{}),
		evHandler: ev,
	}

	// Pick up the current tip before starting any support G's.
	w.pollTip()

	// Load the set of operations we need to run.
	operations := []func(){
		w.tipOperations,
	}

	// Set waitgroup to match the number of G's we need for the set
	// of operations we have.
	g := len(operations)
	w.wg.Add(g)

	// We don't want to return until we know all the G's are up and running.
	hasStarted := make(chan bool)

	// Start all the operational G's.
	for _, op := range operations {
		go func(op func()) {
			defer w.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	// Wait for the G's to report they are running.
	for i := 0; i < g; i++ {
		<-hasStarted
	}

	return &w
}

// Shutdown terminates the goroutines performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: stop ticker")
	w.ticker.Stop()

	w.evHandler("worker: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()
}

// Tip returns the last tip the worker observed.
func (w *Worker) Tip() node.Tip {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return w.tip
}

// =============================================================================

// tipOperations handles polling the node for the chain tip.
func (w *Worker) tipOperations() {
	w.evHandler("worker: tipOperations: G started")
	defer w.evHandler("worker: tipOperations: G completed")

	for {
		select {
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.pollTip()
			}
		case <-w.shut:
			w.evHandler("worker: tipOperations: received shut signal")
			return
		}
	}
}

// pollTip reads the tip and announces it when the height or hash changed.
func (w *Worker) pollTip() {
	ctx := context.Background()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	tip, err := w.node.Tip(ctx)
	if err != nil {
		w.evHandler("worker: pollTip: ERROR: %s", err)
		return
	}

	w.mu.Lock()
	prev := w.tip
	changed := tip.Height != prev.Height || tip.Hash.Hex() != prev.Hash.Hex()
	if changed {
		w.tip = tip
	}
	w.mu.Unlock()

	if !changed {
		return
	}

	w.evHandler("worker: pollTip: new tip: height[%d] hash[%s]", tip.Height, tip.Hash)

	if w.onNewTip != nil {
		w.onNewTip(tip)
	}

	if w.publisher != nil {
		if err := w.publisher.Send(EventTip, tip); err != nil {
			w.evHandler("worker: pollTip: publish: ERROR: %s", err)
		}
	}
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
