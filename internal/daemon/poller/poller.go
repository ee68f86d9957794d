// Package poller implements the periodic status refresh cycle.
//
// A refresh queries four independent facets (service liveness, model
// inventory, GPU memory, context usage) and folds them into one immutable
// StatusSnapshot. Failures in one facet never abort the others: every
// external error degrades to a placeholder value, so Refresh never fails.
package poller

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/seanGSISG/ollama-tray/internal/models"
)

// Placeholder texts for degraded facets.
const (
	NotRespondingText = "Ollama not responding"
	NoContextText     = "-"
	NotQueriedText    = "-"
)

// ServiceManager reports the liveness of the managed service.
type ServiceManager interface {
	Status() models.ServiceStatus
}

// Inventory reads model and context state from the daemon API.
type Inventory interface {
	ListModels(ctx context.Context) ([]models.ModelSummary, error)
	ContextUsage(ctx context.Context) (used, size int, err error)
}

// GPUProber reads GPU memory usage from the host.
type GPUProber interface {
	MemoryText() string
}

// Poller produces StatusSnapshots on demand or on a timer.
// lastModelCount is owned exclusively by Refresh; there is no external writer.
type Poller struct {
	svc     ServiceManager
	inv     Inventory
	gpu     GPUProber
	timeout time.Duration
	debug   bool

	lastModelCount int
	busy           atomic.Bool
	intervalCh     chan time.Duration
}

// New creates a poller over the given collaborators. timeout bounds each
// daemon API call within a refresh.
func New(svc ServiceManager, inv Inventory, gpu GPUProber, timeout time.Duration, debug bool) *Poller {
	return &Poller{
		svc:        svc,
		inv:        inv,
		gpu:        gpu,
		timeout:    timeout,
		debug:      debug,
		intervalCh: make(chan time.Duration, 1),
	}
}

// Refresh runs one full status cycle and returns the snapshot. It never
// returns an error: all sub-failures are captured as degraded field values.
func (p *Poller) Refresh(ctx context.Context) *models.StatusSnapshot {
	status := p.svc.Status()
	if p.debug {
		log.Printf("Service %v", status)
	}

	modelList, modelsText := p.fetchModels(ctx)

	gpuText := NotQueriedText
	contextText := NoContextText
	if status == models.ServiceRunning {
		gpuText = p.gpu.MemoryText()
		contextText = p.fetchContext(ctx)
		if p.debug {
			log.Printf("GPU: %s, Context: %s", gpuText, contextText)
		}
	}

	// Notify on model-count changes only while the service is confirmed
	// running; lastModelCount does not advance while stopped.
	changed := false
	if status == models.ServiceRunning {
		changed = len(modelList) != p.lastModelCount
		p.lastModelCount = len(modelList)
	}

	return &models.StatusSnapshot{
		Service:           status,
		Models:            modelList,
		ModelsText:        modelsText,
		ModelCountChanged: changed,
		GPUText:           gpuText,
		ContextText:       contextText,
	}
}

// TryRefresh runs a refresh unless one is already in flight, in which case
// the tick is dropped. Refresh cycles are totally ordered and never overlap.
func (p *Poller) TryRefresh(ctx context.Context) (*models.StatusSnapshot, bool) {
	if !p.busy.CompareAndSwap(false, true) {
		return nil, false
	}
	defer p.busy.Store(false)
	return p.Refresh(ctx), true
}

// Run drives refresh cycles at the given interval until ctx is cancelled,
// handing each snapshot to onSnapshot. An immediate refresh runs before the
// first tick.
func (p *Poller) Run(ctx context.Context, interval time.Duration, onSnapshot func(*models.StatusSnapshot)) {
	if snap, ok := p.TryRefresh(ctx); ok {
		onSnapshot(snap)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-p.intervalCh:
			ticker.Reset(d)
			log.Printf("Refresh interval changed to %v", d)
		case <-ticker.C:
			if snap, ok := p.TryRefresh(ctx); ok {
				onSnapshot(snap)
			}
		}
	}
}

// SetInterval applies a new refresh interval to a running loop.
func (p *Poller) SetInterval(d time.Duration) {
	select {
	case p.intervalCh <- d:
	default:
	}
}

func (p *Poller) fetchModels(ctx context.Context) ([]models.ModelSummary, string) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	list, err := p.inv.ListModels(callCtx)
	if err != nil {
		// An unreachable daemon is expected whenever the service is down.
		if p.debug {
			log.Printf("Model inventory unavailable: %v", err)
		}
		return []models.ModelSummary{}, NotRespondingText
	}

	if len(list) == 0 {
		return list, "No models loaded"
	}
	return list, fmt.Sprintf("%d model(s) loaded", len(list))
}

func (p *Poller) fetchContext(ctx context.Context) string {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	used, size, err := p.inv.ContextUsage(callCtx)
	if err != nil {
		// Best-effort endpoint; older daemons don't serve it at all.
		return NoContextText
	}
	return fmt.Sprintf("%d/%d tokens", used, size)
}
