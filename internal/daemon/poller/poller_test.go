package poller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seanGSISG/ollama-tray/internal/models"
)

type fakeService struct {
	status  models.ServiceStatus
	blockCh chan struct{} // when set, Status blocks until the channel closes
}

func (f *fakeService) Status() models.ServiceStatus {
	if f.blockCh != nil {
		<-f.blockCh
	}
	return f.status
}

type fakeInventory struct {
	models    []models.ModelSummary
	listErr   error
	ctxUsed   int
	ctxSize   int
	ctxErr    error
	listCalls int
	ctxCalls  int
}

func (f *fakeInventory) ListModels(ctx context.Context) ([]models.ModelSummary, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.models, nil
}

func (f *fakeInventory) ContextUsage(ctx context.Context) (int, int, error) {
	f.ctxCalls++
	if f.ctxErr != nil {
		return 0, 0, f.ctxErr
	}
	return f.ctxUsed, f.ctxSize, nil
}

type fakeGPU struct {
	text  string
	calls int
}

func (f *fakeGPU) MemoryText() string {
	f.calls++
	return f.text
}

func summaries(n int) []models.ModelSummary {
	out := make([]models.ModelSummary, n)
	for i := range out {
		out[i] = models.ModelSummary{Name: "m", SizeBytes: 1}
	}
	return out
}

func TestRefreshDaemonUnreachable(t *testing.T) {
	// Service liveness is independent of daemon reachability.
	svc := &fakeService{status: models.ServiceRunning}
	inv := &fakeInventory{listErr: errors.New("connection refused"), ctxErr: errors.New("connection refused")}
	gpu := &fakeGPU{text: "512 MiB / 8192 MiB"}

	p := New(svc, inv, gpu, time.Second, false)
	snap := p.Refresh(context.Background())

	assert.Equal(t, models.ServiceRunning, snap.Service)
	assert.Empty(t, snap.Models)
	assert.Equal(t, NotRespondingText, snap.ModelsText)
	assert.Equal(t, NoContextText, snap.ContextText)
}

func TestRefreshStoppedSkipsGPUAndContext(t *testing.T) {
	svc := &fakeService{status: models.ServiceStopped}
	inv := &fakeInventory{models: summaries(2)}
	gpu := &fakeGPU{text: "should not appear"}

	p := New(svc, inv, gpu, time.Second, false)
	snap := p.Refresh(context.Background())

	assert.Equal(t, models.ServiceStopped, snap.Service)
	assert.Zero(t, gpu.calls)
	assert.Zero(t, inv.ctxCalls)
	assert.Equal(t, NotQueriedText, snap.GPUText)
	assert.Equal(t, NoContextText, snap.ContextText)
	assert.False(t, snap.ModelCountChanged)
}

func TestModelCountChangeSequence(t *testing.T) {
	svc := &fakeService{status: models.ServiceRunning}
	inv := &fakeInventory{}
	gpu := &fakeGPU{text: "-"}
	p := New(svc, inv, gpu, time.Second, false)

	counts := []int{0, 0, 3, 3, 3, 5}
	want := []bool{false, false, true, false, false, true}

	for i, n := range counts {
		inv.models = summaries(n)
		snap := p.Refresh(context.Background())
		assert.Equalf(t, want[i], snap.ModelCountChanged, "refresh %d (count %d)", i, n)
	}
}

func TestModelCountNotAdvancedWhileStopped(t *testing.T) {
	svc := &fakeService{status: models.ServiceRunning}
	inv := &fakeInventory{models: summaries(2)}
	p := New(svc, inv, &fakeGPU{}, time.Second, false)

	snap := p.Refresh(context.Background())
	require.True(t, snap.ModelCountChanged) // 0 -> 2

	// Service goes down; inventory empties, but lastModelCount must hold.
	svc.status = models.ServiceStopped
	inv.models = nil
	snap = p.Refresh(context.Background())
	require.False(t, snap.ModelCountChanged)

	// Back up with the same two models: no change to report.
	svc.status = models.ServiceRunning
	inv.models = summaries(2)
	snap = p.Refresh(context.Background())
	assert.False(t, snap.ModelCountChanged)
}

func TestRefreshIdempotent(t *testing.T) {
	svc := &fakeService{status: models.ServiceRunning}
	inv := &fakeInventory{models: summaries(3), ctxUsed: 10, ctxSize: 100}
	gpu := &fakeGPU{text: "1 MiB / 2 MiB"}
	p := New(svc, inv, gpu, time.Second, false)

	first := p.Refresh(context.Background())
	require.True(t, first.ModelCountChanged)

	second := p.Refresh(context.Background())
	third := p.Refresh(context.Background())
	assert.Equal(t, second, third)
}

func TestRefreshModelsTexts(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  string
	}{
		{name: "none", count: 0, want: "No models loaded"},
		{name: "some", count: 4, want: "4 model(s) loaded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(&fakeService{status: models.ServiceRunning},
				&fakeInventory{models: summaries(tt.count), ctxErr: errors.New("no endpoint")},
				&fakeGPU{}, time.Second, false)
			snap := p.Refresh(context.Background())
			assert.Equal(t, tt.want, snap.ModelsText)
		})
	}
}

func TestTryRefreshSkipsWhileBusy(t *testing.T) {
	blockCh := make(chan struct{})
	svc := &fakeService{status: models.ServiceRunning, blockCh: blockCh}
	p := New(svc, &fakeInventory{}, &fakeGPU{}, time.Second, false)

	started := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		close(started)
		_, ok := p.TryRefresh(context.Background())
		assert.True(t, ok)
		close(finished)
	}()

	<-started
	// Wait until the first refresh is inside the blocked Status call.
	require.Eventually(t, func() bool {
		return p.busy.Load()
	}, time.Second, time.Millisecond)

	_, ok := p.TryRefresh(context.Background())
	assert.False(t, ok, "second refresh must be skipped while one is in flight")

	close(blockCh)
	<-finished

	_, ok = p.TryRefresh(context.Background())
	assert.True(t, ok, "refresh must run again once the poller is idle")
}

func TestRunDeliversSnapshots(t *testing.T) {
	svc := &fakeService{status: models.ServiceRunning}
	p := New(svc, &fakeInventory{models: summaries(1)}, &fakeGPU{}, time.Second, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapCh := make(chan *models.StatusSnapshot, 4)
	go p.Run(ctx, 10*time.Millisecond, func(s *models.StatusSnapshot) {
		select {
		case snapCh <- s:
		default:
		}
	})

	select {
	case snap := <-snapCh:
		assert.Equal(t, models.ServiceRunning, snap.Service)
	case <-time.After(time.Second):
		t.Fatal("no snapshot delivered")
	}
}
