package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Khursands/Online-Pharmacy/internal/events"
	"github.com/Khursands/Online-Pharmacy/internal/repository"
	"github.com/Khursands/Online-Pharmacy/internal/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderPlaced
	err    error
}

func (p *recordingPublisher) PublishOrderPlaced(_ context.Context, evt events.OrderPlaced) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type recordingDeleter struct {
	mu   sync.Mutex
	keys []string
	done chan struct{}
}

func newRecordingDeleter() *recordingDeleter { return &recordingDeleter{done: make(chan struct{}, 64)} }

func (d *recordingDeleter) Delete(_ context.Context, keys ...string) error {
	d.mu.Lock()
	d.keys = append(d.keys, keys...)
	d.mu.Unlock()
	d.done <- struct{}{}
	return nil
}

func (d *recordingDeleter) Keys() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.keys...)
}

func (d *recordingDeleter) wait(t *testing.T) {
	t.Helper()
	select {
	case <-d.done:
	case <-time.After(2 * time.Second):
		t.Fatal("invalidation not processed")
	}
}

type fixture struct {
	db        *gorm.DB
	carts     repository.CartRepository
	orders    repository.OrderRepository
	medicines repository.MedicineRepository
}

func newFixture(t *testing.T) *fixture {
	db := testutil.NewDB(t)
	return &fixture{
		db:        db,
		carts:     repository.NewCartRepository(db),
		orders:    repository.NewOrderRepository(db),
		medicines: repository.NewMedicineRepository(db),
	}
}
