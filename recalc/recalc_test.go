package recalc

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/etnz/proforma"
)

// waitState polls r until it reaches want.
func waitState(t *testing.T, r *Recalculator, want State) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for r.State() != want {
		if time.Now().After(deadline) {
			t.Fatalf("State() = %v, want %v", r.State(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRecalculator_Debounce(t *testing.T) {
	var calls atomic.Int32
	compute := func(ctx context.Context, a proforma.PropertyAssumptions) (proforma.ProFormaResults, error) {
		calls.Add(1)
		return Calculate(ctx, a)
	}
	r := New(50*time.Millisecond, compute, nil)
	defer r.Close()

	if r.State() != Idle {
		t.Errorf("State() = %v, want idle", r.State())
	}
	var last uint64
	for _, price := range []float64{100000, 200000, 300000} {
		g, err := r.Submit(proforma.PropertyAssumptions{PurchasePrice: price, HoldPeriodYears: 1})
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		last = g
	}
	if r.State() != Debouncing {
		t.Errorf("State() = %v, want debouncing", r.State())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := r.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if res.Generation != last {
		t.Errorf("Wait() generation = %d, want %d", res.Generation, last)
	}
	if res.Results.TotalEquityInvested != 300000 {
		t.Errorf("Wait() equity = %v, want the latest submission 300000", res.Results.TotalEquityInvested)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("compute ran %d times, want 1", got)
	}
	if r.State() != Done {
		t.Errorf("State() = %v, want done", r.State())
	}
}

func TestRecalculator_CancelsInFlight(t *testing.T) {
	var (
		mu        sync.Mutex
		cancelled []float64
	)
	compute := func(ctx context.Context, a proforma.PropertyAssumptions) (proforma.ProFormaResults, error) {
		if a.PurchasePrice == 1 {
			<-ctx.Done()
			mu.Lock()
			cancelled = append(cancelled, a.PurchasePrice)
			mu.Unlock()
			return proforma.ProFormaResults{}, ctx.Err()
		}
		return Calculate(ctx, a)
	}
	var logs bytes.Buffer
	r := New(time.Millisecond, compute, log.New(&logs, "", 0))
	defer r.Close()

	if _, err := r.Submit(proforma.PropertyAssumptions{PurchasePrice: 1}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	waitState(t, r, Computing)
	g, err := r.Submit(proforma.PropertyAssumptions{PurchasePrice: 2, HoldPeriodYears: 1})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := r.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if res.Generation != g || res.Err != nil {
		t.Errorf("Wait() = generation %d (err %v), want %d", res.Generation, res.Err, g)
	}
	if !strings.Contains(logs.String(), "generation 1 superseded by 2") {
		t.Errorf("log = %q, want a superseded line", logs.String())
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		mu.Lock()
		n := len(cancelled)
		mu.Unlock()
		if n == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("the superseded computation was not cancelled")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRecalculator_WaitErrors(t *testing.T) {
	r := New(time.Hour, nil, nil)
	if _, err := r.Wait(context.Background()); !errors.Is(err, ErrIdle) {
		t.Errorf("Wait() before Submit error = %v, want %v", err, ErrIdle)
	}

	if _, err := r.Submit(proforma.PropertyAssumptions{}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := r.Wait(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() while debouncing error = %v, want %v", err, context.DeadlineExceeded)
	}

	done := make(chan error, 1)
	go func() {
		_, err := r.Wait(context.Background())
		done <- err
	}()
	r.Close()
	select {
	case err := <-done:
		if !errors.Is(err, ErrClosed) {
			t.Errorf("Wait() after Close error = %v, want %v", err, ErrClosed)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Close() did not release Wait()")
	}
	if _, err := r.Submit(proforma.PropertyAssumptions{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Submit() after Close error = %v, want %v", err, ErrClosed)
	}
}

func TestState_String(t *testing.T) {
	for s, want := range map[State]string{Idle: "idle", Debouncing: "debouncing", Computing: "computing", Done: "done"} {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
