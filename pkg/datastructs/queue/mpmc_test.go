package queue

import (
	"sync"
	"sync/atomic"
	"testing"
)

// =============================================================================
// Constructor Tests
// =============================================================================

func TestNewMPMC(t *testing.T) {
	tests := []struct {
		name         string
		capacity     int
		wantCapacity uint64
	}{
		{"power_of_two", 16, 16},
		{"non_power_of_two_rounds_up", 100, 128},
		{"zero_uses_minimum", 0, 2},
		{"one_uses_minimum", 1, 2},
		{"negative_uses_minimum", -5, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewMPMC[int](tt.capacity)
			if got := q.Capacity(); got != tt.wantCapacity {
				t.Errorf("Capacity() = %d, want %d", got, tt.wantCapacity)
			}
			if !q.IsEmpty() {
				t.Error("new queue should be empty")
			}
		})
	}
}

// =============================================================================
// Enqueue / Dequeue Tests
// =============================================================================

func TestMPMC_Enqueue(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		items    []int
		wantOk   []bool
	}{
		{"single_item", 4, []int{42}, []bool{true}},
		{"fill_to_capacity", 4, []int{1, 2, 3, 4}, []bool{true, true, true, true}},
		{"exceed_capacity", 4, []int{1, 2, 3, 4, 5}, []bool{true, true, true, true, false}},
		{"zero_value", 4, []int{0, 0}, []bool{true, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := NewMPMC[int](tt.capacity)
			for i, item := range tt.items {
				if got := q.Enqueue(item); got != tt.wantOk[i] {
					t.Errorf("Enqueue(%d) = %v, want %v", item, got, tt.wantOk[i])
				}
			}
		})
	}
}

func TestMPMC_DequeueEmpty(t *testing.T) {
	q := NewMPMC[int](4)
	v, ok := q.Dequeue()
	if ok || v != 0 {
		t.Errorf("Dequeue() on empty = (%d, %v), want (0, false)", v, ok)
	}
}

func TestMPMC_FIFOAcrossLaps(t *testing.T) {
	q := NewMPMC[int](4)

	// Several laps over the ring exercise the turn counters.
	for lap := 0; lap < 3; lap++ {
		for i := 0; i < 4; i++ {
			if !q.Enqueue(lap*10 + i) {
				t.Fatalf("lap %d: Enqueue(%d) failed", lap, i)
			}
		}
		if !q.IsFull() {
			t.Errorf("lap %d: queue should be full", lap)
		}
		for i := 0; i < 4; i++ {
			v, ok := q.Dequeue()
			if !ok || v != lap*10+i {
				t.Errorf("lap %d: Dequeue() = (%d, %v), want (%d, true)", lap, v, ok, lap*10+i)
			}
		}
	}
}

func TestMPMC_PointerItems(t *testing.T) {
	q := NewMPMC[*int](4)

	val := 42
	q.Enqueue(&val)
	q.Enqueue(nil)

	v, ok := q.Dequeue()
	if !ok || v == nil || *v != 42 {
		t.Errorf("Dequeue pointer failed")
	}
	v, ok = q.Dequeue()
	if !ok || v != nil {
		t.Errorf("Dequeue nil pointer = (%v, %v), want (nil, true)", v, ok)
	}
}

// =============================================================================
// Len / ToSlice Tests
// =============================================================================

func TestMPMC_Len(t *testing.T) {
	q := NewMPMC[int](8)
	if n := q.Len(); n != 0 {
		t.Errorf("Len() on empty = %d, want 0", n)
	}
	for i := 1; i <= 3; i++ {
		q.Enqueue(i)
	}
	if n := q.Len(); n != 3 {
		t.Errorf("Len() after 3 enqueues = %d, want 3", n)
	}
	q.Dequeue()
	if n := q.Len(); n != 2 {
		t.Errorf("Len() after dequeue = %d, want 2", n)
	}
}

func TestMPMC_ToSlice(t *testing.T) {
	q := NewMPMC[int](4)
	if got := q.ToSlice(); len(got) != 0 {
		t.Errorf("ToSlice() on empty = %v, want []", got)
	}

	q.Enqueue(1)
	q.Enqueue(2)
	q.Enqueue(3)
	q.Dequeue()
	q.Enqueue(4)
	q.Enqueue(5) // wraps

	want := []int{2, 3, 4, 5}
	got := q.ToSlice()
	if len(got) != len(want) {
		t.Fatalf("ToSlice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToSlice()[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	// Snapshot does not consume.
	if n := q.Len(); n != 4 {
		t.Errorf("Len() after ToSlice = %d, want 4", n)
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestMPMC_MixedProducerConsumer(t *testing.T) {
	q := NewMPMC[int](64)

	const producers = 4
	const itemsPerProducer = 500

	var wg sync.WaitGroup
	var consumed atomic.Int64
	var sum atomic.Int64

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < itemsPerProducer; i++ {
				for !q.Enqueue(1) {
					// Retry until a consumer frees a slot
				}
			}
		}(p)
	}

	total := int64(producers * itemsPerProducer)
	for c := 0; c < 4; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for consumed.Load() < total {
				if v, ok := q.Dequeue(); ok {
					sum.Add(int64(v))
					consumed.Add(1)
				}
			}
		}()
	}

	wg.Wait()

	if got := sum.Load(); got != total {
		t.Errorf("sum of dequeued = %d, want %d", got, total)
	}
	if !q.IsEmpty() {
		t.Errorf("queue should be empty, Len() = %d", q.Len())
	}
}

func TestMPMC_ToSliceDuringTraffic(t *testing.T) {
	q := NewMPMC[int](32)
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				if q.Enqueue(7) {
					q.Dequeue()
				}
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		for _, v := range q.ToSlice() {
			if v != 7 {
				t.Fatalf("ToSlice returned torn value %d", v)
			}
		}
	}
	close(done)
	wg.Wait()
}
