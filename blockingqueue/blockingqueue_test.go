package blockingqueue

import (
	"context"
	"runtime"
	"sync"
	"testing"
	"time"
)

func TestFIFO(t *testing.T) {
	q := New[int](false)
	if !q.IsEmpty() {
		t.Fatal("new queue should be empty")
	}
	q.Put(1)
	q.Put(2)
	q.Put(3)

	if q.Len() != 3 {
		t.Fatalf("len = %d want 3", q.Len())
	}
	if v, ok := q.Peek(); !ok || v != 1 {
		t.Fatalf("peek = %v,%v want 1,true", v, ok)
	}
	for i := 1; i <= 3; i++ {
		v, ok := q.TryTake()
		if !ok || v != i {
			t.Fatalf("trytake = %v,%v want %d,true", v, ok, i)
		}
	}
	if _, ok := q.TryTake(); ok {
		t.Fatal("expected empty after takes")
	}
}

func TestDedup(t *testing.T) {
	q := New[string](true)
	added := q.PutMany("a", "b", "a", "c", "b")
	if added != 3 {
		t.Fatalf("added = %d want 3", added)
	}
	if !q.Contains("a") || !q.Contains("b") || !q.Contains("c") {
		t.Fatal("expected all unique elements present")
	}
	got := q.ToSlice()
	want := []string{"a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch at %d: got %q want %q", i, got[i], want[i])
		}
	}
	// After removal, we can enqueue again
	q.TryTake()
	if !q.Put("a") {
		t.Fatal("expected put after take to succeed")
	}
}

func TestRemoveAndContains(t *testing.T) {
	q := New[int](true)
	q.PutMany(10, 20, 30)
	if !q.Remove(20) {
		t.Fatal("expected remove 20 true")
	}
	if q.Contains(20) {
		t.Fatal("expected 20 removed")
	}
	v, _ := q.TryTake()
	if v != 10 {
		t.Fatalf("want 10 got %d", v)
	}
	v, _ = q.TryTake()
	if v != 30 {
		t.Fatalf("want 30 got %d", v)
	}
}

func TestTakeBlocksAndWakes(t *testing.T) {
	q := New[string](true)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		v, err := q.Take(ctx)
		if err != nil || v != "x" {
			t.Errorf("take got (%q,%v)", v, err)
		}
	}()
	time.Sleep(10 * time.Millisecond)
	if !q.Put("x") {
		t.Fatal("expected put to add element")
	}
	<-done
}

func TestTakeContextCancel(t *testing.T) {
	q := New[int](false)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := q.Take(ctx)
	if !IsContextError(err) {
		t.Fatalf("expected context error, got %v", err)
	}
}

func TestTakeTimeout(t *testing.T) {
	q := New[int](false)
	start := time.Now()
	_, err := q.TakeTimeout(50 * time.Millisecond)
	if err != ErrDeadlineExceeded {
		t.Fatalf("expected deadline error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Fatalf("timed out after only %v", elapsed)
	}
	// The queue is immediately usable afterward.
	q.Put(1)
	if v, ok := q.TryTake(); !ok || v != 1 {
		t.Fatalf("trytake = %v,%v want 1,true", v, ok)
	}
}

func TestTakeN(t *testing.T) {
	q := New[int](false)
	got := make(chan []int, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		vs, err := q.TakeN(ctx, 3)
		if err != nil {
			t.Errorf("taken: %v", err)
		}
		got <- vs
	}()

	// The batch consumer stays blocked until all three are present.
	q.Put(1)
	q.Put(2)
	time.Sleep(10 * time.Millisecond)
	q.Put(3)

	vs := <-got
	for i, want := range []int{1, 2, 3} {
		if vs[i] != want {
			t.Fatalf("taken[%d] = %d want %d", i, vs[i], want)
		}
	}
}

// One producer pushes 1,2,3 one at a time; a consumer blocked on
// "non-empty" three times receives them in container order.
func TestConsumerSeesContainerOrder(t *testing.T) {
	q := New[int](false)
	got := make(chan int, 3)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for i := 0; i < 3; i++ {
			v, err := q.Take(ctx)
			if err != nil {
				t.Errorf("take: %v", err)
				return
			}
			got <- v
		}
		close(got)
	}()

	for i := 1; i <= 3; i++ {
		q.Put(i)
		time.Sleep(time.Millisecond)
	}

	want := 1
	for v := range got {
		if v != want {
			t.Fatalf("took %d want %d", v, want)
		}
		want++
	}
}

func TestStressMultiset(t *testing.T) {
	const producers = 4
	const consumers = 4
	const perProducer = 250
	const total = producers * perProducer

	q := New[int](false)
	seen := make(chan int, total)
	var wg sync.WaitGroup

	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Put(p*perProducer + i)
			}
		}(p)
	}
	for c := 0; c < consumers; c++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for i := 0; i < total/consumers; i++ {
				v, err := q.Take(ctx)
				if err != nil {
					t.Errorf("take: %v", err)
					return
				}
				seen <- v
			}
		}()
	}
	wg.Wait()
	close(seen)

	counts := make(map[int]int)
	for v := range seen {
		counts[v]++
	}
	if len(counts) != total {
		t.Fatalf("saw %d distinct values, want %d", len(counts), total)
	}
	for v, n := range counts {
		if n != 1 {
			t.Fatalf("value %d consumed %d times", v, n)
		}
	}
}

func TestHighConcurrency(t *testing.T) {
	q := New[int](true)
	workers := runtime.GOMAXPROCS(0) * 2
	total := 500
	var wg sync.WaitGroup
	// Consumers
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, err := q.TakeTimeout(200 * time.Millisecond)
				if err != nil {
					return
				}
				_ = v
			}
		}()
	}
	// Producers
	for i := 0; i < total; i++ {
		q.Put(i)
	}
	time.Sleep(50 * time.Millisecond)
	wg.Wait()
}
