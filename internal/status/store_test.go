package status

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestNewStore(t *testing.T) {
	s := NewStore()

	snap := s.Snapshot()
	if snap.SaveStatus != Saved {
		t.Errorf("SaveStatus = %q, want %q", snap.SaveStatus, Saved)
	}
	if !snap.LastSaved.IsZero() {
		t.Errorf("LastSaved = %v, want zero", snap.LastSaved)
	}
	if snap.CurrentFile != "" || snap.Content != "" || snap.Loading {
		t.Errorf("unexpected initial state: %+v", snap)
	}
}

func TestStore_SetSaveStatus(t *testing.T) {
	clock := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s := NewStore(WithClock(func() time.Time { return clock }))

	t.Run("saving does not stamp", func(t *testing.T) {
		s.SetSaveStatus(Saving)
		if s.SaveStatus() != Saving {
			t.Errorf("SaveStatus = %q, want %q", s.SaveStatus(), Saving)
		}
		if !s.LastSaved().IsZero() {
			t.Errorf("LastSaved = %v, want zero", s.LastSaved())
		}
	})

	t.Run("saved stamps transition time", func(t *testing.T) {
		clock = clock.Add(5 * time.Second)
		s.SetSaveStatus(Saved)
		if !s.LastSaved().Equal(clock) {
			t.Errorf("LastSaved = %v, want %v", s.LastSaved(), clock)
		}
	})

	t.Run("error keeps previous stamp", func(t *testing.T) {
		prev := s.LastSaved()
		clock = clock.Add(time.Minute)
		s.SetSaveStatus(Error)
		if s.SaveStatus() != Error {
			t.Errorf("SaveStatus = %q, want %q", s.SaveStatus(), Error)
		}
		if !s.LastSaved().Equal(prev) {
			t.Errorf("LastSaved = %v, want %v", s.LastSaved(), prev)
		}
	})

	t.Run("repeated saved restamps", func(t *testing.T) {
		s.SetSaveStatus(Saved)
		clock = clock.Add(time.Second)
		s.SetSaveStatus(Saved)
		if !s.LastSaved().Equal(clock) {
			t.Errorf("LastSaved = %v, want %v", s.LastSaved(), clock)
		}
	})
}

func TestStore_Setters(t *testing.T) {
	s := NewStore()

	s.SetCurrentFile("todo")
	s.SetContent("milk\neggs")
	s.SetLoading(true)

	if s.CurrentFile() != "todo" {
		t.Errorf("CurrentFile = %q, want %q", s.CurrentFile(), "todo")
	}
	if s.Content() != "milk\neggs" {
		t.Errorf("Content = %q, want %q", s.Content(), "milk\neggs")
	}
	if !s.Loading() {
		t.Error("Loading = false, want true")
	}

	s.SetLoading(false)
	if s.Loading() {
		t.Error("Loading = true, want false")
	}
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore()

	var mu sync.Mutex
	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		mu.Lock()
		got = append(got, snap)
		mu.Unlock()
	})

	s.SetContent("a")
	s.SetSaveStatus(Error)

	mu.Lock()
	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if got[0].Content != "a" {
		t.Errorf("first snapshot Content = %q, want %q", got[0].Content, "a")
	}
	if got[1].SaveStatus != Error {
		t.Errorf("second snapshot SaveStatus = %q, want %q", got[1].SaveStatus, Error)
	}
	mu.Unlock()

	unsubscribe()
	s.SetContent("b")

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 2 {
		t.Errorf("notifications after unsubscribe = %d, want 2", len(got))
	}
}

func TestStore_SubscriberMayReadStore(t *testing.T) {
	s := NewStore()

	var seen string
	s.Subscribe(func(Snapshot) {
		seen = s.Content()
	})

	s.SetContent("reentrant")

	if seen != "reentrant" {
		t.Errorf("seen = %q, want %q", seen, "reentrant")
	}
}

func TestStore_NotificationsFollowMutationOrder(t *testing.T) {
	s := NewStore()

	var mu sync.Mutex
	var mismatches int
	s.Subscribe(func(snap Snapshot) {
		// No other mutation may land between this one and its notification
		cur := s.Snapshot()
		if cur.Content != snap.Content || cur.SaveStatus != snap.SaveStatus {
			mu.Lock()
			mismatches++
			mu.Unlock()
		}
	})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if i%2 == 0 {
					s.SetSaveStatus(Saving)
				} else {
					s.SetSaveStatus(Saved)
				}
				s.SetContent(fmt.Sprintf("%d-%d", g, i))
			}
		}(g)
	}
	wg.Wait()

	if mismatches != 0 {
		t.Errorf("out-of-order notifications = %d, want 0", mismatches)
	}
}

