package richgui

import "testing"

func TestFrameStoreCleanup(t *testing.T) {
	s := NewFrameStore[int]()
	s.Cleanup(1)
	*s.Get(1, 5) += 1
	s.Get(2, 0)

	s.Cleanup(2)
	if got := s.GetIfExists(1); got == nil || *got != 6 {
		t.Fatalf("Expected state 6 kept for one frame, got %v", got)
	}
	s.Get(2, 0)

	s.Cleanup(3)
	if s.GetIfExists(1) != nil {
		t.Error("Expected unused state to be dropped")
	}
	if s.GetIfExists(2) == nil {
		t.Error("Expected used state to be kept")
	}
	if s.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", s.Len())
	}
}

func TestFrameStoreSetDelete(t *testing.T) {
	s := NewFrameStore[string]()
	s.Set(1, "a")
	if got := *s.Get(1, "default"); got != "a" {
		t.Errorf("Expected %q, got %q", "a", got)
	}
	s.Delete(1)
	if s.GetIfExists(1) != nil {
		t.Error("Expected Delete to remove the entry")
	}
	s.Set(2, "b")
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Expected Clear to empty the store, got %d", s.Len())
	}
}
