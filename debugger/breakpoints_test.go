package debugger_test

import (
	"reflect"
	"testing"

	"github.com/lookbusy1344/aarch64-emulator/debugger"
)

func TestBreakpointSet(t *testing.T) {
	bs := debugger.NewBreakpointSet()

	bs.Add(5)
	bs.Add(2)
	bs.Add(5) // idempotent

	if !bs.Has(5) || !bs.Has(2) || bs.Has(3) {
		t.Error("Has reports wrong membership")
	}
	if bs.Count() != 2 {
		t.Errorf("Count = %d, want 2", bs.Count())
	}
	if got := bs.Lines(); !reflect.DeepEqual(got, []int{2, 5}) {
		t.Errorf("Lines = %v, want sorted [2 5]", got)
	}

	if !bs.Remove(5) {
		t.Error("Remove of existing breakpoint should report true")
	}
	if bs.Remove(5) {
		t.Error("Remove of missing breakpoint should report false")
	}
	if bs.Has(5) {
		t.Error("breakpoint should be gone after Remove")
	}
}

func TestCommandHistory(t *testing.T) {
	h := debugger.NewCommandHistory(3)

	h.Add("run")
	h.Add("next")
	h.Add("next") // duplicate collapses
	h.Add("continue")

	if h.Size() != 3 {
		t.Errorf("Size = %d, want 3", h.Size())
	}

	if got := h.Previous(); got != "continue" {
		t.Errorf("Previous = %q, want continue", got)
	}
	if got := h.Previous(); got != "next" {
		t.Errorf("Previous = %q, want next", got)
	}
	if got := h.Next(); got != "continue" {
		t.Errorf("Next = %q, want continue", got)
	}
	if got := h.Next(); got != "" {
		t.Errorf("Next past the end = %q, want empty", got)
	}
}
