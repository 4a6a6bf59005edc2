package particles

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewStartsZeroed(t *testing.T) {
	c := New[float64](5)
	if c.Len() != 5 {
		t.Fatalf("expected length 5, got %d", c.Len())
	}
	for i, p := range c.Rows().All() {
		if p.State != 0 || p.Weight != 0 || p.Cluster != 0 {
			t.Errorf("row %d: expected zero particle, got %+v", i, p)
		}
	}
}

func TestAppend(t *testing.T) {
	var c Container[float64]
	for i := 0; i < 10; i++ {
		c.Append(float64(i), float64(i)*0.5, int64(i%3))
	}
	if c.Len() != 10 {
		t.Fatalf("expected length 10, got %d", c.Len())
	}
	p := c.Rows().At(7)
	if p.State != 7 || p.Weight != 3.5 || p.Cluster != 1 {
		t.Errorf("unexpected row 7: %+v", p)
	}
}

func TestResizeGrowthZeroFills(t *testing.T) {
	c := New[float64](4)
	for i := range c.States() {
		c.States()[i] = 9
		c.Weights()[i] = 9
		c.Clusters()[i] = 9
	}

	// Shrink and grow back within the same capacity. The reclaimed
	// rows must come back zeroed, not with their stale values.
	c.Resize(1)
	c.Resize(4)
	if c.Len() != 4 {
		t.Fatalf("expected length 4, got %d", c.Len())
	}
	for i := 1; i < 4; i++ {
		p := c.Rows().At(i)
		if p.State != 0 || p.Weight != 0 || p.Cluster != 0 {
			t.Errorf("row %d: expected zero particle after regrowth, got %+v", i, p)
		}
	}
	if c.Rows().At(0).Weight != 9 {
		t.Errorf("row 0 should survive the shrink")
	}
}

func TestClearKeepsCapacity(t *testing.T) {
	c := New[int](8)
	capBefore := c.Cap()
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty container, got length %d", c.Len())
	}
	if c.Cap() != capBefore {
		t.Errorf("expected capacity %d after Clear, got %d", capBefore, c.Cap())
	}
}

func TestReserve(t *testing.T) {
	c := New[int](2)
	c.States()[0], c.States()[1] = 1, 2
	c.Reserve(100)
	if c.Len() != 2 {
		t.Errorf("Reserve changed length to %d", c.Len())
	}
	if c.Cap() < 100 {
		t.Errorf("expected capacity >= 100, got %d", c.Cap())
	}
	if c.States()[0] != 1 || c.States()[1] != 2 {
		t.Errorf("Reserve lost existing values: %v", c.States()[:2])
	}
}

func TestColumnViewsWriteThrough(t *testing.T) {
	c := New[float64](3)

	// A write through one column view must be visible through the row
	// view and through a column view taken earlier.
	weights := c.Weights()
	c.Weights()[2] = 0.25
	if got := c.Rows().At(2).Weight; got != 0.25 {
		t.Errorf("expected row view to see weight 0.25, got %v", got)
	}
	if weights[2] != 0.25 {
		t.Errorf("expected earlier column view to see weight 0.25, got %v", weights[2])
	}

	c.Rows().Set(1, Particle[float64]{State: 4, Weight: 0.5, Cluster: 2})
	if c.States()[1] != 4 || c.Weights()[1] != 0.5 || c.Clusters()[1] != 2 {
		t.Errorf("row write not visible through columns")
	}
}

func TestRowsSwap(t *testing.T) {
	var c Container[string]
	c.Append("a", 0.1, 1)
	c.Append("b", 0.2, 2)
	c.Rows().Swap(0, 1)
	if c.States()[0] != "b" || c.Weights()[0] != 0.2 || c.Clusters()[0] != 2 {
		t.Errorf("unexpected row 0 after swap: %v %v %v", c.States()[0], c.Weights()[0], c.Clusters()[0])
	}
	if c.States()[1] != "a" {
		t.Errorf("unexpected row 1 after swap: %v", c.States()[1])
	}
}

func TestRowsAllStopsEarly(t *testing.T) {
	c := New[int](5)
	seen := 0
	for i := range c.Rows().All() {
		seen++
		if i == 2 {
			break
		}
	}
	if seen != 3 {
		t.Errorf("expected 3 rows before break, got %d", seen)
	}
}

func TestCopyFrom(t *testing.T) {
	var src Container[float64]
	for i := 0; i < 4; i++ {
		src.Append(float64(i), 1/float64(i+1), int64(i))
	}
	dst := New[float64](1)
	dst.CopyFrom(&src)

	if diff := cmp.Diff(src.Weights(), dst.Weights()); diff != "" {
		t.Errorf("weights mismatch (-src +dst):\n%s", diff)
	}
	if diff := cmp.Diff(src.States(), dst.States()); diff != "" {
		t.Errorf("states mismatch (-src +dst):\n%s", diff)
	}

	// The copy must not share storage.
	src.Weights()[0] = 99
	if dst.Weights()[0] == 99 {
		t.Errorf("CopyFrom aliased the source storage")
	}
}
