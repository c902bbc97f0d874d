package mask

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	m := New(70, true)
	if m.Len() != 70 {
		t.Errorf("Len() = %d, want 70", m.Len())
	}
	if m.SetCount() != 70 {
		t.Errorf("SetCount() = %d, want 70", m.SetCount())
	}

	empty := New(70, false)
	if empty.Any() {
		t.Error("new unset mask should have no set entries")
	}

	var zero Mask
	if zero.Len() != 0 || zero.Any() || len(zero.Indices()) != 0 {
		t.Error("zero mask should be empty")
	}
}

func TestSetUnset(t *testing.T) {
	m := New(130, false)
	m.Set(0)
	m.Set(64)
	m.Set(129)

	if got := m.Indices(); !slices.Equal(got, []int{0, 64, 129}) {
		t.Errorf("Indices() = %v", got)
	}

	m.Unset(64)
	if m.IsSet(64) {
		t.Error("entry 64 should be unset")
	}
	if m.SetCount() != 2 {
		t.Errorf("SetCount() = %d, want 2", m.SetCount())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := New(5, true)
	c := m.Clone()
	c.Unset(2)

	if !m.IsSet(2) {
		t.Error("Clone shares storage with the original")
	}
	if c.String() != "11011" {
		t.Errorf("String() = %q, want 11011", c.String())
	}
}

func TestAnd(t *testing.T) {
	a := New(4, true)
	b := New(4, false)
	b.Set(1)
	b.Set(3)

	got := a.And(b)
	if got.String() != "0101" {
		t.Errorf("And = %q, want 0101", got.String())
	}
	if a.String() != "1111" {
		t.Error("And must not modify its receiver")
	}
}

func TestOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	New(3, false).Set(3)
}
