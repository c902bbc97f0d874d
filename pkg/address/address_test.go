package address

import (
	"errors"
	"slices"
	"testing"

	"github.com/mash-protocol/mash-ua/pkg/ua"
)

func TestAbsoluteAddress(t *testing.T) {
	a := FromNodeID(ua.NewNumericNodeID(2, 5), "urn:srv")

	if !a.IsAbsolute() || a.IsRelative() || !a.IsValid() {
		t.Fatalf("unexpected predicates for %s", a)
	}
	if got := a.ExpandedNodeID(); got.ServerURI != "urn:srv" || got.NodeID != ua.NewNumericNodeID(2, 5) {
		t.Errorf("ExpandedNodeID() = %s", got)
	}
	if a.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", a.Depth())
	}
	if a.String() != "ns=2;i=5@urn:srv" {
		t.Errorf("String() = %q", a.String())
	}
}

func TestRelativeAddress(t *testing.T) {
	start := FromNodeID(ua.ObjectsFolder, "urn:srv")
	path := ua.MustParseRelativePath("/2:Boiler")
	a := Relative(start, path)

	if !a.IsRelative() || a.IsAbsolute() {
		t.Fatalf("unexpected predicates for %s", a)
	}
	if !a.StartingAddress().Equal(start) {
		t.Errorf("StartingAddress() = %s, want %s", a.StartingAddress(), start)
	}

	// The Address owns a copy of the path.
	path[0].TargetName.Name = "Changed"
	if a.RelativePath()[0].TargetName.Name != "Boiler" {
		t.Error("Relative must copy the path")
	}

	deeper := Relative(a, ua.MustParseRelativePath(".2:Temperature"))
	if deeper.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", deeper.Depth())
	}
	if !deeper.Root().Equal(start) {
		t.Errorf("Root() = %s, want %s", deeper.Root(), start)
	}
	if !deeper.IsWellFormed() {
		t.Error("chain ending in an absolute address should be well formed")
	}
}

func TestInvalidAddress(t *testing.T) {
	var a Address
	if a.IsValid() || a.IsWellFormed() {
		t.Error("zero Address must be invalid")
	}
	if Relative(Address{}, ua.MustParseRelativePath("/X")).IsWellFormed() {
		t.Error("relative Address on an invalid start must not be well formed")
	}
}

func TestAccessorMisusePanics(t *testing.T) {
	abs := FromNodeID(ua.ObjectsFolder, "urn:srv")
	rel := Relative(abs, ua.MustParseRelativePath("/A"))

	mustPanic := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	mustPanic("StartingAddress on absolute", func() { abs.StartingAddress() })
	mustPanic("RelativePath on absolute", func() { abs.RelativePath() })
	mustPanic("ExpandedNodeID on relative", func() { rel.ExpandedNodeID() })
	mustPanic("ExpandedNodeID on invalid", func() { Address{}.ExpandedNodeID() })
}

func TestStructuralEquality(t *testing.T) {
	a1 := Relative(FromNodeID(ua.NewNumericNodeID(2, 5), "urn:srv"), ua.MustParseRelativePath("<Organizes>2:Temperature"))
	a2 := Relative(FromNodeID(ua.NewNumericNodeID(2, 5), "urn:srv"), ua.MustParseRelativePath("<Organizes>2:Temperature"))
	if !a1.Equal(a2) || a1.Key() != a2.Key() || a1.Compare(a2) != 0 {
		t.Error("structurally equal Addresses must compare equal")
	}

	other := Relative(FromNodeID(ua.NewNumericNodeID(2, 5), "urn:srv"), ua.MustParseRelativePath("<#Organizes>2:Temperature"))
	if a1.Equal(other) {
		t.Error("include-subtypes flag must take part in equality")
	}

	otherServer := Relative(FromNodeID(ua.NewNumericNodeID(2, 5), "urn:other"), ua.MustParseRelativePath("<Organizes>2:Temperature"))
	if a1.Equal(otherServer) {
		t.Error("server URI must take part in equality")
	}
}

func TestCompareOrdersByKindFirst(t *testing.T) {
	abs := FromNodeID(ua.NewStringNodeID(9, "zzz"), "urn:srv")
	rel := Relative(FromNodeID(ua.NewNumericNodeID(0, 1), "urn:srv"), ua.MustParseRelativePath("/A"))
	invalid := Address{}

	list := []Address{rel, abs, invalid}
	slices.SortFunc(list, Address.Compare)

	if list[0].Kind() != KindInvalid || list[1].Kind() != KindAbsolute || list[2].Kind() != KindRelative {
		t.Errorf("unexpected order: %v %v %v", list[0].Kind(), list[1].Kind(), list[2].Kind())
	}
}

func TestParse(t *testing.T) {
	t.Run("Absolute", func(t *testing.T) {
		a, err := Parse("ns=2;i=5@urn:srv")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if !a.IsAbsolute() {
			t.Fatalf("expected absolute, got %s", a.Kind())
		}
	})

	t.Run("Relative", func(t *testing.T) {
		a, err := Parse("i=85@urn:srv /2:Boiler.2:Temperature")
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if !a.IsRelative() || len(a.RelativePath()) != 2 {
			t.Fatalf("unexpected address %s", a)
		}
		if a.String() != "i=85@urn:srv /2:Boiler.2:Temperature" {
			t.Errorf("String() = %q", a.String())
		}
	})

	t.Run("Chained", func(t *testing.T) {
		text := "i=85@urn:srv /2:Plant | <Organizes>2:Line1 | .2:Speed"
		a, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if a.Depth() != 3 {
			t.Errorf("Depth() = %d, want 3", a.Depth())
		}
		if a.String() != text {
			t.Errorf("String() = %q, want %q", a.String(), text)
		}
		again := MustParse(a.String())
		if !again.Equal(a) {
			t.Error("reparse must yield an equal Address")
		}
	})

	t.Run("EscapedNames", func(t *testing.T) {
		start := Absolute(ua.MustParseExpandedNodeID("i=85@urn:srv"))
		for _, name := range []string{"a|b", "Temp ", " Lead", "x | y", "tab\there"} {
			path := ua.RelativePath{{
				ReferenceTypeID: ua.HierarchicalReferences,
				IncludeSubtypes: true,
				TargetName:      ua.NewQualifiedName(2, name),
			}}
			a := Relative(Relative(start, path), path)
			again, err := Parse(a.String())
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", a.String(), err)
			}
			if !again.Equal(a) {
				t.Errorf("name %q: reparse of %q gave %s", name, a.String(), again)
			}
		}
	})

	t.Run("Errors", func(t *testing.T) {
		if _, err := Parse("  "); !errors.Is(err, ErrEmptyAddress) {
			t.Errorf("empty: got %v", err)
		}
		if _, err := Parse("x=1@urn:srv"); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("bad node id: got %v", err)
		}
		if _, err := Parse("i=85@urn:srv Boiler"); !errors.Is(err, ua.ErrInvalidPath) {
			t.Errorf("bad path: got %v", err)
		}
		if _, err := Parse("i=85@urn:srv /A | "); !errors.Is(err, ua.ErrEmptyPath) {
			t.Errorf("empty segment: got %v", err)
		}
	})
}
