package ua

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestParseNodeID(t *testing.T) {
	guid := uuid.MustParse("09087e75-8e5e-499b-954f-f2a9603db28a")

	tests := []struct {
		input string
		want  NodeID
	}{
		{"i=85", NewNumericNodeID(0, 85)},
		{"ns=2;i=5", NewNumericNodeID(2, 5)},
		{"ns=2;s=Boiler.Temperature", NewStringNodeID(2, "Boiler.Temperature")},
		{"ns=3;s=a;b", NewStringNodeID(3, "a;b")},
		{"ns=1;g=09087e75-8e5e-499b-954f-f2a9603db28a", NewGUIDNodeID(1, guid)},
		{"ns=1;b=AQID", NewOpaqueNodeID(1, []byte{1, 2, 3})},
		{"nsu=urn:plant;i=1001", NewNumericNodeID(0, 1001).WithNamespaceURI("urn:plant")},
		{"nsu=urn:plant;ns=4;i=1001", NewNumericNodeID(0, 1001).WithNamespaceURI("urn:plant").WithNamespaceIndex(4)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNodeID(tt.input)
			if err != nil {
				t.Fatalf("ParseNodeID(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseNodeID(%q) = %s, want %s", tt.input, got, tt.want)
			}
			if got.String() != tt.input {
				t.Errorf("String() = %q, want %q", got.String(), tt.input)
			}
		})
	}
}

func TestParseNodeIDErrors(t *testing.T) {
	tests := []struct {
		input string
		err   error
	}{
		{"", ErrEmptyNodeID},
		{"x=5", ErrInvalidNodeID},
		{"ns=2", ErrInvalidNodeID},
		{"ns=abc;i=5", ErrInvalidNamespace},
		{"ns=70000;i=5", ErrInvalidNamespace},
		{"i=-1", ErrInvalidNodeID},
		{"s=", ErrInvalidNodeID},
		{"g=not-a-guid", ErrInvalidNodeID},
		{"b=!!", ErrInvalidNodeID},
		{"ns=1;ns=2;i=3", ErrInvalidNodeID},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseNodeID(tt.input)
			if !errors.Is(err, tt.err) {
				t.Errorf("ParseNodeID(%q) error = %v, want %v", tt.input, err, tt.err)
			}
		})
	}
}

func TestNodeIDNamespace(t *testing.T) {
	if (NodeID{}).HasNamespace() {
		t.Error("zero NodeID should have no namespace")
	}
	if !NewNumericNodeID(0, 85).HasNamespace() {
		t.Error("explicit namespace 0 should count as a namespace")
	}
	uriOnly := NewStringNodeID(3, "x").WithNamespaceURI("urn:a")
	if _, known := uriOnly.NamespaceIndex(); known {
		t.Error("WithNamespaceURI should drop the index")
	}
	if !uriOnly.HasNamespace() {
		t.Error("namespace URI should count as a namespace")
	}
}

func TestNodeIDKeyDistinguishesUnknownIndex(t *testing.T) {
	if (NodeID{}).Key() == NewNumericNodeID(0, 0).Key() {
		t.Error("zero value and null node must have different keys")
	}
	if !(NodeID{}).IsNull() || !NewNumericNodeID(0, 0).IsNull() {
		t.Error("both should be null")
	}
}

func TestParseExpandedNodeID(t *testing.T) {
	e, err := ParseExpandedNodeID("ns=2;i=5@urn:srv")
	if err != nil {
		t.Fatalf("ParseExpandedNodeID failed: %v", err)
	}
	if e.ServerURI != "urn:srv" {
		t.Errorf("ServerURI = %q, want urn:srv", e.ServerURI)
	}
	if e.NodeID != NewNumericNodeID(2, 5) {
		t.Errorf("NodeID = %s, want ns=2;i=5", e.NodeID)
	}
	if e.String() != "ns=2;i=5@urn:srv" {
		t.Errorf("String() = %q", e.String())
	}

	e, err = ParseExpandedNodeID("svr=3;ns=1;s=Pump")
	if err != nil {
		t.Fatalf("ParseExpandedNodeID failed: %v", err)
	}
	if e.ServerIndex != 3 || e.HasServer() || e.IsLocal() {
		t.Errorf("unexpected server reference: %+v", e)
	}

	if _, err := ParseExpandedNodeID("ns=2;i=5@"); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("empty server uri: got %v", err)
	}
}

func TestStatusCodeSeverity(t *testing.T) {
	if !StatusGood.IsGood() || StatusGood.IsBad() {
		t.Error("StatusGood severity wrong")
	}
	if !StatusBadNoMatch.IsBad() || StatusBadNoMatch.IsGood() {
		t.Error("StatusBadNoMatch severity wrong")
	}
	if !StatusUncertain.IsUncertain() || !StatusUncertain.IsNotGood() {
		t.Error("StatusUncertain severity wrong")
	}
	if StatusBadTooManyMatches.String() != "BadTooManyMatches" {
		t.Errorf("String() = %q", StatusBadTooManyMatches.String())
	}
	if StatusCode(0x80FF0000).String() != "0x80FF0000" {
		t.Errorf("unknown String() = %q", StatusCode(0x80FF0000).String())
	}
}
