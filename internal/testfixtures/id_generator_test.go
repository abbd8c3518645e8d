package testfixtures

import "testing"

func TestIDGeneratorSequence(t *testing.T) {
	gen := NewIDGenerator("entity")

	if first, second := gen.Next(), gen.Next(); first != "entity-1" || second != "entity-2" {
		t.Fatalf("unexpected identifiers: %q, %q", first, second)
	}
}

func TestIDGeneratorEmptyPrefixDefaults(t *testing.T) {
	gen := NewIDGenerator("")
	if next := gen.Next(); next != "id-1" {
		t.Fatalf("expected id-1, got %q", next)
	}
}

func TestIDGeneratorReset(t *testing.T) {
	gen := NewIDGenerator("resource")
	_ = gen.Next()
	_ = gen.Next()
	gen.Reset()

	if next := gen.Next(); next != "resource-1" {
		t.Fatalf("expected resource-1 after reset, got %q", next)
	}
}
