package normalize

import "testing"

func TestNormalize_Lowercase(t *testing.T) {
	got, _ := Normalize("Иван ПЕТРОВ")
	want := "иван петров"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_YoFolding(t *testing.T) {
	got, _ := Normalize("Фёдор Ёжиков")
	want := "федор ежиков"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	once, _ := Normalize("Смирнов Алексей Ёлкин")
	twice, _ := Normalize(once)
	if once != twice {
		t.Errorf("normalize is not idempotent: %q != %q", once, twice)
	}
}

func TestNormalize_OffsetsMapBack(t *testing.T) {
	s := "Ёлкин"
	norm, offsets := Normalize(s)
	if len(offsets) != len([]rune(norm))+1 {
		t.Fatalf("offsets length mismatch: got %d, want %d", len(offsets), len([]rune(norm))+1)
	}
	// First rune of norm ("е") must map back to byte 0 of s ("Ё").
	if ByteOffset(offsets, 0) != 0 {
		t.Errorf("ByteOffset(0) = %d, want 0", ByteOffset(offsets, 0))
	}
}

func TestNormalize_CollapsesWhitespaceRuns(t *testing.T) {
	got, _ := Normalize("иван  петров\tвыступил")
	want := "иван петров выступил"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_CollapsesNewlines(t *testing.T) {
	got, _ := Normalize("иван\nпетров")
	want := "иван петров"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNormalize_CollapsedRunOffsetMapsToFirstByte(t *testing.T) {
	s := "a  b" // two spaces between a and b
	norm, offsets := Normalize(s)
	if norm != "a b" {
		t.Fatalf("got %q, want \"a b\"", norm)
	}
	// The collapsed space (rune index 1 of norm) must map back to byte 1
	// of s, the first byte of the two-space run, not byte 2.
	if got := ByteOffset(offsets, 1); got != 1 {
		t.Errorf("ByteOffset(1) = %d, want 1", got)
	}
	// "b" (rune index 2 of norm) must map back to byte 3 of s.
	if got := ByteOffset(offsets, 2); got != 3 {
		t.Errorf("ByteOffset(2) = %d, want 3", got)
	}
}

func TestSimple_CollapsesWhitespace(t *testing.T) {
	got := Simple("  Иван   Петров  ")
	want := "иван петров"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSimple_ComposesDecomposedCyrillic(t *testing.T) {
	// "й" spelled as base "и" (U+0438) plus a combining breve (U+0306)
	// must normalize identically to the precomposed "й" (U+0439) so both
	// spellings of the same name hash to the same alias.
	decomposed := "майор"
	precomposed := "майор"
	if got := Simple(decomposed); got != precomposed {
		t.Errorf("got %q, want %q", got, precomposed)
	}
}
