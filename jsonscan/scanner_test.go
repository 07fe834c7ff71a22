package jsonscan

import "testing"

func TestScannerTracksLineAndColumn(t *testing.T) {
	s := NewFromString("ab\ncd")

	type pos struct {
		r    rune
		line int
		col  int
	}
	var got []pos
	for {
		r := s.Peek()
		if r == EOF {
			break
		}
		got = append(got, pos{r, s.Line(), s.Col()})
		s.Advance()
	}

	want := []pos{
		{'a', 1, 1},
		{'b', 1, 2},
		{'\n', 2, 1},
		{'c', 2, 2},
		{'d', 2, 3},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d runes, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rune %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScannerEOFIsSticky(t *testing.T) {
	s := NewFromString("")
	if s.Peek() != EOF {
		t.Fatalf("expected EOF for empty source")
	}
	s.Advance()
	if s.Peek() != EOF {
		t.Fatalf("expected EOF to remain sticky after advancing past it")
	}
}
