package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(2, 3, 10, 5)
	if r.Right() != 12 || r.Bottom() != 8 {
		t.Errorf("Right, Bottom = %d, %d; want 12, 8", r.Right(), r.Bottom())
	}
}

func TestRectContains(t *testing.T) {
	// A 10x20 board grid.
	board := NewRect(0, 0, 10, 20)

	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{9, 19, true},
		{10, 0, false},
		{0, 20, false},
		{-1, 5, false},
		{4, -1, false},
	}
	for _, tt := range tests {
		if got := board.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRectInset(t *testing.T) {
	box := NewRect(4, 1, 22, 22)
	got := box.Inset(1)
	if got != NewRect(5, 2, 20, 20) {
		t.Errorf("Inset(1) = %+v", got)
	}
	if tiny := NewRect(0, 0, 1, 1).Inset(1); tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset past zero = %+v", tiny)
	}
}

func TestColorCodes(t *testing.T) {
	if ColorDefault.Code() != "" {
		t.Error("default color should have no code")
	}
	if ColorOrange.Code() != "208" {
		t.Errorf("orange = %q", ColorOrange.Code())
	}
	if Color(200).Code() != "" {
		t.Error("unknown color should have no code")
	}
	for _, c := range Colors() {
		if c.Code() == "" {
			t.Errorf("color %d has no code", c)
		}
	}
}
