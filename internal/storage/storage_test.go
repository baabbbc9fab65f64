package storage

import "testing"

func TestIsDeckFile(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"pptx", "decks/abc/climate.pptx", true},
		{"html", "decks/abc/climate.html", true},
		{"uppercase extension", "decks/abc/CLIMATE.PPTX", true},
		{"image", "decks/abc/slide_1_x.jpg", false},
		{"directory marker", "decks/abc/", false},
		{"no extension", "decks/abc/climate", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDeckFile(tt.path); got != tt.want {
				t.Errorf("isDeckFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
