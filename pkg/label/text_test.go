package label

import (
	"strings"
	"testing"
)

func TestWrapText(t *testing.T) {
	c := &recordCanvas{}
	body := Font{Style: FontRegular, Size: 10} // 5pt per rune

	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{"fits on one line", "short text", 100, []string{"short text"}},
		{"wraps at word boundary", "alpha beta gamma", 55, []string{"alpha beta", "gamma"}},
		{"long word gets own line", "tiny extraordinarily tiny", 50, []string{"tiny", "extraordinarily", "tiny"}},
		{"empty text", "", 100, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapText(c, tt.text, tt.width, body)
			if len(got) != len(tt.want) {
				t.Fatalf("wrapText(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEllipsize(t *testing.T) {
	c := &recordCanvas{}
	body := Font{Style: FontRegular, Size: 10} // 5pt per rune

	t.Run("fits unchanged", func(t *testing.T) {
		if got := ellipsize(c, "short", 100, body); got != "short" {
			t.Errorf("ellipsize = %q, want unchanged", got)
		}
	})

	t.Run("truncates with visible ellipsis", func(t *testing.T) {
		got := ellipsize(c, "a very long item description", 60, body)
		if !strings.HasSuffix(got, ellipsis) {
			t.Errorf("ellipsize = %q, want trailing ellipsis", got)
		}
		if c.TextWidth(got, body) > 60 {
			t.Errorf("ellipsized text is %vpt wide, exceeds 60", c.TextWidth(got, body))
		}
		// 60pt at 5pt per rune holds 12 runes including the ellipsis.
		if got != "a very long"+ellipsis {
			t.Errorf("ellipsize = %q", got)
		}
	})

	t.Run("degenerate width", func(t *testing.T) {
		got := ellipsize(c, "abc", 1, body)
		if got != ellipsis {
			t.Errorf("ellipsize = %q, want bare ellipsis", got)
		}
	})
}
