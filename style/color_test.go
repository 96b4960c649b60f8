package style

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#000", Black},
		{"#ffffff", White},
		{"#102030", RGB(0x10, 0x20, 0x30)},
		{" #10203080 ", RGBA(0x10, 0x20, 0x30, 0x80)},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "red", "#12", "#zzzzzz", "#102030zz"} {
		if _, err := ParseColor(bad); err == nil {
			t.Errorf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestColorString(t *testing.T) {
	if got := RGBA(1, 2, 3, 4).String(); got != "#01020304" {
		t.Errorf("String = %q", got)
	}
	if !Black.IsOpaque() || Transparent.IsOpaque() {
		t.Error("IsOpaque")
	}
}
