package wide

import "testing"

func TestMaskFirstN(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want Mask8
	}{
		{name: "none", n: 0, want: 0x00},
		{name: "one", n: 1, want: 0x01},
		{name: "three", n: 3, want: 0x07},
		{name: "full", n: 8, want: 0xff},
		{name: "clamped high", n: 12, want: 0xff},
		{name: "clamped low", n: -1, want: 0x00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskFirstN(tt.n); got != tt.want {
				t.Errorf("MaskFirstN(%d) = %#02x, want %#02x", tt.n, got, tt.want)
			}
		})
	}
}

func TestMask8_Bits(t *testing.T) {
	var m Mask8
	m.SetBit(0)
	m.SetBit(5)

	for i := 0; i < 8; i++ {
		want := i == 0 || i == 5
		if got := m.Bit(i); got != want {
			t.Errorf("Bit(%d) = %v, want %v", i, got, want)
		}
	}
}
