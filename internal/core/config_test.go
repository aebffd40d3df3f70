package core

import (
	"errors"
	"testing"
)

func TestDisplayReady(t *testing.T) {
	tests := []struct {
		name string
		d    Display
		want bool
	}{
		{"all known", Display{Width: 1080, Height: 2400, Density: 2.75, IconSize: 300}, true},
		{"zero width", Display{Width: 0, Height: 2400, Density: 2.75, IconSize: 300}, false},
		{"zero height", Display{Width: 1080, Height: 0, Density: 2.75, IconSize: 300}, false},
		{"zero density", Display{Width: 1080, Height: 2400, Density: 0, IconSize: 300}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.d.Ready(); got != tc.want {
				t.Errorf("Ready() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestDisplayValidate(t *testing.T) {
	ok := Display{Width: 1000, Height: 2000, Density: 1, IconSize: 300}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}

	small := Display{Width: 500, Height: 2000, Density: 1, IconSize: 300}
	if err := small.Validate(); !errors.Is(err, ErrDisplayTooSmall) {
		t.Errorf("Validate() = %v, expected ErrDisplayTooSmall", err)
	}

	noIcon := Display{Width: 1000, Height: 2000, Density: 1}
	if err := noIcon.Validate(); err == nil {
		t.Error("Validate() should reject a zero icon size")
	}
}

func TestDisplayUnits(t *testing.T) {
	d := Display{Width: 1080, Height: 2400, Density: 3, IconSize: 300}

	if got := d.Dp(300); got != 100 {
		t.Errorf("Dp(300) = %v, expected 100", got)
	}
	if got := d.String(); got != "1080 * 2400 px" {
		t.Errorf("String() = %q", got)
	}
	if got := (Display{}).Dp(10); got != 0 {
		t.Errorf("Dp on unknown display = %v, expected 0", got)
	}
}
