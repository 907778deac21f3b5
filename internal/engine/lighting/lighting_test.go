package lighting

import (
	"testing"

	"github.com/Faultbox/carousel3d/internal/config"
)

func near(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}

func TestDirectionPointsAtOrigin(t *testing.T) {
	tests := []struct {
		name string
		pos  [3]float32
		want [3]float32
	}{
		{"above", [3]float32{0, 10, 0}, [3]float32{0, -1, 0}},
		{"right", [3]float32{4, 0, 0}, [3]float32{-1, 0, 0}},
		{"origin", [3]float32{}, [3]float32{0, -1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Directional{Position: tt.pos}.Direction()
			for i := range got {
				if !near(got[i], tt.want[i]) {
					t.Fatalf("Direction() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestDefaultRig(t *testing.T) {
	rig := FromConfig(config.Default().Lighting)

	amb := rig.Ambient.Radiance()
	if !near(amb[0], 0.8) || !near(amb[2], 0.8) {
		t.Errorf("ambient radiance = %v, want 0.8 grey", amb)
	}

	d := rig.Directional.Direction()
	// (5, 10, 7.5) has length ~13.46.
	if !near(d[1], -10/13.462912) {
		t.Errorf("directional y = %v", d[1])
	}
}

func TestHexColor(t *testing.T) {
	c := HexColor(0xff8000)
	if c[0] != 1 || !near(c[1], 128.0/255) || c[2] != 0 {
		t.Errorf("HexColor = %v", c)
	}
}
