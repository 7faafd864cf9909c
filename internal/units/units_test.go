package units

import (
	"math"
	"testing"
)

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speedMPS float64
		units    string
		expected float64
	}{
		{"platoon cruise to kph", 13.89, KPH, 50.004},
		{"platoon cruise to kmph", 13.89, KMPH, 50.004},
		{"hard brake residual to mph", 1.4, MPH, 3.13172},
		{"stopped", 0.0, MPH, 0.0},
		{"mps passthrough", 2.0, MPS, 2.0},
		{"unknown units default to mps", 10.0, "furlongs", 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertSpeed(tt.speedMPS, tt.units)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ConvertSpeed(%f, %s) = %f, want %f", tt.speedMPS, tt.units, result, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	for _, unit := range ValidUnits {
		if !IsValid(unit) {
			t.Errorf("IsValid(%s) = false, want true", unit)
		}
	}
	for _, unit := range []string{"", "MPH", "knots"} {
		if IsValid(unit) {
			t.Errorf("IsValid(%q) = true, want false", unit)
		}
	}
	if got := GetValidUnitsString(); got != "mps, mph, kmph, kph" {
		t.Errorf("GetValidUnitsString() = %s", got)
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		MPS:  "m/s",
		MPH:  "mph",
		KMPH: "km/h",
		KPH:  "km/h",
		"":   "m/s",
	}
	for unit, want := range tests {
		if got := Label(unit); got != want {
			t.Errorf("Label(%q) = %q, want %q", unit, got, want)
		}
	}
}
