package sun

import (
	"testing"
	"time"
)

func TestComputeParisSummer(t *testing.T) {
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	times, err := Compute(date, 48.8566, 2.3522)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if times.Sunrise < 3*time.Hour || times.Sunrise > 7*time.Hour {
		t.Errorf("unexpected sunrise offset: %v", times.Sunrise)
	}
	if times.Sunset < 20*time.Hour || times.Sunset > 23*time.Hour {
		t.Errorf("unexpected sunset offset: %v", times.Sunset)
	}
	if times.Dawn >= times.Sunrise {
		t.Errorf("expected dawn before sunrise: dawn=%v sunrise=%v", times.Dawn, times.Sunrise)
	}
	if times.Dusk <= times.Sunset {
		t.Errorf("expected dusk after sunset: dusk=%v sunset=%v", times.Dusk, times.Sunset)
	}
}

func TestComputePolarNight(t *testing.T) {
	date := time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)
	_, err := Compute(date, 78.2232, 15.6267) // Svalbard
	if err == nil {
		t.Fatal("expected polar-night error")
	}
}

func TestComputeMidnightSun(t *testing.T) {
	date := time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)
	_, err := Compute(date, 78.2232, 15.6267)
	if err == nil {
		t.Fatal("expected midnight-sun error")
	}
}
