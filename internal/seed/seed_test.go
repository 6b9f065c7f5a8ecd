//-------------------------------------------------------------------------
//
// salesdwh - Retail Sales Warehouse
//
// Copyright (c) 2026, the salesdwh authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package seed

import "testing"

func TestTimePeriod(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "Late_Hours"},
		{5, "Late_Hours"},
		{6, "Morning"},
		{11, "Morning"},
		{12, "Midday"},
		{17, "Midday"},
		{18, "Evening"},
		{23, "Evening"},
	}
	for _, tt := range tests {
		if got := timePeriod(tt.hour); got != tt.want {
			t.Errorf("timePeriod(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestCountryName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"GB", "United Kingdom"},
		{"DE", "Germany"},
		{"US", "United States"},
		{"FR", "FR"},
	}
	for _, tt := range tests {
		if got := countryName(tt.code); got != tt.want {
			t.Errorf("countryName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestNewGenerator(t *testing.T) {
	g := NewGenerator(0)
	if g == nil || g.faker == nil {
		t.Fatal("NewGenerator returned incomplete generator")
	}
	if g.cfg.BatchSize <= 0 {
		t.Errorf("Expected positive batch size, got %d", g.cfg.BatchSize)
	}

	seeded := NewGenerator(42)
	if seeded == nil || seeded.faker == nil {
		t.Fatal("NewGenerator(42) returned incomplete generator")
	}
}
