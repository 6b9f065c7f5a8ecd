//-------------------------------------------------------------------------
//
// salesdwh - Retail Sales Warehouse
//
// Copyright (c) 2026, the salesdwh authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"regexp"
	"testing"
)

func TestNewFaker(t *testing.T) {
	f := NewFaker()
	if f == nil {
		t.Fatal("NewFaker returned nil")
	}
	if f.faker == nil {
		t.Fatal("faker field is nil")
	}
}

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
}

func TestProductCode(t *testing.T) {
	f := NewFaker()
	pattern := regexp.MustCompile(`^[A-Z][0-9]-[0-9]{7}[A-Z]$`)

	for i := 0; i < 50; i++ {
		code := f.ProductCode()
		if len(code) != 11 {
			t.Fatalf("Product code %q is not 11 characters", code)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("Product code %q does not match expected shape", code)
		}
	}
}

func TestStoreCode(t *testing.T) {
	f := NewFaker()
	pattern := regexp.MustCompile(`^[A-Z]{2}-[0-9]{7}[A-Z]$`)

	for i := 0; i < 50; i++ {
		code := f.StoreCode()
		if len(code) != 11 {
			t.Fatalf("Store code %q is not 11 characters", code)
		}
		if !pattern.MatchString(code) {
			t.Fatalf("Store code %q does not match expected shape", code)
		}
	}
}

func TestCardNumber(t *testing.T) {
	f := NewFaker()
	pattern := regexp.MustCompile(`^[0-9]{16}$`)

	for i := 0; i < 20; i++ {
		if n := f.CardNumber(); !pattern.MatchString(n) {
			t.Fatalf("Card number %q is not 16 digits", n)
		}
	}
}

func TestExpiryDate(t *testing.T) {
	f := NewFaker()
	pattern := regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)

	for i := 0; i < 20; i++ {
		if d := f.ExpiryDate(); !pattern.MatchString(d) {
			t.Fatalf("Expiry date %q is not MM/YY", d)
		}
	}
}

func TestChoose(t *testing.T) {
	f := NewFaker()

	items := []string{"a", "b", "c"}
	for i := 0; i < 20; i++ {
		got := Choose(f, items)
		if got != "a" && got != "b" && got != "c" {
			t.Fatalf("Choose returned unexpected value %q", got)
		}
	}

	var empty []string
	if got := Choose(f, empty); got != "" {
		t.Errorf("Choose on empty slice should return zero value, got %q", got)
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "'plain'"},
		{"O'Brien", "'O''Brien'"},
		{"", "''"},
	}
	for _, tt := range tests {
		if got := Literal(tt.in); got != tt.want {
			t.Errorf("Literal(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestNullableLiteral(t *testing.T) {
	if got := NullableLiteral(""); got != "NULL" {
		t.Errorf("NullableLiteral(\"\") = %s, want NULL", got)
	}
	if got := NullableLiteral("x"); got != "'x'" {
		t.Errorf("NullableLiteral(\"x\") = %s, want 'x'", got)
	}
}
