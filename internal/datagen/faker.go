//-------------------------------------------------------------------------
//
// salesdwh - Retail Sales Warehouse
//
// Copyright (c) 2026, the salesdwh authors
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen provides data generation utilities for seeding the
// warehouse with realistic test data.
package datagen

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// Faker provides fake data generation using gofakeit.
type Faker struct {
	faker *gofakeit.Faker
}

// NewFaker creates a new Faker with a random seed.
func NewFaker() *Faker {
	return &Faker{
		faker: gofakeit.New(uint64(time.Now().UnixNano())),
	}
}

// NewFakerWithSeed creates a new Faker with a specific seed for
// reproducibility.
func NewFakerWithSeed(seed uint64) *Faker {
	return &Faker{
		faker: gofakeit.New(seed),
	}
}

// FirstName generates a random first name.
func (f *Faker) FirstName() string {
	return f.faker.FirstName()
}

// LastName generates a random last name.
func (f *Faker) LastName() string {
	return f.faker.LastName()
}

// Email generates a random email address.
func (f *Faker) Email() string {
	return f.faker.Email()
}

// Phone generates a random phone number.
func (f *Faker) Phone() string {
	return f.faker.Phone()
}

// Street generates a random street address.
func (f *Faker) Street() string {
	return f.faker.Street()
}

// City generates a random city name.
func (f *Faker) City() string {
	return f.faker.City()
}

// Company generates a random company name.
func (f *Faker) Company() string {
	return f.faker.Company()
}

// ProductName generates a random product name.
func (f *Faker) ProductName() string {
	return f.faker.ProductName()
}

// ProductCategory generates a random product category.
func (f *Faker) ProductCategory() string {
	return f.faker.ProductCategory()
}

// Price generates a random price between min and max.
func (f *Faker) Price(min, max float64) float64 {
	return f.faker.Price(min, max)
}

// DateRange generates a random date within a range.
func (f *Faker) DateRange(start, end time.Time) time.Time {
	return f.faker.DateRange(start, end)
}

// Int generates a random integer between min and max (inclusive).
func (f *Faker) Int(min, max int) int {
	return f.faker.IntRange(min, max)
}

// Float64 generates a random float64 between min and max.
func (f *Faker) Float64(min, max float64) float64 {
	return f.faker.Float64Range(min, max)
}

// Bool generates a random boolean.
func (f *Faker) Bool() bool {
	return f.faker.Bool()
}

// UUID generates a random UUID.
func (f *Faker) UUID() string {
	return f.faker.UUID()
}

// Digits generates a random string of digits of length n.
func (f *Faker) Digits(n int) string {
	return f.faker.DigitN(uint(n))
}

// Letters generates a random string of uppercase letters of length n.
func (f *Faker) Letters(n int) string {
	return strings.ToUpper(f.faker.LetterN(uint(n)))
}

// ProductCode generates a warehouse product code, e.g. "A8-4686892S".
func (f *Faker) ProductCode() string {
	return fmt.Sprintf("%s%d-%s%s", f.Letters(1), f.Int(0, 9), f.Digits(7), f.Letters(1))
}

// StoreCode generates a physical store code, e.g. "BL-8387506C".
func (f *Faker) StoreCode() string {
	return fmt.Sprintf("%s-%s%s", f.Letters(2), f.Digits(7), f.Letters(1))
}

// CardNumber generates a 16-digit card number.
func (f *Faker) CardNumber() string {
	return f.Digits(16)
}

// ExpiryDate generates a card expiry in MM/YY form.
func (f *Faker) ExpiryDate() string {
	return fmt.Sprintf("%02d/%02d", f.Int(1, 12), f.Int(26, 32))
}

// Ean generates a 13-digit EAN barcode.
func (f *Faker) Ean() string {
	return f.Digits(13)
}

// Choose returns a random element from the given slice.
func Choose[T any](f *Faker, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[f.Int(0, len(items)-1)]
}
