package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_ValidInput(t *testing.T) {
	errs := Validate("The Go Programming Language", "Alan Donovan", "Addison-Wesley", "4200", "978-0-13-419044-0")
	assert.False(t, errs.HasErrors())
	assert.Equal(t, FormErrors{}, errs)
}

func TestValidate_Title(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		errs := Validate("", "A", "P", "100", "1234567890")
		assert.Equal(t, "title is required", errs.Title)
		assert.Empty(t, errs.Author)
		assert.Empty(t, errs.Publisher)
		assert.Empty(t, errs.Price)
		assert.Empty(t, errs.ISBN)
	})

	t.Run("whitespace only counts as missing", func(t *testing.T) {
		errs := Validate("   ", "A", "P", "100", "1234567890")
		assert.Equal(t, "title is required", errs.Title)
	})

	t.Run("too long", func(t *testing.T) {
		errs := Validate(strings.Repeat("x", 201), "A", "P", "100", "1234567890")
		assert.Equal(t, "title must be at most 200 characters", errs.Title)
	})

	t.Run("exactly at the bound", func(t *testing.T) {
		errs := Validate(strings.Repeat("x", 200), "A", "P", "100", "1234567890")
		assert.Empty(t, errs.Title)
	})
}

func TestValidate_AuthorAndPublisher(t *testing.T) {
	errs := Validate("T", "", "", "100", "1234567890")
	assert.Equal(t, "author is required", errs.Author)
	assert.Equal(t, "publisher is required", errs.Publisher)

	errs = Validate("T", strings.Repeat("a", 101), strings.Repeat("p", 101), "100", "1234567890")
	assert.Equal(t, "author must be at most 100 characters", errs.Author)
	assert.Equal(t, "publisher must be at most 100 characters", errs.Publisher)
}

func TestValidate_Price(t *testing.T) {
	cases := []struct {
		name  string
		price string
		want  string
	}{
		{"missing", "", "price is required"},
		{"not a number", "abc", "price must be a positive integer"},
		{"negative", "-5", "price must be a positive integer"},
		{"decimal", "10.5", "price must be a positive integer"},
		{"zero", "0", "price must be greater than 0"},
		{"over the cap", "1000001", "price must not exceed 1,000,000"},
		{"at the cap", "1000000", ""},
		{"minimum", "1", ""},
		{"trimmed", " 100 ", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Validate("T", "A", "P", tc.price, "1234567890")
			assert.Equal(t, tc.want, errs.Price)
			assert.Empty(t, errs.Title)
			assert.Empty(t, errs.Author)
			assert.Empty(t, errs.Publisher)
			assert.Empty(t, errs.ISBN)
		})
	}
}

func TestValidate_ISBN(t *testing.T) {
	cases := []struct {
		name string
		isbn string
		ok   bool
	}{
		{"missing", "", false},
		{"ten digits", "1234567890", true},
		{"thirteen digits", "9784798158228", true},
		{"thirteen digits with hyphens", "978-4-798158228", true},
		{"ten digits with hyphens", "4-7981-5822-8", true},
		{"prefixed with spaces and hyphens", "ISBN 978-4-7981-5822-8", true},
		{"eleven digits", "12345678901", false},
		{"twelve digits", "978-479815822", false},
		{"letters only", "not-an-isbn", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Validate("T", "A", "P", "100", tc.isbn)
			if tc.ok {
				assert.Empty(t, errs.ISBN)
			} else {
				assert.NotEmpty(t, errs.ISBN)
			}
		})
	}

	t.Run("missing message", func(t *testing.T) {
		errs := Validate("T", "A", "P", "100", "")
		assert.Equal(t, "isbn is required", errs.ISBN)
	})

	t.Run("wrong length message", func(t *testing.T) {
		errs := Validate("T", "A", "P", "100", "12345")
		assert.Equal(t, "isbn must be 10 or 13 digits (hyphens allowed)", errs.ISBN)
	})
}

func TestValidate_DoesNotShortCircuit(t *testing.T) {
	errs := Validate("", "", "", "", "")
	assert.True(t, errs.HasErrors())
	assert.NotEmpty(t, errs.Title)
	assert.NotEmpty(t, errs.Author)
	assert.NotEmpty(t, errs.Publisher)
	assert.NotEmpty(t, errs.Price)
	assert.NotEmpty(t, errs.ISBN)
}

func TestFormErrors_HasErrors(t *testing.T) {
	assert.False(t, FormErrors{}.HasErrors())
	assert.True(t, FormErrors{Price: "price is required"}.HasErrors())
}
