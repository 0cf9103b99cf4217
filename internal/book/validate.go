package book

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxPrice = 1_000_000

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their form name rather than the Go field name.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})

	validate.RegisterValidation("isbn_digits", validateISBNDigits)
	validate.RegisterValidation("price_integer", validatePriceInteger)
	validate.RegisterValidation("price_positive", validatePricePositive)
	validate.RegisterValidation("price_max", validatePriceMax)
}

// bookForm drives validator/v10. Tags run left to right and stop at the
// first failure, so each field yields at most one message.
type bookForm struct {
	Title     string `form:"title" validate:"required,max=200"`
	Author    string `form:"author" validate:"required,max=100"`
	Publisher string `form:"publisher" validate:"required,max=100"`
	Price     string `form:"price" validate:"required,price_integer,price_positive,price_max"`
	ISBN      string `form:"isbn" validate:"required,isbn_digits"`
}

// FormErrors holds at most one message per creation form field. The zero
// value means the form is valid.
type FormErrors struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	Price     string `json:"price,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
}

// HasErrors reports whether any field carries a message.
func (e FormErrors) HasErrors() bool {
	return e != FormErrors{}
}

// Validate checks raw form input against the catalog's field rules. It is
// pure; every field is checked independently so the UI can surface all
// field errors at once.
func Validate(title, author, publisher, priceText, isbn string) FormErrors {
	input := bookForm{
		Title:     strings.TrimSpace(title),
		Author:    strings.TrimSpace(author),
		Publisher: strings.TrimSpace(publisher),
		Price:     strings.TrimSpace(priceText),
		ISBN:      strings.TrimSpace(isbn),
	}

	err := validate.Struct(input)
	if err == nil {
		return FormErrors{}
	}

	var errs FormErrors
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs
	}
	for _, e := range validationErrs {
		message := fieldMessage(e)
		switch e.Field() {
		case "title":
			errs.Title = message
		case "author":
			errs.Author = message
		case "publisher":
			errs.Publisher = message
		case "price":
			errs.Price = message
		case "isbn":
			errs.ISBN = message
		}
	}
	return errs
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
	case "price_integer":
		return "price must be a positive integer"
	case "price_positive":
		return "price must be greater than 0"
	case "price_max":
		return "price must not exceed 1,000,000"
	case "isbn_digits":
		return "isbn must be 10 or 13 digits (hyphens allowed)"
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

func validateISBNDigits(fl validator.FieldLevel) bool {
	n := countDigits(fl.Field().String())
	return n == 10 || n == 13
}

func validatePriceInteger(fl validator.FieldLevel) bool {
	price, err := strconv.Atoi(fl.Field().String())
	return err == nil && price >= 0
}

// Reached only after price_integer passed, so the parse cannot fail.
func validatePricePositive(fl validator.FieldLevel) bool {
	price, _ := strconv.Atoi(fl.Field().String())
	return price > 0
}

func validatePriceMax(fl validator.FieldLevel) bool {
	price, _ := strconv.Atoi(fl.Field().String())
	return price <= maxPrice
}

func countDigits(s string) int {
	n := 0
	for _, c := range s {
		if c >= '0' && c <= '9' {
			n++
		}
	}
	return n
}
