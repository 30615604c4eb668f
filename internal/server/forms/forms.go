// Package forms decodes, sanitizes and validates the HTML form posts.
// Any rejection is reported as common.ErrorValidation; callers re-render the
// form without detail.
package forms

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

// maxPrice is the first value that does not fit NUMERIC(10,2).
var maxPrice = decimal.New(1, 8)

const (
	maxPasswordBytes  = 72
	maxSanitizePasses = 8
)

var (
	validate = newValidator()
	policy   = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, err := ParsePrice(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	// bcrypt rejects passwords longer than 72 bytes; max= counts runes.
	if err := v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	}); err != nil {
		panic(err)
	}
	return v
}

type RegisterForm struct {
	UserName  string `validate:"required,min=5,max=20"`
	FirstName string `validate:"required,max=64"`
	LastName  string `validate:"required,max=64"`
	Email     string `validate:"required,email,max=254"`
	Password  string `validate:"required,min=8,bcryptlen"`
}

// LoginForm is not validated: every submission is a login attempt and the
// service audits it, empty fields included.
type LoginForm struct {
	UserName string
	Password string
}

type SearchForm struct {
	Keyword string `validate:"min=2,max=100"`
}

type BookForm struct {
	Name  string `validate:"required,max=100"`
	Price string `validate:"required,price"`
}

func ParseRegister(values url.Values) (RegisterForm, error) {
	f := RegisterForm{
		UserName:  Sanitize(values.Get("username")),
		FirstName: Sanitize(values.Get("first")),
		LastName:  Sanitize(values.Get("last")),
		Email:     strings.TrimSpace(values.Get("email")),
		Password:  values.Get("password"),
	}
	return f, check(f)
}

// ParseLogin leaves the username unsanitized so that the audit trail records
// exactly what was typed.
func ParseLogin(values url.Values) LoginForm {
	return LoginForm{
		UserName: strings.TrimSpace(values.Get("username")),
		Password: values.Get("password"),
	}
}

func ParseSearch(values url.Values) (SearchForm, error) {
	f := SearchForm{Keyword: Sanitize(values.Get("keyword"))}
	return f, check(f)
}

func ParseBook(values url.Values) (BookForm, error) {
	f := BookForm{
		Name:  Sanitize(values.Get("name")),
		Price: strings.TrimSpace(values.Get("price")),
	}
	return f, check(f)
}

// PriceValue is the parsed price of an already validated form.
func (f BookForm) PriceValue() decimal.Decimal {
	p, _ := ParsePrice(f.Price)
	return p
}

// ParsePrice accepts a positive decimal with at most two fractional digits.
func ParsePrice(s string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price: %v", common.ErrorValidation, err)
	}
	if !p.Equal(p.Round(2)) {
		return decimal.Decimal{}, fmt.Errorf("%w: price has more than two decimals", common.ErrorValidation)
	}
	if !p.IsPositive() || p.GreaterThanOrEqual(maxPrice) {
		return decimal.Decimal{}, fmt.Errorf("%w: price out of range", common.ErrorValidation)
	}
	return p, nil
}

// Sanitize strips markup from free text and returns it unescaped, since
// templates escape on output. Unescaping can surface markup that was sent
// entity-encoded, so the text is sanitized again until it is stable. Input
// that does not settle within maxSanitizePasses is dropped.
func Sanitize(s string) string {
	cur := s
	for range maxSanitizePasses {
		next := html.UnescapeString(policy.Sanitize(cur))
		if next == cur {
			return strings.TrimSpace(cur)
		}
		cur = next
	}
	return ""
}

func check(f any) error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return nil
}
