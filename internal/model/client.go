package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrValidation is wrapped by every error returned from client validation.
var ErrValidation = errors.New("invalid client")

const (
	minNameLen  = 2
	maxDiscount = 100
)

// Client represents a salon client record.
// ID is zero until the client has been stored; generated IDs start at 1.
// The json/yaml keys are the record exchange shape shared by every backend.
type Client struct {
	ID             int64   `json:"id,omitempty" yaml:"id,omitempty"`
	FirstName      string  `json:"first_name" yaml:"first_name"`
	LastName       string  `json:"last_name" yaml:"last_name"`
	FatherName     string  `json:"father_name" yaml:"father_name"`
	HaircutCounter int     `json:"haircut_counter" yaml:"haircut_counter"`
	Discount       float64 `json:"discount" yaml:"discount"`
}

// Key is the uniqueness key of a client within a collection.
type Key struct {
	LastName       string
	HaircutCounter int
}

// NewClient builds a validated client without an ID.
func NewClient(firstName, lastName, fatherName string, haircutCounter int, discount float64) (Client, error) {
	c := Client{
		FirstName:      firstName,
		LastName:       lastName,
		FatherName:     fatherName,
		HaircutCounter: haircutCounter,
		Discount:       discount,
	}
	if err := c.Validate(); err != nil {
		return Client{}, err
	}
	return c, nil
}

// Key returns the (last name, haircut counter) pair.
func (c Client) Key() Key {
	return Key{LastName: c.LastName, HaircutCounter: c.HaircutCounter}
}

// Validate checks every field of the client.
func (c Client) Validate() error {
	if c.ID < 0 {
		return fmt.Errorf("%w: id must not be negative", ErrValidation)
	}
	if err := validateName(c.FirstName, "first_name"); err != nil {
		return err
	}
	if err := validateName(c.LastName, "last_name"); err != nil {
		return err
	}
	if err := validateName(c.FatherName, "father_name"); err != nil {
		return err
	}
	if err := validateHaircutCounter(c.HaircutCounter); err != nil {
		return err
	}
	return validateDiscount(c.Discount)
}

// SetDiscount changes the discount after validating it.
func (c *Client) SetDiscount(discount float64) error {
	if err := validateDiscount(discount); err != nil {
		return err
	}
	c.Discount = discount
	return nil
}

// SetHaircutCounter changes the visit counter after validating it.
func (c *Client) SetHaircutCounter(n int) error {
	if err := validateHaircutCounter(n); err != nil {
		return err
	}
	c.HaircutCounter = n
	return nil
}

func validateName(name, field string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, field)
	}
	if utf8.RuneCountInString(trimmed) < minNameLen {
		return fmt.Errorf("%w: %s must contain at least %d characters", ErrValidation, field, minNameLen)
	}
	for _, r := range name {
		if r != ' ' && !unicode.IsLetter(r) {
			return fmt.Errorf("%w: %s must contain only letters and spaces", ErrValidation, field)
		}
	}
	return nil
}

func validateHaircutCounter(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: haircut_counter must not be negative", ErrValidation)
	}
	return nil
}

func validateDiscount(d float64) error {
	if d < 0 || d > maxDiscount {
		return fmt.Errorf("%w: discount must be between 0 and %d", ErrValidation, maxDiscount)
	}
	return nil
}
