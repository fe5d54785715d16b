package types

import (
	"errors"
	"strings"
)

// CustomerCreateRequest is the payload for registering a customer.
type CustomerCreateRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Country           string `json:"country"`
	City              string `json:"city"`
	Address           string `json:"address"`
	PostalCode        string `json:"postal_code"`
	PreferredLanguage string `json:"preferred_language"`
	Notes             string `json:"notes"`
}

func (r *CustomerCreateRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" {
		return errors.New("first_name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return errors.New("last_name is required")
	}
	email := strings.TrimSpace(r.Email)
	if email == "" || !strings.Contains(email, "@") {
		return errors.New("a valid email is required")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return errors.New("phone is required")
	}
	if strings.TrimSpace(r.Country) == "" {
		return errors.New("country is required")
	}
	if strings.TrimSpace(r.City) == "" {
		return errors.New("city is required")
	}
	return nil
}

// CustomerUpdateRequest is the payload for updating customer contact details.
// Zero-valued fields are left unchanged.
type CustomerUpdateRequest struct {
	FirstName         string `json:"first_name"`
	LastName          string `json:"last_name"`
	Phone             string `json:"phone"`
	Country           string `json:"country"`
	City              string `json:"city"`
	Address           string `json:"address"`
	PostalCode        string `json:"postal_code"`
	PreferredLanguage string `json:"preferred_language"`
	Status            string `json:"status"`
	Notes             string `json:"notes"`
}
