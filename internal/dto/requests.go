package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"confreg/internal/model"
)

// FlexibleID accepts a JSON number or a numeric string.
type FlexibleID int64

func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*id = 0
			return nil
		}
		b = []byte(s)
	}
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", string(b))
	}
	*id = FlexibleID(v)
	return nil
}

type EnrollRequest struct {
	RegistrationID FlexibleID `json:"registration_id"`
}

// RegistrationRequest is the attendee form. special_requirements is accepted
// alongside specialRequirements.
type RegistrationRequest struct {
	FirstName              string `json:"firstName"`
	LastName               string `json:"lastName"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone"`
	Organization           string `json:"organization"`
	Position               string `json:"position"`
	Country                string `json:"country"`
	RegistrationType       string `json:"registrationType"`
	SpecialRequirements    string `json:"specialRequirements"`
	SpecialRequirementsAlt string `json:"special_requirements"`
	PaymentProofURL        string `json:"paymentProofUrl"`
}

func (r RegistrationRequest) ToInput() model.RegistrationInput {
	special := r.SpecialRequirementsAlt
	if special == "" {
		special = r.SpecialRequirements
	}
	return model.RegistrationInput{
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		Email:               r.Email,
		Phone:               r.Phone,
		Organization:        r.Organization,
		Position:            r.Position,
		Country:             r.Country,
		RegistrationType:    r.RegistrationType,
		SpecialRequirements: special,
		PaymentProofURL:     r.PaymentProofURL,
	}
}

type StatusRequest struct {
	Status string `json:"status"`
}

type BulkStatusRequest struct {
	IDs    []FlexibleID `json:"ids"`
	Status string       `json:"status"`
}

func (r BulkStatusRequest) Int64IDs() []int64 {
	ids := make([]int64, len(r.IDs))
	for i, id := range r.IDs {
		ids[i] = int64(id)
	}
	return ids
}

type SubmitRegistrationResponse struct {
	Message      string              `json:"message"`
	Registration *model.Registration `json:"registration"`
	Status       string              `json:"status"`
}

type RegistrationResponse struct {
	Message      string              `json:"message"`
	Registration *model.Registration `json:"registration"`
}

type BulkStatusResponse struct {
	Message      string `json:"message"`
	UpdatedCount int64  `json:"updatedCount"`
}

type DeleteResponse struct {
	Message   string `json:"message"`
	DeletedID int64  `json:"deletedId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
