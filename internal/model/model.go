package model

import "time"

type Registration struct {
	ID                  int64     `db:"id" json:"id"`
	FirstName           string    `db:"first_name" json:"first_name"`
	LastName            string    `db:"last_name" json:"last_name"`
	Email               string    `db:"email" json:"email"`
	Organization        string    `db:"organization,omitempty" json:"organization,omitempty"`
	Phone               string    `db:"phone,omitempty" json:"phone,omitempty"`
	Position            string    `db:"position,omitempty" json:"position,omitempty"`
	Country             string    `db:"country,omitempty" json:"country,omitempty"`
	RegistrationType    string    `db:"registration_type" json:"registration_type"`
	SpecialRequirements string    `db:"special_requirements,omitempty" json:"special_requirements,omitempty"`
	PaymentProofURL     string    `db:"payment_proof_url,omitempty" json:"payment_proof_url,omitempty"`
	Status              string    `db:"status" json:"status"`
	CreatedAt           time.Time `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// RegistrationInput carries the attendee-supplied fields for create and full update.
type RegistrationInput struct {
	FirstName           string `json:"firstName" validate:"required"`
	LastName            string `json:"lastName" validate:"required"`
	Email               string `json:"email" validate:"required"`
	Phone               string `json:"phone"`
	Organization        string `json:"organization"`
	Position            string `json:"position"`
	Country             string `json:"country"`
	RegistrationType    string `json:"registrationType" validate:"required"`
	SpecialRequirements string `json:"specialRequirements"`
	PaymentProofURL     string `json:"paymentProofUrl"`
}

type Session struct {
	ID                   int64     `db:"id" json:"id"`
	Title                string    `db:"title" json:"title"`
	Description          string    `db:"description,omitempty" json:"description,omitempty"`
	Date                 time.Time `db:"date" json:"date"`
	StartTime            string    `db:"start_time" json:"start_time"`
	EndTime              string    `db:"end_time,omitempty" json:"end_time,omitempty"`
	Location             string    `db:"location,omitempty" json:"location,omitempty"`
	Capacity             *int      `db:"capacity" json:"capacity"`
	CurrentRegistrations int       `db:"current_registrations" json:"current_registrations"`
	Status               string    `db:"status" json:"status"`
}

type Activity struct {
	ID                   int64     `db:"id" json:"id"`
	Name                 string    `db:"name" json:"name"`
	Description          string    `db:"description,omitempty" json:"description,omitempty"`
	Date                 time.Time `db:"date" json:"date"`
	Time                 string    `db:"time" json:"time"`
	Location             string    `db:"location,omitempty" json:"location,omitempty"`
	Capacity             *int      `db:"capacity" json:"capacity"`
	CurrentRegistrations int       `db:"current_registrations" json:"current_registrations"`
	Status               string    `db:"status" json:"status"`
}

// Enrollment is a join row between a registration and a session or activity.
type Enrollment struct {
	ID             int64      `db:"id" json:"id"`
	Kind           ParentKind `json:"kind"`
	ParentID       int64      `db:"parent_id" json:"parent_id"`
	RegistrationID int64      `db:"registration_id" json:"registration_id"`
	Status         string     `db:"status" json:"status"`
	RegisteredAt   time.Time  `db:"registered_at" json:"registered_at"`
}

type SessionEnrollment struct {
	Session
	EnrollmentStatus string    `json:"enrollment_status"`
	RegisteredAt     time.Time `json:"registered_at"`
}

type ActivityEnrollment struct {
	Activity
	EnrollmentStatus string    `json:"enrollment_status"`
	RegisteredAt     time.Time `json:"registered_at"`
}

type RegistrantSchedule struct {
	Sessions   []SessionEnrollment  `json:"sessions"`
	Activities []ActivityEnrollment `json:"activities"`
}

type ListFilter struct {
	Status string
	Search string
	Page   int
	Limit  int
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

type RegistrationPage struct {
	Registrations []Registration `json:"registrations"`
	Pagination    Pagination     `json:"pagination"`
}

type StatusCounts struct {
	TotalRegistrations int `json:"total_registrations"`
	Submitted          int `json:"submitted"`
	UnderReview        int `json:"under_review"`
	Approved           int `json:"approved"`
	Rejected           int `json:"rejected"`
	Waitlist           int `json:"waitlist"`
	Cancelled          int `json:"cancelled"`
	NewThisWeek        int `json:"new_this_week"`
}

type TypeCount struct {
	RegistrationType string `json:"registration_type"`
	Count            int    `json:"count"`
}

type StatsOverview struct {
	Overview StatusCounts `json:"overview"`
	ByType   []TypeCount  `json:"by_type"`
}
