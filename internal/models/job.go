package models

import (
	"errors"
	"time"
)

// Job represents a single job posting
type Job struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Company      string    `json:"company" db:"company"`
	CompanyLogo  *string   `json:"company_logo" db:"company_logo"`
	Location     *string   `json:"location" db:"location"`
	JobType      *string   `json:"job_type" db:"job_type"`
	SalaryRange  *string   `json:"salary_range" db:"salary_range"`
	Description  string    `json:"description" db:"description"`
	Requirements *string   `json:"requirements" db:"requirements"`
	FormLink     *string   `json:"form_link" db:"form_link"`
	Portal       *string   `json:"portal" db:"portal"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// NewJob is the payload for creating a posting. Optional fields are stored
// as NULL when absent.
type NewJob struct {
	Title        string  `json:"title"`
	Company      string  `json:"company"`
	CompanyLogo  *string `json:"company_logo"`
	Location     *string `json:"location"`
	JobType      *string `json:"job_type"`
	SalaryRange  *string `json:"salary_range"`
	Description  string  `json:"description"`
	Requirements *string `json:"requirements"`
	FormLink     *string `json:"form_link"`
	Portal       *string `json:"portal"`
}

var ErrMissingFields = errors.New("title, company, and description are required")

// Validate checks the required fields for a new posting
func (n *NewJob) Validate() error {
	if n.Title == "" || n.Company == "" || n.Description == "" {
		return ErrMissingFields
	}
	return nil
}

// JobPatch is a partial update. Nil fields keep their stored values.
type JobPatch struct {
	Title        *string `json:"title"`
	Company      *string `json:"company"`
	CompanyLogo  *string `json:"company_logo"`
	Location     *string `json:"location"`
	JobType      *string `json:"job_type"`
	SalaryRange  *string `json:"salary_range"`
	Description  *string `json:"description"`
	Requirements *string `json:"requirements"`
	FormLink     *string `json:"form_link"`
	Portal       *string `json:"portal"`
}

// JobFilters narrows a listing query. Empty fields are ignored; all provided
// fields are combined with AND.
type JobFilters struct {
	Search   string `json:"search"`
	Location string `json:"location"`
	JobType  string `json:"job_type"`
	Company  string `json:"company"`
}

// IsZero reports whether no filter is set
func (f JobFilters) IsZero() bool {
	return f.Search == "" && f.Location == "" && f.JobType == "" && f.Company == ""
}

// FilterOptions holds the distinct values used to populate filter dropdowns
type FilterOptions struct {
	Locations []string `json:"locations"`
	JobTypes  []string `json:"jobTypes"`
	Companies []string `json:"companies"`
}
