package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JobDeck-io/jobdeck/internal/models"
)

var ErrJobNotFound = errors.New("job not found")

const jobColumns = "id, title, company, company_logo, location, job_type, salary_range, description, requirements, form_link, portal, created_at, updated_at"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*models.Job, error) {
	job := &models.Job{}
	err := row.Scan(
		&job.ID, &job.Title, &job.Company, &job.CompanyLogo, &job.Location,
		&job.JobType, &job.SalaryRange, &job.Description, &job.Requirements,
		&job.FormLink, &job.Portal, &job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}

// ListJobs returns postings matching the filter set, newest first. Filters
// compose into WHERE predicates: search matches title, description or company
// as a case-insensitive substring; location and company match substrings;
// job_type matches exactly. All provided filters are ANDed.
func (db *DB) ListJobs(filters models.JobFilters) ([]models.Job, error) {
	var where []string
	var args []interface{}
	like := db.like()

	if filters.Search != "" {
		pattern := "%" + filters.Search + "%"
		where = append(where, fmt.Sprintf("(title %[1]s ? OR description %[1]s ? OR company %[1]s ?)", like))
		args = append(args, pattern, pattern, pattern)
	}
	if filters.Location != "" {
		where = append(where, fmt.Sprintf("location %s ?", like))
		args = append(args, "%"+filters.Location+"%")
	}
	if filters.JobType != "" {
		where = append(where, "job_type = ?")
		args = append(args, filters.JobType)
	}
	if filters.Company != "" {
		where = append(where, fmt.Sprintf("company %s ?", like))
		args = append(args, "%"+filters.Company+"%")
	}

	query := "SELECT " + jobColumns + " FROM jobs"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := db.conn.Query(db.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

// GetJobByID retrieves a single posting
func (db *DB) GetJobByID(id int64) (*models.Job, error) {
	query := db.rebind("SELECT " + jobColumns + " FROM jobs WHERE id = ?")
	job, err := scanJob(db.conn.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

// CreateJob inserts a new posting and returns the stored record
func (db *DB) CreateJob(n models.NewJob) (*models.Job, error) {
	job := &models.Job{
		Title:        n.Title,
		Company:      n.Company,
		CompanyLogo:  n.CompanyLogo,
		Location:     n.Location,
		JobType:      n.JobType,
		SalaryRange:  n.SalaryRange,
		Description:  n.Description,
		Requirements: n.Requirements,
		FormLink:     n.FormLink,
		Portal:       n.Portal,
	}

	if db.driver == driverPostgres {
		err := db.conn.QueryRow(db.rebind(
			`INSERT INTO jobs (title, company, company_logo, location, job_type, salary_range, description, requirements, form_link, portal)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id, created_at, updated_at`),
			job.Title, job.Company, job.CompanyLogo, job.Location, job.JobType,
			job.SalaryRange, job.Description, job.Requirements, job.FormLink, job.Portal,
		).Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt)
		if err != nil {
			return nil, err
		}
		return job, nil
	}

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	result, err := db.conn.Exec(
		`INSERT INTO jobs (title, company, company_logo, location, job_type, salary_range, description, requirements, form_link, portal, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.Title, job.Company, job.CompanyLogo, job.Location, job.JobType,
		job.SalaryRange, job.Description, job.Requirements, job.FormLink, job.Portal,
		job.CreatedAt, job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	job.ID = id
	return job, nil
}

// UpdateJob applies a partial update. Nil patch fields keep their stored
// values via COALESCE; updated_at is always bumped.
func (db *DB) UpdateJob(id int64, patch models.JobPatch) (*models.Job, error) {
	set := `title = COALESCE(?, title),
		company = COALESCE(?, company),
		company_logo = COALESCE(?, company_logo),
		location = COALESCE(?, location),
		job_type = COALESCE(?, job_type),
		salary_range = COALESCE(?, salary_range),
		description = COALESCE(?, description),
		requirements = COALESCE(?, requirements),
		form_link = COALESCE(?, form_link),
		portal = COALESCE(?, portal)`

	args := []interface{}{
		patch.Title, patch.Company, patch.CompanyLogo, patch.Location,
		patch.JobType, patch.SalaryRange, patch.Description,
		patch.Requirements, patch.FormLink, patch.Portal,
	}

	if db.driver == driverPostgres {
		query := "UPDATE jobs SET " + set + ", updated_at = NOW() WHERE id = ? RETURNING " + jobColumns
		args = append(args, id)
		job, err := scanJob(db.conn.QueryRow(db.rebind(query), args...))
		if err == sql.ErrNoRows {
			return nil, ErrJobNotFound
		}
		if err != nil {
			return nil, err
		}
		return job, nil
	}

	query := "UPDATE jobs SET " + set + ", updated_at = ? WHERE id = ?"
	args = append(args, time.Now(), id)
	result, err := db.conn.Exec(query, args...)
	if err != nil {
		return nil, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrJobNotFound
	}
	return db.GetJobByID(id)
}

// DeleteJob removes a posting permanently. The boolean reports whether a row
// was actually removed.
func (db *DB) DeleteJob(id int64) (bool, error) {
	result, err := db.conn.Exec(db.rebind("DELETE FROM jobs WHERE id = ?"), id)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// FilterOptions returns the sorted distinct non-null values for the filter
// dropdowns. Recomputed on every call; there is no caching layer.
func (db *DB) FilterOptions() (*models.FilterOptions, error) {
	locations, err := db.distinctColumn("location")
	if err != nil {
		return nil, err
	}
	jobTypes, err := db.distinctColumn("job_type")
	if err != nil {
		return nil, err
	}
	companies, err := db.distinctColumn("company")
	if err != nil {
		return nil, err
	}
	return &models.FilterOptions{
		Locations: locations,
		JobTypes:  jobTypes,
		Companies: companies,
	}, nil
}

// distinctColumn only accepts known filter columns; the name is interpolated
// into the query text.
func (db *DB) distinctColumn(column string) ([]string, error) {
	switch column {
	case "location", "job_type", "company":
	default:
		return nil, fmt.Errorf("unsupported filter column: %s", column)
	}

	query := fmt.Sprintf("SELECT DISTINCT %[1]s FROM jobs WHERE %[1]s IS NOT NULL ORDER BY %[1]s", column)
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
