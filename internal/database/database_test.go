package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/JobDeck-io/jobdeck/internal/config"
	"github.com/JobDeck-io/jobdeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// DatabaseTestSuite runs the persistence layer against a throwaway SQLite file
type DatabaseTestSuite struct {
	suite.Suite
	db *DB
}

func (s *DatabaseTestSuite) SetupTest() {
	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(s.T().TempDir(), "jobdeck_test.db"),
	}

	db, err := Open(cfg)
	require.NoError(s.T(), err, "Database initialization should succeed")
	s.db = db
}

func (s *DatabaseTestSuite) TearDownTest() {
	s.db.Close()
}

func TestDatabaseTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseTestSuite))
}

func strPtr(v string) *string {
	return &v
}

func (s *DatabaseTestSuite) seedJob(title, company, description string, mutate func(*models.NewJob)) *models.Job {
	n := models.NewJob{Title: title, Company: company, Description: description}
	if mutate != nil {
		mutate(&n)
	}
	job, err := s.db.CreateJob(n)
	require.NoError(s.T(), err)
	return job
}

func (s *DatabaseTestSuite) TestCreateAndGetJob() {
	created := s.seedJob("Backend Engineer", "Acme", "Build services", func(n *models.NewJob) {
		n.Location = strPtr("Remote")
		n.JobType = strPtr("full-time")
	})

	assert.NotZero(s.T(), created.ID)
	assert.False(s.T(), created.CreatedAt.IsZero())
	assert.False(s.T(), created.UpdatedAt.IsZero())

	got, err := s.db.GetJobByID(created.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, got.ID)
	assert.Equal(s.T(), "Backend Engineer", got.Title)
	assert.Equal(s.T(), "Acme", got.Company)
	require.NotNil(s.T(), got.Location)
	assert.Equal(s.T(), "Remote", *got.Location)
	assert.Nil(s.T(), got.SalaryRange, "unset optional fields are stored as NULL")
}

func (s *DatabaseTestSuite) TestGetJobByIDNotFound() {
	_, err := s.db.GetJobByID(9999)
	assert.ErrorIs(s.T(), err, ErrJobNotFound)
}

func (s *DatabaseTestSuite) TestUpdatePreservesUnsetFields() {
	job := s.seedJob("Backend Engineer", "Acme", "Build services", func(n *models.NewJob) {
		n.Location = strPtr("Remote")
	})

	updated, err := s.db.UpdateJob(job.ID, models.JobPatch{Title: strPtr("Staff Engineer")})
	require.NoError(s.T(), err)

	assert.Equal(s.T(), "Staff Engineer", updated.Title)
	assert.Equal(s.T(), "Acme", updated.Company, "fields omitted from the patch keep their values")
	require.NotNil(s.T(), updated.Location)
	assert.Equal(s.T(), "Remote", *updated.Location)
	assert.True(s.T(), !updated.UpdatedAt.Before(job.UpdatedAt))
}

func (s *DatabaseTestSuite) TestUpdateJobNotFound() {
	_, err := s.db.UpdateJob(12345, models.JobPatch{Title: strPtr("X")})
	assert.ErrorIs(s.T(), err, ErrJobNotFound)
}

func (s *DatabaseTestSuite) TestDeleteJob() {
	deleted, err := s.db.DeleteJob(4242)
	require.NoError(s.T(), err)
	assert.False(s.T(), deleted, "deleting a nonexistent id reports false")

	job := s.seedJob("Designer", "Beta", "Design things", nil)

	deleted, err = s.db.DeleteJob(job.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), deleted)

	_, err = s.db.GetJobByID(job.ID)
	assert.ErrorIs(s.T(), err, ErrJobNotFound)
}

func (s *DatabaseTestSuite) TestListJobsFilters() {
	s.seedJob("Backend Engineer", "Acme", "Build services", func(n *models.NewJob) {
		n.Location = strPtr("Remote")
		n.JobType = strPtr("full-time")
	})
	time.Sleep(5 * time.Millisecond)
	s.seedJob("Product Designer", "Beta Corp", "Design the product", func(n *models.NewJob) {
		n.Location = strPtr("New York")
		n.JobType = strPtr("full-time")
	})
	time.Sleep(5 * time.Millisecond)
	s.seedJob("Engineering Manager", "Acme", "Lead the team", func(n *models.NewJob) {
		n.Location = strPtr("New York")
		n.JobType = strPtr("contract")
	})

	s.Run("no filters returns all, newest first", func() {
		jobs, err := s.db.ListJobs(models.JobFilters{})
		require.NoError(s.T(), err)
		require.Len(s.T(), jobs, 3)
		assert.Equal(s.T(), "Engineering Manager", jobs[0].Title)
		assert.Equal(s.T(), "Backend Engineer", jobs[2].Title)
	})

	s.Run("search matches title, description or company case-insensitively", func() {
		jobs, err := s.db.ListJobs(models.JobFilters{Search: "ENGINEER"})
		require.NoError(s.T(), err)
		assert.Len(s.T(), jobs, 2)
		for _, job := range jobs {
			assert.Contains(s.T(), job.Title, "Engineer")
		}
	})

	s.Run("job_type matches exactly", func() {
		jobs, err := s.db.ListJobs(models.JobFilters{JobType: "contract"})
		require.NoError(s.T(), err)
		require.Len(s.T(), jobs, 1)
		assert.Equal(s.T(), "Engineering Manager", jobs[0].Title)

		jobs, err = s.db.ListJobs(models.JobFilters{JobType: "full"})
		require.NoError(s.T(), err)
		assert.Empty(s.T(), jobs, "job_type is not a substring match")
	})

	s.Run("location and company match substrings", func() {
		jobs, err := s.db.ListJobs(models.JobFilters{Location: "york"})
		require.NoError(s.T(), err)
		assert.Len(s.T(), jobs, 2)

		jobs, err = s.db.ListJobs(models.JobFilters{Company: "beta"})
		require.NoError(s.T(), err)
		require.Len(s.T(), jobs, 1)
		assert.Equal(s.T(), "Product Designer", jobs[0].Title)
	})

	s.Run("filters combine with AND", func() {
		jobs, err := s.db.ListJobs(models.JobFilters{Search: "engineer", Location: "New York", JobType: "contract", Company: "acme"})
		require.NoError(s.T(), err)
		require.Len(s.T(), jobs, 1)
		assert.Equal(s.T(), "Engineering Manager", jobs[0].Title)

		jobs, err = s.db.ListJobs(models.JobFilters{Search: "engineer", JobType: "full-time", Company: "beta"})
		require.NoError(s.T(), err)
		assert.Empty(s.T(), jobs)
	})
}

func (s *DatabaseTestSuite) TestFilterOptions() {
	empty, err := s.db.FilterOptions()
	require.NoError(s.T(), err)
	assert.Empty(s.T(), empty.Locations)
	assert.Empty(s.T(), empty.JobTypes)
	assert.Empty(s.T(), empty.Companies)

	s.seedJob("A", "Zeta", "x", func(n *models.NewJob) {
		n.Location = strPtr("Remote")
		n.JobType = strPtr("full-time")
	})
	s.seedJob("B", "Acme", "x", func(n *models.NewJob) {
		n.Location = strPtr("Berlin")
	})
	s.seedJob("C", "Acme", "x", nil) // no location, no job_type

	options, err := s.db.FilterOptions()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []string{"Berlin", "Remote"}, options.Locations, "sorted, NULLs excluded")
	assert.Equal(s.T(), []string{"full-time"}, options.JobTypes)
	assert.Equal(s.T(), []string{"Acme", "Zeta"}, options.Companies)
}

func (s *DatabaseTestSuite) TestAdminAccounts() {
	count, err := s.db.CountAdmins()
	require.NoError(s.T(), err)
	assert.Zero(s.T(), count)

	admin, err := models.NewAdmin("admin", "s3cret-pass")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.db.CreateAdmin(admin))
	assert.NotZero(s.T(), admin.ID)

	count, err = s.db.CountAdmins()
	require.NoError(s.T(), err)
	assert.Equal(s.T(), 1, count)

	got, err := s.db.GetAdminByUsername("admin")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), admin.ID, got.ID)
	assert.True(s.T(), got.ValidatePassword("s3cret-pass"))
	assert.False(s.T(), got.ValidatePassword("wrong"))

	_, err = s.db.GetAdminByUsername("nobody")
	assert.ErrorIs(s.T(), err, ErrAdminNotFound)
}

func (s *DatabaseTestSuite) TestSessions() {
	admin, err := models.NewAdmin("admin", "s3cret-pass")
	require.NoError(s.T(), err)
	require.NoError(s.T(), s.db.CreateAdmin(admin))

	require.NoError(s.T(), s.db.CreateSession(admin.ID, "live-token", time.Now().Add(time.Hour)))
	require.NoError(s.T(), s.db.CreateSession(admin.ID, "stale-token", time.Now().Add(-time.Hour)))

	got, err := s.db.AdminBySessionToken("live-token")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), admin.ID, got.ID)

	_, err = s.db.AdminBySessionToken("stale-token")
	assert.ErrorIs(s.T(), err, ErrSessionNotFound, "expired tokens do not resolve")

	_, err = s.db.AdminBySessionToken("unknown-token")
	assert.ErrorIs(s.T(), err, ErrSessionNotFound)

	swept, err := s.db.DeleteExpiredSessions()
	require.NoError(s.T(), err)
	assert.EqualValues(s.T(), 1, swept)

	require.NoError(s.T(), s.db.DeleteSession("live-token"))
	_, err = s.db.AdminBySessionToken("live-token")
	assert.ErrorIs(s.T(), err, ErrSessionNotFound)
}

func TestRebind(t *testing.T) {
	pg := &DB{driver: driverPostgres}
	assert.Equal(t, "SELECT * FROM jobs WHERE id = $1 AND title = $2", pg.rebind("SELECT * FROM jobs WHERE id = ? AND title = ?"))

	lite := &DB{driver: driverSQLite}
	assert.Equal(t, "SELECT * FROM jobs WHERE id = ?", lite.rebind("SELECT * FROM jobs WHERE id = ?"))
}
