package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobValidate(t *testing.T) {
	tests := []struct {
		name    string
		job     NewJob
		wantErr bool
	}{
		{"all required fields", NewJob{Title: "Engineer", Company: "Acme", Description: "Build things"}, false},
		{"missing title", NewJob{Company: "Acme", Description: "Build things"}, true},
		{"missing company", NewJob{Title: "Engineer", Description: "Build things"}, true},
		{"missing description", NewJob{Title: "Engineer", Company: "Acme"}, true},
		{"empty payload", NewJob{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingFields)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewAdminHashesPassword(t *testing.T) {
	admin, err := NewAdmin("admin", "plaintext-pass")
	require.NoError(t, err)

	assert.Equal(t, "admin", admin.Username)
	assert.NotEqual(t, "plaintext-pass", admin.PasswordHash)
	assert.True(t, admin.ValidatePassword("plaintext-pass"))
	assert.False(t, admin.ValidatePassword("other-pass"))
}

func TestJobFiltersIsZero(t *testing.T) {
	assert.True(t, JobFilters{}.IsZero())
	assert.False(t, JobFilters{Search: "go"}.IsZero())
	assert.False(t, JobFilters{JobType: "contract"}.IsZero())
}
