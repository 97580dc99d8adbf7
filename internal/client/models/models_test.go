package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr string
	}{
		{name: "valid", user: User{ID: "u1", Email: "a@b.c", Role: RoleUser}},
		{name: "missing id", user: User{Email: "a@b.c", Role: RoleUser}, wantErr: "missing id"},
		{name: "missing email", user: User{ID: "u1", Role: RoleAdmin}, wantErr: "missing email"},
		{name: "unknown role", user: User{ID: "u1", Email: "a@b.c", Role: "SUPERUSER"}, wantErr: "unknown role"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoginResultValidate(t *testing.T) {
	valid := LoginResult{User: &User{ID: "u1", Email: "a@b.c", Role: RoleUser}, Token: "tok"}
	assert.NoError(t, valid.Validate())

	noUser := LoginResult{Token: "tok"}
	assert.Error(t, noUser.Validate())

	noToken := LoginResult{User: &User{ID: "u1", Email: "a@b.c", Role: RoleUser}}
	assert.Error(t, noToken.Validate())
}

func TestSearchHistoryEntry_ScopesParseWithFallback(t *testing.T) {
	e := SearchHistoryEntry{SearchedScopesJSON: `["PRIVATE","PUBLIC"]`}
	assert.Equal(t, []Scope{ScopePrivate, ScopePublic}, e.Scopes())

	empty := SearchHistoryEntry{}
	assert.Nil(t, empty.Scopes())

	malformed := SearchHistoryEntry{SearchedScopesJSON: `{not json`}
	assert.Nil(t, malformed.Scopes())
	// The raw field stays untouched for debugging.
	assert.Equal(t, `{not json`, malformed.SearchedScopesJSON)
}

func TestSearchHistoryEntry_FiltersParseWithFallback(t *testing.T) {
	e := SearchHistoryEntry{FiltersJSON: `{"category":"reports"}`}
	assert.Equal(t, map[string]string{"category": "reports"}, e.Filters())

	empty := SearchHistoryEntry{}
	assert.NotNil(t, empty.Filters())
	assert.Empty(t, empty.Filters())

	malformed := SearchHistoryEntry{FiltersJSON: `[1,2]`}
	assert.Empty(t, malformed.Filters())
}

func TestLicenseDaysRemaining(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	l := LicenseInfo{ExpiresAt: now.Add(10*24*time.Hour + time.Hour)}
	assert.Equal(t, 10, l.DaysRemaining(now))

	expired := LicenseInfo{ExpiresAt: now.Add(-48 * time.Hour)}
	assert.Equal(t, 0, expired.DaysRemaining(now), "never negative")

	today := LicenseInfo{ExpiresAt: now.Add(2 * time.Hour)}
	assert.Equal(t, 0, today.DaysRemaining(now))
}
