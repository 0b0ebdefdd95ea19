package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpdateApply(t *testing.T) {
	created := time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)
	now := created.Add(48 * time.Hour)

	u := User{
		ID:        "u-1",
		Email:     "test@example.com",
		Rank:      StringPtr("E-4"),
		CreatedAt: created,
		UpdatedAt: created,
	}

	upd := ProfileUpdate{
		Branch: BranchPtr(BranchNavy),
		Unit:   StringPtr("1st Battalion"),
	}
	out := upd.Apply(u, now)

	// identity fields never move
	assert.Equal(t, "u-1", out.ID)
	assert.Equal(t, "test@example.com", out.Email)
	assert.Equal(t, created, out.CreatedAt)

	require.NotNil(t, out.Branch)
	assert.Equal(t, BranchNavy, *out.Branch)
	require.NotNil(t, out.Unit)
	assert.Equal(t, "1st Battalion", *out.Unit)

	// nil fields keep their previous values
	require.NotNil(t, out.Rank)
	assert.Equal(t, "E-4", *out.Rank)
	assert.Equal(t, now, out.UpdatedAt)

	// the original value is untouched
	assert.Nil(t, u.Branch)
	assert.Equal(t, created, u.UpdatedAt)
}

func TestBranchAbbreviations(t *testing.T) {
	want := map[Branch]string{
		BranchArmy:       "USA",
		BranchNavy:       "USN",
		BranchAirForce:   "USAF",
		BranchMarines:    "USMC",
		BranchSpaceForce: "USSF",
		BranchCoastGuard: "USCG",
	}
	assert.Len(t, Branches(), 6)
	for b, abbr := range want {
		assert.Equal(t, abbr, b.Abbreviation())
		assert.True(t, b.Valid())
	}
	assert.False(t, Branch("Militia").Valid())
}

func TestParseBranch(t *testing.T) {
	b, err := ParseBranch("Space Force")
	require.NoError(t, err)
	assert.Equal(t, BranchSpaceForce, b)

	_, err = ParseBranch("space force")
	assert.Error(t, err)
}

func TestRankDisplayName(t *testing.T) {
	assert.Equal(t, "E-4 (Corporal)", Rank("E-4").DisplayName())
	assert.Equal(t, "W-5 (Chief Warrant Officer 5)", Rank("W-5").DisplayName())
	assert.Equal(t, "X-0", Rank("X-0").DisplayName())
	assert.Len(t, Ranks(), 23)
}
