package adapters

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrateToRequestsNormalizesAndSorts(t *testing.T) {
	entries := []LegacyLockEntry{
		{Ecosystem: LegacyEcosystemAPT, Name: "libssl1.1", Version: "1.1.1-1ubuntu2"},
		{Ecosystem: LegacyEcosystemPip, Name: "Numpy_Array", Version: "1.24.0+cpu"},
	}

	out, err := NewLegacyImportAdapter().MigrateToRequests(entries)
	require.NoError(t, err)
	require.Equal(t, []string{
		"libssl1.1/=1.1.1",
		"numpy-array/=1.24.0",
	}, out)
}

func TestMigrateToRequestsRejectsInvalidVersion(t *testing.T) {
	entries := []LegacyLockEntry{
		{Ecosystem: LegacyEcosystemPip, Name: "broken", Version: "not-a-version!!"},
	}
	_, err := NewLegacyImportAdapter().MigrateToRequests(entries)
	require.Error(t, err)
}

func TestMigrateToRequestsRejectsUnknownEcosystem(t *testing.T) {
	entries := []LegacyLockEntry{{Ecosystem: "conda", Name: "numpy", Version: "1.0.0"}}
	_, err := NewLegacyImportAdapter().MigrateToRequests(entries)
	require.Error(t, err)
}
