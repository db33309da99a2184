package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSiteSeparatorVariants(t *testing.T) {
	for _, name := range []string{
		"zip_recruiter", "zip-recruiter", "zip recruiter", "ZipRecruiter", "ZIP_RECRUITER",
	} {
		s, err := ResolveSite(name)
		require.NoError(t, err, "input %q", name)
		assert.Equal(t, SiteZipRecruiter, s)
	}
}

func TestResolveSiteUnknown(t *testing.T) {
	_, err := ResolveSite("monster")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown site "monster"`)
	assert.Contains(t, err.Error(), "indeed")
	assert.Contains(t, err.Error(), "seek")
}

func TestResolveSitesEmptySelectsAll(t *testing.T) {
	sites, err := ResolveSites(nil)
	require.NoError(t, err)
	assert.Equal(t, AllSites(), sites)
	assert.Len(t, sites, 9)
}

func TestResolveSitesDedup(t *testing.T) {
	sites, err := ResolveSites([]string{"indeed", "Indeed", "linkedin"})
	require.NoError(t, err)
	assert.Equal(t, []Site{SiteIndeed, SiteLinkedIn}, sites)
}

func TestResolveSitesPropagatesError(t *testing.T) {
	_, err := ResolveSites([]string{"indeed", "nope"})
	assert.Error(t, err)
}
