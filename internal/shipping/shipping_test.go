package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sol-storefront/internal/domain"
)

func validInfo() domain.ShippingInfo {
	return domain.ShippingInfo{
		Email:   "a@b.co",
		Name:    "Jo",
		Address: "1 Main Street",
		City:    "Springfield",
		Country: "United States",
		Zip:     "123",
	}
}

func TestValidateAcceptsMinimalValidInfo(t *testing.T) {
	assert.NoError(t, Validate(validInfo()))
}

func TestValidateRejectsBadEmail(t *testing.T) {
	info := validInfo()
	info.Email = "not-an-email"

	err := Validate(info)

	var serr *domain.ShippingValidationError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "Please enter a valid email", serr.Fields["email"])
	assert.Len(t, serr.Fields, 1)
}

func TestValidateCollectsAllFailures(t *testing.T) {
	err := Validate(domain.ShippingInfo{})

	var serr *domain.ShippingValidationError
	require.ErrorAs(t, err, &serr)
	for _, field := range []string{"email", "name", "address", "city", "country", "zip"} {
		assert.Contains(t, serr.Fields, field)
	}
}

func TestValidateZipMinLength(t *testing.T) {
	info := validInfo()
	info.Zip = "12"

	err := Validate(info)

	var serr *domain.ShippingValidationError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Fields, "zip")
}

func TestCountryCodeLookup(t *testing.T) {
	cases := map[string]string{
		"United States":  "US",
		"usa":            "US",
		"us":             "US",
		"United Kingdom": "GB",
		"uk":             "GB",
		"Canada":         "CA",
		"Japan":          "JP",
	}
	for in, want := range cases {
		assert.Equal(t, want, CountryCode(in), "country %q", in)
	}
}

func TestCountryCodeFallback(t *testing.T) {
	// Unknown countries fall back to the first two characters, uppercased.
	assert.Equal(t, "NE", CountryCode("Netherlands"))
	assert.Equal(t, "SP", CountryCode("spain"))
	assert.Equal(t, "X", CountryCode("x"))
}
