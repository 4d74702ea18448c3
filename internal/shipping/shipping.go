// Package shipping validates checkout shipping details and maps free-text
// country names to ISO two-letter codes.
package shipping

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"sol-storefront/internal/domain"
)

var validate = validator.New()

var fieldMessages = map[string]string{
	"Email":   "Please enter a valid email",
	"Name":    "Name is required",
	"Address": "Address is required",
	"City":    "City is required",
	"Country": "Country is required",
	"Zip":     "ZIP/Postal code is required",
}

// Validate checks the shipping block structurally. All offending fields are
// collected into a single ShippingValidationError so the client can render
// every problem at once instead of fixing them one by one.
func Validate(info domain.ShippingInfo) error {
	err := validate.Struct(info)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		fields[strings.ToLower(fe.Field())] = msg
	}
	return &domain.ShippingValidationError{Fields: fields}
}

var countryCodes = map[string]string{
	"united states":  "US",
	"usa":            "US",
	"us":             "US",
	"united kingdom": "GB",
	"uk":             "GB",
	"canada":         "CA",
	"australia":      "AU",
	"germany":        "DE",
	"france":         "FR",
	"japan":          "JP",
	"china":          "CN",
	"india":          "IN",
	"brazil":         "BR",
	"mexico":         "MX",
}

// CountryCode maps a free-text country name to a two-letter code. Unknown
// input falls back to its first two characters uppercased; a lossy
// heuristic, not geocoding.
func CountryCode(country string) string {
	if code, ok := countryCodes[strings.ToLower(strings.TrimSpace(country))]; ok {
		return code
	}
	trimmed := strings.TrimSpace(country)
	if len(trimmed) < 2 {
		return strings.ToUpper(trimmed)
	}
	return strings.ToUpper(trimmed[:2])
}
