package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// Regions tried when a guest phone arrives without a country prefix.
var supportedRegions = []string{
	"CL",
	"US",
}

// NormalizePhone canonicalizes a guest phone to E.164. Input that cannot
// be parsed in any supported region is returned trimmed but otherwise
// untouched; the validator decides whether it is acceptable.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return phone
}
