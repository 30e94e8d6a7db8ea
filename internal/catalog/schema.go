package catalog

import (
	"gymlink-api/internal/common/validation"
)

// ValidateRecords checks raw catalog JSON against the embedded record schema.
func ValidateRecords(data []byte) error {
	return validation.ValidateJSON(recordSchema, data)
}
