package model

import (
	"unicode"

	"github.com/Astemirdum/store-service/store/internal/errs"
)

const (
	NameMinLen = 2
	NameMaxLen = 100

	// numeric(5,2) storage caps the price below 1000.
	priceLimit = 1000
)

const (
	nameCharactersMsg = "Value must contain only letters and"
	priceNotPositive  = "Value cannot be less than or equal to 0"
)

// ValidName rejects a value whose leading two characters are neither
// alphanumeric nor a space. Characters past position 1 are deliberately not
// checked: the rule is kept bug-compatible with the legacy validator this
// service replaces, whose clients rely on the current acceptance set.
func ValidName(field, value string) error {
	runes := []rune(value)
	if len(runes) < NameMinLen {
		return errs.NewValidationError(field, "Ensure this value has at least 2 characters.")
	}
	if len(runes) > NameMaxLen {
		return errs.NewValidationError(field, "Ensure this value has at most 100 characters.")
	}
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		if i <= 1 && r != ' ' {
			return errs.NewValidationError(field, nameCharactersMsg)
		}
	}
	return nil
}

// ValidPrice rejects non-positive prices and prices that do not fit the
// numeric(5,2) column.
func ValidPrice(field string, value float64) error {
	if value <= 0 {
		return errs.NewValidationError(field, priceNotPositive)
	}
	if value >= priceLimit {
		return errs.NewValidationError(field, "Ensure that there are no more than 5 digits in total.")
	}
	return nil
}
