package validation

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"

	"github.com/qninhdt/last-compound/server/internal/dice"
)

var entityIDPattern = regexp.MustCompile(`^[A-Z][0-9]{3}$`)

// ValidateSessionID validates session ID format
func ValidateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("session ID must be a UUID")
	}
	return nil
}

// ValidateEntityID validates a catalog id such as a survivor, location or item id
func ValidateEntityID(kind, id string) error {
	if !entityIDPattern.MatchString(id) {
		return fmt.Errorf("%s ID must look like X000", kind)
	}
	return nil
}

// ValidateOptionalEntityID is ValidateEntityID that accepts an empty id
func ValidateOptionalEntityID(kind, id string) error {
	if id == "" {
		return nil
	}
	return ValidateEntityID(kind, id)
}

// ValidateDieValue validates a die pip value
func ValidateDieValue(value int) error {
	if value < 1 || value > dice.Sides {
		return fmt.Errorf("die value must be between 1 and %d", dice.Sides)
	}
	return nil
}

// ValidateChoice validates a crossroad choice index
func ValidateChoice(choice int) error {
	if choice < 0 || choice > 9 {
		return fmt.Errorf("choice must be between 0 and 9")
	}
	return nil
}
