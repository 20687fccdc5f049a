package validation

import (
	"testing"

	"github.com/google/uuid"
)

// TestValidateSessionID tests session id validation
func TestValidateSessionID(t *testing.T) {
	if err := ValidateSessionID(uuid.NewString()); err != nil {
		t.Errorf("Expected valid UUID, got %v", err)
	}
	for _, id := range []string{"", "abc", "../../etc/passwd"} {
		if err := ValidateSessionID(id); err == nil {
			t.Errorf("Expected %q to be rejected", id)
		}
	}
}

// TestValidateEntityID tests catalog id validation
func TestValidateEntityID(t *testing.T) {
	valid := []string{"S001", "L007", "I012"}
	for _, id := range valid {
		if err := ValidateEntityID("survivor", id); err != nil {
			t.Errorf("Expected %q to be valid, got %v", id, err)
		}
	}

	invalid := []string{"", "s001", "S01", "S0001", "S00A", "S001; DROP"}
	for _, id := range invalid {
		if err := ValidateEntityID("survivor", id); err == nil {
			t.Errorf("Expected %q to be rejected", id)
		}
	}

	if err := ValidateOptionalEntityID("target", ""); err != nil {
		t.Errorf("Expected empty optional id to pass, got %v", err)
	}
}

// TestValidateDieValue tests die bounds
func TestValidateDieValue(t *testing.T) {
	for v := 1; v <= 6; v++ {
		if err := ValidateDieValue(v); err != nil {
			t.Errorf("Expected %d to be valid", v)
		}
	}
	for _, v := range []int{0, 7, -1} {
		if err := ValidateDieValue(v); err == nil {
			t.Errorf("Expected %d to be rejected", v)
		}
	}
}

// TestValidateChoice tests choice bounds
func TestValidateChoice(t *testing.T) {
	if err := ValidateChoice(0); err != nil {
		t.Errorf("Expected 0 to be valid")
	}
	if err := ValidateChoice(-1); err == nil {
		t.Errorf("Expected -1 to be rejected")
	}
}
