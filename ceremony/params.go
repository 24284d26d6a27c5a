package ceremony

import (
	"fmt"

	"github.com/ruteri/failsafe/interfaces"
)

// MaxUsers is the largest number of shard holders a split supports.
const MaxUsers = 255

// Params configure a generation ceremony. Zero counts are asked for
// interactively.
type Params struct {
	Users     int
	Accounts  int
	Threshold int
	Entropy   string
}

// RecoverParams configure a recovery ceremony. Zero values are asked for
// interactively.
type RecoverParams struct {
	// User is the 1-based index of the user whose material is re-issued.
	User     int
	Accounts int
}

// ValidateParams checks the relations between the generation counts.
func ValidateParams(p Params) error {
	switch {
	case p.Users < 1:
		return fmt.Errorf("%w: number of users must be at least 1, got %d", interfaces.ErrValidation, p.Users)
	case p.Users > MaxUsers:
		return fmt.Errorf("%w: number of users must be at most %d, got %d", interfaces.ErrValidation, MaxUsers, p.Users)
	case p.Accounts < 1:
		return fmt.Errorf("%w: number of accounts must be at least 1, got %d", interfaces.ErrValidation, p.Accounts)
	case p.Threshold < 1 || p.Threshold > p.Users:
		return fmt.Errorf("%w: threshold must be between 1 and %d, got %d", interfaces.ErrValidation, p.Users, p.Threshold)
	}
	return nil
}

// ValidateRecoverParams checks the recovery target.
func ValidateRecoverParams(p RecoverParams) error {
	switch {
	case p.User < 1 || p.User > MaxUsers:
		return fmt.Errorf("%w: user index must be between 1 and %d, got %d", interfaces.ErrValidation, MaxUsers, p.User)
	case p.Accounts < 1:
		return fmt.Errorf("%w: number of accounts must be at least 1, got %d", interfaces.ErrValidation, p.Accounts)
	}
	return nil
}

// validateGiven checks the non-zero fields of p on their own, so that a bad
// value the operator cannot change interactively fails before any prompt.
func validateGiven(p Params) error {
	switch {
	case p.Users != 0 && (p.Users < 1 || p.Users > MaxUsers):
		return fmt.Errorf("%w: number of users must be between 1 and %d, got %d", interfaces.ErrValidation, MaxUsers, p.Users)
	case p.Accounts != 0 && p.Accounts < 1:
		return fmt.Errorf("%w: number of accounts must be at least 1, got %d", interfaces.ErrValidation, p.Accounts)
	case p.Threshold != 0 && (p.Threshold < 1 || p.Threshold > MaxUsers):
		return fmt.Errorf("%w: threshold must be between 1 and %d, got %d", interfaces.ErrValidation, MaxUsers, p.Threshold)
	case p.Users != 0 && p.Threshold > p.Users:
		return fmt.Errorf("%w: threshold must be between 1 and %d, got %d", interfaces.ErrValidation, p.Users, p.Threshold)
	}
	return nil
}

// validateGivenRecover is validateGiven for recovery parameters.
func validateGivenRecover(p RecoverParams) error {
	switch {
	case p.User != 0 && (p.User < 1 || p.User > MaxUsers):
		return fmt.Errorf("%w: user index must be between 1 and %d, got %d", interfaces.ErrValidation, MaxUsers, p.User)
	case p.Accounts != 0 && p.Accounts < 1:
		return fmt.Errorf("%w: number of accounts must be at least 1, got %d", interfaces.ErrValidation, p.Accounts)
	}
	return nil
}
