package checkout

import (
	"errors"
	"fmt"
)

var (
	// -- Step machine --
	ErrAtFinalStep = errors.New("already at review, place the order instead")
	ErrForwardJump = errors.New("cannot jump forward past validation")

	// -- Order placement --
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPlacementFailed = errors.New("failed to place order, try again")
)

// ValidationError blocks a forward step transition. It names the first
// missing field (in form order) so the UI can point at it; it is a user
// input problem, not a system failure.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("please fill in %s", e.Field)
}
