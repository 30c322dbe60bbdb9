package simulation

import (
	"errors"
	"fmt"

	"github.com/preston-bernstein/tournament-sim/internal/domain/tournament"
)

var (
	// ErrInvalidParticipant is returned when a match is missing a team.
	ErrInvalidParticipant = errors.New("invalid match participant")
	// ErrDrawConstraintUnsatisfiable is returned when no valid bracket was found within the attempt cap.
	ErrDrawConstraintUnsatisfiable = errors.New("draw constraint unsatisfiable")
	// ErrInsufficientAdvancers is returned when a knockout stage is short of participants.
	ErrInsufficientAdvancers = errors.New("insufficient advancers")
	// ErrInvalidGroupSize is returned when a round robin is requested for a group that is not 4 teams.
	ErrInvalidGroupSize = errors.New("invalid group size")
	// ErrInsufficientSeeds is returned when fewer than DrawSize seeds reach the draw.
	ErrInsufficientSeeds = errors.New("insufficient seeds for draw")
)

// DrawConstraintError reports an exhausted draw.
type DrawConstraintError struct {
	Attempts int
}

func (e *DrawConstraintError) Error() string {
	return fmt.Sprintf("%s after %d attempts", ErrDrawConstraintUnsatisfiable, e.Attempts)
}

func (e *DrawConstraintError) Is(target error) bool {
	return target == ErrDrawConstraintUnsatisfiable
}

// InsufficientAdvancersError reports which stage could not be filled.
type InsufficientAdvancersError struct {
	Stage tournament.Stage
	Want  int
	Got   int
}

func (e *InsufficientAdvancersError) Error() string {
	return fmt.Sprintf("%s for %s: want %d, got %d", ErrInsufficientAdvancers, e.Stage, e.Want, e.Got)
}

func (e *InsufficientAdvancersError) Is(target error) bool {
	return target == ErrInsufficientAdvancers
}

// AsInsufficientAdvancersError attempts to unwrap an error into an InsufficientAdvancersError.
func AsInsufficientAdvancersError(err error) (*InsufficientAdvancersError, bool) {
	var target *InsufficientAdvancersError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
