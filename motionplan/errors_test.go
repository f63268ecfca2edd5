package motionplan

import (
	"errors"
	"testing"

	"go.viam.com/test"
)

func TestPlanningErrorKind(t *testing.T) {
	t.Run("Is matches by kind, not message", func(t *testing.T) {
		err := newUnknownConstraint("collision")
		test.That(t, errors.Is(err, &PlanningError{Kind: UnknownConstraint}), test.ShouldBeTrue)
		test.That(t, errors.Is(err, &PlanningError{Kind: InvalidHandle}), test.ShouldBeFalse)
	})

	t.Run("callback failure preserves the original error text", func(t *testing.T) {
		cause := errors.New("host panicked")
		err := wrapCallbackError(cause, "sample callback")
		test.That(t, err.Error(), test.ShouldContainSubstring, "host panicked")
		test.That(t, errors.Is(err, &PlanningError{Kind: CallbackFailure}), test.ShouldBeTrue)
		test.That(t, errors.Unwrap(err), test.ShouldNotBeNil)
	})

	t.Run("missing predicate names the constraint", func(t *testing.T) {
		err := newMissingPredicate("joint_limits", "feasibility")
		test.That(t, err.Error(), test.ShouldContainSubstring, "joint_limits")
		test.That(t, err.Error(), test.ShouldContainSubstring, "feasibility")
	})

	t.Run("error kind strings are stable", func(t *testing.T) {
		test.That(t, InvalidHandle.String(), test.ShouldEqual, "InvalidHandle")
		test.That(t, CallbackFailure.String(), test.ShouldEqual, "CallbackFailure")
		test.That(t, InfeasibleEndpoint.String(), test.ShouldEqual, "InfeasibleEndpoint")
	})
}
