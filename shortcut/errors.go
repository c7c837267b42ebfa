package shortcut

import (
	"errors"
	"fmt"
)

var (
	// ErrRegisterFailed means the registrar accepted the call but the combo is not bound
	ErrRegisterFailed = errors.New("register attempt failed")
	// ErrStillRegistered means the combo is still bound after Unregister
	ErrStillRegistered = errors.New("accelerator still registered")
)

// Kind classifies a Failure
type Kind int

const (
	RegistrationFailure Kind = iota + 1
	UnregistrationFailure
	InjectionFailure
)

func (k Kind) String() string {
	switch k {
	case RegistrationFailure:
		return "RegistrationFailure"
	case UnregistrationFailure:
		return "UnregistrationFailure"
	case InjectionFailure:
		return "InjectionFailure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Failure is returned by Orchestrator operations. None of them is fatal.
type Failure struct {
	Kind        Kind
	Accelerator string
	Err         error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Kind, f.Accelerator, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// IsKind reports whether err is a *Failure of the given kind
func IsKind(err error, kind Kind) bool {
	var f *Failure
	return errors.As(err, &f) && f.Kind == kind
}
