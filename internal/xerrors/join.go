package xerrors

import (
	"fmt"

	"github.com/spanlog/spanlog-go/internal/xstring"
)

// Join collects errs into a single aggregate error. Unlike errors.Join it
// keeps nil entries out but never short-circuits: the caller may append
// errors one by one and join once at the end.
func Join(errs ...error) error {
	nonNil := make(joinErrors, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return nonNil
	}
}

type joinErrors []error

func (errs joinErrors) Error() string {
	b := xstring.Buffer()
	defer b.Free()
	b.WriteByte('[')
	for i, err := range errs {
		if i > 0 {
			_ = b.WriteByte(',')
		}
		_, _ = fmt.Fprintf(b, "%q", err.Error())
	}
	b.WriteByte(']')

	return b.String()
}

func (errs joinErrors) As(target interface{}) bool {
	for _, err := range errs {
		if As(err, target) {
			return true
		}
	}

	return false
}

func (errs joinErrors) Is(target error) bool {
	for _, err := range errs {
		if Is(err, target) {
			return true
		}
	}

	return false
}

func (errs joinErrors) Unwrap() []error {
	return errs
}
