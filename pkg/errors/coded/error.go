package coded

import "go.ytsaurus.tech/library/go/core/xerrors"

type codedError struct {
	err  error
	code Code
}

func (e *codedError) Error() string {
	return e.err.Error()
}

func (e *codedError) Unwrap() error {
	return e.err
}

func (e *codedError) Code() Code {
	return e.code
}

func Errorf(code Code, format string, args ...any) error {
	return &codedError{
		err:  xerrors.Errorf(format, args...),
		code: code,
	}
}
