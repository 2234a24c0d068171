package abstract

import (
	"go.ytsaurus.tech/library/go/core/xerrors"
)

// ErrChannelFull is wrapped by Sink implementations that reject an event for lack of capacity.
var ErrChannelFull = xerrors.New("channel is full")

func IsChannelFull(err error) bool {
	return err != nil && xerrors.Is(err, ErrChannelFull)
}

type fatalError struct {
	err error
}

func (f fatalError) Error() string {
	return f.err.Error()
}

func (f fatalError) Unwrap() error {
	return f.err
}

// NewFatalError marks err as non-retriable.
func NewFatalError(err error) error {
	if err == nil {
		return nil
	}
	return fatalError{err: err}
}

func IsFatal(err error) bool {
	var fatal fatalError
	return xerrors.As(err, &fatal)
}
