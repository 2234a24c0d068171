package coded

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.ytsaurus.tech/library/go/core/xerrors"
)

// Code is a stable dotted identifier of a failure, e.g. "twitter.invalid_follow".
// Codes are registered once at init, duplicates panic.
type Code string

func (c Code) ID() string {
	return string(c)
}

// Contains reports whether any coded error in the chain carries c.
func (c Code) Contains(err error) bool {
	var codedErr CodedError
	unwrapped := err
	for xerrors.As(unwrapped, &codedErr) {
		if codedErr.Code() == c {
			return true
		}
		unwrapped = xerrors.Unwrap(codedErr)
	}
	return false
}

type CodedError interface {
	error
	Code() Code
}

var (
	mu               sync.RWMutex
	knownCodes       = map[Code]struct{}{}
	codeDescriptions = map[Code]string{}
)

func Register(parts ...string) Code {
	code := Code(strings.Join(parts, "."))
	mu.Lock()
	defer mu.Unlock()
	if _, ok := knownCodes[code]; ok {
		panic(fmt.Sprintf("code: %s already registered", code))
	}
	knownCodes[code] = struct{}{}
	return code
}

func RegisterShortDescription(code Code, description string) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := knownCodes[code]; !ok {
		panic(fmt.Sprintf("code: %s not registered, cannot register description", code))
	}
	codeDescriptions[code] = description
}

func GetShortDescription(code Code) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	description, ok := codeDescriptions[code]
	return description, ok
}

func All() []Code {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Code, 0, len(knownCodes))
	for code := range knownCodes {
		res = append(res, code)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}
