package errors

import (
	"strings"

	"go.ytsaurus.tech/library/go/core/xerrors"
)

// splitFunctionName turns "github.com/a/b/pkg.(*Type).Method" into ("pkg", "(*Type)", "Method").
// Package names containing dots are ambiguous, the last two components are taken as type and method.
func splitFunctionName(qualified string) (pkg, typ, method string) {
	lastSlash := strings.LastIndex(qualified, "/")
	components := strings.Split(qualified[lastSlash+1:], ".")
	switch {
	case len(components) < 2:
		return "", "", ""
	case len(components) == 2:
		return components[0], "", components[1]
	default:
		n := len(components)
		return strings.Join(components[:n-2], "."), components[n-2], components[n-1]
	}
}

// ExtractShortStackTrace renders the wrap chain of err as dotted call sites,
// innermost first, e.g. "parseFollow.NewFilterSpec.(*Source).Configure".
func ExtractShortStackTrace(err error) string {
	return strings.ReplaceAll(extractStackTrace(err), ".CategorizedErrorf", "")
}

func extractStackTrace(err error) string {
	var sites []string
	seen := make(map[error]bool)
	for err != nil && !seen[err] {
		seen[err] = true
		if withStack, ok := err.(xerrors.ErrorStackTrace); ok {
			if frames := withStack.StackTrace().Frames(); len(frames) > 0 {
				_, typ, method := splitFunctionName(frames[0].Function)
				site := method
				if typ != "" {
					site = typ + "." + method
				}
				sites = append([]string{site}, sites...)
			}
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
	}
	return strings.Join(sites, ".")
}
