package testutils

import (
	"bytes"
	"fmt"
	"strings"
)

func CompareSlices[T comparable](want, got []T, name string, errBuf *bytes.Buffer) bool {
	if len(want) != len(got) {
		fmt.Fprintf(
			errBuf,
			"\nlen(%s): want: %d, got: %d",
			name, len(want), len(got),
		)
		return false
	}

	ok := true
	for i, wantVal := range want {
		gotVal := got[i]
		if wantVal != gotVal {
			fmt.Fprintf(
				errBuf,
				"\n%s[%d]: want: %v, got: %v",
				name, i, wantVal, gotVal,
			)
			ok = false
		}
	}

	return ok
}

// Compare multi-line text, line by line:
func CompareLines(want, got string, name string, errBuf *bytes.Buffer) bool {
	return CompareSlices(
		strings.Split(want, "\n"),
		strings.Split(got, "\n"),
		name,
		errBuf,
	)
}
