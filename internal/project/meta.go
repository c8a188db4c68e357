package project

import (
	"strings"
	"unicode"
)

// IsValidModuleName reports whether name is a well-formed dotted module
// name: one or more identifier segments, each starting with an uppercase
// letter, like `Main` or `Data.List`.
func IsValidModuleName(name string) bool {
	if name == "" {
		return false
	}
	for _, seg := range strings.Split(name, ".") {
		if !validSegment(seg) {
			return false
		}
	}
	return true
}

func validSegment(seg string) bool {
	if seg == "" {
		return false
	}
	for i, r := range seg {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 {
			if !unicode.IsUpper(r) {
				return false
			}
			continue
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
