// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer // import "github.com/citizencage/drupal-8-twig-helpers/internal/sanitizer"

import (
	"fmt"
	"reflect"
	"strings"
)

// RemoveInvalidChars keeps only characters allowed in an URL alias:
// letters, digits and "-_:&/|, ".
func RemoveInvalidChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', isDigit(r):
			return r
		case strings.ContainsRune("-_:&/|, ", r):
			return r
		}
		return -1
	}, s)
}

// RemoveNonNumeric keeps only ASCII digits.
func RemoveNonNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if isDigit(r) {
			return r
		}
		return -1
	}, s)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// InArrayR reports whether needle is somewhere in haystack, descending into
// nested []any and map[string]any values. Without strict values are compared
// by their string form, so 1 and "1" are equal.
func InArrayR(needle any, haystack []any, strict bool) bool {
	for _, item := range haystack {
		if equalValues(needle, item, strict) {
			return true
		}
		switch v := item.(type) {
		case []any:
			if InArrayR(needle, v, strict) {
				return true
			}
		case map[string]any:
			for _, value := range v {
				if InArrayR(needle, []any{value}, strict) {
					return true
				}
			}
		}
	}
	return false
}

func equalValues(a, b any, strict bool) bool {
	switch b.(type) {
	case []any, map[string]any:
		return false
	}

	if strict {
		t := reflect.TypeOf(b)
		return t == reflect.TypeOf(a) && (t == nil || t.Comparable()) && a == b
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}
