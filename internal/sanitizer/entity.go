// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer // import "github.com/citizencage/drupal-8-twig-helpers/internal/sanitizer"

import (
	"regexp"
	"unicode/utf8"
)

var entityRe = regexp.MustCompile(
	`(?i)&[0-9a-z]{2,8};|&#[0-9]{1,7};|&#x[0-9a-f]{1,6};`)

// PlainTextLength returns the number of visible characters in s: markup
// excluded, every entity reference counted as one character.
func PlainTextLength(s string) int {
	var n int
	for tok := range Tokens(s) {
		if tok.Kind == TextToken {
			n += visibleLength(tok.Raw)
		}
	}
	return n
}

func visibleLength(s string) int {
	_, n := visiblePrefix(s, -1)
	return n
}

// visiblePrefix returns the longest prefix of s with at most limit visible
// characters and its visible length. Entity references are taken whole or
// not at all. A negative limit means the whole string.
func visiblePrefix(s string, limit int) (string, int) {
	entities := entityRe.FindAllStringIndex(s, -1)
	var n, i int
	for i < len(s) {
		if n == limit {
			return s[:i], n
		}

		if len(entities) > 0 && entities[0][0] == i {
			i = entities[0][1]
			entities = entities[1:]
		} else {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}
		n++
	}
	return s, n
}
