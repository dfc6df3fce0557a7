// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package format // import "github.com/citizencage/drupal-8-twig-helpers/internal/format"

import (
	"golang.org/x/text/unicode/norm"

	"github.com/citizencage/drupal-8-twig-helpers/internal/sanitizer"
)

// Phone keeps only digits of s and formats a North American number as
// (xxx) xxx-xxxx. A leading country code 1 is dropped. Any other number is
// returned as digits only.
func Phone(s string) string {
	// Fullwidth and other compatibility digits become ASCII ones.
	number := sanitizer.RemoveNonNumeric(norm.NFKC.String(s))
	if len(number) == 11 && number[0] == '1' {
		number = number[1:]
	}

	if len(number) != 10 {
		return number
	}
	return "(" + number[:3] + ") " + number[3:6] + "-" + number[6:]
}
