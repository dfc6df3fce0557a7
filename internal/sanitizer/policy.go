// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer // import "github.com/citizencage/drupal-8-twig-helpers/internal/sanitizer"

import (
	"strings"

	"github.com/dsh2dsh/bluemonday/v2"
)

var stripPolicy = bluemonday.StrictPolicy()

// StripTags removes all markup from s.
func StripTags(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	return stripPolicy.Sanitize(s)
}

// SanitizeArrayVals returns a new slice with markup stripped from every value.
func SanitizeArrayVals(values []string) []string {
	sanitized := make([]string, len(values))
	for i, s := range values {
		sanitized[i] = StripTags(s)
	}
	return sanitized
}
