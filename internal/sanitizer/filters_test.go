// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveInvalidChars(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/news/local-events", "/news/local-events"},
		{"/news/<script>alert(1)</script>", "/news/scriptalert1/script"},
		{"a_b:c&d|e, f", "a_b:c&d|e, f"},
		{"café?id=1#top", "cafid1top"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemoveInvalidChars(tt.input))
		})
	}
}

func TestRemoveNonNumeric(t *testing.T) {
	assert.Equal(t, "42", RemoveNonNumeric("tid-42-abc"))
	assert.Equal(t, "15551234567", RemoveNonNumeric("+1 (555) 123-4567"))
	assert.Equal(t, "12", RemoveNonNumeric("/taxonomy/term/12"))
	assert.Empty(t, RemoveNonNumeric("no digits"))
	assert.Empty(t, RemoveNonNumeric("٣"))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "bold", StripTags("<b>bold</b>"))
	assert.Equal(t, "x", StripTags("  <i>x</i>  "))
	assert.Equal(t, "Hello World",
		StripTags("Hello <script>alert(1)</script>World"))
	assert.Empty(t, StripTags("   "))
}

func TestSanitizeArrayVals(t *testing.T) {
	got := SanitizeArrayVals([]string{"<b>one</b>", "two", "<p>three</p>"})
	assert.Equal(t, []string{"one", "two", "three"}, got)

	assert.NotNil(t, SanitizeArrayVals(nil))
	assert.Empty(t, SanitizeArrayVals(nil))
}

func TestInArrayR(t *testing.T) {
	haystack := []any{
		"May 2024",
		[]any{"June 2024", []any{42}},
		map[string]any{"label": "July 2024", "val": "2024-07"},
	}

	tests := []struct {
		name     string
		needle   any
		strict   bool
		expected bool
	}{
		{name: "top level", needle: "May 2024", expected: true},
		{name: "nested slice", needle: "June 2024", expected: true},
		{name: "deeply nested", needle: 42, strict: true, expected: true},
		{name: "map value", needle: "2024-07", expected: true},
		{name: "missing", needle: "August 2024", expected: false},
		{name: "loose type", needle: "42", expected: true},
		{name: "strict type", needle: "42", strict: true, expected: false},
		{name: "strict other int type", needle: int64(42), strict: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InArrayR(tt.needle, haystack, tt.strict))
		})
	}

	assert.False(t, InArrayR("x", nil, false))
	assert.False(t, InArrayR([]string{"a"}, []any{[]string{"a"}}, true))
}
