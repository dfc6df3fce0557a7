// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"5551234567", "(555) 123-4567"},
		{"555.123.4567", "(555) 123-4567"},
		{"1-555-123-4567", "(555) 123-4567"},
		{"+1 (555) 123-4567", "(555) 123-4567"},
		{"５５５１２３４５６７", "(555) 123-4567"},
		{"123-4567", "1234567"},
		{"44 20 7946 0958", "442079460958"},
		{"25551234567", "25551234567"},
		{"call me", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Phone(tt.input))
		})
	}
}
