// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandHash(t *testing.T) {
	tests := []struct {
		length   int
		expected int
	}{
		{length: 20, expected: 20},
		{length: 1, expected: 1},
		{length: 0, expected: DefaultHashLength},
		{length: -3, expected: DefaultHashLength},
		{length: 64, expected: 64},
		{length: 100, expected: 64},
	}

	for _, tt := range tests {
		got := RandHash(tt.length)
		assert.Len(t, got, tt.expected)
		assert.Regexp(t, `^[0-9a-f]+$`, got)
	}
}

func TestRandHash_unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for range 100 {
		s := RandHash(20)
		assert.NotContains(t, seen, s)
		seen[s] = struct{}{}
	}
}

func TestGenerateRandomBytes(t *testing.T) {
	b := GenerateRandomBytes(16)
	assert.Len(t, b, 16)
	assert.NotEqual(t, make([]byte, 16), b)
}
