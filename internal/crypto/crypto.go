// SPDX-FileCopyrightText: Copyright The Project Helper Authors. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package crypto // import "github.com/citizencage/drupal-8-twig-helpers/internal/crypto"

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const (
	DefaultHashLength = 32
	maxHashLength     = sha256.Size * 2
)

// GenerateRandomBytes returns random bytes. crypto/rand never fails on
// supported platforms and crashes the program if it does.
func GenerateRandomBytes(size int) []byte {
	b := make([]byte, size)
	rand.Read(b)
	return b
}

// RandHash returns an unpredictable lowercase hex string of the given length,
// suitable for element ids. Length <= 0 means DefaultHashLength, lengths above
// 64 are capped.
func RandHash(length int) string {
	if length <= 0 {
		length = DefaultHashLength
	}
	length = min(length, maxHashLength)

	sum := sha256.Sum256(GenerateRandomBytes(20))
	s := hex.EncodeToString(sum[:])
	return s[len(s)-length:]
}
