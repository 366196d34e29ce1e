package utils

import (
	rndm "math/rand"
)

var letterRunes = []rune("abcdefghijklmnopqrstuvwxyz0123456789_ABCDEFGHIJKLMNOPQRSTUVWXYZ")
var readableRunes = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// GenerateRandomString creates a random alphanumeric string of length n.
func GenerateRandomString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = letterRunes[rndm.Intn(len(letterRunes))]
	}
	return string(b)
}

// GenerateReadableID creates a short uppercase alphanumeric order code of
// length n. Not globally unique; good enough for a human-facing reference.
func GenerateReadableID(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = readableRunes[rndm.Intn(len(readableRunes))]
	}
	return string(b)
}
