package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateID returns a short id used in object keys and request ids.
func GenerateID() string {
	id, err := gonanoid.Generate(idAlphabet, 10)
	if err != nil {
		return ""
	}
	return id
}

// GenerateToken returns a longer random token for lock ownership.
func GenerateToken() string {
	id, err := gonanoid.New(32)
	if err != nil {
		return GenerateID()
	}
	return id
}
