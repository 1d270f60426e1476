package util

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// B64Encode returns the standard base64 encoding of src.
func B64Encode(src []byte) string {
	return base64.StdEncoding.EncodeToString(src)
}

// B64Decode decodes a standard base64 string. Surrounding whitespace is ignored.
func B64Decode(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(strings.TrimSpace(s))
}

// HexEncode returns the lowercase hex encoding of src.
func HexEncode(src []byte) string {
	return hex.EncodeToString(src)
}
