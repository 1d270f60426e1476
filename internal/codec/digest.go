package codec

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	lblake3 "lukechampine.com/blake3"
)

// Digests lists the supported digest names in presentation order.
var Digests = []string{
	"sha256",
	"sha512",
	"sha3-256",
	"sha3-512",
	"blake2b-256",
	"blake2b-512",
	"blake3",
}

// DigestTitle returns a display name for a digest.
func DigestTitle(name string) string {
	switch name {
	case "sha256":
		return "SHA-256 digest"
	case "sha512":
		return "SHA-512 digest"
	case "sha3-256":
		return "SHA3-256 digest"
	case "sha3-512":
		return "SHA3-512 digest"
	case "blake2b-256":
		return "BLAKE2b-256 digest"
	case "blake2b-512":
		return "BLAKE2b-512 digest"
	case "blake3":
		return "BLAKE3 digest"
	default:
		return name
	}
}

func newHash(name string) (hash.Hash, error) {
	switch name {
	case "sha256":
		return sha256.New(), nil
	case "sha512":
		return sha512.New(), nil
	case "sha3-256":
		return sha3.New256(), nil
	case "sha3-512":
		return sha3.New512(), nil
	case "blake2b-256":
		h, err := blake2b.New256(nil)
		if err != nil {
			return nil, fmt.Errorf("blake2b-256: %w", err)
		}
		return h, nil
	case "blake2b-512":
		h, err := blake2b.New512(nil)
		if err != nil {
			return nil, fmt.Errorf("blake2b-512: %w", err)
		}
		return h, nil
	case "blake3":
		return lblake3.New(32, nil), nil
	default:
		return nil, fmt.Errorf("unsupported digest %q", name)
	}
}

// Digest hashes everything read from r.
func Digest(r io.Reader, name string) ([]byte, error) {
	h, err := newHash(name)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(h, r); err != nil {
		return nil, fmt.Errorf("digest %s: %w", name, err)
	}
	return h.Sum(nil), nil
}
