package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш содержимого
type Digest [32]byte

// HashContent hashes raw file content.
func HashContent(content []byte) Digest {
	return sha256.Sum256(content)
}

// Combine строит модульный хеш: H( content || dep1 || dep2 ... ).
// Порядок deps должен быть детерминированным (дети в порядке объявления).
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range deps {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
