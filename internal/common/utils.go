package common

// WipeByteArray overwrites b with zeros. Used for passphrases, derived keys
// and serialized private keys once they are no longer needed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
