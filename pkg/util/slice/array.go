/*
Package slice contains byte slice helpers shared by the hash and encoding
packages.
*/
package slice

// CopyReverse returns a reversed copy of b, b itself is left untouched.
func CopyReverse(b []byte) []byte {
	dest := make([]byte, len(b))
	for i, j := 0, len(b)-1; j >= 0; i, j = i+1, j-1 {
		dest[i] = b[j]
	}
	return dest
}

// Reverse reverses b in place.
func Reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// Clean wipes b with zeroes, it's used for key material.
func Clean(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
