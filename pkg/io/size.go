package io

// GetVarSize returns the number of bytes a value of n takes when encoded as
// a variable-length integer.
func GetVarSize(n int) int {
	var buf [9]byte
	return PutVarUint(buf[:], uint64(n))
}

// GetVarBytesSize returns the size of a variable-length byte slice, that is
// the length prefix plus the data itself.
func GetVarBytesSize(b []byte) int {
	return GetVarSize(len(b)) + len(b)
}
