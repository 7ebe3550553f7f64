package protocol

// Checksum computes the single-byte checksum over an unescaped payload:
// add all bytes, keep the low byte, subtract it from 0xFF. The checksum
// of an empty payload is 0xFF.
func Checksum(payload []byte) byte {
	var total byte
	for _, b := range payload {
		total += b
	}
	return 0xFF - total
}

// VerifyChecksum reports whether sum is the correct checksum for
// payload: the byte sum of payload plus sum must come out to 0xFF.
func VerifyChecksum(payload []byte, sum byte) bool {
	total := sum
	for _, b := range payload {
		total += b
	}
	return total == 0xFF
}
