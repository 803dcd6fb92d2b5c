package protocol

// Checksum computes the one-byte checksum used by MDC packets.
// It is the modulo-256 sum of all input bytes.
//
// For a command packet the checksum covers every byte from the command
// code through the end of the payload; the 0xAA header and the checksum
// byte itself are excluded. Response packets use the same span starting
// at the response marker.
func Checksum(data []byte) byte {
	var sum byte
	for _, b := range data {
		sum += b
	}
	return sum
}

// VerifyChecksum reports whether want equals Checksum(data).
//
// Note that flipping bits in data can in rare cases preserve the mod-256
// sum; the checksum detects corruption, it does not prove integrity.
func VerifyChecksum(data []byte, want byte) bool {
	return Checksum(data) == want
}
