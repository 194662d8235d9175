package internal

import "hash/crc32"

// CalculateCRC32Parts computes the CRC-32 (IEEE polynomial, the CRC-32/ISO-HDLC
// variant PNG uses) of the parts as if they were concatenated.
func CalculateCRC32Parts(parts ...[]byte) uint32 {
	var crc uint32
	for _, p := range parts {
		crc = crc32.Update(crc, crc32.IEEETable, p)
	}
	return crc
}
