package internal

import "encoding/binary"

// BytesToUInt32BigEndian reads the first 4 bytes of b as a big-endian uint32.
func BytesToUInt32BigEndian(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

func UInt32ToBytesBigEndian(i uint32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], i)
	return b
}
