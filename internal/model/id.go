package model

import (
	"crypto/rand"
	"encoding/binary"
	"strconv"
	"time"
)

// NewID returns a collection-unique record identifier: the creation
// time in epoch milliseconds encoded base 36, followed by a random
// base-36 suffix so records minted within the same millisecond stay
// distinct.
func NewID() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	n := binary.BigEndian.Uint32(b[:])
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + strconv.FormatUint(uint64(n), 36)
}
