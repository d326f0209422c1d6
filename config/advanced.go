package config

import (
	"encoding/binary"
)

// This file holds advanced config options. You shouldn't edit these options unless you really know what you
// are doing.

const ATOMIC = 6 // decimal digits of COIN

const VERSION = VERSION_MAJOR<<32 + VERSION_MINOR<<16 + VERSION_PATCH

// Stored in the registry meta bucket so that a data directory created for one
// network cannot be reopened by a node running another.
var BinaryNetworkID = make([]byte, 8)

func init() {
	binary.LittleEndian.PutUint64(BinaryNetworkID, NETWORK_ID)
}
