//go:build !testnet && unittest

package config

const RPC_BIND_PORT = 16490
const NETWORK_ID uint64 = 0x1 // Network identifier. It MUST be unique for each chain

const NETWORK_NAME = "unittest"

const GENESIS_TIMESTAMP = 0

// GENESIS GOVERNANCE
const GENESIS_MAX_SLASH_RATE = 200_000
const GENESIS_RECOVERY_RATE = 100_000
