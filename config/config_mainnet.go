//go:build !testnet && !unittest

package config

const RPC_BIND_PORT = 6410
const NETWORK_ID uint64 = 0xc1d7a5e2b9064f18 // Network identifier. It MUST be unique for each chain

const NETWORK_NAME = "mainnet"

const GENESIS_TIMESTAMP = 1755522000 * 1000

// GENESIS GOVERNANCE
// Seeded into the registry at first boot; the DAO adjusts them at runtime
// through set_governance.
const GENESIS_MAX_SLASH_RATE = 200_000 // 20% of stake
const GENESIS_RECOVERY_RATE = 100_000  // 10% of the score gap per recovery window
