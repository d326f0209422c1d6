//go:build testnet

package config

const RPC_BIND_PORT = 16410
const NETWORK_ID uint64 = 0x7e92c40d1fa8b356 // Network identifier. It MUST be unique for each chain

const NETWORK_NAME = "testnet"

const GENESIS_TIMESTAMP = 0

// GENESIS GOVERNANCE
const GENESIS_MAX_SLASH_RATE = 500_000 // 50%, exaggerated for testing
const GENESIS_RECOVERY_RATE = 250_000  // 25%
