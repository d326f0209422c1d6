package config

const NAME = "cindra"

const VERSION_MAJOR = 1
const VERSION_MINOR = 0
const VERSION_PATCH = 0

const COIN = 1_000_000 // 1e6
const PPM = 1_000_000  // fixed-point denominator for rates, severities and scores

const TOTAL_SUPPLY = 21_000_000 * COIN      // emission hard cap
const INITIAL_DAILY_EMISSION = 7_200 * COIN // daily emission rate before the first halving

// Halving thresholds converge towards TOTAL_SUPPLY-1 without ever reaching the
// cap, so the threshold scan needs an explicit bound. The daily rate underflows
// to zero long before 256 halvings, see emission/emission_test.go.
const MAX_HALVINGS = 256

const DEFAULT_EPOCH_DAYS = 1

const PENALTY_PAGE_SIZE = 25
const EPOCH_PAGE_SIZE = 50

const UPDATE_CHECK_URL = "https://api.github.com/repos/cindra-project/cindra-tokenomics/releases/latest"
