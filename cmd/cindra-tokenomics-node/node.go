package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/cindra-project/cindra-tokenomics/adb"
	"github.com/cindra-project/cindra-tokenomics/adb/boltdb"
	"github.com/cindra-project/cindra-tokenomics/adb/lmdb"
	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/emission"
	"github.com/cindra-project/cindra-tokenomics/govauth"
	"github.com/cindra-project/cindra-tokenomics/logger"
	"github.com/cindra-project/cindra-tokenomics/registry"
	"github.com/cindra-project/cindra-tokenomics/rpc"
	"github.com/cindra-project/cindra-tokenomics/util/updatechecker"

	"golang.org/x/term"
)

var Log = logger.New()

var defaultDataDir string

func init() {
	registry.Log = Log
	rpc.Log = Log

	home, err := os.UserHomeDir()
	if err != nil {
		Log.Fatal(err)
	}

	defaultDataDir = home + "/" + config.NAME + "-" + config.NETWORK_NAME
}

var cpu_profile = flag.String("cpu-profile", "", "write cpu profile to the provided file")

func main() {
	version := flag.Bool("version", false, "prints version and exits")
	public_rpc := flag.Bool("public-rpc", false, "required for public RPC nodes: blocks private RPC calls and binds on 0.0.0.0")
	rpc_bind_port := flag.Uint("rpc-bind-port", config.RPC_BIND_PORT, "starts RPC server on this port")
	rpc_auth := flag.String("rpc-auth", "", "username:password required for RPC calls")
	db_backend := flag.String("db", "lmdb", "storage backend, lmdb or bolt")
	log_level := flag.Uint("log-level", 1, "sets the log level")
	non_interactive := flag.Bool("non-interactive", false, "if set, the daemon will not process the stdinput. Useful for running as a service.")
	data_dir := flag.String("data-dir", defaultDataDir, "sets the data directory which contains the registry")
	governance_passphrase := flag.String("governance-passphrase", "", "enables set_governance, guarded by this passphrase")
	governance_prompt := flag.Bool("governance-prompt", false, "like --governance-passphrase, but reads the passphrase from the terminal")
	no_update_check := flag.Bool("no-update-check", false, "disables update checking")

	flag.Parse()

	if *version {
		fmt.Printf("%s-tokenomics-node v%v.%v.%v\n", config.NAME, config.VERSION_MAJOR,
			config.VERSION_MINOR, config.VERSION_PATCH)
		os.Exit(0)
	}

	if !*no_update_check {
		go updatechecker.RunUpdateChecker(Log, config.UPDATE_CHECK_URL)
	}

	if *cpu_profile != "" {
		f, err := os.Create(*cpu_profile)
		if err != nil {
			Log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			Log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	Log.SetLogLevel(uint8(*log_level))

	Log.Info("Starting", config.NETWORK_NAME, "tokenomics daemon")
	Log.Info("Network ID:", config.NETWORK_ID)
	Log.Infof("Version: %d.%d.%d", config.VERSION_MAJOR, config.VERSION_MINOR, config.VERSION_PATCH)
	if config.NETWORK_NAME != "mainnet" {
		Log.Warn("This is a", strings.ToUpper(config.NETWORK_NAME), "daemon, only for testing.")
	}

	if err := os.MkdirAll(*data_dir, 0o774); err != nil {
		Log.Debug("failed to create data dir:", err)
	}

	var db adb.DB
	var err error
	switch *db_backend {
	case "lmdb":
		db, err = lmdb.New(*data_dir+"/lmdb/", 0o755, Log)
	case "bolt":
		db, err = boltdb.New(*data_dir+"/registry.db", 0o660)
	default:
		Log.Fatal("unknown database backend:", *db_backend)
	}
	if err != nil {
		Log.Fatal(err)
	}

	reg := registry.New(db, emission.Params{
		TotalSupply: config.TOTAL_SUPPLY,
		DailyRate:   config.INITIAL_DAILY_EMISSION,
	})

	var gov *govauth.Digest
	if *governance_prompt {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			Log.Fatal("--governance-prompt requires a terminal, use --governance-passphrase instead")
		}
		fmt.Print("Governance passphrase: ")
		passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			Log.Fatal(err)
		}
		if len(passphrase) == 0 {
			Log.Fatal("governance passphrase is empty")
		}
		Log.Info("Deriving the governance passphrase digest")
		gov = govauth.New(passphrase)
	} else if *governance_passphrase != "" {
		Log.Info("Deriving the governance passphrase digest")
		gov = govauth.New([]byte(*governance_passphrase))
	} else {
		Log.Warn("No --governance-passphrase set, set_governance is disabled")
	}

	bind_ip := "127.0.0.1"
	if *public_rpc {
		bind_ip = "0.0.0.0"
	}

	go startRpc(reg, bind_ip, uint16(*rpc_bind_port), *public_rpc, *rpc_auth, gov)

	// Without a terminal the readline prompt would fail in a loop, so a
	// daemon started by a service manager runs headless even when
	// --non-interactive is missing.
	interactive := !*non_interactive && term.IsTerminal(int(os.Stdin.Fd()))

	if interactive {
		go watchJournal(reg)
		prompts(reg)
	} else {
		watchJournal(reg)
	}
}

// watchJournal periodically re-audits the epoch journal, so a corrupted data
// directory is noticed before an operator acts on its numbers.
func watchJournal(reg *registry.Registry) {
	for {
		time.Sleep(15 * time.Minute)
		err := reg.DB.View(reg.Audit)
		if err != nil {
			Log.Warn("journal audit failed:", err)
		}
	}
}
