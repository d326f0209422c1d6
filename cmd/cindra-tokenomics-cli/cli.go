package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/logger"
	"github.com/cindra-project/cindra-tokenomics/rpc/tokenomicsrpc"
	"github.com/cindra-project/cindra-tokenomics/util"
)

var Log = logger.New()

var default_rpc = fmt.Sprintf("http://127.0.0.1:%d", config.RPC_BIND_PORT)

func main() {
	log_level := flag.Uint("log-level", 1, "sets the log level (range: 0-3)")
	daemon_address := flag.String("daemon-address", default_rpc, "sets the daemon")
	rpc_auth := flag.String("rpc-auth", "", "colon-separated username and password, like user:pass")

	flag.Parse()

	Log.SetLogLevel(uint8(*log_level))

	Log.Info("Starting", config.NETWORK_NAME, "tokenomics CLI")
	if config.NETWORK_NAME != "mainnet" {
		Log.Warn("This is a", strings.ToUpper(config.NETWORK_NAME), "daemon, only for testing.")
		Log.Warn("Be aware that any amount slashed or minted in", config.NETWORK_NAME, "is worthless.")
	}

	c := tokenomicsrpc.NewRpcClient(*daemon_address)
	c.Auth = *rpc_auth

	info, err := c.GetInfo(tokenomicsrpc.GetInfoRequest{})
	if err != nil {
		Log.Warn("daemon is not reachable:", err)
	} else {
		Log.Info("Connected to", info.Network, "daemon", c.DaemonAddress)
		Log.Info("Circulating supply:", util.FormatCoin(info.CirculatingSupply))
		Log.Info("Daily emission:", util.FormatCoin(info.DailyEmission))
	}

	prompts(c)
}
