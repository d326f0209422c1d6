package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cindra-project/cindra-tokenomics/rpc/tokenomicsrpc"
	"github.com/cindra-project/cindra-tokenomics/util"

	"github.com/ergochat/readline"
)

type Cmd struct {
	Names  []string
	Action func(args []string)
	Args   string
}

var commands = Commands{}

type Commands []Cmd

// Readline will pass the whole line and current offset to it
// Completer need to pass all the candidates, and how long they shared the same characters in line
// Example:
//
// [go, git, git-shell, grep]
// Do("g", 1) => ["o", "it", "it-shell", "rep"], 1
// Do("gi", 2) => ["t", "t-shell"], 2
// Do("git", 3) => ["", "-shell"], 3
func (c Commands) Do(line []rune, pos int) (newLine [][]rune, length int) {
	if len(line) == 0 {
		return [][]rune{}, 0
	}

	lineStr := string(line)

	sols := [][]rune{}

	for _, v := range c {
		i := 0
		if len(v.Names[i]) >= len(lineStr) {
			sol := v.Names[i][:len(lineStr)]

			if lineStr == sol {
				sols = append(sols, []rune(v.Names[i][len(lineStr):]))
			}
		}
	}

	return sols, pos
}

// parseEventArgs reads the optional [deviation] [proof_valid] tail shared by
// the classify, slash and report commands.
func parseEventArgs(args []string) (deviation uint64, proofValid bool, err error) {
	if len(args) > 0 {
		deviation, err = util.ParsePPM(args[0])
		if err != nil {
			return
		}
	}
	if len(args) > 1 {
		proofValid, err = strconv.ParseBool(args[1])
	}
	return
}

// parseUserPage converts a 1-based page argument to the 0-based pages the RPC
// uses.
func parseUserPage(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, nil
	}
	page, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || page == 0 {
		return 0, fmt.Errorf("invalid page number %q", args[0])
	}
	return page - 1, nil
}

func prompts(c *tokenomicsrpc.RpcClient) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32m>\033[0m ",
		AutoComplete:    commands,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",

		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	Log.SetStdout(l.Stdout())
	Log.SetStderr(l.Stderr())

	confirm := func(prompt string) bool {
		Log.Info(prompt, "(Y/n)")
		line, err := l.ReadLine()
		if err != nil || !strings.HasPrefix(strings.ToLower(line), "y") {
			Log.Info("Cancelled.")
			return false
		}
		return true
	}

	commands = append(commands, []Cmd{{
		Names: []string{"status", "info"},
		Args:  "",
		Action: func(args []string) {
			info, err := c.GetInfo(tokenomicsrpc.GetInfoRequest{})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Network: %s %s", info.Network, info.Version)
			Log.Infof("Circulating: %s / %s; halvings: %d; daily emission: %s",
				util.FormatCoin(info.CirculatingSupply), util.FormatCoin(info.MaxSupply),
				info.Halvings, util.FormatCoin(info.DailyEmission))
			Log.Infof("Epochs: %d; penalty records: %d", info.Epochs, info.Penalties)
			Log.Infof("Governance v%d: max slash rate %s, recovery rate %s", info.Governance.Version,
				util.FormatPPM(info.Governance.MaxSlashRate), util.FormatPPM(info.Governance.RecoveryRate))
			Log.Infof("Journal digest: %s", info.JournalDigest)
		},
	}, {
		Names: []string{"exit", "quit"},
		Args:  "",
		Action: func(args []string) {
			os.Exit(0)
		},
	}, {
		Names: []string{"help"},
		Args:  "",
		Action: func(args []string) {
			Log.Info("List of available commands:")
			for _, v := range commands {
				Log.Infof("%s %s", util.PadR(v.Names[0], 14), v.Args)
			}
		},
	}, {
		Names: []string{"schedule", "print_schedule"},
		Args:  "",
		Action: func(args []string) {
			res, err := c.GetSchedule(tokenomicsrpc.GetScheduleRequest{})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("%s %s %s", util.PadC("halvings", 8), util.PadC("threshold", 16),
				util.PadC("daily rate", 14))
			for _, e := range res.Entries {
				Log.Infof("%s %s %s", util.PadL(strconv.Itoa(e.Halvings), 8),
					util.PadL(util.FormatCoin(e.Threshold), 16),
					util.PadL(util.FormatCoin(e.DailyRate), 14))
			}
		},
	}, {
		Names: []string{"emission", "compute_emission"},
		Args:  "<circulating> [days]",
		Action: func(args []string) {
			const USAGE = "Usage: emission <circulating> [days]"
			if len(args) < 1 {
				Log.Err(USAGE)
				return
			}

			circ, err := util.ParseCoin(args[0])
			if err != nil {
				Log.Err("invalid circulating supply:", err)
				return
			}
			days := ""
			if len(args) > 1 {
				days = args[1]
			}

			res, err := c.ComputeEmission(tokenomicsrpc.ComputeEmissionRequest{
				Circulating: circ,
				Days:        days,
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Halvings: %d; daily rate: %s", res.Halvings, util.FormatCoin(res.DailyRate))
			Log.Infof("Epoch mints %s, circulating %s -> %s (%s to cap)",
				util.FormatCoin(res.Minted), util.FormatCoin(circ),
				util.FormatCoin(res.Circulating), util.FormatCoin(res.Remaining))
		},
	}, {
		Names: []string{"project", "project_supply"},
		Args:  "<circulating> <epochs> [days]",
		Action: func(args []string) {
			const USAGE = "Usage: project <circulating> <epochs> [days]"
			if len(args) < 2 {
				Log.Err(USAGE)
				return
			}

			circ, err := util.ParseCoin(args[0])
			if err != nil {
				Log.Err("invalid circulating supply:", err)
				return
			}
			epochs, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil || epochs == 0 {
				Log.Err("invalid epoch count:", args[1])
				return
			}
			days := ""
			if len(args) > 2 {
				days = args[2]
			}

			res, err := c.ProjectSupply(tokenomicsrpc.ProjectSupplyRequest{
				Circulating: circ,
				Days:        days,
				Epochs:      int(epochs),
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("After %d epochs: circulating %s (minted %s, %d halvings)",
				res.EpochsEmitted, util.FormatCoin(res.Supply),
				util.FormatCoin(res.Minted), res.Halvings)
		},
	}, {
		Names: []string{"classify", "classify_event"},
		Args:  "<kind> [deviation] [proof_valid]",
		Action: func(args []string) {
			const USAGE = "Usage: classify <kind> [deviation] [proof_valid]"
			if len(args) < 1 {
				Log.Err(USAGE)
				return
			}

			deviation, proofValid, err := parseEventArgs(args[1:])
			if err != nil {
				Log.Err("invalid event:", err)
				return
			}

			res, err := c.ClassifyEvent(tokenomicsrpc.ClassifyEventRequest{
				Kind:       args[0],
				Deviation:  deviation,
				ProofValid: proofValid,
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Kind %s classifies as severity %s", res.Kind, util.FormatPPM(res.Severity))
		},
	}, {
		Names: []string{"slash", "compute_slash"},
		Args:  "<kind> <stake> [deviation] [proof_valid]",
		Action: func(args []string) {
			const USAGE = "Usage: slash <kind> <stake> [deviation] [proof_valid]"
			if len(args) < 2 {
				Log.Err(USAGE)
				return
			}

			stake, err := util.ParseCoin(args[1])
			if err != nil {
				Log.Err("invalid stake:", err)
				return
			}
			deviation, proofValid, err := parseEventArgs(args[2:])
			if err != nil {
				Log.Err("invalid event:", err)
				return
			}

			res, err := c.ComputeSlash(tokenomicsrpc.ComputeSlashRequest{
				Stake:      stake,
				Kind:       args[0],
				Deviation:  deviation,
				ProofValid: proofValid,
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Severity %s capped at %s slashes %s of %s stake",
				util.FormatPPM(res.Severity), util.FormatPPM(res.MaxSlashRate),
				util.FormatCoin(res.Slashed), util.FormatCoin(stake))
		},
	}, {
		Names: []string{"report", "report_misbehavior"},
		Args:  "<validator> <kind> <stake> <height> [deviation] [proof_valid]",
		Action: func(args []string) {
			const USAGE = "Usage: report <validator> <kind> <stake> <height> [deviation] [proof_valid]"
			if len(args) < 4 {
				Log.Err(USAGE)
				return
			}

			stake, err := util.ParseCoin(args[2])
			if err != nil {
				Log.Err("invalid stake:", err)
				return
			}
			height, err := strconv.ParseUint(args[3], 10, 64)
			if err != nil {
				Log.Err("invalid height:", err)
				return
			}
			deviation, proofValid, err := parseEventArgs(args[4:])
			if err != nil {
				Log.Err("invalid event:", err)
				return
			}

			if !confirm(fmt.Sprintf("Report %s against %s at height %d, slashable stake %s?",
				strings.ToUpper(args[1]), args[0], height, util.FormatCoin(stake))) {
				return
			}

			res, err := c.ReportMisbehavior(tokenomicsrpc.ReportMisbehaviorRequest{
				Validator:  args[0],
				Kind:       args[1],
				Deviation:  deviation,
				ProofValid: proofValid,
				Stake:      stake,
				Height:     height,
			})
			if err != nil {
				Log.Err(err)
				return
			}

			if res.Duplicate {
				Log.Warnf("report %s was already processed", res.EventId)
			}
			Log.Infof("Recorded %s: severity %s, slashed %s", res.EventId,
				util.FormatPPM(res.Record.Severity), util.FormatCoin(res.Record.Slashed))
		},
	}, {
		Names: []string{"score", "print_score"},
		Args:  "<validator>",
		Action: func(args []string) {
			const USAGE = "Usage: score <validator>"
			if len(args) != 1 {
				Log.Err(USAGE)
				return
			}

			res, err := c.GetScore(tokenomicsrpc.GetScoreRequest{Validator: args[0]})
			if err != nil {
				Log.Err(err)
				return
			}

			sc := res.Scorecard
			Log.Infof("Validator %s: score %s, baseline %s", sc.Validator,
				util.FormatPPM(sc.Score), util.FormatPPM(sc.Baseline))
			Log.Infof("Penalties: %d; slashed in total: %s", sc.Penalties,
				util.FormatCoin(sc.SlashedTotal))
		},
	}, {
		Names: []string{"set_score"},
		Args:  "<validator> <score> [baseline]",
		Action: func(args []string) {
			const USAGE = "Usage: set_score <validator> <score> [baseline]"
			if len(args) < 2 {
				Log.Err(USAGE)
				return
			}

			score, err := util.ParsePPM(args[1])
			if err != nil {
				Log.Err("invalid score:", err)
				return
			}
			baseline := score
			if len(args) > 2 {
				baseline, err = util.ParsePPM(args[2])
				if err != nil {
					Log.Err("invalid baseline:", err)
					return
				}
			}

			res, err := c.UpdateScore(tokenomicsrpc.UpdateScoreRequest{
				Validator: args[0],
				Score:     score,
				Baseline:  baseline,
			})
			if err != nil {
				Log.Err(err)
				return
			}

			sc := res.Scorecard
			Log.Infof("Validator %s: score %s, baseline %s", sc.Validator,
				util.FormatPPM(sc.Score), util.FormatPPM(sc.Baseline))
		},
	}, {
		Names: []string{"recover_scores", "recover"},
		Args:  "",
		Action: func(args []string) {
			res, err := c.RecoverScores(tokenomicsrpc.RecoverScoresRequest{})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Moved %d scorecards towards baseline at recovery rate %s",
				res.Recovered, util.FormatPPM(res.RecoveryRate))
		},
	}, {
		Names: []string{"governance", "print_governance"},
		Args:  "",
		Action: func(args []string) {
			res, err := c.GetGovernance(tokenomicsrpc.GetGovernanceRequest{})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Governance v%d, updated %d", res.Governance.Version, res.Governance.Updated)
			Log.Infof("Max slash rate: %s", util.FormatPPM(res.Governance.MaxSlashRate))
			Log.Infof("Recovery rate: %s", util.FormatPPM(res.Governance.RecoveryRate))
		},
	}, {
		Names: []string{"set_governance"},
		Args:  "<max slash rate> <recovery rate>",
		Action: func(args []string) {
			const USAGE = "Usage: set_governance <max slash rate> <recovery rate>"
			if len(args) != 2 {
				Log.Err(USAGE)
				return
			}

			maxSlashRate, err := util.ParsePPM(args[0])
			if err != nil {
				Log.Err("invalid max slash rate:", err)
				return
			}
			recoveryRate, err := util.ParsePPM(args[1])
			if err != nil {
				Log.Err("invalid recovery rate:", err)
				return
			}

			lcfg := l.GeneratePasswordConfig()
			lcfg.MaskRune = '*'

			fmt.Print("Governance passphrase: ")
			passphrase, err := l.ReadLineWithConfig(lcfg)
			if err != nil {
				Log.Err(err)
				return
			}

			res, err := c.SetGovernance(tokenomicsrpc.SetGovernanceRequest{
				MaxSlashRate: maxSlashRate,
				RecoveryRate: recoveryRate,
				Passphrase:   passphrase,
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Governance updated to v%d: max slash rate %s, recovery rate %s",
				res.Governance.Version, util.FormatPPM(res.Governance.MaxSlashRate),
				util.FormatPPM(res.Governance.RecoveryRate))
		},
	}, {
		Names: []string{"advance_epoch", "advance"},
		Args:  "[days]",
		Action: func(args []string) {
			days := ""
			if len(args) > 0 {
				days = args[0]
			}

			if !confirm("Advance the emission epoch on the daemon?") {
				return
			}

			res, err := c.AdvanceEpoch(tokenomicsrpc.AdvanceEpochRequest{Days: days})
			if err != nil {
				Log.Err(err)
				return
			}

			rec := res.Epoch
			Log.Infof("Epoch %d of %s days minted %s, circulating %s", rec.Index, rec.Days,
				util.FormatCoin(rec.Minted), util.FormatCoin(rec.CircAfter))
		},
	}, {
		Names: []string{"epoch", "print_epoch"},
		Args:  "<index>",
		Action: func(args []string) {
			const USAGE = "Usage: epoch <index>"
			if len(args) != 1 {
				Log.Err(USAGE)
				return
			}

			index, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				Log.Err("invalid epoch index:", err)
				return
			}

			res, err := c.GetEpoch(tokenomicsrpc.GetEpochRequest{Index: index})
			if err != nil {
				Log.Err(err)
				return
			}

			rec := res.Epoch
			Log.Infof("Epoch %d: %s days at %d halvings, daily rate %s", rec.Index, rec.Days,
				rec.Halvings, util.FormatCoin(rec.DailyRate))
			Log.Infof("Minted %s, circulating %s -> %s", util.FormatCoin(rec.Minted),
				util.FormatCoin(rec.CircBefore), util.FormatCoin(rec.CircAfter))
		},
	}, {
		Names: []string{"epochs", "list_epochs"},
		Args:  "[page]",
		Action: func(args []string) {
			page, err := parseUserPage(args)
			if err != nil {
				Log.Err(err)
				return
			}

			res, err := c.GetEpochs(tokenomicsrpc.GetEpochsRequest{Page: page})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("%s %s %s %s", util.PadC("epoch", 6), util.PadC("days", 6),
				util.PadC("minted", 14), util.PadC("circulating", 16))
			for _, rec := range res.Epochs {
				Log.Infof("%s %s %s %s", util.PadL(util.FormatUint(rec.Index), 6),
					util.PadL(rec.Days.String(), 6), util.PadL(util.FormatCoin(rec.Minted), 14),
					util.PadL(util.FormatCoin(rec.CircAfter), 16))
			}
			Log.Infof("page %d/%d, %d epochs in total", page+1, res.MaxPage+1, res.Total)
		},
	}, {
		Names: []string{"penalties", "list_penalties"},
		Args:  "[validator] [page]",
		Action: func(args []string) {
			validator := ""
			if len(args) > 0 {
				validator = args[0]
			}
			page, err := parseUserPage(args[1:])
			if err != nil {
				Log.Err(err)
				return
			}

			res, err := c.GetPenalties(tokenomicsrpc.GetPenaltiesRequest{
				Validator: validator,
				Page:      page,
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("%s %s %s %s %s", util.PadC("validator", 16), util.PadC("kind", 16),
				util.PadC("height", 8), util.PadC("severity", 9), util.PadC("slashed", 14))
			for _, rec := range res.Penalties {
				Log.Infof("%s %s %s %s %s", util.PadR(rec.Validator, 16),
					util.PadR(rec.Kind.String(), 16), util.PadL(util.FormatUint(rec.Height), 8),
					util.PadL(util.FormatPPM(rec.Severity), 9), util.PadL(util.FormatCoin(rec.Slashed), 14))
			}
			Log.Infof("page %d/%d, %d records in total", page+1, res.MaxPage+1, res.Total)
		},
	}}...)

	for {
		line, err := l.ReadLine()
		if err != nil {
			Log.Err(err)
			os.Exit(0)
		}

		args := strings.Split(line, " ")

		if len(args) == 0 {
			continue
		}

		executed := false
		for _, v := range commands {
			for _, v2 := range v.Names {
				if v2 == args[0] {
					v.Action(args[1:])
					executed = true
					break
				}
			}
			if executed {
				break
			}
		}

		if !executed {
			Log.Err("command", args[0], "not found")
		}
	}
}
