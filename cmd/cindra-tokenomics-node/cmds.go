package main

import (
	"os"
	"runtime/pprof"
	"strconv"
	"strings"

	"github.com/cindra-project/cindra-tokenomics/adb"
	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/emission"
	"github.com/cindra-project/cindra-tokenomics/penalty"
	"github.com/cindra-project/cindra-tokenomics/registry"
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

// parseEvent reads the optional [deviation] [proof_valid] tail shared by the
// classify, slash and report commands.
func parseEvent(kind string, args []string) (penalty.Event, error) {
	ev := penalty.Event{
		Kind: penalty.KindFromString(kind),
	}

	if len(args) > 0 {
		deviation, err := util.ParsePPM(args[0])
		if err != nil {
			return ev, err
		}
		ev.Deviation = deviation
	}
	if len(args) > 1 {
		valid, err := strconv.ParseBool(args[1])
		if err != nil {
			return ev, err
		}
		ev.ProofValid = valid
	}

	return ev, nil
}

func parsePage(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, nil
	}
	return strconv.ParseUint(args[0], 10, 64)
}

func printPenalty(rec *registry.PenaltyRecord) {
	Log.Infof("%s %s %s %s %s %s", util.PadR(rec.Id().String()[:16], 17),
		util.PadR(rec.Validator, 16), util.PadR(rec.Kind.String(), 16),
		util.PadL(util.FormatUint(rec.Height), 8), util.PadL(util.FormatPPM(rec.Severity), 9),
		util.PadL(util.FormatCoin(rec.Slashed), 14))
}

func printEpoch(rec *registry.EpochRecord) {
	Log.Infof("%s %s %s %s %s %s", util.PadL(util.FormatUint(rec.Index), 6),
		util.PadL(rec.Days.String(), 6), util.PadL(util.FormatUint(rec.Halvings), 8),
		util.PadL(util.FormatCoin(rec.Minted), 14), util.PadL(util.FormatCoin(rec.CircAfter), 16),
		util.PadL(util.FormatCoin(rec.DailyRate), 14))
}

func prompts(reg *registry.Registry) {
	commands = append(commands, []Cmd{{
		Names: []string{"status", "info"},
		Args:  "",
		Action: func(args []string) {
			Log.Info("Printing tokenomics status")

			var meta *registry.Meta
			var gov *registry.Governance
			var digest util.Hash
			err := reg.DB.View(func(txn adb.Txn) (err error) {
				meta = reg.GetMeta(txn)
				gov = reg.GetGovernance(txn)
				digest, err = reg.JournalDigest(txn)
				return
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Network: %s %d.%d.%d", config.NETWORK_NAME, config.VERSION_MAJOR,
				config.VERSION_MINOR, config.VERSION_PATCH)
			Log.Infof("Circulating: %s / %s; halvings: %d; daily emission: %s",
				util.FormatCoin(meta.Circulating), util.FormatCoin(reg.Params.TotalSupply),
				reg.Params.Halvings(meta.Circulating), util.FormatCoin(reg.Params.DailyRateAt(meta.Circulating)))
			Log.Infof("Epochs: %d; penalty records: %d", meta.Epochs, meta.Penalties)
			Log.Infof("Governance v%d: max slash rate %s, recovery rate %s", gov.Version,
				util.FormatPPM(gov.MaxSlashRate), util.FormatPPM(gov.RecoveryRate))
			Log.Infof("Journal digest: %s", digest)
		},
	}, {
		Names: []string{"exit", "quit"},
		Args:  "",
		Action: func(args []string) {
			reg.Close()
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
			Log.Infof("%s %s %s", util.PadC("halvings", 8), util.PadC("threshold", 16),
				util.PadC("daily rate", 14))

			for k := 0; k <= config.MAX_HALVINGS; k++ {
				rate := reg.Params.DailyRate >> k
				if rate == 0 {
					break
				}
				Log.Infof("%s %s %s", util.PadL(strconv.Itoa(k), 8),
					util.PadL(util.FormatCoin(reg.Params.Threshold(k)), 16),
					util.PadL(util.FormatCoin(rate), 14))
			}
		},
	}, {
		Names: []string{"emission", "compute_emission"},
		Args:  "<circulating> [days]",
		Action: func(args []string) {
			if len(args) < 1 {
				Log.Err("Usage: emission <circulating> [days]")
				return
			}

			circ, err := util.ParseCoin(args[0])
			if err != nil {
				Log.Err("Failed to parse circulating supply:", err)
				return
			}

			d := emission.Days{Num: config.DEFAULT_EPOCH_DAYS, Den: 1}
			if len(args) > 1 {
				d, err = emission.ParseDays(args[1])
				if err != nil {
					Log.Err("Failed to parse epoch duration:", err)
					return
				}
			}

			minted := reg.Params.ForEpoch(circ, d)
			Log.Infof("Halvings: %d; daily rate: %s", reg.Params.Halvings(circ),
				util.FormatCoin(reg.Params.DailyRateAt(circ)))
			Log.Infof("Epoch of %s days mints %s, circulating %s -> %s", d,
				util.FormatCoin(minted), util.FormatCoin(circ), util.FormatCoin(circ+minted))
		},
	}, {
		Names: []string{"project", "project_supply"},
		Args:  "<circulating> <epochs> [days]",
		Action: func(args []string) {
			if len(args) < 2 {
				Log.Err("Usage: project <circulating> <epochs> [days]")
				return
			}

			circ, err := util.ParseCoin(args[0])
			if err != nil {
				Log.Err("Failed to parse circulating supply:", err)
				return
			}
			epochs, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil || epochs == 0 {
				Log.Err("Invalid epoch count:", args[1])
				return
			}

			d := emission.Days{Num: config.DEFAULT_EPOCH_DAYS, Den: 1}
			if len(args) > 2 {
				d, err = emission.ParseDays(args[2])
				if err != nil {
					Log.Err("Failed to parse epoch duration:", err)
					return
				}
			}

			supply, emitted := reg.Params.ProjectSupply(circ, d, int(epochs))
			Log.Infof("After %d epochs of %s days: circulating %s (minted %s, %d halvings)",
				emitted, d, util.FormatCoin(supply), util.FormatCoin(supply-circ),
				reg.Params.Halvings(supply))
			Log.Infof("Remaining to cap: %s", util.FormatCoin(reg.Params.TotalSupply-supply))
		},
	}, {
		Names: []string{"classify", "classify_event"},
		Args:  "<kind> [deviation] [proof_valid]",
		Action: func(args []string) {
			if len(args) < 1 {
				Log.Err("Usage: classify <kind> [deviation] [proof_valid]")
				return
			}

			ev, err := parseEvent(args[0], args[1:])
			if err != nil {
				Log.Err("Failed to parse event:", err)
				return
			}

			Log.Infof("Kind %s classifies as severity %s",
				ev.Kind, util.FormatPPM(penalty.ClassifySeverity(ev)))
		},
	}, {
		Names: []string{"slash", "compute_slash"},
		Args:  "<kind> <stake> [deviation] [proof_valid]",
		Action: func(args []string) {
			if len(args) < 2 {
				Log.Err("Usage: slash <kind> <stake> [deviation] [proof_valid]")
				return
			}

			stake, err := util.ParseCoin(args[1])
			if err != nil {
				Log.Err("Failed to parse stake:", err)
				return
			}
			ev, err := parseEvent(args[0], args[2:])
			if err != nil {
				Log.Err("Failed to parse event:", err)
				return
			}

			var maxRate uint64
			reg.DB.View(func(txn adb.Txn) error {
				maxRate = reg.GetGovernance(txn).MaxSlashRate
				return nil
			})

			severity := penalty.ClassifySeverity(ev)
			slashed := penalty.SlashAmount(stake, severity, maxRate)

			Log.Infof("Severity %s capped at %s slashes %s of %s stake",
				util.FormatPPM(severity), util.FormatPPM(maxRate),
				util.FormatCoin(slashed), util.FormatCoin(stake))
		},
	}, {
		Names: []string{"report", "report_misbehavior"},
		Args:  "<validator> <kind> <stake> <height> [deviation] [proof_valid]",
		Action: func(args []string) {
			if len(args) < 4 {
				Log.Err("Usage: report <validator> <kind> <stake> <height> [deviation] [proof_valid]")
				return
			}

			stake, err := util.ParseCoin(args[2])
			if err != nil {
				Log.Err("Failed to parse stake:", err)
				return
			}
			height, err := strconv.ParseUint(args[3], 10, 64)
			if err != nil {
				Log.Err("Failed to parse height:", err)
				return
			}
			ev, err := parseEvent(args[1], args[4:])
			if err != nil {
				Log.Err("Failed to parse event:", err)
				return
			}

			var rec *registry.PenaltyRecord
			var isNew bool
			err = reg.DB.Update(func(txn adb.Txn) (err error) {
				rec, isNew, err = reg.ReportMisbehavior(txn, args[0], ev, stake, height)
				return
			})
			if err != nil {
				Log.Err(err)
				return
			}

			if !isNew {
				Log.Warnf("Report %s already processed", rec.Id())
			}
			Log.Info(rec)
		},
	}, {
		Names: []string{"score", "print_score"},
		Args:  "<validator>",
		Action: func(args []string) {
			if len(args) != 1 {
				Log.Err("Usage: score <validator>")
				return
			}

			var sc *registry.Scorecard
			err := reg.DB.View(func(txn adb.Txn) (err error) {
				sc, err = reg.GetScorecard(txn, args[0])
				return
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Validator %s: score %s, baseline %s", sc.Validator,
				util.FormatPPM(sc.Score), util.FormatPPM(sc.Baseline))
			Log.Infof("Penalties: %d; slashed in total: %s", sc.Penalties,
				util.FormatCoin(sc.SlashedTotal))
		},
	}, {
		Names: []string{"set_score"},
		Args:  "<validator> <score> [baseline]",
		Action: func(args []string) {
			if len(args) < 2 {
				Log.Err("Usage: set_score <validator> <score> [baseline]")
				return
			}

			score, err := util.ParsePPM(args[1])
			if err != nil {
				Log.Err("Failed to parse score:", err)
				return
			}
			baseline := score
			if len(args) > 2 {
				baseline, err = util.ParsePPM(args[2])
				if err != nil {
					Log.Err("Failed to parse baseline:", err)
					return
				}
			}

			var sc *registry.Scorecard
			err = reg.DB.Update(func(txn adb.Txn) (err error) {
				sc, err = reg.SetScore(txn, args[0], score, baseline)
				return
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Validator %s: score %s, baseline %s", sc.Validator,
				util.FormatPPM(sc.Score), util.FormatPPM(sc.Baseline))
		},
	}, {
		Names: []string{"recover_scores", "recover"},
		Args:  "",
		Action: func(args []string) {
			var rate uint64
			var moved int
			err := reg.DB.Update(func(txn adb.Txn) (err error) {
				rate = reg.GetGovernance(txn).RecoveryRate
				moved, err = reg.RecoverScores(txn)
				return
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Moved %d scorecards towards baseline at recovery rate %s",
				moved, util.FormatPPM(rate))
		},
	}, {
		Names: []string{"governance", "print_governance"},
		Args:  "",
		Action: func(args []string) {
			var gov *registry.Governance
			reg.DB.View(func(txn adb.Txn) error {
				gov = reg.GetGovernance(txn)
				return nil
			})

			Log.Infof("Governance v%d, updated %d", gov.Version, gov.Updated)
			Log.Infof("Max slash rate: %s", util.FormatPPM(gov.MaxSlashRate))
			Log.Infof("Recovery rate: %s", util.FormatPPM(gov.RecoveryRate))
		},
	}, {
		// The console is the operator's own terminal, so unlike RPC it does
		// not ask for the governance passphrase.
		Names: []string{"set_governance"},
		Args:  "<max slash rate> <recovery rate>",
		Action: func(args []string) {
			if len(args) != 2 {
				Log.Err("Usage: set_governance <max slash rate> <recovery rate>")
				return
			}

			maxSlashRate, err := util.ParsePPM(args[0])
			if err != nil {
				Log.Err("Failed to parse max slash rate:", err)
				return
			}
			recoveryRate, err := util.ParsePPM(args[1])
			if err != nil {
				Log.Err("Failed to parse recovery rate:", err)
				return
			}

			var gov *registry.Governance
			err = reg.DB.Update(func(txn adb.Txn) (err error) {
				gov, err = reg.UpdateGovernance(txn, maxSlashRate, recoveryRate)
				return
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Governance updated to v%d: max slash rate %s, recovery rate %s",
				gov.Version, util.FormatPPM(gov.MaxSlashRate), util.FormatPPM(gov.RecoveryRate))
		},
	}, {
		Names: []string{"advance_epoch", "advance"},
		Args:  "[days]",
		Action: func(args []string) {
			d := emission.Days{Num: config.DEFAULT_EPOCH_DAYS, Den: 1}
			if len(args) > 0 {
				var err error
				d, err = emission.ParseDays(args[0])
				if err != nil {
					Log.Err("Failed to parse epoch duration:", err)
					return
				}
			}

			var rec *registry.EpochRecord
			err := reg.DB.Update(func(txn adb.Txn) (err error) {
				rec, err = reg.ApplyEpoch(txn, d)
				return
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("Epoch %d of %s days minted %s, circulating %s", rec.Index, rec.Days,
				util.FormatCoin(rec.Minted), util.FormatCoin(rec.CircAfter))
		},
	}, {
		Names: []string{"epochs", "print_epochs"},
		Args:  "[page]",
		Action: func(args []string) {
			page, err := parsePage(args)
			if err != nil {
				Log.Err("Failed to parse page:", err)
				return
			}

			var recs []*registry.EpochRecord
			var total uint64
			err = reg.DB.View(func(txn adb.Txn) (err error) {
				recs, total, err = reg.GetEpochs(txn, page)
				return
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("%s %s %s %s %s %s", util.PadC("epoch", 6), util.PadC("days", 6),
				util.PadC("halvings", 8), util.PadC("minted", 14), util.PadC("circulating", 16),
				util.PadC("daily rate", 14))
			for _, rec := range recs {
				printEpoch(rec)
			}
			Log.Infof("Page %d of %d, %d epochs in total", page, maxPage(total, config.EPOCH_PAGE_SIZE), total)
		},
	}, {
		Names: []string{"penalties", "print_penalties"},
		Args:  "[validator] [page]",
		Action: func(args []string) {
			validator := ""
			if len(args) > 0 {
				validator = args[0]
			}
			page, err := parsePage(args[1:])
			if err != nil {
				Log.Err("Failed to parse page:", err)
				return
			}

			var recs []*registry.PenaltyRecord
			var total uint64
			err = reg.DB.View(func(txn adb.Txn) (err error) {
				recs, total, err = reg.GetPenalties(txn, validator, page)
				return
			})
			if err != nil {
				Log.Err(err)
				return
			}

			Log.Infof("%s %s %s %s %s %s", util.PadC("id", 17), util.PadC("validator", 16),
				util.PadC("kind", 16), util.PadC("height", 8), util.PadC("severity", 9),
				util.PadC("slashed", 14))
			for _, rec := range recs {
				printPenalty(rec)
			}
			Log.Infof("Page %d of %d, %d records in total", page, maxPage(total, config.PENALTY_PAGE_SIZE), total)
		},
	}, {
		Names: []string{"audit", "audit_journal"},
		Args:  "",
		Action: func(args []string) {
			err := reg.DB.View(reg.Audit)
			if err != nil {
				Log.Err("Journal audit FAILED:", err)
				return
			}
			Log.Info("Journal audit passed")
		},
	}, {
		Names: []string{"log_level", "loglevel", "set_log_level"},
		Args:  "<log level>",
		Action: func(args []string) {
			if len(args) < 1 {
				Log.Err("Usage: log_level <log level>")
				return
			}
			num, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || num > 32 {
				Log.Err("Log level is not valid")
			}
			Log.SetLogLevel(uint8(num))
		},
	}}...)

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

	l.CaptureExitSignal()

	Log.SetStdout(l.Stdout())
	Log.SetStderr(l.Stderr())

	for {
		line, err := l.ReadLine()
		if err != nil {
			Log.Err(err)
			if len(*cpu_profile) > 0 {
				pprof.StopCPUProfile()
			}
			reg.Close()
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
		}
		if !executed {
			Log.Err("unknown command, use help to see a list of commands")
		}
	}
}
