// Package registry is the bookkeeping layer around the emission and penalty
// engines: the epoch journal, validator scorecards, penalty records and the
// governance cache the RPC daemon serves. It mirrors the ledger's view of
// supply and stakes, it is not the ledger itself.
package registry

import (
	"bytes"

	"github.com/cindra-project/cindra-tokenomics/adb"
	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/emission"
	"github.com/cindra-project/cindra-tokenomics/logger"
	"github.com/cindra-project/cindra-tokenomics/util"
)

var Log = logger.New()

type Registry struct {
	DB     adb.DB
	Index  Index
	Params emission.Params
}

type Index struct {
	Info       adb.Index
	Scores     adb.Index
	Penalties  adb.Index
	PenaltySeq adb.Index
	ValPen     adb.Index
	Epochs     adb.Index
}

func New(db adb.DB, params emission.Params) *Registry {
	if util.Time() < config.GENESIS_TIMESTAMP {
		Log.Fatal("genesis in the future of", (config.GENESIS_TIMESTAMP-util.Time())/1000, "seconds")
	}
	if err := params.Validate(); err != nil {
		Log.Fatal("invalid emission params:", err)
	}

	r := &Registry{
		DB:     db,
		Params: params,
	}

	r.Index = Index{
		Info:       db.Index("info"),
		Scores:     db.Index("scores"),
		Penalties:  db.Index("penalties"),
		PenaltySeq: db.Index("penaltyseq"),
		ValPen:     db.Index("valpen"),
		Epochs:     db.Index("epochs"),
	}

	r.seed()

	var meta *Meta
	var gov *Governance
	r.DB.View(func(txn adb.Txn) error {
		meta = r.GetMeta(txn)
		gov = r.GetGovernance(txn)
		return nil
	})

	Log.Info("Started tokenomics registry")
	Log.Infof("Circulating: %s / %s", util.FormatCoin(meta.Circulating), util.FormatCoin(params.TotalSupply))
	Log.Infof("Epochs: %d, halvings: %d", meta.Epochs, params.Halvings(meta.Circulating))
	Log.Infof("Governance v%d: max slash rate %s, recovery rate %s",
		gov.Version, util.FormatPPM(gov.MaxSlashRate), util.FormatPPM(gov.RecoveryRate))

	return r
}

// seed writes the network id, meta and genesis governance on first boot, and
// refuses to reopen a data directory that belongs to another network.
func (r *Registry) seed() {
	err := r.DB.Update(func(txn adb.Txn) error {
		stored := txn.Get(r.Index.Info, []byte("network"))
		if len(stored) == 0 {
			if err := txn.Put(r.Index.Info, []byte("network"), config.BinaryNetworkID); err != nil {
				return err
			}
		} else if !bytes.Equal(stored, config.BinaryNetworkID) {
			Log.Fatal("data directory belongs to another network, refusing to open it")
		}

		if len(txn.Get(r.Index.Info, []byte("meta"))) == 0 {
			Log.Debug("seeding registry meta")
			err := r.SetMeta(txn, &Meta{
				Circulating: 0,
				Epochs:      0,
				Penalties:   0,
				Updated:     util.Time(),
			})
			if err != nil {
				return err
			}
		}

		if len(txn.Get(r.Index.Info, []byte("governance"))) == 0 {
			Log.Debug("seeding genesis governance")
			err := r.SetGovernance(txn, &Governance{
				MaxSlashRate: config.GENESIS_MAX_SLASH_RATE,
				RecoveryRate: config.GENESIS_RECOVERY_RATE,
				Version:      0,
				Updated:      util.Time(),
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		Log.Fatal(err)
	}
}

func (r *Registry) Close() {
	if err := r.DB.Close(); err != nil {
		Log.Err("failed to close database:", err)
	}
}
