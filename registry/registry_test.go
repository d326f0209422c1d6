package registry_test

import (
	"testing"

	"github.com/cindra-project/cindra-tokenomics/adb"
	"github.com/cindra-project/cindra-tokenomics/adb/boltdb"
	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/emission"
	"github.com/cindra-project/cindra-tokenomics/penalty"
	"github.com/cindra-project/cindra-tokenomics/registry"
	"github.com/cindra-project/cindra-tokenomics/util"
)

func setup(t *testing.T) *registry.Registry {
	t.Helper()

	db, err := boltdb.New(t.TempDir()+"/registry.db", 0o700)
	if err != nil {
		t.Fatal(err)
	}

	r := registry.New(db, emission.Params{
		TotalSupply: config.TOTAL_SUPPLY,
		DailyRate:   config.INITIAL_DAILY_EMISSION,
	})
	t.Cleanup(r.Close)

	return r
}

func TestApplyEpoch(t *testing.T) {
	r := setup(t)
	day := emission.Days{Num: 1, Den: 1}

	for i := uint64(0); i < 3; i++ {
		err := r.DB.Update(func(txn adb.Txn) error {
			rec, err := r.ApplyEpoch(txn, day)
			if err != nil {
				return err
			}
			if rec.Index != i {
				t.Fatalf("epoch index %d, want %d", rec.Index, i)
			}
			if rec.Minted != 7_200*config.COIN {
				t.Fatalf("epoch %d minted %d", i, rec.Minted)
			}
			if rec.CircAfter != (i+1)*7_200*config.COIN {
				t.Fatalf("epoch %d ends at %d", i, rec.CircAfter)
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	err := r.DB.View(func(txn adb.Txn) error {
		meta := r.GetMeta(txn)
		if meta.Epochs != 3 || meta.Circulating != 3*7_200*config.COIN {
			t.Fatalf("meta: %d epochs, %d circulating", meta.Epochs, meta.Circulating)
		}

		rec, err := r.GetEpoch(txn, 1)
		if err != nil {
			return err
		}
		if rec.CircBefore != 7_200*config.COIN || rec.Halvings != 0 {
			t.Fatalf("epoch 1 journaled wrong: %+v", rec)
		}

		recs, total, err := r.GetEpochs(txn, 0)
		if err != nil {
			return err
		}
		if total != 3 || len(recs) != 3 {
			t.Fatalf("page 0: %d of %d epochs", len(recs), total)
		}
		if recs[2].CircBefore != recs[1].CircAfter {
			t.Fatal("journal does not chain")
		}

		if _, err := r.GetEpoch(txn, 99); err == nil {
			t.Fatal("epoch 99 should not exist")
		}

		return r.Audit(txn)
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestEpochClampAtCap(t *testing.T) {
	r := setup(t)

	// one absurdly long epoch: the unclamped potential is about ten times the
	// cap, so the mint must stop at exactly the remaining supply
	err := r.DB.Update(func(txn adb.Txn) error {
		rec, err := r.ApplyEpoch(txn, emission.Days{Num: 30_000, Den: 1})
		if err != nil {
			return err
		}
		if rec.Minted != config.TOTAL_SUPPLY {
			t.Fatalf("minted %d, want the whole cap", rec.Minted)
		}

		rec, err = r.ApplyEpoch(txn, emission.Days{Num: 1, Den: 1})
		if err != nil {
			return err
		}
		if rec.Minted != 0 || rec.CircAfter != config.TOTAL_SUPPLY {
			t.Fatalf("post-cap epoch minted %d", rec.Minted)
		}

		return r.Audit(txn)
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestReportMisbehavior(t *testing.T) {
	r := setup(t)

	ev := penalty.Event{Kind: penalty.DOUBLE_SIGN}
	const stake = 1_000 * config.COIN
	var firstId util.Hash

	err := r.DB.Update(func(txn adb.Txn) error {
		rec, isNew, err := r.ReportMisbehavior(txn, "validator-1", ev, stake, 42)
		if err != nil {
			return err
		}
		if !isNew {
			t.Fatal("first report should be new")
		}
		if rec.Severity != 100_000 {
			t.Fatalf("severity %d", rec.Severity)
		}
		// genesis max slash rate is 20%, above the 10% severity
		if rec.Slashed != 100*config.COIN {
			t.Fatalf("slashed %d", rec.Slashed)
		}
		firstId = rec.Id()

		// the same event again changes nothing
		dup, isNew, err := r.ReportMisbehavior(txn, "validator-1", ev, stake, 42)
		if err != nil {
			return err
		}
		if isNew || dup.Seq != rec.Seq || dup.Time != rec.Time {
			t.Fatal("duplicate report was not idempotent")
		}

		// a different height is a different event
		if _, isNew, err = r.ReportMisbehavior(txn, "validator-1", ev, stake, 43); err != nil || !isNew {
			t.Fatal("second height should be a new event", err)
		}

		sc, err := r.GetScorecard(txn, "validator-1")
		if err != nil {
			return err
		}
		if sc.Penalties != 2 || sc.SlashedTotal != 200*config.COIN {
			t.Fatalf("scorecard counters: %d penalties, %d slashed", sc.Penalties, sc.SlashedTotal)
		}
		// reports never touch the score itself
		if sc.Score != config.PPM || sc.Baseline != config.PPM {
			t.Fatalf("report moved the score to %d", sc.Score)
		}

		if _, _, err := r.ReportMisbehavior(txn, "", ev, stake, 1); err == nil {
			t.Fatal("empty validator id should be rejected")
		}

		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	err = r.DB.View(func(txn adb.Txn) error {
		recs, total, err := r.GetPenalties(txn, "", 0)
		if err != nil {
			return err
		}
		if total != 2 || len(recs) != 2 || recs[0].Height != 42 || recs[1].Height != 43 {
			t.Fatalf("global penalty page: %d of %d", len(recs), total)
		}

		recs, total, err = r.GetPenalties(txn, "validator-1", 0)
		if err != nil {
			return err
		}
		if total != 2 || len(recs) != 2 {
			t.Fatalf("validator penalty page: %d of %d", len(recs), total)
		}

		recs, total, err = r.GetPenalties(txn, "validator-2", 0)
		if err != nil {
			return err
		}
		if total != 0 || len(recs) != 0 {
			t.Fatal("unknown validator should have no penalties")
		}

		rec, err := r.GetPenalty(txn, firstId)
		if err != nil {
			return err
		}
		if rec.Validator != "validator-1" || rec.Height != 42 {
			t.Fatalf("looked up wrong record: %+v", rec)
		}

		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestScores(t *testing.T) {
	r := setup(t)

	err := r.DB.Update(func(txn adb.Txn) error {
		if _, err := r.GetScorecard(txn, "validator-1"); err == nil {
			t.Fatal("unknown validator should error")
		}

		sc, err := r.SetScore(txn, "validator-1", 500_000, 900_000)
		if err != nil {
			return err
		}
		if sc.Score != 500_000 || sc.Baseline != 900_000 {
			t.Fatalf("scorecard: %+v", sc)
		}

		// out-of-domain pushes clamp
		sc, err = r.SetScore(txn, "validator-2", 3*config.PPM, 2*config.PPM)
		if err != nil {
			return err
		}
		if sc.Score != config.PPM || sc.Baseline != config.PPM {
			t.Fatalf("clamped scorecard: %+v", sc)
		}

		// genesis recovery rate is 10%: validator-1 moves by a tenth of its
		// gap, validator-2 is already at its baseline
		moved, err := r.RecoverScores(txn)
		if err != nil {
			return err
		}
		if moved != 1 {
			t.Fatalf("recovery moved %d cards", moved)
		}

		sc, err = r.GetScorecard(txn, "validator-1")
		if err != nil {
			return err
		}
		if sc.Score != 540_000 {
			t.Fatalf("recovered score %d", sc.Score)
		}

		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestGovernance(t *testing.T) {
	r := setup(t)

	err := r.DB.Update(func(txn adb.Txn) error {
		gov := r.GetGovernance(txn)
		if gov.MaxSlashRate != config.GENESIS_MAX_SLASH_RATE || gov.Version != 0 {
			t.Fatalf("genesis governance: %+v", gov)
		}

		gov, err := r.UpdateGovernance(txn, 300_000, 50_000)
		if err != nil {
			return err
		}
		if gov.Version != 1 || gov.MaxSlashRate != 300_000 {
			t.Fatalf("updated governance: %+v", gov)
		}

		// a full-severity slash is now capped at 30%
		rec, _, err := r.ReportMisbehavior(txn, "validator-1", penalty.Event{Kind: penalty.SYBIL}, 1_000*config.COIN, 7)
		if err != nil {
			return err
		}
		if rec.Slashed != 300*config.COIN {
			t.Fatalf("slashed %d under the new governor", rec.Slashed)
		}

		// rates clamp to the domain
		gov, err = r.UpdateGovernance(txn, 5*config.PPM, 5*config.PPM)
		if err != nil {
			return err
		}
		if gov.MaxSlashRate != config.PPM || gov.RecoveryRate != config.PPM {
			t.Fatalf("clamped governance: %+v", gov)
		}

		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestAuditDetectsTamper(t *testing.T) {
	r := setup(t)
	day := emission.Days{Num: 1, Den: 1}

	err := r.DB.Update(func(txn adb.Txn) error {
		for i := 0; i < 3; i++ {
			if _, err := r.ApplyEpoch(txn, day); err != nil {
				return err
			}
		}
		if err := r.Audit(txn); err != nil {
			return err
		}

		// inflate one journal entry behind the registry's back
		rec, err := r.GetEpoch(txn, 1)
		if err != nil {
			return err
		}
		rec.Minted++
		rec.CircAfter++
		return txn.Put(r.Index.Epochs, util.U64Bytes(1), rec.Serialize())
	})
	if err != nil {
		t.Fatal(err)
	}

	err = r.DB.View(func(txn adb.Txn) error {
		if err := r.Audit(txn); err == nil {
			t.Fatal("audit should reject the tampered journal")
		} else {
			t.Log("audit said:", err)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestReopen(t *testing.T) {
	dir := t.TempDir()
	params := emission.Params{
		TotalSupply: config.TOTAL_SUPPLY,
		DailyRate:   config.INITIAL_DAILY_EMISSION,
	}

	db, err := boltdb.New(dir+"/registry.db", 0o700)
	if err != nil {
		t.Fatal(err)
	}
	r := registry.New(db, params)

	err = r.DB.Update(func(txn adb.Txn) error {
		_, err := r.ApplyEpoch(txn, emission.Days{Num: 1, Den: 1})
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	r.Close()

	db, err = boltdb.New(dir+"/registry.db", 0o700)
	if err != nil {
		t.Fatal(err)
	}
	r = registry.New(db, params)
	defer r.Close()

	err = r.DB.View(func(txn adb.Txn) error {
		meta := r.GetMeta(txn)
		if meta.Epochs != 1 || meta.Circulating != 7_200*config.COIN {
			t.Fatalf("state lost across reopen: %+v", meta)
		}
		// seeding must not reset governance either
		if gov := r.GetGovernance(txn); gov.Version != 0 {
			t.Fatalf("governance reseeded: %+v", gov)
		}
		return r.Audit(txn)
	})
	if err != nil {
		t.Fatal(err)
	}
}
