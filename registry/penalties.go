package registry

import (
	"errors"
	"fmt"

	"github.com/cindra-project/cindra-tokenomics/adb"
	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/penalty"
	"github.com/cindra-project/cindra-tokenomics/util"

	"github.com/zeebo/blake3"
)

// valPenKey builds a fixed-size per-validator sequence key. Validator ids are
// arbitrary strings, so the prefix is a hash rather than the id itself.
func valPenKey(validator string, seq uint64) []byte {
	sum := blake3.Sum256([]byte(validator))
	return append(sum[:24], util.U64Bytes(seq)...)
}

// ReportMisbehavior classifies a report, computes the slash under the current
// governance rules and stores the outcome. Reporting the same event twice is
// idempotent: the stored record is returned and nothing changes. The returned
// bool is true when the report was new.
//
// The stake is the reporter's statement of the validator's slashable stake;
// actually moving funds is the ledger's job, the registry only keeps the
// engine's verdict.
func (r *Registry) ReportMisbehavior(
	txn adb.Txn, validator string, ev penalty.Event, stake, height uint64,
) (*PenaltyRecord, bool, error) {
	if validator == "" {
		return nil, false, errors.New("validator id is empty")
	}

	id := EventId(validator, ev, height)
	if d := txn.Get(r.Index.Penalties, id[:]); len(d) > 0 {
		rec := &PenaltyRecord{}
		if err := rec.Deserialize(d); err != nil {
			return nil, false, err
		}
		Log.Debugf("duplicate report %s ignored", id)
		return rec, false, nil
	}

	gov := r.GetGovernance(txn)
	meta := r.GetMeta(txn)

	severity := penalty.ClassifySeverity(ev)
	slashed := penalty.SlashAmount(stake, severity, gov.MaxSlashRate)

	rec := &PenaltyRecord{
		Validator:  validator,
		Kind:       ev.Kind,
		Deviation:  ev.Deviation,
		ProofValid: ev.ProofValid,
		Severity:   severity,
		Stake:      stake,
		Slashed:    slashed,
		Height:     height,
		Seq:        meta.Penalties,
		Time:       util.Time(),
	}

	if err := txn.Put(r.Index.Penalties, id[:], rec.Serialize()); err != nil {
		return nil, false, err
	}
	if err := txn.Put(r.Index.PenaltySeq, util.U64Bytes(rec.Seq), id[:]); err != nil {
		return nil, false, err
	}

	sc := r.getOrCreateScorecard(txn, validator)
	slashedTotal, err := util.SafeAdd(sc.SlashedTotal, slashed)
	if err != nil {
		return nil, false, errors.New("validator slash total overflows")
	}
	if err := txn.Put(r.Index.ValPen, valPenKey(validator, sc.Penalties), id[:]); err != nil {
		return nil, false, err
	}
	sc.Penalties++
	sc.SlashedTotal = slashedTotal
	sc.Updated = rec.Time
	if err := r.SetScorecard(txn, sc); err != nil {
		return nil, false, err
	}

	meta.Penalties++
	meta.Updated = rec.Time
	if err := r.SetMeta(txn, meta); err != nil {
		return nil, false, err
	}

	Log.Info(rec.String())

	return rec, true, nil
}

func (r *Registry) GetPenalty(txn adb.Txn, id util.Hash) (*PenaltyRecord, error) {
	d := txn.Get(r.Index.Penalties, id[:])
	if len(d) == 0 {
		return nil, fmt.Errorf("penalty %s not found", id)
	}

	rec := &PenaltyRecord{}
	if err := rec.Deserialize(d); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetPenalties returns one page of penalty records in report order, either
// globally or for a single validator, plus the total count in that scope.
func (r *Registry) GetPenalties(txn adb.Txn, validator string, page uint64) ([]*PenaltyRecord, uint64, error) {
	var total uint64
	key := func(seq uint64) []byte { return util.U64Bytes(seq) }
	index := r.Index.PenaltySeq

	if validator == "" {
		total = r.GetMeta(txn).Penalties
	} else {
		sc, err := r.GetScorecard(txn, validator)
		if err != nil {
			return []*PenaltyRecord{}, 0, nil
		}
		total = sc.Penalties
		key = func(seq uint64) []byte { return valPenKey(validator, seq) }
		index = r.Index.ValPen
	}

	first := page * config.PENALTY_PAGE_SIZE
	if first >= total {
		return []*PenaltyRecord{}, total, nil
	}
	last := min(first+config.PENALTY_PAGE_SIZE, total)

	recs := make([]*PenaltyRecord, 0, last-first)
	for seq := first; seq < last; seq++ {
		id := txn.Get(index, key(seq))
		if len(id) != 32 {
			return nil, total, fmt.Errorf("penalty sequence %d is dangling", seq)
		}
		rec, err := r.GetPenalty(txn, util.Hash(id))
		if err != nil {
			return nil, total, err
		}
		recs = append(recs, rec)
	}
	return recs, total, nil
}
