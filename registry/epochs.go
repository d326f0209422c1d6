package registry

import (
	"errors"
	"fmt"

	"github.com/cindra-project/cindra-tokenomics/adb"
	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/emission"
	"github.com/cindra-project/cindra-tokenomics/util"

	"github.com/zeebo/blake3"
)

// ApplyEpoch runs one emission epoch against the tracked supply and journals
// the result. The journal keeps the full schedule context (halvings, rate,
// supply before and after) so any entry can be re-verified later.
func (r *Registry) ApplyEpoch(txn adb.Txn, d emission.Days) (*EpochRecord, error) {
	if d.Den == 0 {
		return nil, errors.New("invalid epoch duration")
	}

	meta := r.GetMeta(txn)

	rec := &EpochRecord{
		Index:      meta.Epochs,
		Days:       d,
		Halvings:   uint64(r.Params.Halvings(meta.Circulating)),
		DailyRate:  r.Params.DailyRateAt(meta.Circulating),
		Minted:     r.Params.ForEpoch(meta.Circulating, d),
		CircBefore: meta.Circulating,
		Time:       util.Time(),
	}
	rec.CircAfter = rec.CircBefore + rec.Minted

	if err := txn.Put(r.Index.Epochs, util.U64Bytes(rec.Index), rec.Serialize()); err != nil {
		return nil, err
	}

	meta.Circulating = rec.CircAfter
	meta.Epochs++
	meta.Updated = rec.Time
	if err := r.SetMeta(txn, meta); err != nil {
		return nil, err
	}

	Log.Debugf("epoch %d minted %s, circulating %s", rec.Index,
		util.FormatCoin(rec.Minted), util.FormatCoin(rec.CircAfter))

	return rec, nil
}

func (r *Registry) GetEpoch(txn adb.Txn, index uint64) (*EpochRecord, error) {
	d := txn.Get(r.Index.Epochs, util.U64Bytes(index))
	if len(d) == 0 {
		return nil, fmt.Errorf("epoch %d not found", index)
	}

	rec := &EpochRecord{}
	if err := rec.Deserialize(d); err != nil {
		return nil, err
	}
	return rec, nil
}

// GetEpochs returns one page of the journal in ascending order, and the total
// number of epochs.
func (r *Registry) GetEpochs(txn adb.Txn, page uint64) ([]*EpochRecord, uint64, error) {
	total := r.GetMeta(txn).Epochs

	first := page * config.EPOCH_PAGE_SIZE
	if first >= total {
		return []*EpochRecord{}, total, nil
	}
	last := min(first+config.EPOCH_PAGE_SIZE, total)

	recs := make([]*EpochRecord, 0, last-first)
	for i := first; i < last; i++ {
		rec, err := r.GetEpoch(txn, i)
		if err != nil {
			return nil, total, err
		}
		recs = append(recs, rec)
	}
	return recs, total, nil
}

// JournalDigest chains every journal entry into a single hash. Two operators
// tracking the same network can compare registries with one value instead of
// paging through the whole journal.
func (r *Registry) JournalDigest(txn adb.Txn) (util.Hash, error) {
	var digest util.Hash

	total := r.GetMeta(txn).Epochs
	for i := uint64(0); i < total; i++ {
		blob := txn.Get(r.Index.Epochs, util.U64Bytes(i))
		if len(blob) == 0 {
			return digest, fmt.Errorf("epoch %d missing from the journal", i)
		}
		digest = blake3.Sum256(append(digest[:], blob...))
	}
	return digest, nil
}

// Audit re-walks the whole journal and cross-checks it against the tracked
// totals: every entry must chain onto the previous one, re-running the
// schedule on its inputs must reproduce it, and the sum of mints must equal
// the circulating supply without ever passing the cap.
func (r *Registry) Audit(txn adb.Txn) error {
	meta := r.GetMeta(txn)

	var minted uint64
	var circ uint64
	for i := uint64(0); i < meta.Epochs; i++ {
		rec, err := r.GetEpoch(txn, i)
		if err != nil {
			return err
		}
		if rec.Index != i {
			return fmt.Errorf("epoch %d stored under index %d", rec.Index, i)
		}
		if rec.CircBefore != circ {
			return fmt.Errorf("epoch %d starts at %d, previous one ended at %d", i, rec.CircBefore, circ)
		}
		if want := r.Params.ForEpoch(rec.CircBefore, rec.Days); rec.Minted != want {
			return fmt.Errorf("epoch %d minted %d, schedule says %d", i, rec.Minted, want)
		}
		if rec.CircAfter != rec.CircBefore+rec.Minted {
			return fmt.Errorf("epoch %d supply does not add up", i)
		}

		minted, err = util.SafeAdd(minted, rec.Minted)
		if err != nil {
			return fmt.Errorf("epoch %d: cumulative mint overflows", i)
		}
		if minted > r.Params.TotalSupply {
			return fmt.Errorf("epoch %d: cumulative mint %d exceeds the cap", i, minted)
		}
		circ = rec.CircAfter
	}

	if circ != meta.Circulating {
		return fmt.Errorf("journal ends at %d, meta says %d", circ, meta.Circulating)
	}

	entries, err := txn.Entries(r.Index.Epochs)
	if err != nil {
		return err
	}
	if entries != meta.Epochs {
		return fmt.Errorf("journal holds %d entries, meta says %d", entries, meta.Epochs)
	}

	Log.Debug("audit passed:", meta.Epochs, "epochs,", util.FormatCoin(circ), "circulating")
	return nil
}
