package registry

import (
	"errors"
	"fmt"

	"github.com/cindra-project/cindra-tokenomics/adb"
	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/penalty"
	"github.com/cindra-project/cindra-tokenomics/util"
)

func (r *Registry) GetScorecard(txn adb.Txn, validator string) (*Scorecard, error) {
	d := txn.Get(r.Index.Scores, []byte(validator))
	if len(d) == 0 {
		return nil, fmt.Errorf("validator %q not found", validator)
	}

	sc := &Scorecard{}
	if err := sc.Deserialize(d); err != nil {
		return nil, err
	}
	return sc, nil
}

// getOrCreateScorecard returns the stored card, or a fresh one at a perfect
// score. Validators enter the registry the first time anything is recorded
// about them.
func (r *Registry) getOrCreateScorecard(txn adb.Txn, validator string) *Scorecard {
	sc, err := r.GetScorecard(txn, validator)
	if err != nil {
		return &Scorecard{
			Validator: validator,
			Score:     config.PPM,
			Baseline:  config.PPM,
			Updated:   util.Time(),
		}
	}
	return sc
}

func (r *Registry) SetScorecard(txn adb.Txn, sc *Scorecard) error {
	return txn.Put(r.Index.Scores, []byte(sc.Validator), sc.Serialize())
}

// SetScore records a score push from the scoring subsystem. Scores and
// baselines clamp to the ppm domain; penalty counters are left alone.
func (r *Registry) SetScore(txn adb.Txn, validator string, score, baseline uint64) (*Scorecard, error) {
	if validator == "" {
		return nil, errors.New("validator id is empty")
	}

	if score > config.PPM {
		score = config.PPM
	}
	if baseline > config.PPM {
		baseline = config.PPM
	}

	sc := r.getOrCreateScorecard(txn, validator)
	sc.Score = score
	sc.Baseline = baseline
	sc.Updated = util.Time()

	if err := r.SetScorecard(txn, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// RecoverScores closes part of the gap between every validator's score and
// its baseline, at the governed recovery rate. It returns how many cards
// moved. Cards already at their baseline are not rewritten.
func (r *Registry) RecoverScores(txn adb.Txn) (int, error) {
	gov := r.GetGovernance(txn)
	now := util.Time()

	// collect first: mutating the bucket mid-iteration is undefined on both
	// backends
	var updated []*Scorecard
	err := txn.ForEach(r.Index.Scores, func(k, v []byte) error {
		sc := &Scorecard{}
		if err := sc.Deserialize(v); err != nil {
			return fmt.Errorf("scorecard %q: %w", string(k), err)
		}

		recovered := penalty.RecoverPerformance(sc.Score, sc.Baseline, gov.RecoveryRate)
		if recovered == sc.Score {
			return nil
		}
		sc.Score = recovered
		sc.Updated = now
		updated = append(updated, sc)
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, sc := range updated {
		if err := r.SetScorecard(txn, sc); err != nil {
			return 0, err
		}
	}

	Log.Debugf("recovery window moved %d scorecards", len(updated))
	return len(updated), nil
}
