package main

import (
	"fmt"

	"github.com/cindra-project/cindra-tokenomics/adb"
	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/emission"
	"github.com/cindra-project/cindra-tokenomics/govauth"
	"github.com/cindra-project/cindra-tokenomics/penalty"
	"github.com/cindra-project/cindra-tokenomics/registry"
	"github.com/cindra-project/cindra-tokenomics/rpc"
	"github.com/cindra-project/cindra-tokenomics/rpc/rpcserver"
	"github.com/cindra-project/cindra-tokenomics/rpc/tokenomicsrpc"
	"github.com/cindra-project/cindra-tokenomics/util"
)

const invalidParams = -32602

const internalValidationErr = -32000

const internalReadFailed = -32001

const internalInsertFailed = -32002

// parseEpochDays maps the wire form of an epoch duration to a fraction; the
// empty string means the default epoch length.
func parseEpochDays(s string) (emission.Days, error) {
	if s == "" {
		return emission.Days{Num: config.DEFAULT_EPOCH_DAYS, Den: 1}, nil
	}
	return emission.ParseDays(s)
}

func maxPage(total, pageSize uint64) uint64 {
	if total == 0 {
		return 0
	}
	return (total - 1) / pageSize
}

func startRpc(reg *registry.Registry, ip string, port uint16, restricted bool, auth string, gov *govauth.Digest) {
	ratelimitCount := 100_000 // max 100k requests per minute for private RPC
	if restricted {
		ratelimitCount = 5_000 // max 5k requests per minute for public, restricted RPC
	}

	rs := rpcserver.New(fmt.Sprintf("%s:%d", ip, port), rpcserver.Config{
		Restricted:     auth != "",
		RateLimit:      ratelimitCount,
		Authentication: auth,
	})

	rs.Handle("get_info", func(c *rpcserver.Context) {
		var meta *registry.Meta
		var governance *registry.Governance
		var digest util.Hash
		err := reg.DB.View(func(txn adb.Txn) (err error) {
			meta = reg.GetMeta(txn)
			governance = reg.GetGovernance(txn)
			digest, err = reg.JournalDigest(txn)
			return
		})
		if err != nil {
			Log.Err(err)
			c.ErrorResponse(&rpc.Error{
				Code:    internalReadFailed,
				Message: "failed to read registry",
			})
			return
		}

		c.SuccessResponse(tokenomicsrpc.GetInfoResponse{
			Network: config.NETWORK_NAME,
			Version: fmt.Sprintf("%d.%d.%d", config.VERSION_MAJOR,
				config.VERSION_MINOR, config.VERSION_PATCH),
			Coin:              config.COIN,
			MaxSupply:         reg.Params.TotalSupply,
			CirculatingSupply: meta.Circulating,
			RemainingSupply:   reg.Params.TotalSupply - meta.Circulating,
			Epochs:            meta.Epochs,
			Halvings:          reg.Params.Halvings(meta.Circulating),
			DailyEmission:     reg.Params.DailyRateAt(meta.Circulating),
			Penalties:         meta.Penalties,
			Governance:        *governance,
			JournalDigest:     digest,
		})
	})

	rs.Handle("compute_emission", func(c *rpcserver.Context) {
		params := tokenomicsrpc.ComputeEmissionRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		d, err := parseEpochDays(params.Days)
		if err != nil {
			c.ErrorResponse(&rpc.Error{
				Code:    invalidParams,
				Message: err.Error(),
			})
			return
		}

		minted := reg.Params.ForEpoch(params.Circulating, d)
		circ := params.Circulating + minted

		var remaining uint64
		if circ < reg.Params.TotalSupply {
			remaining = reg.Params.TotalSupply - circ
		}

		c.SuccessResponse(tokenomicsrpc.ComputeEmissionResponse{
			Minted:      minted,
			Halvings:    reg.Params.Halvings(params.Circulating),
			DailyRate:   reg.Params.DailyRateAt(params.Circulating),
			Circulating: circ,
			Remaining:   remaining,
		})
	})

	rs.Handle("get_schedule", func(c *rpcserver.Context) {
		entries := []tokenomicsrpc.ScheduleEntry{}
		for k := 0; k <= config.MAX_HALVINGS; k++ {
			rate := reg.Params.DailyRate >> k
			if rate == 0 {
				break
			}
			entries = append(entries, tokenomicsrpc.ScheduleEntry{
				Halvings:  k,
				Threshold: reg.Params.Threshold(k),
				DailyRate: rate,
			})
		}

		c.SuccessResponse(tokenomicsrpc.GetScheduleResponse{
			Entries: entries,
		})
	})

	rs.Handle("project_supply", func(c *rpcserver.Context) {
		params := tokenomicsrpc.ProjectSupplyRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		d, err := parseEpochDays(params.Days)
		if err != nil {
			c.ErrorResponse(&rpc.Error{
				Code:    invalidParams,
				Message: err.Error(),
			})
			return
		}

		if params.Epochs <= 0 || params.Epochs > 1_000_000 {
			c.ErrorResponse(&rpc.Error{
				Code:    invalidParams,
				Message: "epochs must be between 1 and 1000000",
			})
			return
		}

		supply, emitted := reg.Params.ProjectSupply(params.Circulating, d, params.Epochs)

		c.SuccessResponse(tokenomicsrpc.ProjectSupplyResponse{
			Supply:        supply,
			Minted:        supply - params.Circulating,
			EpochsEmitted: emitted,
			Halvings:      reg.Params.Halvings(supply),
		})
	})

	rs.Handle("classify_event", func(c *rpcserver.Context) {
		params := tokenomicsrpc.ClassifyEventRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		kind := penalty.KindFromString(params.Kind)
		severity := penalty.ClassifySeverity(penalty.Event{
			Kind:       kind,
			Deviation:  params.Deviation,
			ProofValid: params.ProofValid,
		})

		c.SuccessResponse(tokenomicsrpc.ClassifyEventResponse{
			Kind:     kind.String(),
			Severity: severity,
		})
	})

	rs.Handle("compute_slash", func(c *rpcserver.Context) {
		params := tokenomicsrpc.ComputeSlashRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		var maxRate uint64
		if params.MaxSlashRate != nil {
			maxRate = min(*params.MaxSlashRate, config.PPM)
		} else {
			reg.DB.View(func(txn adb.Txn) error {
				maxRate = reg.GetGovernance(txn).MaxSlashRate
				return nil
			})
		}

		severity := penalty.ClassifySeverity(penalty.Event{
			Kind:       penalty.KindFromString(params.Kind),
			Deviation:  params.Deviation,
			ProofValid: params.ProofValid,
		})

		c.SuccessResponse(tokenomicsrpc.ComputeSlashResponse{
			Severity:     severity,
			Slashed:      penalty.SlashAmount(params.Stake, severity, maxRate),
			MaxSlashRate: maxRate,
		})
	})

	rs.Handle("get_score", func(c *rpcserver.Context) {
		params := tokenomicsrpc.GetScoreRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		var sc *registry.Scorecard
		err := reg.DB.View(func(txn adb.Txn) (err error) {
			sc, err = reg.GetScorecard(txn, params.Validator)
			return
		})
		if err != nil {
			Log.Debug(err)
			c.ErrorResponse(&rpc.Error{
				Code:    internalReadFailed,
				Message: "validator not found",
			})
			return
		}

		c.SuccessResponse(tokenomicsrpc.GetScoreResponse{
			Scorecard: *sc,
		})
	})

	rs.Handle("get_penalties", func(c *rpcserver.Context) {
		params := tokenomicsrpc.GetPenaltiesRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		var recs []*registry.PenaltyRecord
		var total uint64
		err := reg.DB.View(func(txn adb.Txn) (err error) {
			recs, total, err = reg.GetPenalties(txn, params.Validator, params.Page)
			return
		})
		if err != nil {
			Log.Err(err)
			c.ErrorResponse(&rpc.Error{
				Code:    internalReadFailed,
				Message: "failed to read penalties",
			})
			return
		}

		c.SuccessResponse(tokenomicsrpc.GetPenaltiesResponse{
			Penalties: recs,
			Total:     total,
			MaxPage:   maxPage(total, config.PENALTY_PAGE_SIZE),
		})
	})

	rs.Handle("get_governance", func(c *rpcserver.Context) {
		var governance *registry.Governance
		reg.DB.View(func(txn adb.Txn) error {
			governance = reg.GetGovernance(txn)
			return nil
		})

		c.SuccessResponse(tokenomicsrpc.GetGovernanceResponse{
			Governance: *governance,
		})
	})

	rs.Handle("get_epoch", func(c *rpcserver.Context) {
		params := tokenomicsrpc.GetEpochRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		var rec *registry.EpochRecord
		err := reg.DB.View(func(txn adb.Txn) (err error) {
			rec, err = reg.GetEpoch(txn, params.Index)
			return
		})
		if err != nil {
			Log.Debug(err)
			c.ErrorResponse(&rpc.Error{
				Code:    internalReadFailed,
				Message: "epoch not found",
			})
			return
		}

		c.SuccessResponse(tokenomicsrpc.GetEpochResponse{
			Epoch: *rec,
		})
	})

	rs.Handle("get_epochs", func(c *rpcserver.Context) {
		params := tokenomicsrpc.GetEpochsRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		var recs []*registry.EpochRecord
		var total uint64
		err := reg.DB.View(func(txn adb.Txn) (err error) {
			recs, total, err = reg.GetEpochs(txn, params.Page)
			return
		})
		if err != nil {
			Log.Err(err)
			c.ErrorResponse(&rpc.Error{
				Code:    internalReadFailed,
				Message: "failed to read the epoch journal",
			})
			return
		}

		c.SuccessResponse(tokenomicsrpc.GetEpochsResponse{
			Epochs:  recs,
			Total:   total,
			MaxPage: maxPage(total, config.EPOCH_PAGE_SIZE),
		})
	})

	// The remaining methods mutate the registry, so public RPC nodes refuse to
	// register them.
	if restricted {
		return
	}

	rs.Handle("report_misbehavior", func(c *rpcserver.Context) {
		params := tokenomicsrpc.ReportMisbehaviorRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		if params.Validator == "" {
			c.ErrorResponse(&rpc.Error{
				Code:    invalidParams,
				Message: "validator id is required",
			})
			return
		}

		ev := penalty.Event{
			Kind:       penalty.KindFromString(params.Kind),
			Deviation:  params.Deviation,
			ProofValid: params.ProofValid,
		}

		var rec *registry.PenaltyRecord
		var isNew bool
		err := reg.DB.Update(func(txn adb.Txn) (err error) {
			rec, isNew, err = reg.ReportMisbehavior(txn, params.Validator, ev, params.Stake, params.Height)
			return
		})
		if err != nil {
			Log.Warn(err)
			c.ErrorResponse(&rpc.Error{
				Code:    internalInsertFailed,
				Message: "failed to record the misbehavior report",
			})
			return
		}

		c.SuccessResponse(tokenomicsrpc.ReportMisbehaviorResponse{
			EventId:   rec.Id(),
			Duplicate: !isNew,
			Record:    *rec,
		})
	})

	rs.Handle("update_score", func(c *rpcserver.Context) {
		params := tokenomicsrpc.UpdateScoreRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		if params.Validator == "" {
			c.ErrorResponse(&rpc.Error{
				Code:    invalidParams,
				Message: "validator id is required",
			})
			return
		}

		var sc *registry.Scorecard
		err := reg.DB.Update(func(txn adb.Txn) (err error) {
			sc, err = reg.SetScore(txn, params.Validator, params.Score, params.Baseline)
			return
		})
		if err != nil {
			Log.Warn(err)
			c.ErrorResponse(&rpc.Error{
				Code:    internalInsertFailed,
				Message: "failed to update the scorecard",
			})
			return
		}

		c.SuccessResponse(tokenomicsrpc.UpdateScoreResponse{
			Scorecard: *sc,
		})
	})

	rs.Handle("recover_scores", func(c *rpcserver.Context) {
		var moved int
		var rate uint64
		err := reg.DB.Update(func(txn adb.Txn) (err error) {
			rate = reg.GetGovernance(txn).RecoveryRate
			moved, err = reg.RecoverScores(txn)
			return
		})
		if err != nil {
			Log.Warn(err)
			c.ErrorResponse(&rpc.Error{
				Code:    internalInsertFailed,
				Message: "failed to recover scores",
			})
			return
		}

		c.SuccessResponse(tokenomicsrpc.RecoverScoresResponse{
			Recovered:    moved,
			RecoveryRate: rate,
		})
	})

	rs.Handle("set_governance", func(c *rpcserver.Context) {
		params := tokenomicsrpc.SetGovernanceRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		if gov == nil {
			c.ErrorResponse(&rpc.Error{
				Code:    internalValidationErr,
				Message: "governance updates are disabled on this daemon",
			})
			return
		}
		if !gov.Verify([]byte(params.Passphrase)) {
			Log.Warn("set_governance with a wrong passphrase")
			c.ErrorResponse(&rpc.Error{
				Code:    internalValidationErr,
				Message: "invalid governance passphrase",
			})
			return
		}

		var governance *registry.Governance
		err := reg.DB.Update(func(txn adb.Txn) (err error) {
			governance, err = reg.UpdateGovernance(txn, params.MaxSlashRate, params.RecoveryRate)
			return
		})
		if err != nil {
			Log.Warn(err)
			c.ErrorResponse(&rpc.Error{
				Code:    internalInsertFailed,
				Message: "failed to update governance",
			})
			return
		}

		c.SuccessResponse(tokenomicsrpc.SetGovernanceResponse{
			Governance: *governance,
		})
	})

	rs.Handle("advance_epoch", func(c *rpcserver.Context) {
		params := tokenomicsrpc.AdvanceEpochRequest{}
		if c.GetParams(&params) != nil {
			return
		}

		d, err := parseEpochDays(params.Days)
		if err != nil {
			c.ErrorResponse(&rpc.Error{
				Code:    invalidParams,
				Message: err.Error(),
			})
			return
		}

		var rec *registry.EpochRecord
		err = reg.DB.Update(func(txn adb.Txn) (err error) {
			rec, err = reg.ApplyEpoch(txn, d)
			return
		})
		if err != nil {
			Log.Warn(err)
			c.ErrorResponse(&rpc.Error{
				Code:    internalInsertFailed,
				Message: "failed to advance the epoch",
			})
			return
		}

		c.SuccessResponse(tokenomicsrpc.AdvanceEpochResponse{
			Epoch: *rec,
		})
	})
}
