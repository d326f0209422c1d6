package tokenomicsrpc

import (
	"github.com/cindra-project/cindra-tokenomics/registry"
	"github.com/cindra-project/cindra-tokenomics/util"
)

type GetInfoRequest struct {
}
type GetInfoResponse struct {
	Network           string              `json:"network"`
	Version           string              `json:"version"`
	Coin              uint64              `json:"coin"`
	MaxSupply         uint64              `json:"max_supply"`
	CirculatingSupply uint64              `json:"circulating_supply"`
	RemainingSupply   uint64              `json:"remaining_supply"`
	Epochs            uint64              `json:"epochs"`
	Halvings          int                 `json:"halvings"`
	DailyEmission     uint64              `json:"daily_emission"`
	Penalties         uint64              `json:"penalties"`
	Governance        registry.Governance `json:"governance"`
	JournalDigest     util.Hash           `json:"journal_digest"`
}

// Durations travel as strings ("5", "5.5", "11/2") and are parsed with
// emission.ParseDays; an empty string means the default epoch length.
type ComputeEmissionRequest struct {
	Circulating uint64 `json:"circulating"`
	Days        string `json:"days"`
}
type ComputeEmissionResponse struct {
	Minted      uint64 `json:"minted"`
	Halvings    int    `json:"halvings"`
	DailyRate   uint64 `json:"daily_rate"`
	Circulating uint64 `json:"circulating"` // after the epoch
	Remaining   uint64 `json:"remaining"`
}

type GetScheduleRequest struct {
}
type ScheduleEntry struct {
	Halvings  int    `json:"halvings"`
	Threshold uint64 `json:"threshold"`
	DailyRate uint64 `json:"daily_rate"`
}
type GetScheduleResponse struct {
	Entries []ScheduleEntry `json:"entries"`
}

type ProjectSupplyRequest struct {
	Circulating uint64 `json:"circulating"`
	Days        string `json:"days"`
	Epochs      int    `json:"epochs"`
}
type ProjectSupplyResponse struct {
	Supply        uint64 `json:"supply"`
	Minted        uint64 `json:"minted"`
	EpochsEmitted int    `json:"epochs_emitted"`
	Halvings      int    `json:"halvings"` // at the projected supply
}

type ClassifyEventRequest struct {
	Kind       string `json:"kind"`
	Deviation  uint64 `json:"deviation"`
	ProofValid bool   `json:"proof_valid"`
}
type ClassifyEventResponse struct {
	Kind     string `json:"kind"` // canonical name of the recognized kind
	Severity uint64 `json:"severity"`
}

type ComputeSlashRequest struct {
	Stake      uint64 `json:"stake"`
	Kind       string `json:"kind"`
	Deviation  uint64 `json:"deviation"`
	ProofValid bool   `json:"proof_valid"`
	// Max slash rate in ppm; omit to use the stored governance rate.
	MaxSlashRate *uint64 `json:"max_slash_rate,omitempty"`
}
type ComputeSlashResponse struct {
	Severity     uint64 `json:"severity"`
	Slashed      uint64 `json:"slashed"`
	MaxSlashRate uint64 `json:"max_slash_rate"` // the rate that was applied
}

type ReportMisbehaviorRequest struct {
	Validator  string `json:"validator"`
	Kind       string `json:"kind"`
	Deviation  uint64 `json:"deviation"`
	ProofValid bool   `json:"proof_valid"`
	Stake      uint64 `json:"stake"`
	Height     uint64 `json:"height"`
}
type ReportMisbehaviorResponse struct {
	EventId   util.Hash              `json:"event_id"`
	Duplicate bool                   `json:"duplicate"`
	Record    registry.PenaltyRecord `json:"record"`
}

type GetScoreRequest struct {
	Validator string `json:"validator"`
}
type GetScoreResponse struct {
	Scorecard registry.Scorecard `json:"scorecard"`
}

type UpdateScoreRequest struct {
	Validator string `json:"validator"`
	Score     uint64 `json:"score"`
	Baseline  uint64 `json:"baseline"`
}
type UpdateScoreResponse struct {
	Scorecard registry.Scorecard `json:"scorecard"`
}

type RecoverScoresRequest struct {
}
type RecoverScoresResponse struct {
	Recovered    int    `json:"recovered"`
	RecoveryRate uint64 `json:"recovery_rate"`
}

type GetPenaltiesRequest struct {
	Validator string `json:"validator,omitempty"` // empty for the global feed
	Page      uint64 `json:"page"`
}
type GetPenaltiesResponse struct {
	Penalties []*registry.PenaltyRecord `json:"penalties"`
	Total     uint64                    `json:"total"`
	MaxPage   uint64                    `json:"max_page"`
}

type GetGovernanceRequest struct {
}
type GetGovernanceResponse struct {
	Governance registry.Governance `json:"governance"`
}

type SetGovernanceRequest struct {
	MaxSlashRate uint64 `json:"max_slash_rate"`
	RecoveryRate uint64 `json:"recovery_rate"`
	Passphrase   string `json:"passphrase"`
}
type SetGovernanceResponse struct {
	Governance registry.Governance `json:"governance"`
}

type AdvanceEpochRequest struct {
	Days string `json:"days"`
}
type AdvanceEpochResponse struct {
	Epoch registry.EpochRecord `json:"epoch"`
}

type GetEpochRequest struct {
	Index uint64 `json:"index"`
}
type GetEpochResponse struct {
	Epoch registry.EpochRecord `json:"epoch"`
}

type GetEpochsRequest struct {
	Page uint64 `json:"page"`
}
type GetEpochsResponse struct {
	Epochs  []*registry.EpochRecord `json:"epochs"`
	Total   uint64                  `json:"total"`
	MaxPage uint64                  `json:"max_page"`
}
