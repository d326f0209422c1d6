package registry

import (
	"errors"
	"fmt"

	"github.com/cindra-project/cindra-tokenomics/binary"
	"github.com/cindra-project/cindra-tokenomics/emission"
	"github.com/cindra-project/cindra-tokenomics/penalty"
	"github.com/cindra-project/cindra-tokenomics/util"

	"github.com/zeebo/blake3"
)

// Scorecard tracks one validator's performance score and penalty history.
// Score and Baseline are ppm; the counters only ever grow.
type Scorecard struct {
	Validator    string `json:"validator"`
	Score        uint64 `json:"score"`
	Baseline     uint64 `json:"baseline"`
	Penalties    uint64 `json:"penalties"`
	SlashedTotal uint64 `json:"slashed_total"`
	Updated      uint64 `json:"updated"`
}

func (s *Scorecard) Serialize() []byte {
	b := binary.NewSer(make([]byte, 64))

	b.AddUint8(0)
	b.AddString(s.Validator)
	b.AddUvarint(s.Score)
	b.AddUvarint(s.Baseline)
	b.AddUvarint(s.Penalties)
	b.AddUvarint(s.SlashedTotal)
	b.AddUvarint(s.Updated)

	return b.Output()
}

func (s *Scorecard) Deserialize(d []byte) error {
	b := binary.NewDes(d)

	if b.ReadUint8() != 0 {
		return errors.New("invalid scorecard blob version")
	}

	s.Validator = b.ReadString()
	s.Score = b.ReadUvarint()
	s.Baseline = b.ReadUvarint()
	s.Penalties = b.ReadUvarint()
	s.SlashedTotal = b.ReadUvarint()
	s.Updated = b.ReadUvarint()

	return b.Error()
}

// PenaltyRecord is one processed misbehavior report. Records are immutable
// once stored and keyed by EventId, which makes re-reports idempotent.
type PenaltyRecord struct {
	Validator  string       `json:"validator"`
	Kind       penalty.Kind `json:"kind"`
	Deviation  uint64       `json:"deviation"`
	ProofValid bool         `json:"proof_valid"`
	Severity   uint64       `json:"severity"`
	Stake      uint64       `json:"stake"`
	Slashed    uint64       `json:"slashed"`
	Height     uint64       `json:"height"`
	Seq        uint64       `json:"seq"`
	Time       uint64       `json:"time"`
}

func (p *PenaltyRecord) Serialize() []byte {
	b := binary.NewSer(make([]byte, 96))

	b.AddUint8(0)
	b.AddString(p.Validator)
	b.AddUint8(uint8(p.Kind))
	b.AddUvarint(p.Deviation)
	b.AddBool(p.ProofValid)
	b.AddUvarint(p.Severity)
	b.AddUvarint(p.Stake)
	b.AddUvarint(p.Slashed)
	b.AddUvarint(p.Height)
	b.AddUvarint(p.Seq)
	b.AddUvarint(p.Time)

	return b.Output()
}

func (p *PenaltyRecord) Deserialize(d []byte) error {
	b := binary.NewDes(d)

	if b.ReadUint8() != 0 {
		return errors.New("invalid penalty blob version")
	}

	p.Validator = b.ReadString()
	p.Kind = penalty.Kind(b.ReadUint8())
	p.Deviation = b.ReadUvarint()
	p.ProofValid = b.ReadBool()
	p.Severity = b.ReadUvarint()
	p.Stake = b.ReadUvarint()
	p.Slashed = b.ReadUvarint()
	p.Height = b.ReadUvarint()
	p.Seq = b.ReadUvarint()
	p.Time = b.ReadUvarint()

	return b.Error()
}

func (p *PenaltyRecord) Id() util.Hash {
	return EventId(p.Validator, penalty.Event{
		Kind:       p.Kind,
		Deviation:  p.Deviation,
		ProofValid: p.ProofValid,
	}, p.Height)
}

func (p *PenaltyRecord) String() string {
	return fmt.Sprintf("penalty %s validator %s height %d severity %s slashed %s",
		p.Kind, p.Validator, p.Height, util.FormatPPM(p.Severity), util.FormatCoin(p.Slashed))
}

// EventId derives the identity of a report from the fields that make it
// unique. The same validator, kind, measurements and height always map to the
// same id, so a relayed duplicate cannot slash twice.
func EventId(validator string, ev penalty.Event, height uint64) util.Hash {
	b := binary.NewSer(make([]byte, 64))

	b.AddString(validator)
	b.AddUint8(uint8(ev.Kind))
	b.AddUvarint(ev.Deviation)
	b.AddBool(ev.ProofValid)
	b.AddUvarint(height)

	return blake3.Sum256(b.Output())
}

// EpochRecord journals one emission epoch.
type EpochRecord struct {
	Index      uint64        `json:"index"`
	Days       emission.Days `json:"days"`
	Halvings   uint64        `json:"halvings"`
	DailyRate  uint64        `json:"daily_rate"`
	Minted     uint64        `json:"minted"`
	CircBefore uint64        `json:"circ_before"`
	CircAfter  uint64        `json:"circ_after"`
	Time       uint64        `json:"time"`
}

func (e *EpochRecord) Serialize() []byte {
	b := binary.NewSer(make([]byte, 80))

	b.AddUint8(0)
	b.AddUvarint(e.Index)
	b.AddUvarint(e.Days.Num)
	b.AddUvarint(e.Days.Den)
	b.AddUvarint(e.Halvings)
	b.AddUvarint(e.DailyRate)
	b.AddUvarint(e.Minted)
	b.AddUvarint(e.CircBefore)
	b.AddUvarint(e.CircAfter)
	b.AddUvarint(e.Time)

	return b.Output()
}

func (e *EpochRecord) Deserialize(d []byte) error {
	b := binary.NewDes(d)

	if b.ReadUint8() != 0 {
		return errors.New("invalid epoch blob version")
	}

	e.Index = b.ReadUvarint()
	e.Days.Num = b.ReadUvarint()
	e.Days.Den = b.ReadUvarint()
	e.Halvings = b.ReadUvarint()
	e.DailyRate = b.ReadUvarint()
	e.Minted = b.ReadUvarint()
	e.CircBefore = b.ReadUvarint()
	e.CircAfter = b.ReadUvarint()
	e.Time = b.ReadUvarint()

	return b.Error()
}
