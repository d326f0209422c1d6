package registry

import (
	"bytes"
	"encoding/gob"
	"io"

	"github.com/cindra-project/cindra-tokenomics/adb"
	"github.com/cindra-project/cindra-tokenomics/config"
	"github.com/cindra-project/cindra-tokenomics/util"
)

// Meta is the registry's running totals, stored as a singleton in the info
// bucket.
type Meta struct {
	Circulating uint64
	Epochs      uint64
	Penalties   uint64
	Updated     uint64
}

// Governance holds the DAO-adjustable penalty parameters, in ppm. Version
// increments on every change so auditors can correlate slashes with the rules
// in force when they happened.
type Governance struct {
	MaxSlashRate uint64 `json:"max_slash_rate"`
	RecoveryRate uint64 `json:"recovery_rate"`
	Version      uint64 `json:"version"`
	Updated      uint64 `json:"updated"`
}

func (m *Meta) Serialize() []byte {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	err := enc.Encode(m)
	if err != nil {
		Log.Fatal(err)
	}
	d, err := io.ReadAll(&buf)
	if err != nil {
		Log.Fatal(err)
	}
	return d
}

func DeserializeMeta(d []byte) (*Meta, error) {
	var buf bytes.Buffer
	dec := gob.NewDecoder(&buf)

	_, err := buf.Write(d)
	if err != nil {
		return nil, err
	}

	m := Meta{}

	err = dec.Decode(&m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (g *Governance) Serialize() []byte {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	err := enc.Encode(g)
	if err != nil {
		Log.Fatal(err)
	}
	d, err := io.ReadAll(&buf)
	if err != nil {
		Log.Fatal(err)
	}
	return d
}

func DeserializeGovernance(d []byte) (*Governance, error) {
	var buf bytes.Buffer
	dec := gob.NewDecoder(&buf)

	_, err := buf.Write(d)
	if err != nil {
		return nil, err
	}

	g := Governance{}

	err = dec.Decode(&g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *Registry) GetMeta(txn adb.Txn) *Meta {
	d := txn.Get(r.Index.Info, []byte("meta"))

	if len(d) == 0 {
		Log.Fatal("registry meta is empty")
	}

	m, err := DeserializeMeta(d)
	if err != nil {
		Log.Fatal(err)
	}

	return m
}

func (r *Registry) SetMeta(txn adb.Txn, m *Meta) error {
	return txn.Put(r.Index.Info, []byte("meta"), m.Serialize())
}

func (r *Registry) GetGovernance(txn adb.Txn) *Governance {
	d := txn.Get(r.Index.Info, []byte("governance"))

	if len(d) == 0 {
		Log.Fatal("governance record is empty")
	}

	g, err := DeserializeGovernance(d)
	if err != nil {
		Log.Fatal(err)
	}

	return g
}

func (r *Registry) SetGovernance(txn adb.Txn, g *Governance) error {
	return txn.Put(r.Index.Info, []byte("governance"), g.Serialize())
}

// UpdateGovernance applies new DAO parameters. Rates clamp to the valid
// domain; the version bump and timestamp happen here so callers cannot forget
// them.
func (r *Registry) UpdateGovernance(txn adb.Txn, maxSlashRate, recoveryRate uint64) (*Governance, error) {
	g := r.GetGovernance(txn)

	if maxSlashRate > config.PPM {
		maxSlashRate = config.PPM
	}
	if recoveryRate > config.PPM {
		recoveryRate = config.PPM
	}

	g.MaxSlashRate = maxSlashRate
	g.RecoveryRate = recoveryRate
	g.Version++
	g.Updated = util.Time()

	if err := r.SetGovernance(txn, g); err != nil {
		return nil, err
	}

	Log.Infof("governance updated to v%d: max slash rate %s, recovery rate %s",
		g.Version, util.FormatPPM(g.MaxSlashRate), util.FormatPPM(g.RecoveryRate))

	return g, nil
}
