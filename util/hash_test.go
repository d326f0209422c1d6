package util

import (
	"encoding/json"
	"testing"

	"github.com/zeebo/blake3"
)

func TestHash(t *testing.T) {
	type record struct {
		EventId Hash `json:"event_id"`
	}

	st := record{
		EventId: Hash(blake3.Sum256([]byte("validator-1"))),
	}

	data, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("Data1: %s", data)

	st2 := record{}

	err = json.Unmarshal(data, &st2)
	if err != nil {
		t.Fatal(err)
	}

	data, err = json.Marshal(st2)
	if err != nil {
		t.Fatal(err)
	}

	t.Logf("Data2: %s", data)

	if st.EventId != st2.EventId {
		t.Fatal("st.EventId is different from st2.EventId")
	}

	// an empty string decodes to the zero hash
	var h Hash
	if err := json.Unmarshal([]byte(`""`), &h); err != nil {
		t.Fatal(err)
	}
	if h != (Hash{}) {
		t.Fatal("empty string should decode to the zero hash")
	}

	if err := json.Unmarshal([]byte(`"abc"`), &h); err == nil {
		t.Fatal("short hex should fail to decode")
	}
}
