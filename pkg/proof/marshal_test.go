package proof

import (
	"encoding/json"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schnorrFixture(t *testing.T) *Proof {
	t.Helper()
	p, err := New(
		Schnorr{Commitment: "02aa", Challenge: "11", Response: "22"},
		map[string]string{"publicKey": "02bb", "message": "hello"},
	)
	require.NoError(t, err)
	return p
}

func TestJSONRoundTrip(t *testing.T) {
	p := schnorrFixture(t)

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var q Proof
	require.NoError(t, json.Unmarshal(data, &q))

	assert.Equal(t, TypeKnowledge, q.Type())
	assert.Equal(t, p.Payload(), q.Payload())
	assert.Equal(t, p.PublicInputs(), q.PublicInputs())
}

func TestCBORRoundTrip(t *testing.T) {
	p, err := New(
		Range{
			SecondGenerator: "02cc",
			Commitments:     []string{"02dd", "02ee"},
			Challenges:      []string{"01", "02"},
			Responses:       []string{"03", "04"},
			Min:             18,
			Max:             150,
		},
		map[string]string{"min": "18", "max": "150"},
	)
	require.NoError(t, err)

	data, err := cbor.Marshal(p)
	require.NoError(t, err)

	var q Proof
	require.NoError(t, cbor.Unmarshal(data, &q))

	assert.Equal(t, TypeRange, q.Type())
	assert.Equal(t, p.Payload(), q.Payload())
}

func TestUnknownTypeFailsToDecode(t *testing.T) {
	var p Proof
	err := json.Unmarshal([]byte(`{"type":"sudoku","payload":{}}`), &p)
	assert.Error(t, err)
}

func TestNilPayloadRejected(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)
}

func TestPublicInputsAreCopied(t *testing.T) {
	inputs := map[string]string{"root": "aa"}
	p, err := New(Membership{Leaf: "aa", Root: "aa"}, inputs)
	require.NoError(t, err)

	inputs["root"] = "bb"
	got, ok := p.PublicInput("root")
	require.True(t, ok)
	assert.Equal(t, "aa", got)

	// the accessor hands out a copy as well
	p.PublicInputs()["root"] = "cc"
	got, _ = p.PublicInput("root")
	assert.Equal(t, "aa", got)
}

func TestTypesAreClosed(t *testing.T) {
	assert.Equal(t, TypeKnowledge, Schnorr{}.Type())
	assert.Equal(t, TypeSetMembership, Membership{}.Type())
	assert.Equal(t, TypeRange, Range{}.Type())
	assert.Equal(t, TypeCommitmentOpening, Opening{}.Type())
}
