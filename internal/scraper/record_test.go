package scraper

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField(t *testing.T) {
	known := Known("Acme")
	assert.True(t, known.IsKnown())
	assert.Equal(t, "Acme", known.Value())
	assert.Equal(t, "Acme", known.String())

	unknown := Unknown()
	assert.False(t, unknown.IsKnown())
	assert.Equal(t, SentinelUnknown, unknown.String())

	// The sentinel is a state, not a string value: a field whose text
	// happens to be "UNKNOWN" is still known.
	odd := Known(SentinelUnknown)
	assert.True(t, odd.IsKnown())
}

func TestFieldJSON(t *testing.T) {
	type pair struct {
		A Field `json:"a"`
		B Field `json:"b"`
	}

	data, err := json.Marshal(pair{A: Known("x"), B: Unknown()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":"UNKNOWN"}`, string(data))

	var got pair
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.A.IsKnown())
	assert.False(t, got.B.IsKnown())
}

func TestCollectionClone(t *testing.T) {
	descr := Known("<p>descr</p>")
	c := JobCollection{Records: []JobRecord{{ID: "1", DescriptionHTML: &descr}}}

	copied := c.Clone()
	unknown := Unknown()
	copied.Records[0].DescriptionHTML = &unknown
	copied.Records[0].TitleVerdict = VerdictKeep

	assert.True(t, c.Records[0].DescriptionHTML.IsKnown(), "clone must not alias the original")
	assert.Equal(t, VerdictNone, c.Records[0].TitleVerdict)
}

func TestCollectionIndexSet(t *testing.T) {
	c := JobCollection{Records: make([]JobRecord, 3)}

	all := c.IndexSet(nil)
	assert.Len(t, all, 3)

	some := c.IndexSet([]int{0, 2, 7, -1})
	assert.Equal(t, map[int]bool{0: true, 2: true}, some, "out-of-range indices are dropped")
}

func TestVerdictJSON(t *testing.T) {
	data, err := json.Marshal(map[string]Verdict{
		"keep":    VerdictKeep,
		"drop":    VerdictDrop,
		"unknown": VerdictUnknown,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"keep":"keep","drop":"drop","unknown":"UNKNOWN"}`, string(data))
}
