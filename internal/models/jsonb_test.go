package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemographics_ScanValue(t *testing.T) {
	in := Demographics{
		AgeRange:          &Range{Min: 25, Max: 35},
		FamilyComposition: []string{"couples"},
	}

	v, err := in.Value()
	require.NoError(t, err)

	var out Demographics
	require.NoError(t, out.Scan([]byte(v.(string))))
	assert.Equal(t, in, out)
}

func TestScan_NullAndEmpty(t *testing.T) {
	var d Demographics
	require.NoError(t, d.Scan(nil))
	assert.Equal(t, Demographics{}, d)

	p := Preferences{PetOwnership: boolPtr(true)}
	require.NoError(t, p.Scan([]byte("null")))
	assert.NotNil(t, p.PetOwnership, "null leaves the destination untouched")

	l := Lifestyle{{Category: "fitness"}}
	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)
}

func TestScan_Errors(t *testing.T) {
	var a Address
	err := a.Scan(42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address")

	var d PropertyDetails
	err = d.Scan([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "property details")
}

func TestScan_AcceptsString(t *testing.T) {
	var s StringList
	require.NoError(t, s.Scan(`["Wi-Fi","Gym"]`))
	assert.Equal(t, StringList{"Wi-Fi", "Gym"}, s)
}

func TestValue_NilCollections(t *testing.T) {
	v, err := Lifestyle(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	v, err = ConversationHistory(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestConversationHistory_RoundTrip(t *testing.T) {
	in := ConversationHistory{
		{Role: "user", Content: "Mostly families."},
		{Role: "assistant", Content: "How many children on average?"},
	}

	v, err := in.Value()
	require.NoError(t, err)

	var out ConversationHistory
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func boolPtr(b bool) *bool { return &b }
