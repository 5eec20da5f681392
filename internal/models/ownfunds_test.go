package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshalCoercion(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    Amount
	}{
		{"number", `120.5`, Amount{Value: 120.5, Present: true}},
		{"zero is present", `0`, Amount{Value: 0, Present: true}},
		{"null", `null`, Amount{}},
		{"negative treated as missing", `-10`, Amount{}},
		{"numeric string", `"300"`, Amount{Value: 300, Present: true}},
		{"percent string", `"4.5%"`, Amount{Value: 4.5, Present: true}},
		{"empty string", `""`, Amount{}},
		{"non-numeric string", `"n/a"`, Amount{}},
		{"boolean", `true`, Amount{}},
		{"array", `[1,2]`, Amount{}},
		{"object", `{"v":1}`, Amount{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var a Amount
			err := json.Unmarshal([]byte(tc.input), &a)
			require.NoError(t, err)
			require.Equal(t, tc.want, a)
		})
	}
}

func TestSomeAmountRejectsNonFinite(t *testing.T) {
	require.False(t, SomeAmount(math.NaN()).Present)
	require.False(t, SomeAmount(math.Inf(1)).Present)
	require.False(t, SomeAmount(-1).Present)
	require.True(t, SomeAmount(0).Present)
}

func TestAmountMarshalKeepsMissingDistinct(t *testing.T) {
	data, err := json.Marshal(StructuredOwnFunds{
		CET1: SomeAmount(300),
		RWA:  SomeAmount(0),
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"CET1":300,"AT1":null,"Tier2":null,"RWA":0}`, string(data))
}
