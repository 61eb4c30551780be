package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArray_Scan(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want StringArray
	}{
		{"json", `["a","b"]`, StringArray{"a", "b"}},
		{"bytes", []byte(`["x"]`), StringArray{"x"}},
		{"null", nil, StringArray{}},
		{"empty", "", StringArray{}},
		{"pg array", `{travel,"food"}`, StringArray{"travel", "food"}},
		{"legacy", "vlog", StringArray{"vlog"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got StringArray
			require.NoError(t, got.Scan(tc.in))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStringArray_ValueNil(t *testing.T) {
	v, err := StringArray(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}
