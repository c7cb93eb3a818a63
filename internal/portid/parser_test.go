package portid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  Address
	}{
		{name: "output port", raw: "A.out[0]", expected: New("A", Out, 0)},
		{name: "input port", raw: "gate-7.in[1]", expected: New("gate-7", In, 1)},
		{name: "dotted gate id", raw: "lib.half_adder.in[12]", expected: New("lib.half_adder", In, 12)},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - no gate", raw: ".out[0]", expectErr: true},
		{name: "error - no port", raw: "A.", expectErr: true},
		{name: "error - no dot", raw: "out[0]", expectErr: true},
		{name: "error - unknown direction", raw: "A.up[0]", expectErr: true},
		{name: "error - missing slot", raw: "A.out", expectErr: true},
		{name: "error - negative slot", raw: "A.out[-1]", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, addr)
		})
	}
}

func TestAddress_RoundTrip(t *testing.T) {
	for _, raw := range []string{"A.out[0]", "b.in[3]", "x.y.z.in[0]"} {
		t.Run(raw, func(t *testing.T) {
			addr, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, addr.String())
		})
	}
}

func TestDirection_Opposite(t *testing.T) {
	assert.Equal(t, Out, In.Opposite())
	assert.Equal(t, In, Out.Opposite())
}
