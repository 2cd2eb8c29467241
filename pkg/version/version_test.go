package version

import (
	"testing"

	"github.com/pika-pm/pika/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) Spec {
	t.Helper()
	spec, err := Parse(s)
	require.NoError(t, err)
	return spec
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Spec
	}{
		{"1.0", Spec{Upstream: "1.0"}},
		{"1.0-r1", Spec{Upstream: "1.0", Revision: "r1"}},
		{"2:1.0", Spec{Epoch: 2, Upstream: "1.0"}},
		{"2:1.0-r1", Spec{Epoch: 2, Upstream: "1.0", Revision: "r1"}},
		{"1.0-alpha-r2", Spec{Upstream: "1.0-alpha", Revision: "r2"}},
		{"1.2.3~beta1", Spec{Upstream: "1.2.3~beta1"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, spec)
		})
	}
}

func TestParseErrors(t *testing.T) {
	_, err := Parse("x:1.0")
	assert.Error(t, err)

	_, err = Parse("")
	assert.Error(t, err)

	_, err = Parse("2:")
	assert.Error(t, err)
}

func TestStringRoundTrip(t *testing.T) {
	for _, s := range []string{"1.0", "1.0-r1", "2:1.0", "2:1.0-r1", "1.2.3~beta1"} {
		assert.Equal(t, s, mustParse(t, s).String())
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		sign int
	}{
		{"1.0", "1.0", 0},
		{"1.0-r1", "1.0-r1", 0},
		{"1.0", "1.0.1", -1},
		{"1.0", "2.0", -1},
		{"1.9", "1.10", -1},
		{"1.0~beta", "1.0", -1},
		{"1.0~~", "1.0~", -1},
		{"1.0", "1.0a", -1},
		{"1.0a", "1.0+", -1},
		{"1.0-r1", "1.0-r2", -1},
		{"1.0", "1.0-r1", -1},
		{"0:1.0", "1:0.5", -1},
		{"1:9.0", "2:1.0", -1},
		{"1.001", "1.1", 0},
		{"2.4.21", "2.4.21.1", -1},
	}

	sign := func(n int) int {
		switch {
		case n < 0:
			return -1
		case n > 0:
			return 1
		default:
			return 0
		}
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			a, b := mustParse(t, tt.a), mustParse(t, tt.b)
			assert.Equal(t, tt.sign, sign(Compare(a, b)))
			assert.Equal(t, -tt.sign, sign(Compare(b, a)))
		})
	}
}

func TestCompareTotalOrder(t *testing.T) {
	// Already in ascending order; every pair must agree.
	ordered := []string{"1.0~~", "1.0~beta", "1.0", "1.0a", "1.0.1", "1.1", "1.10", "2.0", "1:0.1"}
	for i := range ordered {
		for j := range ordered {
			a, b := mustParse(t, ordered[i]), mustParse(t, ordered[j])
			r := Compare(a, b)
			switch {
			case i < j:
				assert.Negative(t, r, "%s should sort before %s", ordered[i], ordered[j])
			case i > j:
				assert.Positive(t, r, "%s should sort after %s", ordered[i], ordered[j])
			default:
				assert.Zero(t, r)
			}
		}
	}
}

func TestParseConstraint(t *testing.T) {
	tests := []struct {
		op   string
		want Constraint
	}{
		{"<", ConstraintEarlier},
		{"<<", ConstraintEarlier},
		{"<=", ConstraintEarlierEqual},
		{"=", ConstraintEqual},
		{">=", ConstraintLaterEqual},
		{">", ConstraintLater},
		{">>", ConstraintLater},
	}
	for _, tt := range tests {
		c, err := ParseConstraint(tt.op)
		require.NoError(t, err, tt.op)
		assert.Equal(t, tt.want, c, tt.op)
	}

	_, err := ParseConstraint("~>")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownOperator)
}

func TestConstraintString(t *testing.T) {
	// The "<<" and ">>" aliases normalize to the canonical literal.
	c, err := ParseConstraint("<<")
	require.NoError(t, err)
	assert.Equal(t, "<", c.String())

	c, err = ParseConstraint(">>")
	require.NoError(t, err)
	assert.Equal(t, ">", c.String())
}

func TestSatisfies(t *testing.T) {
	v10 := mustParse(t, "1.0")
	v20 := mustParse(t, "2.0")

	tests := []struct {
		a    Spec
		op   string
		ref  Spec
		want bool
	}{
		{v10, "<", v20, true},
		{v10, "<=", v10, true},
		{v10, "=", v10, true},
		{v10, "=", v20, false},
		{v20, ">=", v10, true},
		{v20, ">", v20, false},
		{v10, "<<", v20, true},
		{v20, ">>", v10, true},
	}
	for _, tt := range tests {
		got, err := Satisfies(tt.a, tt.op, tt.ref)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %s %s", tt.a, tt.op, tt.ref)
	}

	_, err := Satisfies(v10, "===", v20)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownOperator)
}
