package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Every condition code against every combination of C, V, Z and N.
func TestConditionTable(t *testing.T) {
	conds := []struct {
		name string
		code uint8
		want func(c, v, z, n bool) bool
	}{
		{"T", CondT, func(c, v, z, n bool) bool { return true }},
		{"F", CondF, func(c, v, z, n bool) bool { return false }},
		{"HI", CondHI, func(c, v, z, n bool) bool { return !c && !z }},
		{"LS", CondLS, func(c, v, z, n bool) bool { return c || z }},
		{"CC", CondCC, func(c, v, z, n bool) bool { return !c }},
		{"CS", CondCS, func(c, v, z, n bool) bool { return c }},
		{"NE", CondNE, func(c, v, z, n bool) bool { return !z }},
		{"EQ", CondEQ, func(c, v, z, n bool) bool { return z }},
		{"VC", CondVC, func(c, v, z, n bool) bool { return !v }},
		{"VS", CondVS, func(c, v, z, n bool) bool { return v }},
		{"PL", CondPL, func(c, v, z, n bool) bool { return !n }},
		{"MI", CondMI, func(c, v, z, n bool) bool { return n }},
		{"GE", CondGE, func(c, v, z, n bool) bool { return n == v }},
		{"LT", CondLT, func(c, v, z, n bool) bool { return n != v }},
		{"GT", CondGT, func(c, v, z, n bool) bool { return !z && n == v }},
		{"LE", CondLE, func(c, v, z, n bool) bool { return z || n != v }},
	}

	c := New()
	for _, tc := range conds {
		for bits := 0; bits < 16; bits++ {
			cf := bits&1 != 0
			vf := bits&2 != 0
			zf := bits&4 != 0
			nf := bits&8 != 0
			c.SetFlag(SRC, cf)
			c.SetFlag(SRV, vf)
			c.SetFlag(SRZ, zf)
			c.SetFlag(SRN, nf)

			require.Equalf(t, tc.want(cf, vf, zf, nf), c.TestCondition(tc.code),
				"%s with C=%v V=%v Z=%v N=%v", tc.name, cf, vf, zf, nf)
		}
	}
}
