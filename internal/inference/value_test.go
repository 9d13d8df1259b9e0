package inference

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToNumber(t *testing.T) {
	cases := map[string]struct {
		in   Value
		want float64
	}{
		"number":          {Number(3.5), 3.5},
		"true":            {Bool(true), 1},
		"false":           {Bool(false), 0},
		"empty text":      {Text(""), 0},
		"blank text":      {Text("   "), 0},
		"integer text":    {Text("42"), 42},
		"signed decimal":  {Text("-1.25"), -1.25},
		"leading dot":     {Text(".5"), 0.5},
		"trailing dot":    {Text("5."), 5},
		"exponent":        {Text("1e3"), 1000},
		"hex":             {Text("0xff"), 255},
		"octal":           {Text("0o17"), 15},
		"binary":          {Text("0b101"), 5},
		"infinity":        {Text("Infinity"), math.Inf(1)},
		"minus infinity":  {Text("-Infinity"), math.Inf(-1)},
		"huge exponent":   {Text("1e400"), math.Inf(1)},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, ToNumber(tc.in))
		})
	}
}

func TestToNumberNaN(t *testing.T) {
	for _, v := range []Value{
		Absent(),
		Text("abc"),
		Text("12abc"),
		Text("1_000"),
		Text("inf"),
		Text("NaN"),
		Text("0x"),
		Text("-0x10"),
		Text("0x1p-2"),
		Number(math.NaN()),
	} {
		assert.True(t, math.IsNaN(ToNumber(v)), "expected NaN for %#v", v)
	}
}

func TestStrictEqualNaN(t *testing.T) {
	nan := Number(math.NaN())
	assert.False(t, StrictEqual(nan, nan))
}

func TestValueJSONRoundTrip(t *testing.T) {
	var cond Condition
	require.NoError(t, json.Unmarshal([]byte(`{"premiseId":"p1","operator":">=","value":5}`), &cond))
	assert.Equal(t, Number(5), cond.Value)
	assert.Equal(t, OpGreaterEqual, cond.Operator)

	var responses Responses
	require.NoError(t, json.Unmarshal([]byte(`{"a":true,"b":"Jakarta","c":7.5,"d":null}`), &responses))
	assert.Equal(t, Bool(true), responses["a"])
	assert.Equal(t, Text("Jakarta"), responses["b"])
	assert.Equal(t, Number(7.5), responses["c"])
	assert.True(t, responses["d"].IsAbsent())
	assert.True(t, responses["missing"].IsAbsent())

	data, err := json.Marshal(Responses{"a": Bool(false), "b": Text("x"), "c": Number(2), "d": Absent()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":false,"b":"x","c":2,"d":null}`, string(data))
}

func TestValueJSONMissingMemberIsAbsent(t *testing.T) {
	var cond Condition
	require.NoError(t, json.Unmarshal([]byte(`{"premiseId":"p1","operator":"=="}`), &cond))
	assert.True(t, cond.Value.IsAbsent())
}

func TestValueJSONRejectsCompositeValues(t *testing.T) {
	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"x":1}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &v))
}

func TestValueNonFiniteMarshalsAsNull(t *testing.T) {
	data, err := json.Marshal(Number(math.Inf(1)))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "abc", Text("abc").String())
	assert.Equal(t, "12.5", Number(12.5).String())
	assert.Equal(t, "100", Number(100).String())
	assert.Equal(t, "", Absent().String())
}

func TestValueBlank(t *testing.T) {
	assert.True(t, Absent().Blank())
	assert.True(t, Text("").Blank())
	assert.False(t, Text(" ").Blank())
	assert.False(t, Bool(false).Blank())
	assert.False(t, Number(0).Blank())
}
