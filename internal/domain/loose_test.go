package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLooseInt_Unmarshal(t *testing.T) {
	tests := []struct {
		in    string
		want  int
		valid bool
	}{
		{`4`, 4, true},
		{`"3"`, 3, true},
		{`" 4 séries"`, 4, true},
		{`"abc"`, 0, false},
		{`null`, 0, false},
		{`true`, 0, false},
		{`3.9`, 3, true},
		{`1e300`, 0, false},
		{`-1e300`, 0, false},
		{`"99999999999999999999 séries"`, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var v struct {
				Series LooseInt `json:"series"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"series":`+tt.in+`}`), &v))
			assert.Equal(t, tt.valid, v.Series.Valid)
			assert.Equal(t, tt.want, v.Series.Value)
		})
	}
}

func TestLooseInt_MissingField(t *testing.T) {
	var v struct {
		Series LooseInt `json:"series"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &v))
	assert.False(t, v.Series.Valid)
}

func TestLooseText_Unmarshal(t *testing.T) {
	var v struct {
		Reps LooseText `json:"reps"`
		Rest LooseText `json:"rest"`
		None LooseText `json:"none"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"reps":"10-12","rest":90,"none":"  "}`), &v))

	assert.Equal(t, LooseText{Text: "10-12", Present: true}, v.Reps)
	assert.True(t, v.Rest.IsNumber)
	n, ok := v.Rest.Int()
	assert.True(t, ok)
	assert.Equal(t, 90, n)
	assert.False(t, v.None.Present)
}

func TestLooseText_IntOutOfRange(t *testing.T) {
	for _, in := range []string{`1e300`, `-1e300`, `9.3e18`} {
		t.Run(in, func(t *testing.T) {
			var v LooseText
			require.NoError(t, json.Unmarshal([]byte(in), &v))
			require.True(t, v.IsNumber)
			_, ok := v.Int()
			assert.False(t, ok)
		})
	}
}

func TestLooseText_RoundTripKeepsKind(t *testing.T) {
	out, err := json.Marshal(map[string]LooseText{"a": NumberValue(10), "b": TextValue("60s"), "c": {}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":10,"b":"60s","c":null}`, string(out))
}

func TestLooseText_Float(t *testing.T) {
	f, ok := TextValue("20,5").Float()
	assert.True(t, ok)
	assert.InDelta(t, 20.5, f, 1e-9)

	_, ok = TextValue("heavy").Float()
	assert.False(t, ok)

	_, ok = LooseText{}.Float()
	assert.False(t, ok)
}

func TestDigitRuns(t *testing.T) {
	assert.Equal(t, []int{10, 12}, DigitRuns("10-12"))
	assert.Equal(t, []int{8, 10, 12}, DigitRuns("8 a 10 ou 12"))
	assert.Nil(t, DigitRuns("até a falha"))
}
