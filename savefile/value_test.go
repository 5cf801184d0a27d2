package savefile_test

import (
	"encoding/json"
	"testing"

	"github.com/vic2tools/econstat/savefile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Coercers(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		value     savefile.Value
		wantFloat float64
		wantInt   int64
		wantBool  bool
		wantText  string
	}{
		{
			name:      "float scalar",
			value:     savefile.FloatValue(50.5),
			wantFloat: 50.5,
			wantInt:   50,
			wantBool:  false,
			wantText:  "fallback",
		},
		{
			name:      "int scalar widens",
			value:     savefile.IntValue(100),
			wantFloat: 100,
			wantInt:   100,
			wantBool:  false,
			wantText:  "fallback",
		},
		{
			name:      "numeric text parses",
			value:     savefile.TextValue("25.75"),
			wantFloat: 25.75,
			wantInt:   25,
			wantBool:  false,
			wantText:  "25.75",
		},
		{
			name:      "yes text is true",
			value:     savefile.TextValue("yes"),
			wantFloat: -1,
			wantInt:   -1,
			wantBool:  true,
			wantText:  "yes",
		},
		{
			name:      "bool scalar",
			value:     savefile.BoolValue(true),
			wantFloat: -1,
			wantInt:   -1,
			wantBool:  true,
			wantText:  "fallback",
		},
		{
			name:      "garbage text defaults",
			value:     savefile.TextValue("invalid"),
			wantFloat: -1,
			wantInt:   -1,
			wantBool:  false,
			wantText:  "invalid",
		},
		{
			name:      "sequence defaults everywhere",
			value:     savefile.SequenceValue(savefile.IntValue(1)),
			wantFloat: -1,
			wantInt:   -1,
			wantBool:  false,
			wantText:  "fallback",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.InDelta(t, tc.wantFloat, tc.value.FloatOr(-1), 1e-9)
			assert.Equal(t, tc.wantInt, tc.value.IntOr(-1))
			assert.Equal(t, tc.wantBool, tc.value.BoolOr(false))
			assert.Equal(t, tc.wantText, tc.value.TextOr("fallback"))
		})
	}
}

func TestValue_GetOnNonMapping(t *testing.T) {
	t.Parallel()

	_, ok := savefile.IntValue(1).Get("anything")
	assert.False(t, ok)

	_, ok = savefile.SequenceValue().Get("anything")
	assert.False(t, ok)
}

func TestMapping_InsertionOrder(t *testing.T) {
	t.Parallel()

	v := savefile.Parse(`zulu=1 alpha=2 mike=3`)

	m := v.Mapping()
	assert.Equal(t, []string{"zulu", "alpha", "mike"}, m.Keys())

	var iterated []string
	for key := range m.All() {
		iterated = append(iterated, key)
	}

	assert.Equal(t, []string{"zulu", "alpha", "mike"}, iterated)
}

func TestValue_Equal(t *testing.T) {
	t.Parallel()

	a := savefile.Parse(`k={ a=1 b={ 1 2 } } l="x"`)
	b := savefile.Parse(`k={ a=1 b={ 1 2 } } l="x"`)
	c := savefile.Parse(`k={ a=1 b={ 1 3 } } l="x"`)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))

	// Kind matters: int 1 is not float 1.0 and not text "1".
	assert.False(t, savefile.IntValue(1).Equal(savefile.FloatValue(1)))
	assert.False(t, savefile.IntValue(1).Equal(savefile.TextValue("1")))
}

func TestValue_MarshalJSON(t *testing.T) {
	t.Parallel()

	v := savefile.Parse(`b=2 a=1 list={ 1 2 } flag=yes name="London"`)

	raw, err := json.Marshal(v)
	require.NoError(t, err)

	// Mapping keys keep insertion order.
	assert.JSONEq(t, `{"b":2,"a":1,"list":[1,2],"flag":true,"name":"London"}`, string(raw))
	assert.Equal(t, `{"b":2,"a":1,"list":[1,2],"flag":true,"name":"London"}`, string(raw))
}
