package savefile_test

import (
	"testing"
	"time"

	"github.com/vic2tools/econstat/savefile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_KeyValuePairs(t *testing.T) {
	t.Parallel()

	v := savefile.Parse(`date="1836.1.1" player="ENG" prestige=100.5 civilized=yes id=42`)

	require.Equal(t, savefile.KindMapping, v.Kind())
	m := v.Mapping()
	require.Equal(t, 5, m.Len())

	date, ok := m.Get("date")
	require.True(t, ok)
	assert.Equal(t, savefile.KindText, date.Kind())
	assert.Equal(t, "1836.1.1", date.Text())

	prestige, ok := m.Get("prestige")
	require.True(t, ok)
	assert.Equal(t, savefile.KindFloat, prestige.Kind())
	assert.InDelta(t, 100.5, prestige.Float(), 1e-9)

	civilized, ok := m.Get("civilized")
	require.True(t, ok)
	assert.Equal(t, savefile.KindBool, civilized.Kind())
	assert.True(t, civilized.Bool())

	id, ok := m.Get("id")
	require.True(t, ok)
	assert.Equal(t, savefile.KindInt, id.Kind())
	assert.Equal(t, int64(42), id.Int())
}

func TestParse_ScalarClassification(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		want  savefile.Value
	}{
		{name: "integer", input: "100", want: savefile.IntValue(100)},
		{name: "negative integer", input: "-7", want: savefile.IntValue(-7)},
		{name: "float", input: "100.5", want: savefile.FloatValue(100.5)},
		{name: "negative float", input: "-0.25", want: savefile.FloatValue(-0.25)},
		{name: "yes is true", input: "yes", want: savefile.BoolValue(true)},
		{name: "no is false", input: "no", want: savefile.BoolValue(false)},
		{name: "uppercase yes", input: "YES", want: savefile.BoolValue(true)},
		{name: "text fallback", input: "London", want: savefile.TextValue("London")},
		{name: "dotted non-number is text", input: "1.2.3", want: savefile.TextValue("1.2.3")},
		{name: "date-like stays text", input: "a.b", want: savefile.TextValue("a.b")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v := savefile.Parse("k=" + tc.input)

			got, ok := v.Get("k")
			require.True(t, ok)
			assert.True(t, got.Equal(tc.want), "got %v kind %v", got, got.Kind())
		})
	}
}

func TestParse_BlockDisambiguation(t *testing.T) {
	t.Parallel()

	t.Run("key value block is a mapping", func(t *testing.T) {
		t.Parallel()

		v := savefile.Parse(`b={ a=1 b=2 }`)

		block, ok := v.Get("b")
		require.True(t, ok)
		require.Equal(t, savefile.KindMapping, block.Kind())
		assert.Equal(t, []string{"a", "b"}, block.Mapping().Keys())
	})

	t.Run("bare values are a sequence", func(t *testing.T) {
		t.Parallel()

		v := savefile.Parse(`b={ 1 2 3 }`)

		block, ok := v.Get("b")
		require.True(t, ok)
		require.Equal(t, savefile.KindSequence, block.Kind())
		assert.True(t, block.Equal(savefile.SequenceValue(
			savefile.IntValue(1), savefile.IntValue(2), savefile.IntValue(3),
		)))
	})

	t.Run("quoted strings are a sequence", func(t *testing.T) {
		t.Parallel()

		v := savefile.Parse(`b={ "x" "y" }`)

		block, ok := v.Get("b")
		require.True(t, ok)
		require.Equal(t, savefile.KindSequence, block.Kind())
		assert.True(t, block.Equal(savefile.SequenceValue(
			savefile.TextValue("x"), savefile.TextValue("y"),
		)))
	})

	t.Run("anonymous blocks are a sequence of mappings", func(t *testing.T) {
		t.Parallel()

		v := savefile.Parse(`b={ {a=1} {a=2} }`)

		block, ok := v.Get("b")
		require.True(t, ok)
		require.Equal(t, savefile.KindSequence, block.Kind())

		seq := block.Sequence()
		require.Len(t, seq, 2)

		for i, elem := range seq {
			require.Equal(t, savefile.KindMapping, elem.Kind())

			inner, ok := elem.Get("a")
			require.True(t, ok)
			assert.Equal(t, int64(i+1), inner.Int())
		}
	})

	t.Run("empty block is an empty mapping", func(t *testing.T) {
		t.Parallel()

		v := savefile.Parse(`b={}`)

		block, ok := v.Get("b")
		require.True(t, ok)
		require.Equal(t, savefile.KindMapping, block.Kind())
		assert.Equal(t, 0, block.Mapping().Len())
	})

	t.Run("single bare token is a one element sequence", func(t *testing.T) {
		t.Parallel()

		v := savefile.Parse(`b={ lonely }`)

		block, ok := v.Get("b")
		require.True(t, ok)
		require.Equal(t, savefile.KindSequence, block.Kind())
		assert.True(t, block.Equal(savefile.SequenceValue(savefile.TextValue("lonely"))))
	})
}

func TestParse_DuplicateKeys(t *testing.T) {
	t.Parallel()

	t.Run("three scalars merge into one sequence", func(t *testing.T) {
		t.Parallel()

		v := savefile.Parse(`k=1 k=2 k=3`)

		m := v.Mapping()
		require.Equal(t, 1, m.Len())

		merged, ok := m.Get("k")
		require.True(t, ok)
		assert.True(t, merged.Equal(savefile.SequenceValue(
			savefile.IntValue(1), savefile.IntValue(2), savefile.IntValue(3),
		)))
	})

	t.Run("duplicate blocks merge too", func(t *testing.T) {
		t.Parallel()

		v := savefile.Parse(`core="ENG" core="FRA" state={ id=1 } state={ id=2 }`)

		core, ok := v.Get("core")
		require.True(t, ok)
		assert.True(t, core.Equal(savefile.SequenceValue(
			savefile.TextValue("ENG"), savefile.TextValue("FRA"),
		)))

		states, ok := v.Get("state")
		require.True(t, ok)
		require.Equal(t, savefile.KindSequence, states.Kind())
		require.Len(t, states.Sequence(), 2)
	})

	t.Run("merge preserves first seen position", func(t *testing.T) {
		t.Parallel()

		v := savefile.Parse(`a=1 k=1 b=2 k=2`)

		assert.Equal(t, []string{"a", "k", "b"}, v.Mapping().Keys())
	})
}

func TestParse_CommentsAndWhitespace(t *testing.T) {
	t.Parallel()

	input := "# header comment\nkey=1\t# trailing comment\n\r\n  other=2\n#final"

	v := savefile.Parse(input)

	m := v.Mapping()
	require.Equal(t, 2, m.Len())

	key, ok := m.Get("key")
	require.True(t, ok)
	assert.Equal(t, int64(1), key.Int())

	other, ok := m.Get("other")
	require.True(t, ok)
	assert.Equal(t, int64(2), other.Int())
}

func TestParse_Tolerance(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		check func(t *testing.T, v savefile.Value)
	}{
		{
			name:  "empty input is an empty mapping",
			input: "",
			check: func(t *testing.T, v savefile.Value) {
				t.Helper()
				require.Equal(t, savefile.KindMapping, v.Kind())
				assert.Equal(t, 0, v.Mapping().Len())
			},
		},
		{
			name:  "unterminated quoted string keeps earlier entries",
			input: "a=1 b=\"truncat",
			check: func(t *testing.T, v savefile.Value) {
				t.Helper()

				a, ok := v.Get("a")
				require.True(t, ok)
				assert.Equal(t, int64(1), a.Int())

				b, ok := v.Get("b")
				require.True(t, ok)
				assert.Equal(t, "truncat", b.Text())
			},
		},
		{
			name:  "missing closing brace keeps block contents",
			input: "outer={ x=1 y=2",
			check: func(t *testing.T, v savefile.Value) {
				t.Helper()

				outer, ok := v.Get("outer")
				require.True(t, ok)

				y, ok := outer.Get("y")
				require.True(t, ok)
				assert.Equal(t, int64(2), y.Int())
			},
		},
		{
			name:  "key without equals ends the block silently",
			input: "a=1 stray b=2",
			check: func(t *testing.T, v savefile.Value) {
				t.Helper()

				m := v.Mapping()
				assert.Equal(t, 1, m.Len())

				a, ok := m.Get("a")
				require.True(t, ok)
				assert.Equal(t, int64(1), a.Int())
			},
		},
		{
			name:  "lone closing brace yields empty mapping",
			input: "}",
			check: func(t *testing.T, v savefile.Value) {
				t.Helper()
				require.Equal(t, savefile.KindMapping, v.Kind())
				assert.Equal(t, 0, v.Mapping().Len())
			},
		},
		{
			name:  "stray equals ends a sequence early",
			input: "1 2 = 3",
			check: func(t *testing.T, v savefile.Value) {
				t.Helper()
				require.Equal(t, savefile.KindSequence, v.Kind())
				assert.True(t, v.Equal(savefile.SequenceValue(
					savefile.IntValue(1), savefile.IntValue(2),
				)))
			},
		},
		{
			name:  "lone equals yields empty mapping",
			input: "=",
			check: func(t *testing.T, v savefile.Value) {
				t.Helper()
				require.Equal(t, savefile.KindMapping, v.Kind())
				assert.Equal(t, 0, v.Mapping().Len())
			},
		},
		{
			name:  "equals run yields empty mapping",
			input: "= = =",
			check: func(t *testing.T, v savefile.Value) {
				t.Helper()
				require.Equal(t, savefile.KindMapping, v.Kind())
				assert.Equal(t, 0, v.Mapping().Len())
			},
		},
		{
			name:  "lone opening brace is one empty block",
			input: "{",
			check: func(t *testing.T, v savefile.Value) {
				t.Helper()
				require.Equal(t, savefile.KindSequence, v.Kind())
				require.Len(t, v.Sequence(), 1)
				assert.Equal(t, savefile.KindMapping, v.Sequence()[0].Kind())
			},
		},
		{
			name:  "stray equals inside a block sequence",
			input: "b={ 1 = 2 }",
			check: func(t *testing.T, v savefile.Value) {
				t.Helper()

				// First element followed by '=' reads as a mapping pair.
				b, ok := v.Get("b")
				require.True(t, ok)
				require.Equal(t, savefile.KindMapping, b.Kind())
			},
		},
		{
			name:  "delimiter soup yields a value",
			input: "={}=}{",
			check: func(t *testing.T, v savefile.Value) {
				t.Helper()
				require.Equal(t, savefile.KindMapping, v.Kind())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.NotPanics(t, func() {
				v := savefile.Parse(tc.input)
				tc.check(t, v)
			})
		})
	}
}

func TestParse_TerminatesOnStrayEquals(t *testing.T) {
	t.Parallel()

	// A trailing '=' in a sequence used to leave the cursor stuck on the
	// delimiter, appending empty values forever.
	done := make(chan savefile.Value, 1)

	go func() {
		done <- savefile.Parse("1 2 =")
	}()

	select {
	case v := <-done:
		require.Equal(t, savefile.KindSequence, v.Kind())
		assert.True(t, v.Equal(savefile.SequenceValue(
			savefile.IntValue(1), savefile.IntValue(2),
		)))
	case <-time.After(2 * time.Second):
		t.Fatal("Parse did not return")
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"a=1 b=2",
		`date="1836.1.1"`,
		"b={ 1 2 3 }",
		"b={ {a=1} {a=2} }",
		"1 2 =",
		"=",
		"= = =",
		"{",
		"}",
		"={}=}{",
		"a={b=",
		"a=1 b=\"truncat",
		"# comment only",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		v := savefile.Parse(input)

		if k := v.Kind(); k != savefile.KindMapping && k != savefile.KindSequence {
			t.Fatalf("root must be a mapping or sequence, got %v", k)
		}
	})
}

func TestParse_Idempotent(t *testing.T) {
	t.Parallel()

	input := `
date="1850.6.15"
worldmarket={
	price_pool={ iron=35.000 coal=2.300 }
	supply_pool={ iron=1000.0 }
}
ENG={
	prestige=100.5
	state={ provinces={ 300 301 302 } }
	state={ provinces={ 400 } }
}
`

	first := savefile.Parse(input)
	second := savefile.Parse(input)

	assert.True(t, first.Equal(second))
}

func TestParse_NestedDepth(t *testing.T) {
	t.Parallel()

	v := savefile.Parse(`a={ b={ c={ d={ e=1 } } } }`)

	cur := v
	for _, key := range []string{"a", "b", "c", "d"} {
		next, ok := cur.Get(key)
		require.True(t, ok, "missing %q", key)
		cur = next
	}

	e, ok := cur.Get("e")
	require.True(t, ok)
	assert.Equal(t, int64(1), e.Int())
}

func TestParse_QuotedKeys(t *testing.T) {
	t.Parallel()

	v := savefile.Parse(`"quoted key"=5`)

	got, ok := v.Get("quoted key")
	require.True(t, ok)
	assert.Equal(t, int64(5), got.Int())
}

func TestParse_TopLevelSequence(t *testing.T) {
	t.Parallel()

	v := savefile.Parse(`300 301 302`)

	require.Equal(t, savefile.KindSequence, v.Kind())
	assert.Len(t, v.Sequence(), 3)
}
