package history

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/chefhat/internal/core/language"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	entries := []Entry{
		{Ingredients: "rice, beans", Response: "1. Rice and beans", Timestamp: 1700000000300, Language: language.English},
		{Ingredients: "domates", Response: "Menemen", Timestamp: 1700000000200, Language: language.Turkish},
		{Ingredients: "eggs", Response: "Omelette\n\nwith \"quotes\"", Timestamp: 1700000000100, Language: language.English},
	}

	data, err := Encode(entries)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestEncode_Format(t *testing.T) {
	data, err := Encode([]Entry{{Ingredients: "eggs", Response: "Omelette", Timestamp: 42, Language: language.English}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"ingredients":"eggs","recipes":"Omelette","timestamp":42,"language":"en"}]`, string(data))

	empty, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}

func TestDecode_Compat(t *testing.T) {
	t.Run("legacy record without language", func(t *testing.T) {
		got, err := Decode([]byte(`[{"ingredients":"domates","recipes":"Menemen","timestamp":1}]`))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, language.Turkish, got[0].Language)
		assert.Equal(t, "Menemen", got[0].Response)
	})

	t.Run("response field name", func(t *testing.T) {
		got, err := Decode([]byte(`[{"ingredients":"eggs","response":"Omelette","timestamp":2,"language":"en"}]`))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Omelette", got[0].Response)
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := Decode([]byte("  \n"))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := Decode([]byte("{not json"))
		assert.Error(t, err)
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := Decode([]byte(`{"entries":[]}`))
		var typeErr *json.UnmarshalTypeError
		assert.ErrorAs(t, err, &typeErr)
	})
}

func TestNormalize(t *testing.T) {
	in := []Entry{
		{Ingredients: "a", Response: "A", Timestamp: 1, Language: language.English},
		{Ingredients: "", Response: "blank ingredients", Timestamp: 2, Language: language.English},
		{Ingredients: "c", Response: "C", Timestamp: 3, Language: language.Turkish},
		{Ingredients: "d", Response: "", Timestamp: 4, Language: language.English},
		{Ingredients: "e", Response: "E", Timestamp: 5, Language: "fr"},
		{Ingredients: "f", Response: "F", Timestamp: 6, Language: language.English},
		{Ingredients: "f2", Response: "dup", Timestamp: 6, Language: language.English},
		{Ingredients: "g", Response: "G", Timestamp: 7, Language: language.English},
		{Ingredients: "h", Response: "H", Timestamp: 8, Language: language.English},
		{Ingredients: "i", Response: "I", Timestamp: 9, Language: language.English},
	}

	got := Normalize(in)

	require.Len(t, got, MaxEntries)
	var stamps []int64
	for _, e := range got {
		stamps = append(stamps, e.Timestamp)
	}
	assert.Equal(t, []int64{9, 8, 7, 6, 3}, stamps)
	assert.Equal(t, "f", got[3].Ingredients)
}
