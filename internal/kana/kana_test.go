package kana

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransliterate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty input", input: "", want: ""},
		{name: "no matches keep case", input: "xyz123", want: "xyz123"},
		{name: "simple syllables", input: "SUSHI", want: "すし"},
		{name: "lowercase input", input: "sushi", want: "すし"},
		{name: "mixed case input", input: "SuShI", want: "すし"},
		{name: "youon before bare vowel", input: "KYOUSHITSU", want: "きょUしつ"},
		{name: "bare vowels are not converted", input: "aiueo", want: "aiueo"},
		{name: "doubled vowels convert", input: "AAIIUUEEOO", want: "あいうえお"},
		{name: "small tsu needs four letters", input: "XTSUTE", want: "って"},
		{name: "small characters", input: "XAXIXUXEXOXYAXYUXYO", want: "ぁぃぅぇぉゃゅょ"},
		{name: "nasal", input: "NNNA", want: "んな"},
		{name: "lonely consonant passes through", input: "gakkou", want: "がkこu"},
		{name: "alias spellings", input: "HUZIZYA", want: "ふじじゃ"},
		{name: "irregular d row", input: "DIDU", want: "ぢづ"},
		{name: "archaic w row", input: "WIWEWO", want: "ゐゑを"},
		{name: "already hiragana passes through", input: "ひらがな", want: "ひらがな"},
		{name: "spaces and punctuation", input: "KA KI, KU!", want: "か き, く!"},
		{name: "palatalized rows", input: "CHANYAHYUBYOPYAMYURYO", want: "ちゃにゃひゅびょぴゃみゅりょ"},
		{name: "invalid utf8 bytes are kept", input: "a\xffb", want: "a\xffb"},
		{name: "invalid byte between tokens", input: "KA\xfeKI", want: "か\xfeき"},
		{name: "only ascii letters fold case", input: "kı", want: "kı"},
		{name: "multibyte after token", input: "KAé", want: "かé"},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Transliterate(tc.input))
		})
	}
}

func TestTransliterate_ConcatenatedTokens(t *testing.T) {
	t.Parallel()

	// Tokens whose concatenation cannot be re-segmented by a longer key.
	tokens := []string{"XTSU", "KYA", "SHI", "CHI", "TSU", "NN", "KA", "RYO", "WA", "GE", "ZYU", "PO"}

	var input strings.Builder
	var want strings.Builder
	for _, tok := range tokens {
		kana, ok := Lookup(tok)
		require.True(t, ok, "token %q missing from table", tok)
		input.WriteString(tok)
		want.WriteString(kana)
	}

	assert.Equal(t, want.String(), Transliterate(input.String()))
}

func TestTable_EveryKeyConvertsAlone(t *testing.T) {
	t.Parallel()

	for key, kana := range romajiTable {
		assert.Equal(t, strings.ToUpper(key), key, "table keys must be uppercase")
		assert.LessOrEqual(t, len(key), maxTokenLen)
		assert.Equal(t, kana, Transliterate(key), "key %q", key)
		assert.Equal(t, kana, Transliterate(strings.ToLower(key)), "key %q lowercased", key)
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	kana, ok := Lookup("shi")
	require.True(t, ok)
	assert.Equal(t, "し", kana)

	_, ok = Lookup("U")
	assert.False(t, ok, "single vowels are not table keys")

	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestScriptClassifiers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsHiragana("ひらがな"))
	assert.False(t, IsHiragana("カタカナ"))
	assert.False(t, IsHiragana(""))

	assert.True(t, IsKatakana("カタカナ"))
	assert.False(t, IsKatakana("ひらがな"))

	assert.True(t, IsKanji("日本"))
	assert.False(t, IsKanji("日本ご"))
	assert.False(t, IsKanji(""))
}
