package kana

// romajiTable maps uppercase romaji tokens to hiragana.
// Single vowels are intentionally absent: only doubled vowels convert.
var romajiTable = map[string]string{
	// Vowels
	"AA": "あ", "II": "い", "UU": "う", "EE": "え", "OO": "お",

	// Small characters
	"XYA": "ゃ", "XYU": "ゅ", "XYO": "ょ", "XTSU": "っ",
	"XA": "ぁ", "XI": "ぃ", "XU": "ぅ", "XE": "ぇ", "XO": "ぉ",

	"KA": "か", "KI": "き", "KU": "く", "KE": "け", "KO": "こ",
	"GA": "が", "GI": "ぎ", "GU": "ぐ", "GE": "げ", "GO": "ご",
	"SA": "さ", "SHI": "し", "SU": "す", "SE": "せ", "SO": "そ",
	"ZA": "ざ", "JI": "じ", "ZI": "じ", "ZU": "ず", "ZE": "ぜ", "ZO": "ぞ",
	"TA": "た", "CHI": "ち", "TSU": "つ", "TE": "て", "TO": "と",
	"DA": "だ", "DI": "ぢ", "DU": "づ", "DE": "で", "DO": "ど",
	"NA": "な", "NI": "に", "NU": "ぬ", "NE": "ね", "NO": "の",
	"NN": "ん",
	"HA": "は", "HI": "ひ", "FU": "ふ", "HU": "ふ", "HE": "へ", "HO": "ほ",
	"BA": "ば", "BI": "び", "BU": "ぶ", "BE": "べ", "BO": "ぼ",
	"PA": "ぱ", "PI": "ぴ", "PU": "ぷ", "PE": "ぺ", "PO": "ぽ",
	"MA": "ま", "MI": "み", "MU": "む", "ME": "め", "MO": "も",
	"YA": "や", "YU": "ゆ", "YO": "よ",
	"RA": "ら", "RI": "り", "RU": "る", "RE": "れ", "RO": "ろ",
	"WA": "わ", "WI": "ゐ", "WE": "ゑ", "WO": "を",

	// Youon
	"KYA": "きゃ", "KYU": "きゅ", "KYO": "きょ",
	"GYA": "ぎゃ", "GYU": "ぎゅ", "GYO": "ぎょ",
	"SHA": "しゃ", "SHU": "しゅ", "SHO": "しょ",
	"JA": "じゃ", "JU": "じゅ", "JO": "じょ",
	"ZYA": "じゃ", "ZYU": "じゅ", "ZYO": "じょ",
	"CHA": "ちゃ", "CHU": "ちゅ", "CHO": "ちょ",
	"NYA": "にゃ", "NYU": "にゅ", "NYO": "にょ",
	"HYA": "ひゃ", "HYU": "ひゅ", "HYO": "ひょ",
	"BYA": "びゃ", "BYU": "びゅ", "BYO": "びょ",
	"PYA": "ぴゃ", "PYU": "ぴゅ", "PYO": "ぴょ",
	"MYA": "みゃ", "MYU": "みゅ", "MYO": "みょ",
	"RYA": "りゃ", "RYU": "りゅ", "RYO": "りょ",
}

// maxTokenLen is the length of the longest key in romajiTable.
const maxTokenLen = 4

// Lookup returns the hiragana for a romaji token, matching case-insensitively on ASCII letters.
func Lookup(token string) (string, bool) {
	kana, ok := romajiTable[upperASCII(token)]
	return kana, ok
}

func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}
