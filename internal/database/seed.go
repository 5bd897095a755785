package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/kanjibot/pkg/models"
)

// n5Kanji is the built-in JLPT N5 deck loaded into an empty database
var n5Kanji = []models.Kanji{
	{Character: "一", Meaning: "one", OnReading: "いち", KunReading: "ひと", ExampleWord: "一人", ExampleReading: "ひとり", ExampleMeaning: "one person", Difficulty: 1},
	{Character: "二", Meaning: "two", OnReading: "に", KunReading: "ふた", ExampleWord: "二人", ExampleReading: "ふたり", ExampleMeaning: "two people", Difficulty: 1},
	{Character: "三", Meaning: "three", OnReading: "さん", KunReading: "みっ", ExampleWord: "三時", ExampleReading: "さんじ", ExampleMeaning: "three o'clock", Difficulty: 1},
	{Character: "四", Meaning: "four", OnReading: "し", KunReading: "よん", ExampleWord: "四月", ExampleReading: "しがつ", ExampleMeaning: "April", Difficulty: 1},
	{Character: "五", Meaning: "five", OnReading: "ご", KunReading: "いつ", ExampleWord: "五時", ExampleReading: "ごじ", ExampleMeaning: "five o'clock", Difficulty: 1},
	{Character: "六", Meaning: "six", OnReading: "ろく", KunReading: "むっ", ExampleWord: "六月", ExampleReading: "ろくがつ", ExampleMeaning: "June", Difficulty: 1},
	{Character: "七", Meaning: "seven", OnReading: "しち", KunReading: "なな", ExampleWord: "七時", ExampleReading: "しちじ", ExampleMeaning: "seven o'clock", Difficulty: 1},
	{Character: "八", Meaning: "eight", OnReading: "はち", KunReading: "やっ", ExampleWord: "八月", ExampleReading: "はちがつ", ExampleMeaning: "August", Difficulty: 1},
	{Character: "九", Meaning: "nine", OnReading: "きゅう", KunReading: "ここの", ExampleWord: "九時", ExampleReading: "くじ", ExampleMeaning: "nine o'clock", Difficulty: 1},
	{Character: "十", Meaning: "ten", OnReading: "じゅう", KunReading: "とお", ExampleWord: "十時", ExampleReading: "じゅうじ", ExampleMeaning: "ten o'clock", Difficulty: 1},
	{Character: "日", Meaning: "day/sun", OnReading: "にち", KunReading: "ひ", ExampleWord: "今日", ExampleReading: "きょう", ExampleMeaning: "today", Difficulty: 1},
	{Character: "月", Meaning: "month/moon", OnReading: "げつ", KunReading: "つき", ExampleWord: "月曜日", ExampleReading: "げつようび", ExampleMeaning: "Monday", Difficulty: 1},
	{Character: "火", Meaning: "fire/Tuesday", OnReading: "か", KunReading: "ひ", ExampleWord: "火曜日", ExampleReading: "かようび", ExampleMeaning: "Tuesday", Difficulty: 2},
	{Character: "水", Meaning: "water/Wednesday", OnReading: "すい", KunReading: "みず", ExampleWord: "水曜日", ExampleReading: "すいようび", ExampleMeaning: "Wednesday", Difficulty: 1},
	{Character: "木", Meaning: "tree/Thursday", OnReading: "もく", KunReading: "き", ExampleWord: "木曜日", ExampleReading: "もくようび", ExampleMeaning: "Thursday", Difficulty: 1},
	{Character: "金", Meaning: "gold/Friday/money", OnReading: "きん", KunReading: "かね", ExampleWord: "金曜日", ExampleReading: "きんようび", ExampleMeaning: "Friday", Difficulty: 2},
	{Character: "土", Meaning: "earth/Saturday", OnReading: "ど", KunReading: "つち", ExampleWord: "土曜日", ExampleReading: "どようび", ExampleMeaning: "Saturday", Difficulty: 1},
	{Character: "年", Meaning: "year", OnReading: "ねん", KunReading: "とし", ExampleWord: "今年", ExampleReading: "ことし", ExampleMeaning: "this year", Difficulty: 1},
	{Character: "時", Meaning: "time/hour", OnReading: "じ", KunReading: "とき", ExampleWord: "時間", ExampleReading: "じかん", ExampleMeaning: "time", Difficulty: 2},
	{Character: "人", Meaning: "person", OnReading: "じん", KunReading: "ひと", ExampleWord: "日本人", ExampleReading: "にほんじん", ExampleMeaning: "Japanese person", Difficulty: 1},
	{Character: "私", Meaning: "I/me", OnReading: "", KunReading: "わたし", ExampleWord: "私達", ExampleReading: "わたしたち", ExampleMeaning: "we", Difficulty: 1},
	{Character: "父", Meaning: "father", OnReading: "ふ", KunReading: "ちち", ExampleWord: "お父さん", ExampleReading: "おとうさん", ExampleMeaning: "father", Difficulty: 2},
	{Character: "母", Meaning: "mother", OnReading: "ぼ", KunReading: "はは", ExampleWord: "お母さん", ExampleReading: "おかあさん", ExampleMeaning: "mother", Difficulty: 2},
	{Character: "子", Meaning: "child", OnReading: "し", KunReading: "こ", ExampleWord: "子供", ExampleReading: "こども", ExampleMeaning: "child", Difficulty: 2},
	{Character: "男", Meaning: "man/male", OnReading: "だん", KunReading: "おとこ", ExampleWord: "男性", ExampleReading: "だんせい", ExampleMeaning: "male", Difficulty: 2},
	{Character: "女", Meaning: "woman/female", OnReading: "じょ", KunReading: "おんな", ExampleWord: "女性", ExampleReading: "じょせい", ExampleMeaning: "female", Difficulty: 2},
	{Character: "大", Meaning: "big", OnReading: "だい", KunReading: "おお", ExampleWord: "大きい", ExampleReading: "おおきい", ExampleMeaning: "big", Difficulty: 1},
	{Character: "小", Meaning: "small", OnReading: "しょう", KunReading: "ちい", ExampleWord: "小さい", ExampleReading: "ちいさい", ExampleMeaning: "small", Difficulty: 1},
	{Character: "中", Meaning: "middle/inside", OnReading: "ちゅう", KunReading: "なか", ExampleWord: "中学校", ExampleReading: "ちゅうがっこう", ExampleMeaning: "middle school", Difficulty: 2},
	{Character: "上", Meaning: "up/above", OnReading: "じょう", KunReading: "うえ", ExampleWord: "上手", ExampleReading: "じょうず", ExampleMeaning: "skillful", Difficulty: 2},
	{Character: "下", Meaning: "down/below", OnReading: "か", KunReading: "した", ExampleWord: "下手", ExampleReading: "へた", ExampleMeaning: "unskillful", Difficulty: 2},
	{Character: "前", Meaning: "front/before", OnReading: "ぜん", KunReading: "まえ", ExampleWord: "午前", ExampleReading: "ごぜん", ExampleMeaning: "morning", Difficulty: 2},
	{Character: "後", Meaning: "back/after", OnReading: "ご", KunReading: "うしろ", ExampleWord: "午後", ExampleReading: "ごご", ExampleMeaning: "afternoon", Difficulty: 2},
	{Character: "右", Meaning: "right", OnReading: "う", KunReading: "みぎ", ExampleWord: "右手", ExampleReading: "みぎて", ExampleMeaning: "right hand", Difficulty: 2},
	{Character: "左", Meaning: "left", OnReading: "さ", KunReading: "ひだり", ExampleWord: "左手", ExampleReading: "ひだりて", ExampleMeaning: "left hand", Difficulty: 2},
	{Character: "国", Meaning: "country", OnReading: "こく", KunReading: "くに", ExampleWord: "外国", ExampleReading: "がいこく", ExampleMeaning: "foreign country", Difficulty: 2},
	{Character: "家", Meaning: "house/home", OnReading: "か", KunReading: "いえ", ExampleWord: "家族", ExampleReading: "かぞく", ExampleMeaning: "family", Difficulty: 1},
	{Character: "学", Meaning: "study/learn", OnReading: "がく", KunReading: "まな", ExampleWord: "学校", ExampleReading: "がっこう", ExampleMeaning: "school", Difficulty: 1},
	{Character: "校", Meaning: "school", OnReading: "こう", KunReading: "", ExampleWord: "学校", ExampleReading: "がっこう", ExampleMeaning: "school", Difficulty: 1},
	{Character: "先", Meaning: "previous/ahead", OnReading: "せん", KunReading: "さき", ExampleWord: "先生", ExampleReading: "せんせい", ExampleMeaning: "teacher", Difficulty: 2},
	{Character: "生", Meaning: "life/birth", OnReading: "せい", KunReading: "い", ExampleWord: "学生", ExampleReading: "がくせい", ExampleMeaning: "student", Difficulty: 1},
	{Character: "東", Meaning: "east", OnReading: "とう", KunReading: "ひがし", ExampleWord: "東京", ExampleReading: "とうきょう", ExampleMeaning: "Tokyo", Difficulty: 3},
	{Character: "西", Meaning: "west", OnReading: "せい", KunReading: "にし", ExampleWord: "関西", ExampleReading: "かんさい", ExampleMeaning: "Kansai region", Difficulty: 3},
	{Character: "南", Meaning: "south", OnReading: "なん", KunReading: "みなみ", ExampleWord: "南口", ExampleReading: "みなみぐち", ExampleMeaning: "south exit", Difficulty: 3},
	{Character: "北", Meaning: "north", OnReading: "ほく", KunReading: "きた", ExampleWord: "北海道", ExampleReading: "ほっかいどう", ExampleMeaning: "Hokkaido", Difficulty: 3},
	{Character: "行", Meaning: "go", OnReading: "こう", KunReading: "い", ExampleWord: "行く", ExampleReading: "いく", ExampleMeaning: "to go", Difficulty: 2},
	{Character: "来", Meaning: "come", OnReading: "らい", KunReading: "く", ExampleWord: "来る", ExampleReading: "くる", ExampleMeaning: "to come", Difficulty: 2},
	{Character: "見", Meaning: "see/look", OnReading: "けん", KunReading: "み", ExampleWord: "見る", ExampleReading: "みる", ExampleMeaning: "to see", Difficulty: 1},
	{Character: "聞", Meaning: "hear/listen", OnReading: "ぶん", KunReading: "き", ExampleWord: "聞く", ExampleReading: "きく", ExampleMeaning: "to hear", Difficulty: 2},
	{Character: "話", Meaning: "talk/story", OnReading: "わ", KunReading: "はなし", ExampleWord: "話す", ExampleReading: "はなす", ExampleMeaning: "to speak", Difficulty: 2},
	{Character: "読", Meaning: "read", OnReading: "どく", KunReading: "よ", ExampleWord: "読む", ExampleReading: "よむ", ExampleMeaning: "to read", Difficulty: 2},
	{Character: "書", Meaning: "write", OnReading: "しょ", KunReading: "か", ExampleWord: "書く", ExampleReading: "かく", ExampleMeaning: "to write", Difficulty: 2},
	{Character: "食", Meaning: "eat/food", OnReading: "しょく", KunReading: "た", ExampleWord: "食べる", ExampleReading: "たべる", ExampleMeaning: "to eat", Difficulty: 1},
	{Character: "飲", Meaning: "drink", OnReading: "いん", KunReading: "の", ExampleWord: "飲む", ExampleReading: "のむ", ExampleMeaning: "to drink", Difficulty: 2},
	{Character: "車", Meaning: "car", OnReading: "しゃ", KunReading: "くるま", ExampleWord: "電車", ExampleReading: "でんしゃ", ExampleMeaning: "train", Difficulty: 1},
	{Character: "電", Meaning: "electricity", OnReading: "でん", KunReading: "", ExampleWord: "電話", ExampleReading: "でんわ", ExampleMeaning: "telephone", Difficulty: 2},
	{Character: "気", Meaning: "spirit/feeling", OnReading: "き", KunReading: "", ExampleWord: "元気", ExampleReading: "げんき", ExampleMeaning: "healthy", Difficulty: 2},
	{Character: "元", Meaning: "origin/source", OnReading: "げん", KunReading: "もと", ExampleWord: "元気", ExampleReading: "げんき", ExampleMeaning: "healthy", Difficulty: 2},
	{Character: "円", Meaning: "yen/circle", OnReading: "えん", KunReading: "", ExampleWord: "百円", ExampleReading: "ひゃくえん", ExampleMeaning: "100 yen", Difficulty: 1},
	{Character: "百", Meaning: "hundred", OnReading: "ひゃく", KunReading: "", ExampleWord: "百円", ExampleReading: "ひゃくえん", ExampleMeaning: "100 yen", Difficulty: 2},
	{Character: "千", Meaning: "thousand", OnReading: "せん", KunReading: "", ExampleWord: "千円", ExampleReading: "せんえん", ExampleMeaning: "1000 yen", Difficulty: 2},
	{Character: "万", Meaning: "ten thousand", OnReading: "まん", KunReading: "", ExampleWord: "一万円", ExampleReading: "いちまんえん", ExampleMeaning: "10,000 yen", Difficulty: 3},
	{Character: "白", Meaning: "white", OnReading: "はく", KunReading: "しろ", ExampleWord: "白い", ExampleReading: "しろい", ExampleMeaning: "white", Difficulty: 2},
	{Character: "黒", Meaning: "black", OnReading: "こく", KunReading: "くろ", ExampleWord: "黒い", ExampleReading: "くろい", ExampleMeaning: "black", Difficulty: 2},
	{Character: "赤", Meaning: "red", OnReading: "せき", KunReading: "あか", ExampleWord: "赤い", ExampleReading: "あかい", ExampleMeaning: "red", Difficulty: 2},
	{Character: "青", Meaning: "blue", OnReading: "せい", KunReading: "あお", ExampleWord: "青い", ExampleReading: "あおい", ExampleMeaning: "blue", Difficulty: 2},
	{Character: "天", Meaning: "heaven/sky", OnReading: "てん", KunReading: "", ExampleWord: "天気", ExampleReading: "てんき", ExampleMeaning: "weather", Difficulty: 3},
	{Character: "雨", Meaning: "rain", OnReading: "う", KunReading: "あめ", ExampleWord: "雨天", ExampleReading: "うてん", ExampleMeaning: "rainy weather", Difficulty: 2},
	{Character: "風", Meaning: "wind", OnReading: "ふう", KunReading: "かぜ", ExampleWord: "台風", ExampleReading: "たいふう", ExampleMeaning: "typhoon", Difficulty: 3},
	{Character: "手", Meaning: "hand", OnReading: "しゅ", KunReading: "て", ExampleWord: "手紙", ExampleReading: "てがみ", ExampleMeaning: "letter", Difficulty: 1},
	{Character: "足", Meaning: "foot/leg", OnReading: "そく", KunReading: "あし", ExampleWord: "足音", ExampleReading: "あしおと", ExampleMeaning: "footstep", Difficulty: 2},
	{Character: "目", Meaning: "eye", OnReading: "もく", KunReading: "め", ExampleWord: "目玉", ExampleReading: "めだま", ExampleMeaning: "eyeball", Difficulty: 2},
	{Character: "口", Meaning: "mouth", OnReading: "こう", KunReading: "くち", ExampleWord: "入口", ExampleReading: "いりぐち", ExampleMeaning: "entrance", Difficulty: 1},
	{Character: "耳", Meaning: "ear", OnReading: "じ", KunReading: "みみ", ExampleWord: "耳鼻科", ExampleReading: "じびか", ExampleMeaning: "ENT clinic", Difficulty: 3},
	{Character: "出", Meaning: "exit/come out", OnReading: "しゅつ", KunReading: "で", ExampleWord: "出る", ExampleReading: "でる", ExampleMeaning: "to go out", Difficulty: 2},
	{Character: "入", Meaning: "enter", OnReading: "にゅう", KunReading: "はい", ExampleWord: "入る", ExampleReading: "はいる", ExampleMeaning: "to enter", Difficulty: 1},
	{Character: "立", Meaning: "stand", OnReading: "りつ", KunReading: "た", ExampleWord: "立つ", ExampleReading: "たつ", ExampleMeaning: "to stand", Difficulty: 2},
	{Character: "休", Meaning: "rest", OnReading: "きゅう", KunReading: "やす", ExampleWord: "休む", ExampleReading: "やすむ", ExampleMeaning: "to rest", Difficulty: 2},
	{Character: "何", Meaning: "what", OnReading: "なに", KunReading: "なん", ExampleWord: "何時", ExampleReading: "なんじ", ExampleMeaning: "what time", Difficulty: 1},
	{Character: "名", Meaning: "name", OnReading: "めい", KunReading: "な", ExampleWord: "名前", ExampleReading: "なまえ", ExampleMeaning: "name", Difficulty: 1},
	{Character: "今", Meaning: "now", OnReading: "こん", KunReading: "いま", ExampleWord: "今日", ExampleReading: "きょう", ExampleMeaning: "today", Difficulty: 1},
	{Character: "新", Meaning: "new", OnReading: "しん", KunReading: "あたら", ExampleWord: "新しい", ExampleReading: "あたらしい", ExampleMeaning: "new", Difficulty: 2},
	{Character: "古", Meaning: "old", OnReading: "こ", KunReading: "ふる", ExampleWord: "古い", ExampleReading: "ふるい", ExampleMeaning: "old", Difficulty: 2},
}

// SeedN5 fills an empty kanji table with the built-in N5 deck and returns the number of inserted rows
func SeedN5(ctx context.Context, repo *KanjiRepository, log *slog.Logger) (int, error) {
	n, err := repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	items := make([]models.Kanji, len(n5Kanji))
	copy(items, n5Kanji)
	if err := repo.CreateBatch(ctx, items); err != nil {
		return 0, fmt.Errorf("failed to seed N5 kanji: %w", err)
	}

	if log != nil {
		log.Info("seeded N5 kanji", "count", len(items))
	}
	return len(items), nil
}
