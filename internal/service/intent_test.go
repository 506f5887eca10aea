package service

import "testing"

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		in   string
		want Intent
	}{
		{"キャンセル", IntentCancel},
		{"中止", IntentCancel},
		{" やめる ", IntentCancel},
		{"ｷｬﾝｾﾙ", IntentCancel},
		{"/cancel", IntentCancel},
		{"登録する", IntentStartRegister},
		{"登録したい", IntentStartRegister},
		{"依頼する", IntentStartConsult},
		{"依頼したい", IntentStartConsult},
		{"相談したい", IntentStartConsult},
		{"登録", IntentNone},
		{"こんにちは", IntentNone},
		{"", IntentNone},
	}

	for _, tt := range tests {
		if got := ClassifyIntent(tt.in); got != tt.want {
			t.Errorf("ClassifyIntent(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClassifyAnswer(t *testing.T) {
	tests := []struct {
		in   string
		want Answer
	}{
		{"はい", AnswerYes},
		{"はい。", AnswerYes},
		{"うん", AnswerYes},
		{"OK", AnswerYes},
		{"Yes", AnswerYes},
		{"ＯＫ", AnswerYes},
		{"いいえ", AnswerNo},
		{"NO", AnswerNo},
		{"いや", AnswerNo},
		{"変更", AnswerNo},
		{"修正", AnswerNo},
		{"たぶん", AnswerUnrecognized},
		{"", AnswerUnrecognized},
	}

	for _, tt := range tests {
		if got := ClassifyAnswer(tt.in); got != tt.want {
			t.Errorf("ClassifyAnswer(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
