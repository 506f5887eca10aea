package service

import (
	"strings"

	"golang.org/x/text/width"
)

// Intent is a flow command recognized in free text.
type Intent int

const (
	IntentNone Intent = iota
	IntentCancel
	IntentStartRegister
	IntentStartConsult
)

func (i Intent) String() string {
	switch i {
	case IntentCancel:
		return "cancel"
	case IntentStartRegister:
		return "start_register"
	case IntentStartConsult:
		return "start_consult"
	default:
		return "none"
	}
}

// Answer is the ternary classification of a confirm reply.
type Answer int

const (
	AnswerUnrecognized Answer = iota
	AnswerYes
	AnswerNo
)

// commandKeywords is checked in priority order: cancel, registration, consultation.
var commandKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentCancel, []string{"キャンセル", "中止", "やめる", "/cancel"}},
	{IntentStartRegister, []string{"登録する", "登録したい", "/register"}},
	{IntentStartConsult, []string{"依頼する", "依頼したい", "相談したい", "/consult"}},
}

var answerKeywords = map[string]Answer{
	"はい":  AnswerYes,
	"ok":  AnswerYes,
	"yes": AnswerYes,
	"はい。": AnswerYes,
	"うん":  AnswerYes,
	"いいえ": AnswerNo,
	"no":  AnswerNo,
	"いや":  AnswerNo,
	"変更":  AnswerNo,
	"修正":  AnswerNo,
}

// normalize folds full-width ASCII and half-width katakana so both spellings match.
func normalize(text string) string {
	return width.Fold.String(strings.TrimSpace(text))
}

// ClassifyIntent maps text to a flow command, or IntentNone.
func ClassifyIntent(text string) Intent {
	t := normalize(text)
	for _, c := range commandKeywords {
		for _, k := range c.keywords {
			if t == k {
				return c.intent
			}
		}
	}
	return IntentNone
}

// ClassifyAnswer maps a confirm reply to yes, no, or unrecognized. Case-insensitive.
func ClassifyAnswer(text string) Answer {
	return answerKeywords[strings.ToLower(normalize(text))]
}
