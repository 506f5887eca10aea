package service

import "fmt"

const (
	msgCancelled        = "中止しました。"
	msgRegisterFirst    = "まず、依頼者情報の登録をお願いします。"
	msgRegistered       = "✅ 登録が完了しました。次に患者さま情報を伺います。"
	msgRegisterRestart  = "登録情報を修正します。はじめから伺います。"
	msgAnswerYesNo      = "『はい』または『いいえ』でお答えください。"
	msgEditInstructions = "修正したい項目と内容を『項目名 半角スペース 値』の形式で送ってください。\n例）氏名 佐藤花子"
	msgEditFormat       = "『項目名 半角スペース 値』の形式で入力してください。"
	msgMenu             = "次のいずれかを送ってください：\n" +
		"・『依頼する』… 登録情報を確認→患者情報とご相談内容をお伺いします\n" +
		"・『登録する』… 依頼者情報を登録/修正します\n" +
		"・『キャンセル』… 途中で中止します"
)

// Choices offered as reply keyboards.
var (
	yesNoChoices = []string{"はい", "いいえ"}
	menuChoices  = []string{"依頼する", "登録する", "キャンセル"}
)

func msgEdited(key, value string) string {
	return fmt.Sprintf("『%s』を『%s』に修正しました。", key, value)
}

func msgFieldNotFound(key string) string {
	return fmt.Sprintf("『%s』という項目が見つかりませんでした。もう一度お試しください。", key)
}

func msgCompleted(title string) string {
	return fmt.Sprintf("✅ ありがとうございました。内容を記録しました。\n→ シート名：%s", title)
}

// MenuReply is the idle menu with its quick replies.
func MenuReply() Reply {
	return Reply{Text: msgMenu, Choices: menuChoices}
}
