package telegram

import "github.com/go-telegram/bot/models"

// ReplyKeyboard offers choices as a single row of one-time quick replies.
// It returns nil when there is nothing to offer.
func ReplyKeyboard(choices []string) *models.ReplyKeyboardMarkup {
	if len(choices) == 0 {
		return nil
	}
	row := make([]models.KeyboardButton, len(choices))
	for i, c := range choices {
		row[i] = models.KeyboardButton{Text: c}
	}
	return &models.ReplyKeyboardMarkup{
		Keyboard:        [][]models.KeyboardButton{row},
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

// RemoveKeyboard hides a previously shown reply keyboard.
func RemoveKeyboard() *models.ReplyKeyboardRemove {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}
