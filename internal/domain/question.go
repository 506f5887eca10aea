package domain

// Question maps a field identifier to the prompt asked for it.
type Question struct {
	Field  string
	Prompt string
}
