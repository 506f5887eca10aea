package service

import (
	"strings"

	"github.com/set-night/intakebot/internal/domain"
)

const (
	confirmRegisterPrompt = "この内容で登録します。よろしいですか？（はい / いいえ）"
	confirmConsultPrompt  = "この内容でよろしいですか？（はい / いいえ）"
	confirmMemberPrompt   = "この登録情報でよろしいですか？（はい / いいえ）"
)

// Formatter renders answer previews. It is a pure function of its inputs.
type Formatter struct {
	consult []domain.Question
	labels  map[string]string
}

// NewFormatter builds a formatter over the consultation catalog and label dictionary.
func NewFormatter(consult []domain.Question, labels map[string]string) *Formatter {
	return &Formatter{consult: consult, labels: labels}
}

// Label returns the display label of a field, or the field itself when unknown.
func (f *Formatter) Label(field string) string {
	if l, ok := f.labels[field]; ok {
		return l
	}
	return field
}

// RegisterPreview renders the fixed four-field registration block.
func (f *Formatter) RegisterPreview(answers map[string]string) string {
	var b strings.Builder
	b.WriteString("📋【登録者情報の確認】\n")
	b.WriteString("・氏名：" + answers[domain.FieldName] + "\n")
	b.WriteString("・事業所名：" + answers[domain.FieldOffice] + "\n")
	b.WriteString("・住所：" + answers[domain.FieldAddress] + "\n")
	b.WriteString("・役職：" + answers[domain.FieldRole] + "\n\n")
	b.WriteString(confirmRegisterPrompt)
	return b.String()
}

// ConsultPreview lists non-empty answers in catalog order.
func (f *Formatter) ConsultPreview(answers map[string]string) string {
	lines := []string{"🧑‍⚕️【患者さま情報の確認】"}
	for _, q := range f.consult {
		val := answers[q.Field]
		if val == "" {
			continue
		}
		lines = append(lines, "・"+f.Label(q.Field)+"："+val)
	}
	lines = append(lines, "\n"+confirmConsultPrompt)
	return strings.Join(lines, "\n")
}

// MemberInfo renders a stored requester for re-confirmation. A nil member renders empty fields.
func (f *Formatter) MemberInfo(m *domain.Member) string {
	if m == nil {
		m = &domain.Member{}
	}
	var b strings.Builder
	b.WriteString("📋【登録情報】\n")
	b.WriteString("・氏名：" + m.Name + "\n")
	b.WriteString("・事業所名：" + m.Office + "\n")
	b.WriteString("・住所：" + m.Address + "\n")
	b.WriteString("・役職：" + m.Role + "\n\n")
	b.WriteString(confirmMemberPrompt)
	return b.String()
}

// FieldForLabel resolves an edit key back to a field identifier.
// Unknown labels are returned unchanged so raw identifiers work too.
func (f *Formatter) FieldForLabel(key string) string {
	for field, label := range f.labels {
		if label == key {
			return field
		}
	}
	return key
}
