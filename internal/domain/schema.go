package domain

// Section names of the consultation record. Storage keys on these.
const (
	SectionPatient      = "患者情報"
	SectionMedical      = "医療情報"
	SectionCoordination = "連絡・調整"
)

// LabelPatientName is the label of the patient's name entry.
const LabelPatientName = "氏名"

// SchemaField ties a consultation field identifier to its display label.
type SchemaField struct {
	Field string
	Label string
}

// SchemaSection lists the fields stored under one section.
type SchemaSection struct {
	Name   string
	Fields []SchemaField
}

// ConsultSchema partitions the 27 consultation fields into the stored sections.
var ConsultSchema = []SchemaSection{
	{
		Name: SectionPatient,
		Fields: []SchemaField{
			{"furigana", "ふりがな"},
			{"patient_name", LabelPatientName},
			{"gender", "性別"},
			{"dob", "生年月日"},
			{"age", "年齢"},
			{"address", "住所（施設名含む）"},
			{"postal_code", "郵便番号"},
			{"home_phone", "電話（自宅）"},
			{"mobile_phone", "電話（携帯）"},
			{"emergency_contact", "緊急連絡先電話番号"},
			{"parking", "駐車場"},
			{"residence_type", "居住形態"},
			{"care_level", "要介護度"},
		},
	},
	{
		Name: SectionMedical,
		Fields: []SchemaField{
			{"medical_history", "既往歴"},
			{"current_condition", "現病歴"},
			{"infection_status", "感染症"},
			{"internal_medicine_hospital", "内科主治医_病院名"},
			{"internal_medicine_doctor", "内科主治医_医師名"},
			{"communication_ability", "意思疎通"},
			{"swallowing_function", "嚥下機能"},
			{"medication_status", "服薬状況"},
			{"onset_date", "発症日・発症年"},
		},
	},
	{
		Name: SectionCoordination,
		Fields: []SchemaField{
			{"preferred_visit_time", "希望訪問曜日・時間帯"},
			{"accompanying_person", "同席者"},
			{"key_person_name", "キーパーソン_氏名"},
			{"key_person_relationship", "キーパーソン_続柄"},
			{"key_person_address", "キーパーソン_住所"},
		},
	},
}

// ConsultLabels returns the field -> label dictionary.
func ConsultLabels() map[string]string {
	labels := make(map[string]string)
	for _, s := range ConsultSchema {
		for _, f := range s.Fields {
			labels[f.Field] = f.Label
		}
	}
	return labels
}
