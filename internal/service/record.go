package service

import "github.com/set-night/intakebot/internal/domain"

// BuildRecord partitions consultation answers into the stored sections.
// Missing fields are stored as empty strings.
func BuildRecord(answers map[string]string) domain.Record {
	rec := domain.Record{Sections: make([]domain.Section, 0, len(domain.ConsultSchema))}
	for _, s := range domain.ConsultSchema {
		sec := domain.Section{Name: s.Name, Entries: make([]domain.Entry, 0, len(s.Fields))}
		for _, f := range s.Fields {
			sec.Entries = append(sec.Entries, domain.Entry{Label: f.Label, Value: answers[f.Field]})
		}
		rec.Sections = append(rec.Sections, sec)
	}
	return rec
}
