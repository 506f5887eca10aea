package domain

import "strconv"

// Entry is a labeled value within a record section.
type Entry struct {
	Label string
	Value string
}

// Section groups entries of one semantic category.
type Section struct {
	Name    string
	Entries []Entry
}

// Record is the sectioned consultation answer set handed to persistence.
type Record struct {
	Sections []Section
}

// Value returns the value stored under section and label.
func (r Record) Value(section, label string) (string, bool) {
	for _, s := range r.Sections {
		if s.Name != section {
			continue
		}
		for _, e := range s.Entries {
			if e.Label == label {
				return e.Value, true
			}
		}
	}
	return "", false
}

// Map returns the record as section -> label -> value.
func (r Record) Map() map[string]map[string]string {
	out := make(map[string]map[string]string, len(r.Sections))
	for _, s := range r.Sections {
		m := make(map[string]string, len(s.Entries))
		for _, e := range s.Entries {
			m[e.Label] = e.Value
		}
		out[s.Name] = m
	}
	return out
}

// PatientName returns the patient's name entry.
func (r Record) PatientName() string {
	v, _ := r.Value(SectionPatient, LabelPatientName)
	return v
}

// StorageTitle is the storage location name derived from the patient's name.
func (r Record) StorageTitle() string {
	if name := r.PatientName(); name != "" {
		return name
	}
	return UnnamedTitle
}

// UnnamedTitle is used when the patient's name was left empty.
const UnnamedTitle = "無名"

// MaxTitleAttempts bounds the search for a free storage title.
const MaxTitleAttempts = 100

// TitleCandidate returns the n-th candidate for base: base itself, then "base (2)", "base (3)"...
func TitleCandidate(base string, n int) string {
	if n <= 1 {
		return base
	}
	return base + " (" + strconv.Itoa(n) + ")"
}
