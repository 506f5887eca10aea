package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/set-night/intakebot/internal/catalog"
	"github.com/set-night/intakebot/internal/domain"
)

const testEscalation = "お電話ください。"

type fakeStorage struct {
	mu          sync.Mutex
	members     map[string]domain.Member
	records     []domain.Record
	lookupErr   error
	registerErr error
	saveErr     error
	registered  int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{members: map[string]domain.Member{}}
}

func (f *fakeStorage) IsRegistered(_ context.Context, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	_, ok := f.members[userID]
	return ok, nil
}

func (f *fakeStorage) GetMember(_ context.Context, userID string) (*domain.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	m, ok := f.members[userID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (f *fakeStorage) RegisterMember(_ context.Context, m domain.Member) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.registerErr != nil {
		return f.registerErr
	}
	f.members[m.UserID] = m
	f.registered++
	return nil
}

func (f *fakeStorage) SaveRecord(_ context.Context, _ string, rec domain.Record) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.records = append(f.records, rec)
	return rec.StorageTitle(), nil
}

type recordingNotifier struct {
	mu          sync.Mutex
	escalations []string
	records     []string
}

func (n *recordingNotifier) NotifyRegistration(string, domain.Member) {}

func (n *recordingNotifier) NotifyRecord(_, title string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.records = append(n.records, title)
}

func (n *recordingNotifier) NotifyEscalation(_, reason string, _ error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.escalations = append(n.escalations, reason)
}

var errBoom = errors.New("boom")

func testCatalog() *catalog.Catalog {
	cat := &catalog.Catalog{
		Register: []domain.Question{
			{Field: domain.FieldOffice, Prompt: "事業所名は？"},
			{Field: domain.FieldAddress, Prompt: "住所は？"},
			{Field: domain.FieldRole, Prompt: "役職は？"},
			{Field: domain.FieldName, Prompt: "お名前は？"},
		},
	}
	for i, s := range domain.ConsultSchema {
		for j, f := range s.Fields {
			cat.Consult = append(cat.Consult, domain.Question{
				Field:  f.Field,
				Prompt: "Q" + strconv.Itoa(i) + "-" + strconv.Itoa(j),
			})
		}
	}
	return cat
}

type harness struct {
	t        *testing.T
	dialogue *Dialogue
	store    *MemoryStore
	storage  *fakeStorage
	notifier *recordingNotifier
	cat      *catalog.Catalog
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cat := testCatalog()
	store := NewMemoryStore()
	storage := newFakeStorage()
	notifier := &recordingNotifier{}
	d := NewDialogue(DialogueDeps{
		Catalog:           cat,
		Store:             store,
		Members:           storage,
		Records:           storage,
		Notifier:          notifier,
		MaxConfirmRetries: 3,
		EscalationMessage: testEscalation,
	})
	return &harness{t: t, dialogue: d, store: store, storage: storage, notifier: notifier, cat: cat}
}

func (h *harness) send(userID, text string) []Reply {
	h.t.Helper()
	return h.dialogue.Handle(context.Background(), userID, text)
}

func (h *harness) session(userID string) *domain.Session {
	h.t.Helper()
	s, ok := h.store.Get(context.Background(), userID)
	if !ok {
		return nil
	}
	return s
}

// register walks a user through registration up to the preview.
func (h *harness) register(userID string, answers ...string) []Reply {
	h.t.Helper()
	h.send(userID, "登録する")
	var last []Reply
	for _, a := range answers {
		last = h.send(userID, a)
	}
	return last
}

// consultAnswers returns one non-empty answer per consultation field.
func (h *harness) consultAnswers() []string {
	out := make([]string, len(h.cat.Consult))
	for i, q := range h.cat.Consult {
		out[i] = "v-" + q.Field
	}
	return out
}

// toConfirmConsult brings a registered user to the consultation preview.
func (h *harness) toConfirmConsult(userID string, answers []string) []Reply {
	h.t.Helper()
	h.storage.members[userID] = domain.Member{UserID: userID, Name: "山田"}
	h.send(userID, "依頼する")
	h.send(userID, "はい")
	var last []Reply
	for _, a := range answers {
		last = h.send(userID, a)
	}
	return last
}

func texts(replies []Reply) []string {
	out := make([]string, len(replies))
	for i, r := range replies {
		out[i] = r.Text
	}
	return out
}
