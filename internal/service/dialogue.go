package service

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/set-night/intakebot/internal/catalog"
	"github.com/set-night/intakebot/internal/domain"
	"github.com/set-night/intakebot/internal/metrics"
)

// Reply is one outbound message. Choices, when set, are offered as quick replies.
type Reply struct {
	Text    string
	Choices []string
}

// DialogueDeps contains everything required to construct a Dialogue.
type DialogueDeps struct {
	Catalog           *catalog.Catalog
	Store             SessionStore
	Members           domain.MemberStore
	Records           domain.RecordStore
	Notifier          domain.Notifier
	Metrics           *metrics.Metrics
	MaxConfirmRetries int
	EscalationMessage string
}

// Dialogue drives users through registration and consultation.
type Dialogue struct {
	catalog    *catalog.Catalog
	formatter  *Formatter
	store      SessionStore
	locks      *KeyedMutex
	members    domain.MemberStore
	records    domain.RecordStore
	notifier   domain.Notifier
	metrics    *metrics.Metrics
	maxRetries int
	escalation string
}

func NewDialogue(deps DialogueDeps) *Dialogue {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &Dialogue{
		catalog:    deps.Catalog,
		formatter:  NewFormatter(deps.Catalog.Consult, domain.ConsultLabels()),
		store:      deps.Store,
		locks:      NewKeyedMutex(),
		members:    deps.Members,
		records:    deps.Records,
		notifier:   notifier,
		metrics:    deps.Metrics,
		maxRetries: deps.MaxConfirmRetries,
		escalation: deps.EscalationMessage,
	}
}

// Handle consumes one inbound message and returns the replies to send.
// It never fails: any error ends in the escalation message.
func (d *Dialogue) Handle(ctx context.Context, userID, text string) (replies []Reply) {
	text = strings.TrimSpace(text)

	unlock := d.locks.Lock(userID)
	defer unlock()

	d.metrics.Message()

	sess, ok := d.store.Get(ctx, userID)
	if !ok {
		sess = domain.NewSession()
		d.store.Put(ctx, userID, sess)
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered in dialogue",
				"panic", r,
				"user_id", userID,
				"stack", string(debug.Stack()),
			)
			replies = d.internalError(userID, fmt.Errorf("panic: %v", r))
		}
	}()

	var (
		next *domain.Session
		err  error
	)
	next, replies, err = d.Step(ctx, userID, sess.Clone(), text)
	if err != nil {
		slog.Error("handle message",
			"error", err,
			"user_id", userID,
			"mode", sess.Mode.String(),
			"phase", sess.Phase.String(),
		)
		return d.internalError(userID, err)
	}

	if next == nil {
		d.store.Delete(ctx, userID)
	} else {
		d.store.Put(ctx, userID, next)
	}
	return replies
}

// Step is the transition function. It mutates and returns sess, or returns nil
// when the session must be deleted. A returned error leaves the stored session
// to the caller.
func (d *Dialogue) Step(ctx context.Context, userID string, sess *domain.Session, text string) (*domain.Session, []Reply, error) {
	intent := ClassifyIntent(text)
	if intent != IntentNone {
		d.metrics.Intent(intent.String())
	}

	switch intent {
	case IntentCancel:
		d.metrics.SessionEnded(metrics.ReasonCancelled)
		return nil, []Reply{{Text: msgCancelled}}, nil
	case IntentStartRegister:
		sess.Reset(domain.ModeRegistering, domain.PhaseInput)
		return sess, []Reply{prompt(d.catalog.Register[0])}, nil
	case IntentStartConsult:
		return d.startConsult(ctx, userID, sess)
	}

	switch {
	case sess.Mode == domain.ModeRegistering && sess.Phase == domain.PhaseInput:
		return d.collect(sess, text, d.catalog.Register, domain.PhaseConfirmRegister, d.formatter.RegisterPreview)
	case sess.Phase == domain.PhaseConfirmRegister:
		return d.confirm(ctx, userID, sess, text, d.registerConfirm())
	case sess.Mode == domain.ModeConsulting && sess.Phase == domain.PhaseInput:
		return d.collect(sess, text, d.catalog.Consult, domain.PhaseConfirmConsult, d.formatter.ConsultPreview)
	case sess.Phase == domain.PhaseConfirmConsult:
		return d.confirm(ctx, userID, sess, text, d.consultConfirm())
	case sess.Phase == domain.PhaseEditConsult:
		return d.edit(sess, text)
	}

	return sess, []Reply{MenuReply()}, nil
}

func (d *Dialogue) startConsult(ctx context.Context, userID string, sess *domain.Session) (*domain.Session, []Reply, error) {
	registered, err := d.members.IsRegistered(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrMemberLookup, err)
	}
	if !registered {
		sess.Reset(domain.ModeRegistering, domain.PhaseInput)
		return sess, []Reply{{Text: msgRegisterFirst}, prompt(d.catalog.Register[0])}, nil
	}

	member, err := d.members.GetMember(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", domain.ErrMemberLookup, err)
	}

	// Answers stay empty so a "yes" skips the registration write.
	sess.Reset(domain.ModeRegistering, domain.PhaseConfirmRegister)
	return sess, []Reply{{Text: d.formatter.MemberInfo(member), Choices: yesNoChoices}}, nil
}

func (d *Dialogue) collect(sess *domain.Session, text string, questions []domain.Question, done domain.Phase, preview func(map[string]string) string) (*domain.Session, []Reply, error) {
	if sess.Step < 0 || sess.Step >= len(questions) {
		return nil, nil, fmt.Errorf("step %d out of range for %d questions", sess.Step, len(questions))
	}

	sess.Answers[questions[sess.Step].Field] = text

	if sess.Step+1 < len(questions) {
		sess.Step++
		return sess, []Reply{prompt(questions[sess.Step])}, nil
	}

	sess.Phase = done
	sess.Retry = 0
	return sess, []Reply{{Text: preview(sess.Answers), Choices: yesNoChoices}}, nil
}

// confirmKind carries the side effects that differ between the two confirm phases.
type confirmKind struct {
	onYes func(ctx context.Context, userID string, sess *domain.Session) (*domain.Session, []Reply, error)
	onNo  func(sess *domain.Session) (*domain.Session, []Reply, error)
}

func (d *Dialogue) confirm(ctx context.Context, userID string, sess *domain.Session, text string, kind confirmKind) (*domain.Session, []Reply, error) {
	switch ClassifyAnswer(text) {
	case AnswerYes:
		return kind.onYes(ctx, userID, sess)
	case AnswerNo:
		if d.bumpRetry(sess) {
			return d.escalate(userID, metrics.ReasonRetryExhausted, nil)
		}
		return kind.onNo(sess)
	default:
		if d.bumpRetry(sess) {
			return d.escalate(userID, metrics.ReasonRetryExhausted, nil)
		}
		return sess, []Reply{{Text: msgAnswerYesNo, Choices: yesNoChoices}}, nil
	}
}

// bumpRetry counts a rejected or unrecognized confirm reply and reports exhaustion.
func (d *Dialogue) bumpRetry(sess *domain.Session) bool {
	sess.Retry++
	return sess.Retry >= d.maxRetries
}

func (d *Dialogue) registerConfirm() confirmKind {
	return confirmKind{
		onYes: func(ctx context.Context, userID string, sess *domain.Session) (*domain.Session, []Reply, error) {
			var replies []Reply
			if len(sess.Answers) > 0 {
				m := domain.MemberFromAnswers(userID, sess.Answers)
				if err := d.members.RegisterMember(ctx, m); err != nil {
					return d.escalate(userID, metrics.ReasonRegisterFailed, fmt.Errorf("%w: %w", domain.ErrRegisterFailed, err))
				}
				d.metrics.Registration()
				d.notifier.NotifyRegistration(userID, m)
				replies = append(replies, Reply{Text: msgRegistered})
			}
			sess.Reset(domain.ModeConsulting, domain.PhaseInput)
			return sess, append(replies, prompt(d.catalog.Consult[0])), nil
		},
		onNo: func(sess *domain.Session) (*domain.Session, []Reply, error) {
			sess.Mode = domain.ModeRegistering
			sess.Phase = domain.PhaseInput
			sess.Step = 0
			sess.Answers = map[string]string{}
			return sess, []Reply{{Text: msgRegisterRestart}, prompt(d.catalog.Register[0])}, nil
		},
	}
}

func (d *Dialogue) consultConfirm() confirmKind {
	return confirmKind{
		onYes: func(ctx context.Context, userID string, sess *domain.Session) (*domain.Session, []Reply, error) {
			rec := BuildRecord(sess.Answers)
			title, err := d.records.SaveRecord(ctx, userID, rec)
			if err != nil {
				return d.escalate(userID, metrics.ReasonPersistFailed, fmt.Errorf("%w: %w", domain.ErrPersistFailed, err))
			}
			d.metrics.RecordSaved()
			d.metrics.SessionEnded(metrics.ReasonCompleted)
			d.notifier.NotifyRecord(userID, title)
			return nil, []Reply{{Text: msgCompleted(title)}}, nil
		},
		onNo: func(sess *domain.Session) (*domain.Session, []Reply, error) {
			sess.Phase = domain.PhaseEditConsult
			return sess, []Reply{{Text: msgEditInstructions}}, nil
		},
	}
}

// edit applies "<label> <value>" to an answered consultation field.
func (d *Dialogue) edit(sess *domain.Session, text string) (*domain.Session, []Reply, error) {
	idx := strings.IndexFunc(text, unicode.IsSpace)
	if idx < 0 {
		return sess, []Reply{{Text: msgEditFormat}}, nil
	}
	_, size := utf8.DecodeRuneInString(text[idx:])
	key := text[:idx]
	value := strings.TrimSpace(text[idx+size:])

	field := d.formatter.FieldForLabel(key)
	if _, ok := sess.Answers[field]; !ok {
		return sess, []Reply{{Text: msgFieldNotFound(key)}}, nil
	}

	sess.Answers[field] = value
	sess.Phase = domain.PhaseConfirmConsult
	sess.Retry = 0
	return sess, []Reply{
		{Text: msgEdited(key, value)},
		{Text: d.formatter.ConsultPreview(sess.Answers), Choices: yesNoChoices},
	}, nil
}

// escalate ends the session with the human-contact message.
func (d *Dialogue) escalate(userID, reason string, err error) (*domain.Session, []Reply, error) {
	if err != nil {
		slog.Error("dialogue escalated", "error", err, "user_id", userID, "reason", reason)
	} else {
		slog.Warn("dialogue escalated", "user_id", userID, "reason", reason)
	}
	d.metrics.Escalation(reason)
	d.metrics.SessionEnded(reason)
	d.notifier.NotifyEscalation(userID, reason, err)
	return nil, []Reply{{Text: d.escalation}}, nil
}

// internalError answers an unexpected failure without touching the stored session.
func (d *Dialogue) internalError(userID string, err error) []Reply {
	d.metrics.Escalation(metrics.ReasonInternalError)
	d.notifier.NotifyEscalation(userID, metrics.ReasonInternalError, err)
	return []Reply{{Text: d.escalation}}
}

func prompt(q domain.Question) Reply {
	return Reply{Text: q.Prompt}
}

type noopNotifier struct{}

func (noopNotifier) NotifyRegistration(string, domain.Member) {}
func (noopNotifier) NotifyRecord(string, string)              {}
func (noopNotifier) NotifyEscalation(string, string, error)   {}
