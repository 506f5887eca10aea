package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/set-night/intakebot/internal/domain"
	"github.com/set-night/intakebot/internal/repository/sqlc"
)

const uniqueViolation = "23505"

// Store is the Postgres storage backend.
type Store struct {
	db      *pgxpool.Pool
	queries *sqlc.Queries
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db, queries: sqlc.New(db)}
}

var _ domain.Storage = (*Store)(nil)

func (s *Store) IsRegistered(ctx context.Context, userID string) (bool, error) {
	ok, err := s.queries.MemberExists(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("check member: %w", err)
	}
	return ok, nil
}

func (s *Store) GetMember(ctx context.Context, userID string) (*domain.Member, error) {
	m, err := s.findMember(ctx, userID)
	if errors.Is(err, domain.ErrMemberNotFound) {
		return nil, nil
	}
	return m, err
}

func (s *Store) findMember(ctx context.Context, userID string) (*domain.Member, error) {
	row, err := s.queries.GetMember(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return rowToMember(row), nil
}

func (s *Store) RegisterMember(ctx context.Context, m domain.Member) error {
	err := s.queries.UpsertMember(ctx, sqlc.UpsertMemberParams{
		UserID:  m.UserID,
		Office:  m.Office,
		Address: m.Address,
		Role:    m.Role,
		Name:    m.Name,
	})
	if err != nil {
		return fmt.Errorf("upsert member: %w", err)
	}
	return nil
}

// SaveRecord stores rec under the first free title derived from the patient's
// name and returns that title.
func (s *Store) SaveRecord(ctx context.Context, userID string, rec domain.Record) (string, error) {
	payload, err := json.Marshal(rec.Map())
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}

	base := rec.StorageTitle()
	var title string
	for n := 1; n <= domain.MaxTitleAttempts; n++ {
		candidate := domain.TitleCandidate(base, n)
		err = s.insertRecord(ctx, userID, candidate, rec.PatientName(), payload)
		if errors.Is(err, domain.ErrSheetTitleExists) {
			continue
		}
		if err != nil {
			return "", err
		}
		title = candidate
		break
	}
	if title == "" {
		return "", fmt.Errorf("%w: %q", domain.ErrSheetTitleExists, base)
	}

	s.logRequest(ctx, userID, rec.PatientName())
	return title, nil
}

func (s *Store) insertRecord(ctx context.Context, userID, title, patient string, payload []byte) error {
	exists, err := s.queries.RecordTitleExists(ctx, title)
	if err != nil {
		return fmt.Errorf("check record title: %w", err)
	}
	if exists {
		return domain.ErrSheetTitleExists
	}

	_, err = s.queries.CreateRecord(ctx, sqlc.CreateRecordParams{
		ID:          uuid.New(),
		UserID:      userID,
		SheetTitle:  title,
		PatientName: patient,
		Payload:     payload,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrSheetTitleExists
		}
		return fmt.Errorf("create record: %w", err)
	}
	return nil
}

// logRequest appends the requester snapshot. Failures are logged only.
func (s *Store) logRequest(ctx context.Context, userID, patient string) {
	m, err := s.findMember(ctx, userID)
	if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
		slog.Error("failed to load member for request log", "error", err, "user_id", userID)
		return
	}
	if m == nil {
		m = &domain.Member{}
	}

	err = s.queries.CreateRequestLog(ctx, sqlc.CreateRequestLogParams{
		UserID:      userID,
		Office:      m.Office,
		Name:        m.Name,
		Role:        m.Role,
		PatientName: patient,
	})
	if err != nil {
		slog.Error("failed to write request log", "error", err, "user_id", userID)
	}
}

func rowToMember(row sqlc.Member) *domain.Member {
	return &domain.Member{
		UserID:    row.UserID,
		Office:    row.Office,
		Address:   row.Address,
		Role:      row.Role,
		Name:      row.Name,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
