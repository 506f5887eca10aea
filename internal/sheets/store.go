// Package sheets stores members and consultation records in a Google spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/set-night/intakebot/internal/domain"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const (
	membersSheet  = "members"
	requestsSheet = "requests"

	recordRows = 50
	recordCols = 10

	timestampLayout = "2006-01-02 15:04:05"
)

var (
	membersHeader  = []string{"user_id", "事業所名", "住所", "役職", "氏名"}
	requestsHeader = []string{"timestamp", "user_id", "事業所名", "氏名", "役職", "相談者氏名"}
)

// Store is the Google Sheets storage backend.
type Store struct {
	svc           *gsheets.Service
	spreadsheetID string
	now           func() time.Time

	// mu serializes worksheet creation and title allocation.
	mu sync.Mutex
}

var _ domain.Storage = (*Store)(nil)

// Open builds a Store authenticated with a service-account credentials file.
func Open(ctx context.Context, spreadsheetID, credentialsFile string) (*Store, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewStore(svc, spreadsheetID), nil
}

func NewStore(svc *gsheets.Service, spreadsheetID string) *Store {
	return &Store{svc: svc, spreadsheetID: spreadsheetID, now: time.Now}
}

func (s *Store) IsRegistered(ctx context.Context, userID string) (bool, error) {
	_, _, err := s.findMember(ctx, userID)
	if errors.Is(err, domain.ErrMemberNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) GetMember(ctx context.Context, userID string) (*domain.Member, error) {
	m, _, err := s.findMember(ctx, userID)
	if errors.Is(err, domain.ErrMemberNotFound) {
		return nil, nil
	}
	return m, err
}

// RegisterMember overwrites the user's row when present and appends otherwise.
func (s *Store) RegisterMember(ctx context.Context, m domain.Member) error {
	_, row, err := s.findMember(ctx, m.UserID)
	if err != nil && !errors.Is(err, domain.ErrMemberNotFound) {
		return err
	}

	values := rowValues(m.UserID, m.Office, m.Address, m.Role, m.Name)
	if row > 0 {
		rng := fmt.Sprintf("%s!A%d:E%d", membersSheet, row, row)
		_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng, values).
			ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update member row: %w", err)
		}
		return nil
	}

	if err := s.append(ctx, membersSheet+"!A:E", values); err != nil {
		return fmt.Errorf("append member: %w", err)
	}
	return nil
}

// findMember returns the member and its 1-based row number.
func (s *Store) findMember(ctx context.Context, userID string) (*domain.Member, int, error) {
	if err := s.ensureSheet(ctx, membersSheet, membersHeader); err != nil {
		return nil, 0, err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, membersSheet+"!A:E").Context(ctx).Do()
	if err != nil {
		return nil, 0, fmt.Errorf("read members: %w", err)
	}

	for i, raw := range resp.Values {
		if i == 0 {
			continue // header
		}
		row := cells(raw, len(membersHeader))
		if row[0] != userID {
			continue
		}
		return &domain.Member{
			UserID:  row[0],
			Office:  row[1],
			Address: row[2],
			Role:    row[3],
			Name:    row[4],
		}, i + 1, nil
	}
	return nil, 0, domain.ErrMemberNotFound
}

// SaveRecord writes rec to a new worksheet and returns its title.
func (s *Store) SaveRecord(ctx context.Context, userID string, rec domain.Record) (string, error) {
	title, err := s.addRecordSheet(ctx, rec.StorageTitle())
	if err != nil {
		return "", err
	}

	vr := &gsheets.ValueRange{Values: recordTable(rec)}
	_, err = s.svc.Spreadsheets.Values.Update(s.spreadsheetID, a1(title, "A1"), vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("write record sheet %q: %w", title, err)
	}
	slog.Info("record sheet written", "title", title, "user_id", userID)

	s.logRequest(ctx, userID, rec.PatientName())
	return title, nil
}

func (s *Store) addRecordSheet(ctx context.Context, base string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	titles, err := s.titles(ctx)
	if err != nil {
		return "", err
	}

	for n := 1; n <= domain.MaxTitleAttempts; n++ {
		candidate := domain.TitleCandidate(base, n)
		if titles[candidate] {
			continue
		}
		if err := s.addSheet(ctx, candidate, recordRows, recordCols); err != nil {
			return "", err
		}
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q", domain.ErrSheetTitleExists, base)
}

// logRequest appends the requester snapshot. Failures are logged only.
func (s *Store) logRequest(ctx context.Context, userID, patient string) {
	m, err := s.GetMember(ctx, userID)
	if err != nil {
		slog.Error("failed to load member for request log", "error", err, "user_id", userID)
		return
	}
	if m == nil {
		m = &domain.Member{UserID: userID}
	}

	if err := s.ensureSheet(ctx, requestsSheet, requestsHeader); err != nil {
		slog.Error("failed to prepare request log sheet", "error", err)
		return
	}

	values := rowValues(s.now().Format(timestampLayout), userID, m.Office, m.Name, m.Role, patient)
	if err := s.append(ctx, requestsSheet+"!A:F", values); err != nil {
		slog.Error("failed to write request log", "error", err, "user_id", userID)
	}
}

// ensureSheet creates title with a header row unless it already exists.
func (s *Store) ensureSheet(ctx context.Context, title string, header []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	titles, err := s.titles(ctx)
	if err != nil {
		return err
	}
	if titles[title] {
		return nil
	}

	if err := s.addSheet(ctx, title, 1000, int64(len(header))); err != nil {
		return err
	}
	return s.append(ctx, title+"!A1", rowValues(header...))
}

func (s *Store) titles(ctx context.Context) (map[string]bool, error) {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list sheets: %w", err)
	}
	out := make(map[string]bool, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			out[sh.Properties.Title] = true
		}
	}
	return out, nil
}

func (s *Store) addSheet(ctx context.Context, title string, rows, cols int64) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{
					Title: title,
					GridProperties: &gsheets.GridProperties{
						RowCount:    rows,
						ColumnCount: cols,
					},
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %q: %w", title, err)
	}
	return nil
}

func (s *Store) append(ctx context.Context, rng string, values *gsheets.ValueRange) error {
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, values).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}

// recordTable lays out a record as section title, label/value rows, then a blank row.
func recordTable(rec domain.Record) [][]interface{} {
	var table [][]interface{}
	for _, sec := range rec.Sections {
		table = append(table, []interface{}{sec.Name})
		for _, e := range sec.Entries {
			table = append(table, []interface{}{e.Label, e.Value})
		}
		table = append(table, []interface{}{})
	}
	return table
}

func rowValues(cols ...string) *gsheets.ValueRange {
	row := make([]interface{}, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	return &gsheets.ValueRange{Values: [][]interface{}{row}}
}

// cells pads a raw API row to n string cells.
func cells(raw []interface{}, n int) []string {
	out := make([]string, n)
	for i := 0; i < n && i < len(raw); i++ {
		switch v := raw[i].(type) {
		case string:
			out[i] = v
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		default:
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

// a1 quotes a sheet title for use in an A1 range.
func a1(title, cells string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'!" + cells
}
