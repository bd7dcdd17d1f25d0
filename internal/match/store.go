package match

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/scaling-waffle/internal/apperr"
)

// New creates a new MatchStore.
func New(db *sql.DB) MatchStore {
	return &store{
		db: db,
	}
}

const matchColumns = "public_id, business_id, court_id, court_name, date, time, status"

// isUniqueViolation detects a sqlite uniqueness constraint failure. The
// driver does not expose a typed error across the libsql/sqlite3 split, so
// the message is the contract.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (s *store) CreateMatch(m *Match) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createMatchLocked(s.db, m)
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *store) createMatchLocked(ex execer, m *Match) (*Match, error) {
	if m.PublicID == "" {
		m.PublicID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = StatusProvisional
	}

	_, err := ex.Exec(
		"INSERT INTO matches ("+matchColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		m.PublicID, m.BusinessID, m.CourtID, m.CourtName, m.Date, m.Time, string(m.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.NotUnique("Match")
		}
		return nil, fmt.Errorf("failed to insert match: %w", err)
	}
	log.Debug("Created match", "publicID", m.PublicID, "court", m.CourtName, "date", m.Date, "time", m.Time)
	return m, nil
}

func (s *store) CreateMatches(ms []*Match) ([]*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, m := range ms {
		if _, err := s.createMatchLocked(tx, m); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit matches: %w", err)
	}
	return ms, nil
}

func (s *store) GetMatch(publicID string) (*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT "+matchColumns+" FROM matches WHERE public_id = ?", publicID)
	m, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Match")
		}
		return nil, fmt.Errorf("failed to query match: %w", err)
	}
	return m, nil
}

func (s *store) GetMatches(f Filters) ([]*Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := f.where()
	rows, err := s.db.Query("SELECT "+matchColumns+" FROM matches"+where+" ORDER BY date, time", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *store) UpdateMatch(publicID string, upd Update) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		sets []string
		args []any
	)
	set := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.CourtID != nil {
		set("court_id", *upd.CourtID)
	}
	if upd.CourtName != nil {
		set("court_name", *upd.CourtName)
	}
	if upd.Date != nil {
		set("date", *upd.Date)
	}
	if upd.Time != nil {
		set("time", *upd.Time)
	}
	if upd.Status != nil {
		set("status", string(*upd.Status))
	}

	if len(sets) > 0 {
		args = append(args, publicID)
		res, err := s.db.Exec("UPDATE matches SET "+strings.Join(sets, ", ")+" WHERE public_id = ?", args...)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, apperr.NotUnique("Match")
			}
			return nil, fmt.Errorf("failed to update match: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return nil, apperr.NotFound("Match")
		}
	}

	row := s.db.QueryRow("SELECT "+matchColumns+" FROM matches WHERE public_id = ?", publicID)
	m, err := scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("Match")
		}
		return nil, fmt.Errorf("failed to re-read match: %w", err)
	}
	return m, nil
}

func scanMatch(scanner interface{ Scan(...any) error }) (*Match, error) {
	var (
		m       Match
		courtID sql.NullString
		status  string
	)
	err := scanner.Scan(&m.PublicID, &m.BusinessID, &courtID, &m.CourtName, &m.Date, &m.Time, &status)
	if err != nil {
		return nil, err
	}
	m.CourtID = courtID.String
	m.Status = Status(status)
	return &m, nil
}
