package matchplayer

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/scaling-waffle/internal/apperr"
)

// New creates a new MatchPlayerStore.
func New(db *sql.DB) MatchPlayerStore {
	return &store{
		db: db,
	}
}

const playerColumns = "match_public_id, user_public_id, distance, reserve"

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func (s *store) CreateMatchPlayer(mp *MatchPlayer) (*MatchPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return createPlayer(s.db, mp)
}

func createPlayer(ex execer, mp *MatchPlayer) (*MatchPlayer, error) {
	if mp.Reserve == "" {
		mp.Reserve = ReserveProvisional
	}
	_, err := ex.Exec(
		"INSERT INTO matches_players ("+playerColumns+") VALUES (?, ?, ?, ?)",
		mp.MatchPublicID, mp.UserPublicID, mp.Distance, string(mp.Reserve),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.NotUnique("MatchPlayer")
		}
		return nil, fmt.Errorf("failed to insert match player: %w", err)
	}
	log.Debug("Created match player", "matchID", mp.MatchPublicID, "userID", mp.UserPublicID, "reserve", mp.Reserve)
	return mp, nil
}

func (s *store) CreateMatchPlayers(mps []*MatchPlayer) ([]*MatchPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, mp := range mps {
		if _, err := createPlayer(tx, mp); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match players: %w", err)
	}
	return mps, nil
}

func (s *store) GetMatchPlayer(matchPublicID, userPublicID string) (*MatchPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		"SELECT "+playerColumns+" FROM matches_players WHERE match_public_id = ? AND user_public_id = ?",
		matchPublicID, userPublicID,
	)
	mp, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("MatchPlayer")
		}
		return nil, fmt.Errorf("failed to query match player: %w", err)
	}
	return mp, nil
}

func (s *store) GetMatchPlayers(f Filters) ([]*MatchPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		conds []string
		args  []any
	)
	if f.MatchPublicID != nil {
		conds = append(conds, "match_public_id = ?")
		args = append(args, *f.MatchPublicID)
	}
	if f.UserPublicID != nil {
		conds = append(conds, "user_public_id = ?")
		args = append(args, *f.UserPublicID)
	}
	if f.Reserve != nil {
		conds = append(conds, "reserve = ?")
		args = append(args, string(*f.Reserve))
	}

	query := "SELECT " + playerColumns + " FROM matches_players"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query match players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func (s *store) GetNextByDistance(matchPublicID string, reserve Reserve, limit int) ([]*MatchPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Secondary order on id keeps ties stable in insertion order.
	rows, err := s.db.Query(
		"SELECT "+playerColumns+" FROM matches_players WHERE match_public_id = ? AND reserve = ? ORDER BY distance ASC, id ASC LIMIT ?",
		matchPublicID, string(reserve), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query next players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func (s *store) UpdateMatchPlayer(matchPublicID, userPublicID string, upd Update) (*MatchPlayer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		sets []string
		args []any
	)
	if upd.Distance != nil {
		sets = append(sets, "distance = ?")
		args = append(args, *upd.Distance)
	}
	if upd.Reserve != nil {
		sets = append(sets, "reserve = ?")
		args = append(args, string(*upd.Reserve))
	}

	if len(sets) > 0 {
		args = append(args, matchPublicID, userPublicID)
		res, err := s.db.Exec(
			"UPDATE matches_players SET "+strings.Join(sets, ", ")+" WHERE match_public_id = ? AND user_public_id = ?",
			args...,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to update match player: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to read affected rows: %w", err)
		}
		if affected == 0 {
			return nil, apperr.NotFound("MatchPlayer")
		}
	}

	row := s.db.QueryRow(
		"SELECT "+playerColumns+" FROM matches_players WHERE match_public_id = ? AND user_public_id = ?",
		matchPublicID, userPublicID,
	)
	mp, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperr.NotFound("MatchPlayer")
		}
		return nil, fmt.Errorf("failed to re-read match player: %w", err)
	}
	return mp, nil
}

func (s *store) DeleteMatchPlayers(matchPublicID string, userPublicIDs []string) error {
	if len(userPublicIDs) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	placeholders := strings.Repeat("?,", len(userPublicIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(userPublicIDs)+1)
	args = append(args, matchPublicID)
	for _, id := range userPublicIDs {
		args = append(args, id)
	}

	_, err := s.db.Exec(
		"DELETE FROM matches_players WHERE match_public_id = ? AND user_public_id IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to delete match players: %w", err)
	}
	log.Debug("Deleted match players", "matchID", matchPublicID, "count", len(userPublicIDs))
	return nil
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*MatchPlayer, error) {
	var (
		mp      MatchPlayer
		reserve string
	)
	err := scanner.Scan(&mp.MatchPublicID, &mp.UserPublicID, &mp.Distance, &reserve)
	if err != nil {
		return nil, err
	}
	mp.Reserve = Reserve(reserve)
	return &mp, nil
}

func collectPlayers(rows *sql.Rows) ([]*MatchPlayer, error) {
	var players []*MatchPlayer
	for rows.Next() {
		mp, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan match player row", "error", err)
			continue
		}
		players = append(players, mp)
	}
	return players, rows.Err()
}
