package store

import (
	"context"
	"fmt"
	"pos_backend/pkg/models"
	"pos_backend/pkg/utils"
)

// Login checks an id and passcode against the loaded staff. It fails with
// ErrNoStaffRecords when nothing is loaded, which points at the database
// rather than the user.
func (s *AppState) Login(id, passcode string) (models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.staff) == 0 {
		return models.Staff{}, ErrNoStaffRecords
	}
	idx := s.staffIndex(id)
	if idx < 0 {
		return models.Staff{}, ErrInvalidCredentials
	}
	member := s.staff[idx]
	if !utils.ComparePasscode(member.Passcode, passcode) || !member.IsActive() {
		return models.Staff{}, ErrInvalidCredentials
	}
	return member, nil
}

// RestoreSession resolves a stored staff id. Deleted or deactivated staff
// report false and the caller must forget the id.
func (s *AppState) RestoreSession(id string) (models.Staff, bool) {
	member, ok := s.StaffByID(id)
	if !ok || !member.IsActive() {
		return models.Staff{}, false
	}
	return member, true
}

// RevokedSessions reads the session keys signed out before this process started.
func (s *AppState) RevokedSessions(ctx context.Context) ([]models.RevokedSession, error) {
	var revs []models.RevokedSession
	if err := s.store.SelectAll(ctx, &revs); err != nil {
		return nil, fmt.Errorf("load revoked sessions: %w", err)
	}
	return revs, nil
}

// SaveRevocation queues a revoked session key for the database.
func (s *AppState) SaveRevocation(rev models.RevokedSession) {
	saved := rev
	s.writeInsert("revoked session of "+rev.StaffID, &saved)
}
