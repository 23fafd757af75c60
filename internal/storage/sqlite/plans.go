package sqlite

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/models"
)

func (s *Store) UpdatePlanSequences(plans []models.Plan) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE plans SET sequence = ? WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range plans {
		if p.Sequence == nil {
			continue
		}
		if _, err := stmt.Exec(*p.Sequence, p.ID); err != nil {
			return fmt.Errorf("updating sequence of plan %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}
