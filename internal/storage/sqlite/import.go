package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/studylit/internal/models"
)

// snapshotTables in delete order; children before parents.
var snapshotTables = []string{
	"time_slots",
	"schedule_entries",
	"plans",
	"blocks",
	"block_sets",
	"contents",
	"exclusions",
	"academy_schedules",
}

func (s *Store) ImportSnapshot(snap models.Snapshot, replace bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if replace {
		for _, table := range snapshotTables {
			if _, err := tx.Exec("DELETE FROM " + table); err != nil {
				return fmt.Errorf("clearing %s: %w", table, err)
			}
		}
	}

	if err := importBlockSets(tx, snap.BlockSets); err != nil {
		return err
	}
	if err := importContents(tx, snap.Contents); err != nil {
		return err
	}
	if err := importPlans(tx, snap.Plans); err != nil {
		return err
	}
	if err := importExclusions(tx, snap.Exclusions); err != nil {
		return err
	}
	if err := importAcademies(tx, snap.AcademySchedules); err != nil {
		return err
	}
	if err := importEntries(tx, snap.Entries); err != nil {
		return err
	}

	return tx.Commit()
}

func importBlockSets(tx *sql.Tx, sets []models.BlockSet) error {
	for _, set := range sets {
		if set.Active {
			// Only one block set may be active.
			if _, err := tx.Exec("UPDATE block_sets SET active = 0 WHERE id <> ?", set.ID); err != nil {
				return err
			}
		}

		active := 0
		if set.Active {
			active = 1
		}
		_, err := tx.Exec(`
			INSERT INTO block_sets (id, name, active) VALUES (?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, active = excluded.active`,
			set.ID, set.Name, active)
		if err != nil {
			return fmt.Errorf("importing block set %s: %w", set.ID, err)
		}

		// The set's blocks are replaced as a whole.
		if _, err := tx.Exec("DELETE FROM blocks WHERE block_set_id = ?", set.ID); err != nil {
			return err
		}
		for _, b := range set.Blocks {
			_, err := tx.Exec(`
				INSERT INTO blocks (id, block_set_id, day_of_week, start_time, end_time, block_index)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					block_set_id = excluded.block_set_id,
					day_of_week = excluded.day_of_week,
					start_time = excluded.start_time,
					end_time = excluded.end_time,
					block_index = excluded.block_index`,
				b.ID, set.ID, int(b.DayOfWeek), b.StartTime, b.EndTime, b.BlockIndex)
			if err != nil {
				return fmt.Errorf("importing block %s: %w", b.ID, err)
			}
		}
	}
	return nil
}

func importContents(tx *sql.Tx, items []models.ContentItem) error {
	stmt, err := tx.Prepare(`
		INSERT INTO contents (id, content_type, title, total_pages, duration_minutes, total_page_or_time)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content_type = excluded.content_type,
			title = excluded.title,
			total_pages = excluded.total_pages,
			duration_minutes = excluded.duration_minutes,
			total_page_or_time = excluded.total_page_or_time`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range items {
		if _, err := stmt.Exec(c.ID, string(c.ContentType), c.Title,
			nullInt(c.TotalPages), nullInt(c.DurationMinutes), nullInt(c.TotalPageOrTime)); err != nil {
			return fmt.Errorf("importing content %s: %w", c.ID, err)
		}
	}
	return nil
}

func importPlans(tx *sql.Tx, plans []models.Plan) error {
	// New plans are appended after existing ones so input order is kept.
	var next int
	if err := tx.QueryRow("SELECT COALESCE(MAX(position) + 1, 0) FROM plans").Scan(&next); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO plans (id, plan_date, block_index, content_type, content_id, chapter,
			range_start, range_end, plan_number, sequence, explicit_start, explicit_end,
			completed_amount, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			plan_date = excluded.plan_date,
			block_index = excluded.block_index,
			content_type = excluded.content_type,
			content_id = excluded.content_id,
			chapter = excluded.chapter,
			range_start = excluded.range_start,
			range_end = excluded.range_end,
			plan_number = excluded.plan_number,
			sequence = excluded.sequence,
			explicit_start = excluded.explicit_start,
			explicit_end = excluded.explicit_end,
			completed_amount = excluded.completed_amount`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range plans {
		if _, err := stmt.Exec(
			p.ID, p.PlanDate, nullInt(p.BlockIndex), string(p.ContentType), p.ContentID, p.Chapter,
			nullInt(p.RangeStart), nullInt(p.RangeEnd), nullInt(p.PlanNumber), nullInt(p.Sequence),
			p.ExplicitStart, p.ExplicitEnd, nullInt(p.CompletedAmount), next+i,
		); err != nil {
			return fmt.Errorf("importing plan %s: %w", p.ID, err)
		}
	}
	return nil
}

func importExclusions(tx *sql.Tx, exclusions []models.Exclusion) error {
	for _, e := range exclusions {
		// One exclusion per date; a new record for a date replaces the old one.
		if _, err := tx.Exec("DELETE FROM exclusions WHERE date = ? AND id <> ?", e.Date, e.ID); err != nil {
			return err
		}
		_, err := tx.Exec(`
			INSERT INTO exclusions (id, date, type, reason) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET date = excluded.date, type = excluded.type, reason = excluded.reason`,
			e.ID, e.Date, string(e.Type), e.Reason)
		if err != nil {
			return fmt.Errorf("importing exclusion %s: %w", e.Date, err)
		}
	}
	return nil
}

func importAcademies(tx *sql.Tx, academies []models.AcademySchedule) error {
	stmt, err := tx.Prepare(`
		INSERT INTO academy_schedules (id, day_of_week, start_time, end_time, academy_name, subject)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			day_of_week = excluded.day_of_week,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			academy_name = excluded.academy_name,
			subject = excluded.subject`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range academies {
		if _, err := stmt.Exec(a.ID, int(a.DayOfWeek), a.StartTime, a.EndTime, a.AcademyName, a.Subject); err != nil {
			return fmt.Errorf("importing academy schedule %s: %w", a.ID, err)
		}
	}
	return nil
}

func importEntries(tx *sql.Tx, entries []models.DailyScheduleEntry) error {
	for _, e := range entries {
		_, err := tx.Exec(`
			INSERT INTO schedule_entries (date, day_type, study_hours, week_number) VALUES (?, ?, ?, ?)
			ON CONFLICT(date) DO UPDATE SET
				day_type = excluded.day_type,
				study_hours = excluded.study_hours,
				week_number = excluded.week_number`,
			e.Date, string(e.DayType), e.StudyHours, nullInt(e.WeekNumber))
		if err != nil {
			return fmt.Errorf("importing schedule entry %s: %w", e.Date, err)
		}

		if _, err := tx.Exec("DELETE FROM time_slots WHERE entry_date = ?", e.Date); err != nil {
			return err
		}
		for i, slot := range e.TimeSlots {
			_, err := tx.Exec(`
				INSERT INTO time_slots (entry_date, position, type, start_time, end_time, label)
				VALUES (?, ?, ?, ?, ?, ?)`,
				e.Date, i, string(slot.Type), slot.Start, slot.End, slot.Label)
			if err != nil {
				return fmt.Errorf("importing time slot %d of %s: %w", i, e.Date, err)
			}
		}
	}
	return nil
}
