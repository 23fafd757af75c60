package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/storage"
)

func (s *Store) GetBlockSets() ([]models.BlockSet, error) {
	rows, err := s.db.Query("SELECT id, name, active FROM block_sets ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sets []models.BlockSet
	index := make(map[string]int)
	for rows.Next() {
		var set models.BlockSet
		var active int64
		if err := rows.Scan(&set.ID, &set.Name, &active); err != nil {
			return nil, err
		}
		set.Active = active != 0
		index[set.ID] = len(sets)
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	blockRows, err := s.db.Query(`
		SELECT id, block_set_id, day_of_week, start_time, end_time, block_index
		FROM blocks
		ORDER BY block_set_id, day_of_week, block_index, id`)
	if err != nil {
		return nil, err
	}
	defer blockRows.Close()

	for blockRows.Next() {
		var b models.Block
		var setID string
		var dow int
		if err := blockRows.Scan(&b.ID, &setID, &dow, &b.StartTime, &b.EndTime, &b.BlockIndex); err != nil {
			return nil, err
		}
		b.DayOfWeek = time.Weekday(dow)
		if i, ok := index[setID]; ok {
			sets[i].Blocks = append(sets[i].Blocks, b)
		}
	}
	return sets, blockRows.Err()
}

func (s *Store) GetContents() ([]models.ContentItem, error) {
	rows, err := s.db.Query(`
		SELECT id, content_type, title, total_pages, duration_minutes, total_page_or_time
		FROM contents
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		var c models.ContentItem
		var contentType string
		var pages, duration, pageOrTime sql.NullInt64
		if err := rows.Scan(&c.ID, &contentType, &c.Title, &pages, &duration, &pageOrTime); err != nil {
			return nil, err
		}
		c.ContentType = models.ContentType(contentType)
		c.TotalPages = intPtr(pages)
		c.DurationMinutes = intPtr(duration)
		c.TotalPageOrTime = intPtr(pageOrTime)
		items = append(items, c)
	}
	return items, rows.Err()
}

const planColumns = `id, plan_date, block_index, content_type, content_id, chapter,
	range_start, range_end, plan_number, sequence, explicit_start, explicit_end, completed_amount`

func (s *Store) GetPlans() ([]models.Plan, error) {
	return s.queryPlans("SELECT " + planColumns + " FROM plans ORDER BY position, id")
}

func (s *Store) GetPlansForDate(date string) ([]models.Plan, error) {
	return s.queryPlans("SELECT "+planColumns+" FROM plans WHERE plan_date = ? ORDER BY position, id", date)
}

func (s *Store) queryPlans(query string, args ...any) ([]models.Plan, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []models.Plan
	for rows.Next() {
		var p models.Plan
		var contentType string
		var blockIndex, rangeStart, rangeEnd, planNumber, sequence, completed sql.NullInt64
		if err := rows.Scan(
			&p.ID, &p.PlanDate, &blockIndex, &contentType, &p.ContentID, &p.Chapter,
			&rangeStart, &rangeEnd, &planNumber, &sequence, &p.ExplicitStart, &p.ExplicitEnd, &completed,
		); err != nil {
			return nil, err
		}
		p.ContentType = models.ContentType(contentType)
		p.BlockIndex = intPtr(blockIndex)
		p.RangeStart = intPtr(rangeStart)
		p.RangeEnd = intPtr(rangeEnd)
		p.PlanNumber = intPtr(planNumber)
		p.Sequence = intPtr(sequence)
		p.CompletedAmount = intPtr(completed)
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *Store) GetExclusions() ([]models.Exclusion, error) {
	rows, err := s.db.Query("SELECT id, date, type, reason FROM exclusions ORDER BY date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exclusions []models.Exclusion
	for rows.Next() {
		var e models.Exclusion
		var typ string
		if err := rows.Scan(&e.ID, &e.Date, &typ, &e.Reason); err != nil {
			return nil, err
		}
		e.Type = models.ExclusionType(typ)
		exclusions = append(exclusions, e)
	}
	return exclusions, rows.Err()
}

func (s *Store) GetAcademySchedules() ([]models.AcademySchedule, error) {
	rows, err := s.db.Query(`
		SELECT id, day_of_week, start_time, end_time, academy_name, subject
		FROM academy_schedules
		ORDER BY day_of_week, start_time, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var academies []models.AcademySchedule
	for rows.Next() {
		var a models.AcademySchedule
		var dow int
		if err := rows.Scan(&a.ID, &dow, &a.StartTime, &a.EndTime, &a.AcademyName, &a.Subject); err != nil {
			return nil, err
		}
		a.DayOfWeek = time.Weekday(dow)
		academies = append(academies, a)
	}
	return academies, rows.Err()
}

// dateBounds builds the WHERE clause for an optional [from, to] range on column.
func dateBounds(column, from, to string) (string, []any) {
	var conds []string
	var args []any
	if from != "" {
		conds = append(conds, column+" >= ?")
		args = append(args, from)
	}
	if to != "" {
		conds = append(conds, column+" <= ?")
		args = append(args, to)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (s *Store) GetEntries(from, to string) ([]models.DailyScheduleEntry, error) {
	where, args := dateBounds("date", from, to)
	rows, err := s.db.Query("SELECT date, day_type, study_hours, week_number FROM schedule_entries"+where+" ORDER BY date", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DailyScheduleEntry
	index := make(map[string]int)
	for rows.Next() {
		var e models.DailyScheduleEntry
		var dayType string
		var week sql.NullInt64
		if err := rows.Scan(&e.Date, &dayType, &e.StudyHours, &week); err != nil {
			return nil, err
		}
		e.DayType = models.DayType(dayType)
		e.WeekNumber = intPtr(week)
		index[e.Date] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return entries, nil
	}

	where, args = dateBounds("entry_date", from, to)
	slotRows, err := s.db.Query("SELECT entry_date, type, start_time, end_time, label FROM time_slots"+where+" ORDER BY entry_date, position", args...)
	if err != nil {
		return nil, err
	}
	defer slotRows.Close()

	for slotRows.Next() {
		var date, typ string
		var slot models.TimeSlot
		if err := slotRows.Scan(&date, &typ, &slot.Start, &slot.End, &slot.Label); err != nil {
			return nil, err
		}
		slot.Type = models.SlotType(typ)
		if i, ok := index[date]; ok {
			entries[i].TimeSlots = append(entries[i].TimeSlots, slot)
		}
	}
	return entries, slotRows.Err()
}

func (s *Store) GetEntry(date string) (models.DailyScheduleEntry, error) {
	entries, err := s.GetEntries(date, date)
	if err != nil {
		return models.DailyScheduleEntry{}, err
	}
	if len(entries) == 0 {
		return models.DailyScheduleEntry{}, fmt.Errorf("schedule entry %s: %w", date, storage.ErrNotFound)
	}
	return entries[0], nil
}

func (s *Store) IsEmpty() (bool, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT (SELECT COUNT(*) FROM plans)
		     + (SELECT COUNT(*) FROM schedule_entries)
		     + (SELECT COUNT(*) FROM block_sets)
		     + (SELECT COUNT(*) FROM contents)`).Scan(&count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	return count == 0, nil
}
