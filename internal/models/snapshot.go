package models

// Snapshot is the immutable input of one timetable build.
type Snapshot struct {
	Settings         Settings             `json:"-"`
	BlockSets        []BlockSet           `json:"block_sets"`
	Contents         []ContentItem        `json:"contents"`
	Plans            []Plan               `json:"plans"`
	Exclusions       []Exclusion          `json:"exclusions"`
	AcademySchedules []AcademySchedule    `json:"academy_schedules"`
	Entries          []DailyScheduleEntry `json:"entries"`
}

// ActiveBlocks returns the blocks of the active block set, or nil.
func (s Snapshot) ActiveBlocks() []Block {
	for _, set := range s.BlockSets {
		if set.Active {
			return set.Blocks
		}
	}
	return nil
}
