package models

// ScheduleEntry is one row of a generated schedule. The JSON keys match the
// column names of the schedule table.
type ScheduleEntry struct {
	Patient string `json:"Patient"`
	Doctor  string `json:"Doctor"`
	Day     string `json:"Day"`
	Date    string `json:"Date"` // YYYY-MM-DD
}
