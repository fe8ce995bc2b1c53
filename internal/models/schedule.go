package models

// DaySchedule is one weekday of opening hours. Times are "HH:MM".
type DaySchedule struct {
	Day        string `json:"day"`
	IsOpen     bool   `json:"isOpen"`
	OpenTime   string `json:"openTime"`
	CloseTime  string `json:"closeTime"`
	HasBreak   bool   `json:"hasBreak"`
	BreakStart string `json:"breakStart,omitempty"`
	BreakEnd   string `json:"breakEnd,omitempty"`
}
