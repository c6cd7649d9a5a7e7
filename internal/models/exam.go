package models

import "strings"

// Icon identifies the symbol shown on an exam card. The set is closed:
// unknown keys in the data source fall back to IconDefault.
type Icon string

const (
	IconCalculator Icon = "calculator"
	IconBook       Icon = "book"
	IconFlask      Icon = "flask"
	IconLandmark   Icon = "landmark"
	IconBriefcase  Icon = "briefcase"
	IconShield     Icon = "shield"

	IconDefault = IconCalculator
)

// ParseIcon maps a string key from the catalog onto a known Icon.
func ParseIcon(s string) Icon {
	switch Icon(strings.ToLower(strings.TrimSpace(s))) {
	case IconCalculator:
		return IconCalculator
	case IconBook:
		return IconBook
	case IconFlask:
		return IconFlask
	case IconLandmark:
		return IconLandmark
	case IconBriefcase:
		return IconBriefcase
	case IconShield:
		return IconShield
	default:
		return IconDefault
	}
}

// Exam describes one entry of the exam catalog. Records are read-only:
// they come from the bundled data file or from the exam service and are
// never mutated by this application.
type Exam struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Icon        string   `json:"icon"`
	TotalMarks  int      `json:"totalMarks"`
	Subjects    []string `json:"subjects"`
}

// IconKey resolves the exam's icon against the closed icon set.
func (e Exam) IconKey() Icon {
	return ParseIcon(e.Icon)
}

// ExamFilter narrows a catalog listing. An empty Category (or the literal
// "All") matches every category; Query matches name, description and
// subjects by case-insensitive substring.
type ExamFilter struct {
	Category string
	Query    string
}
