package models

import "fmt"

// SeverityType and TaskStatusType are closed classifications stored as
// small integer codes. Lookups by code fail with EnumNotFoundError for
// codes outside the known set; unknown codes are never coerced to a
// null classification.

type SeverityType int

const (
	SeverityCritical SeverityType = 1
	SeverityHigh     SeverityType = 2
	SeverityMedium   SeverityType = 3
	SeverityLow      SeverityType = 4
)

var severityDescriptions = map[SeverityType]string{
	SeverityCritical: "Critical",
	SeverityHigh:     "High",
	SeverityMedium:   "Medium",
	SeverityLow:      "Low",
}

type TaskStatusType int

const (
	StatusActive   TaskStatusType = 1
	StatusOnHold   TaskStatusType = 2
	StatusProposed TaskStatusType = 3
	StatusResolved TaskStatusType = 4
)

var taskStatusDescriptions = map[TaskStatusType]string{
	StatusActive:   "Active",
	StatusOnHold:   "On Hold",
	StatusProposed: "Proposed",
	StatusResolved: "Resolved",
}

// EnumNotFoundError reports a code that matches no known enum value.
type EnumNotFoundError struct {
	Message string
}

func (e *EnumNotFoundError) Error() string {
	return e.Message
}

func (s SeverityType) Code() int {
	return int(s)
}

func (s SeverityType) Description() string {
	return severityDescriptions[s]
}

func (t TaskStatusType) Code() int {
	return int(t)
}

func (t TaskStatusType) Description() string {
	return taskStatusDescriptions[t]
}

// SeverityTypeByCode resolves a severity code to its enum value.
func SeverityTypeByCode(code int) (SeverityType, error) {
	s := SeverityType(code)
	if _, ok := severityDescriptions[s]; !ok {
		return 0, &EnumNotFoundError{Message: fmt.Sprintf("Invalid SeverityType code: %d", code)}
	}
	return s, nil
}

// TaskStatusTypeByCode resolves a status code to its enum value.
func TaskStatusTypeByCode(code int) (TaskStatusType, error) {
	t := TaskStatusType(code)
	if _, ok := taskStatusDescriptions[t]; !ok {
		return 0, &EnumNotFoundError{Message: fmt.Sprintf("Invalid TaskStatusType code: %d", code)}
	}
	return t, nil
}
