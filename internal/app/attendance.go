package app

import (
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// MaxReportDays bounds the inclusive date range of one report.
const MaxReportDays = 93

// AttendanceRequest selects agents and an inclusive civil date range.
// AgentIDs wins over Team; with neither, every agent is reported.
// Zero From/To default to today.
type AttendanceRequest struct {
	Now      *time.Time
	From     calendar.Date
	To       calendar.Date
	AgentIDs []string
	Team     string
}

func NewAttendanceRequest() AttendanceRequest {
	return AttendanceRequest{}
}

type AttendanceDay struct {
	Date        calendar.Date
	Status      domain.AttendanceStatus
	HolidayName string
	// ShiftStart and ShiftEnd are nil on days off.
	ShiftStart    *time.Time
	ShiftEnd      *time.Time
	ShiftMinutes  int
	WorkedMinutes int
	AttendancePct float64
	FirstStart    *time.Time
	Late          bool
	LateByMin     int
	OpenCounted   bool
	// CeilingExceeded marks a day whose raw total overshot the shift and was clamped.
	CeilingExceeded bool
	RawMinutes      int
}

type AgentAttendance struct {
	AgentID       string
	AgentName     string
	Team          string
	Days          []AttendanceDay
	WorkedMinutes int
	ShiftMinutes  int
	PresentDays   int
	AbsentDays    int
	LateDays      int
	AttendancePct float64
}

type AttendanceSummary struct {
	GeneratedAt        time.Time
	From               calendar.Date
	To                 calendar.Date
	Source             string
	AgentCount         int
	DayCount           int
	TotalWorkedMinutes int
	TotalShiftMinutes  int
	PresentDays        int
	AbsentDays         int
	LateDays           int
	CeilingViolations  int
}

type AttendanceResponse struct {
	Summary  AttendanceSummary
	Agents   []AgentAttendance
	Warnings []string
}

type ReportErrorCode string

const (
	ReportErrInvalidRange ReportErrorCode = "INVALID_RANGE"
	ReportErrUnknownAgent ReportErrorCode = "UNKNOWN_AGENT"
)

type ReportError struct {
	Code    ReportErrorCode
	Message string
}

func (e *ReportError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Pct returns part/whole as a percentage, 0 when whole is 0.
func Pct(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
