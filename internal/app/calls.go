package app

import (
	"time"

	"github.com/alexanderramin/shiftclock/internal/calendar"
	"github.com/alexanderramin/shiftclock/internal/domain"
)

// CallReportRequest has the same agent selection rules as AttendanceRequest.
type CallReportRequest struct {
	Now      *time.Time
	From     calendar.Date
	To       calendar.Date
	AgentIDs []string
	Team     string
}

type AgentCallStats struct {
	AgentID       string
	AgentName     string
	Total         int
	ByOutcome     map[domain.CallOutcome]int
	ConversionPct float64
}

type CallReportResponse struct {
	GeneratedAt   time.Time
	From          calendar.Date
	To            calendar.Date
	Agents        []AgentCallStats
	Total         int
	Converted     int
	ConversionPct float64
}
