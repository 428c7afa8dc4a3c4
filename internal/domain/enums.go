package domain

import "fmt"

type ActivityType string

const (
	ActivityWork     ActivityType = "work"
	ActivityCall     ActivityType = "call"
	ActivityMeeting  ActivityType = "meeting"
	ActivityTraining ActivityType = "training"
	ActivityBreak    ActivityType = "break"
	ActivityLunch    ActivityType = "lunch"
	ActivityIdle     ActivityType = "idle"
)

// activityTypeInfo is the single mapping from activity type to its display
// label and whether time spent in it counts as worked time.
var activityTypeInfo = map[ActivityType]struct {
	Label  string
	IsWork bool
}{
	ActivityWork:     {"Working", true},
	ActivityCall:     {"On Call", true},
	ActivityMeeting:  {"Meeting", true},
	ActivityTraining: {"Training", true},
	ActivityBreak:    {"Break", false},
	ActivityLunch:    {"Lunch", false},
	ActivityIdle:     {"Idle", false},
}

// AllActivityTypes lists every activity type in display order.
var AllActivityTypes = []ActivityType{
	ActivityWork, ActivityCall, ActivityMeeting, ActivityTraining,
	ActivityBreak, ActivityLunch, ActivityIdle,
}

// ParseActivityType validates s against the closed set of activity types.
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(s)
	if _, ok := activityTypeInfo[t]; !ok {
		return "", fmt.Errorf("unknown activity type %q", s)
	}
	return t, nil
}

func (t ActivityType) Valid() bool {
	_, ok := activityTypeInfo[t]
	return ok
}

func (t ActivityType) Label() string {
	if info, ok := activityTypeInfo[t]; ok {
		return info.Label
	}
	return string(t)
}

// IsWork reports whether time in this activity counts toward worked minutes.
func (t ActivityType) IsWork() bool {
	return activityTypeInfo[t].IsWork
}

// WorkActivityTypes returns the activity types that count as worked time.
func WorkActivityTypes() []ActivityType {
	var out []ActivityType
	for _, t := range AllActivityTypes {
		if t.IsWork() {
			out = append(out, t)
		}
	}
	return out
}

type AgentRole string

const (
	RoleAgent      AgentRole = "agent"
	RoleSupervisor AgentRole = "supervisor"
	RoleAdmin      AgentRole = "admin"
)

// ValidAgentRoles is the canonical set of accepted role strings.
var ValidAgentRoles = map[string]bool{
	"agent": true, "supervisor": true, "admin": true,
}

type CallOutcome string

const (
	OutcomeInterested    CallOutcome = "interested"
	OutcomeNotInterested CallOutcome = "not_interested"
	OutcomeCallback      CallOutcome = "callback"
	OutcomeNoAnswer      CallOutcome = "no_answer"
	OutcomeWrongNumber   CallOutcome = "wrong_number"
	OutcomeConverted     CallOutcome = "converted"
)

var callOutcomeLabels = map[CallOutcome]string{
	OutcomeInterested:    "Interested",
	OutcomeNotInterested: "Not Interested",
	OutcomeCallback:      "Call Back",
	OutcomeNoAnswer:      "No Answer",
	OutcomeWrongNumber:   "Wrong Number",
	OutcomeConverted:     "Converted",
}

// AllCallOutcomes lists every call outcome in display order.
var AllCallOutcomes = []CallOutcome{
	OutcomeInterested, OutcomeNotInterested, OutcomeCallback,
	OutcomeNoAnswer, OutcomeWrongNumber, OutcomeConverted,
}

func ParseCallOutcome(s string) (CallOutcome, error) {
	o := CallOutcome(s)
	if _, ok := callOutcomeLabels[o]; !ok {
		return "", fmt.Errorf("unknown call outcome %q", s)
	}
	return o, nil
}

func (o CallOutcome) Label() string {
	if l, ok := callOutcomeLabels[o]; ok {
		return l
	}
	return string(o)
}

type AttendanceStatus string

const (
	AttendanceOff     AttendanceStatus = "off"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendancePresent AttendanceStatus = "present"
	// AttendancePending is a shift that has not started yet.
	AttendancePending AttendanceStatus = "pending"
)
