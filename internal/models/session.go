package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// WorkoutSession is one completed training session. Sessions are immutable
// after completion; the only mutation the API allows is deletion.
type WorkoutSession struct {
	ID          string     `json:"id"`
	ProgramName string     `json:"programName,omitempty"`
	Exercises   []Exercise `json:"exercises"`
	StartTime   *time.Time `json:"startTime,omitempty"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	DurationSec int        `json:"duration,omitempty"`
}

// Exercise is one movement performed during a session. Name is the grouping
// key for all analytics: case-sensitive, exact match, no normalization.
type Exercise struct {
	Name string `json:"name"`
	Sets []Set  `json:"sets"`
}

// Set is one performed set. Weight and Reps tolerate string-typed values in
// the source documents (client exports carry both shapes).
type Set struct {
	Weight    FlexFloat `json:"weight"`
	Reps      FlexInt   `json:"reps"`
	Completed bool      `json:"completed"`
}

// FlexFloat decodes from a JSON number or a numeric string. Unparseable
// values decode to 0 rather than failing the whole document.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

// FlexInt decodes from a JSON number or a numeric string, truncating
// fractional values. Unparseable values decode to 0.
type FlexInt int

func (i *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		*i = 0
		return nil
	}
	if v, err := strconv.Atoi(s); err == nil {
		*i = FlexInt(v)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*i = FlexInt(int(v))
		return nil
	}
	*i = 0
	return nil
}

// sessionDoc mirrors WorkoutSession but keeps timestamps raw so malformed
// values degrade to nil instead of failing the decode.
type sessionDoc struct {
	ID          string          `json:"id"`
	ProgramName string          `json:"programName"`
	Exercises   []Exercise      `json:"exercises"`
	StartTime   json.RawMessage `json:"startTime"`
	EndTime     json.RawMessage `json:"endTime"`
	CompletedAt json.RawMessage `json:"completedAt"`
	DurationSec FlexInt         `json:"duration"`
}

// UnmarshalJSON decodes a session document defensively: timestamps may be
// RFC 3339 strings, unix epoch millis, or garbage; garbage becomes nil.
func (ws *WorkoutSession) UnmarshalJSON(data []byte) error {
	var doc sessionDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	ws.ID = doc.ID
	ws.ProgramName = doc.ProgramName
	ws.Exercises = doc.Exercises
	ws.DurationSec = int(doc.DurationSec)
	ws.StartTime = parseFlexTimestamp(doc.StartTime)
	ws.EndTime = parseFlexTimestamp(doc.EndTime)
	ws.CompletedAt = parseFlexTimestamp(doc.CompletedAt)
	return nil
}

// parseFlexTimestamp accepts RFC 3339 (with or without sub-second precision),
// plain dates, and unix epoch milliseconds. Anything else is nil.
func parseFlexTimestamp(raw json.RawMessage) *time.Time {
	s := strings.Trim(string(bytes.TrimSpace(raw)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		t := time.UnixMilli(ms).UTC()
		return &t
	}
	return nil
}
