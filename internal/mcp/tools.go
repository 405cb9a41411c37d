package mcp

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/liftlog/internal/analytics"
	"github.com/claude/liftlog/internal/models"
)

// defaultTimeRange returns start/end defaulting to the last 90 days, the
// same window the REST API uses.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -90)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse("2006-01-02", s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetSessions = mcp.NewTool("get_sessions",
	mcp.WithDescription("Query workout sessions with an optional program filter. Returns session summaries including program, completion time, duration, and the full exercise/set payload."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date (ISO 8601 or YYYY-MM-DD). Defaults to now.")),
	mcp.WithString("program", mcp.Description("Filter by program name. Empty or 'all' returns every program.")),
)

var toolGetProgress = mcp.NewTool("get_progress",
	mcp.WithDescription("Per-exercise strength progress. Returns chronological points per exercise with weight, reps, estimated one-rep max (Epley), and volume for the best set of each session."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("program", mcp.Description("Filter by program name. Empty or 'all' returns every program.")),
	mcp.WithString("exercise", mcp.Description("Filter by exact exercise name.")),
)

var toolGetChartSeries = mcp.NewTool("get_chart_series",
	mcp.WithDescription("Chart-ready series for the most-trained exercises: top 4 by session count, minimum 2 data points each, last 10 points per series."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("program", mcp.Description("Filter by program name. Empty or 'all' returns every program.")),
	mcp.WithString("exercise", mcp.Description("Filter by exact exercise name.")),
)

var toolGetCalendar = mcp.NewTool("get_calendar",
	mcp.WithDescription("Monthly workout calendar as a 6-week grid of Monday-first weeks. Each cell marks whether a workout was completed that day."),
	mcp.WithNumber("month", mcp.Description("Month (1-12). Defaults to the current month.")),
	mcp.WithNumber("year", mcp.Description("Four-digit year. Defaults to the current year.")),
)

var toolGetPersonalRecords = mcp.NewTool("get_personal_records",
	mcp.WithDescription("All-time personal records per exercise: heaviest weight, best estimated one-rep max, and best single-set volume."),
)

var toolGetGoals = mcp.NewTool("get_goals",
	mcp.WithDescription("Training goals with target values, current progress, and achievement timestamps."),
)

var toolGetMeasurements = mcp.NewTool("get_measurements",
	mcp.WithDescription("Body measurement log entries (body weight, body fat, girths) over a time range."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 90 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List the distinct program names appearing in logged sessions."),
)

// --- Tool handlers ---

// loadSessions queries sessions in range and decodes their exercise payloads.
func (h *handlers) loadSessions(ctx context.Context, start, end time.Time, uid int, program string) ([]models.WorkoutSession, error) {
	rows, err := h.ds.QuerySessions(ctx, start, end, uid, program)
	if err != nil {
		return nil, err
	}
	return analytics.LoadSessions(rows, h.log), nil
}

func (h *handlers) getSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	program := req.GetString("program", "")

	sessions, err := h.loadSessions(ctx, start, end, uid, program)
	if err != nil {
		h.log.Error("mcp get_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	program := req.GetString("program", "")
	exercise := req.GetString("exercise", "")

	sessions, err := h.loadSessions(ctx, start, end, uid, program)
	if err != nil {
		h.log.Error("mcp get_progress", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	progress := analytics.AggregateProgress(sessions, program, exercise)

	result, err := mcp.NewToolResultJSON(progress)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getChartSeries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)
	program := req.GetString("program", "")
	exercise := req.GetString("exercise", "")

	sessions, err := h.loadSessions(ctx, start, end, uid, program)
	if err != nil {
		h.log.Error("mcp get_chart_series", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	series := analytics.BuildChartSeries(sessions, program, exercise)

	result, err := mcp.NewToolResultJSON(series)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getCalendar(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now()
	month := time.Month(req.GetInt("month", int(now.Month())))
	year := req.GetInt("year", now.Year())

	uid := UserIDFromContext(ctx)

	// The 42-cell grid can reach up to 6 days before the 1st and past the
	// end of the month, so pad the query window on both sides.
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	start := first.AddDate(0, 0, -7)
	end := first.AddDate(0, 0, 42)

	sessions, err := h.loadSessions(ctx, start, end, uid, "")
	if err != nil {
		h.log.Error("mcp get_calendar", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	weeks := analytics.BuildGrid(month, year, analytics.WorkoutDates(sessions), now)

	result, err := mcp.NewToolResultJSON(map[string]any{
		"month": int(month),
		"year":  year,
		"weeks": weeks,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getPersonalRecords(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	records, err := h.ds.QueryPersonalRecords(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_personal_records", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(records)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getGoals(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	goals, err := h.ds.QueryGoals(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_goals", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(goals)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getMeasurements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)

	measurements, err := h.ds.QueryMeasurements(ctx, start, end, uid)
	if err != nil {
		h.log.Error("mcp get_measurements", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(measurements)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listPrograms(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	uid := UserIDFromContext(ctx)

	names, err := h.ds.ListProgramNames(ctx, uid)
	if err != nil {
		h.log.Error("mcp list_programs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(names)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
