package log

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// runID correlates every line emitted by one interpreter session.
var runID = uuid.NewString()

type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	RunID     string         `json:"run_id"`
	Verb      string         `json:"verb,omitempty"`
	Action    string         `json:"action,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func write(level, verb, action string, latency time.Duration, err error, fields map[string]any) {
	e := entry{
		TS:     time.Now().UTC().Format(time.RFC3339),
		Level:  level,
		RunID:  runID,
		Verb:   verb,
		Action: action,
		Fields: fields,
	}
	if latency > 0 {
		e.LatencyMs = latency.Milliseconds()
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

func Info(action string, fields map[string]any) { write("info", "", action, 0, nil, fields) }

// Command records one dispatched command with its verb and latency.
func Command(verb string, latency time.Duration, err error, fields map[string]any) {
	level := "info"
	if err != nil {
		level = "warn"
	}
	write(level, verb, "command.dispatch", latency, err, fields)
}

func Error(action string, err error, fields map[string]any) {
	write("error", "", action, 0, err, fields)
}
