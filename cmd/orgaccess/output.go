package main

import (
	"encoding/json"
	"io"
)

type decisionOutput struct {
	Command    string `json:"command"`
	RequestID  string `json:"request_id"`
	ActorID    int64  `json:"actor_id,omitempty"`
	Right      string `json:"right,omitempty"`
	TargetID   *int64 `json:"target_id,omitempty"`
	Allowed    bool   `json:"allowed"`
	DurationMS int64  `json:"duration_ms"`
}

type bumpOutput struct {
	Command   string `json:"command"`
	RequestID string `json:"request_id"`
	Version   int64  `json:"version,omitempty"`
	TaskID    string `json:"task_id,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
