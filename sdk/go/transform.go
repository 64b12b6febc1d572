package skillswapsdk

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TaskList is the stable shape views read task lists from.
type TaskList struct {
	Tasks []Task `json:"tasks"`
	Count int    `json:"count"`
}

// RatingList is the stable shape views read rating lists from.
type RatingList struct {
	Ratings    []Rating   `json:"ratings"`
	Count      int        `json:"count"`
	Statistics Statistics `json:"statistics"`
}

// TransformTaskList normalizes the task payloads the backend returns.
// It prefers "tasks", then "items", then treats the payload as a single task.
func TransformTaskList(payload []byte) TaskList {
	fields, arr, ok := splitPayload(payload)
	if !ok {
		return TaskList{Tasks: []Task{}}
	}
	if arr != nil {
		tasks := decodeElements[Task](arr)
		return TaskList{Tasks: tasks, Count: len(tasks)}
	}
	var tasks []Task
	for _, key := range []string{"tasks", "items"} {
		if seq, ok := decodeSequence[Task](fields[key]); ok {
			tasks = seq
			break
		}
	}
	if tasks == nil {
		var single Task
		_ = json.Unmarshal(payload, &single)
		tasks = []Task{single}
	}
	return TaskList{Tasks: tasks, Count: countOr(fields["count"], len(tasks))}
}

// TransformRatingList normalizes rating payloads, defaulting statistics to zero values.
func TransformRatingList(payload []byte) RatingList {
	fields, arr, ok := splitPayload(payload)
	if !ok {
		return RatingList{Ratings: []Rating{}}
	}
	if arr != nil {
		ratings := decodeElements[Rating](arr)
		return RatingList{Ratings: ratings, Count: len(ratings)}
	}
	ratings, found := decodeSequence[Rating](fields["ratings"])
	if !found {
		var single Rating
		_ = json.Unmarshal(payload, &single)
		ratings = []Rating{single}
	}
	var stats Statistics
	if raw, ok := fields["statistics"]; ok && !isNull(raw) {
		_ = json.Unmarshal(raw, &stats)
	}
	return RatingList{Ratings: ratings, Count: countOr(fields["count"], len(ratings)), Statistics: stats}
}

// FilterTasks keeps tasks whose title or any tag contains query, ignoring case.
func FilterTasks(tasks []Task, query string) []Task {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return tasks
	}
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if taskMatches(t, q) {
			out = append(out, t)
		}
	}
	return out
}

func taskMatches(t Task, q string) bool {
	if strings.Contains(strings.ToLower(t.Title), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// splitPayload returns the top-level object fields or array elements.
func splitPayload(payload []byte) (map[string]json.RawMessage, []json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, nil, false
	}
	switch trimmed[0] {
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &fields); err != nil {
			return nil, nil, false
		}
		return fields, nil, true
	case '[':
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err != nil {
			return nil, nil, false
		}
		if arr == nil {
			arr = []json.RawMessage{}
		}
		return nil, arr, true
	default:
		return nil, nil, false
	}
}

func decodeSequence[T any](raw json.RawMessage) ([]T, bool) {
	if len(raw) == 0 || isNull(raw) {
		return nil, false
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(raw, &arr); err != nil {
		return nil, false
	}
	return decodeElements[T](arr), true
}

// decodeElements keeps elements in order; an element that does not decode stays a zero value.
func decodeElements[T any](arr []json.RawMessage) []T {
	out := make([]T, len(arr))
	for i, el := range arr {
		_ = json.Unmarshal(el, &out[i])
	}
	return out
}

func countOr(raw json.RawMessage, fallback int) int {
	if len(raw) == 0 || isNull(raw) {
		return fallback
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err != nil {
		return fallback
	}
	return int(n)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
