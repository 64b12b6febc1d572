package skillswapsdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransformTaskListPrefersTasks(t *testing.T) {
	got := TransformTaskList([]byte(`{"tasks":[{"task_id":"t1"},{"task_id":"t2"}],"items":[{"task_id":"ignored"}]}`))
	require.Equal(t, TaskList{Tasks: []Task{{TaskID: "t1"}, {TaskID: "t2"}}, Count: 2}, got)
}

func TestTransformTaskListFallsBackToItems(t *testing.T) {
	got := TransformTaskList([]byte(`{"items":[{"task_id":"t1"}]}`))
	require.Equal(t, TaskList{Tasks: []Task{{TaskID: "t1"}}, Count: 1}, got)

	got = TransformTaskList([]byte(`{"tasks":null,"items":[{"task_id":"t3"}]}`))
	require.Equal(t, []Task{{TaskID: "t3"}}, got.Tasks)
}

func TestTransformTaskListWrapsBareObject(t *testing.T) {
	got := TransformTaskList([]byte(`{"task_id":"x"}`))
	require.Equal(t, TaskList{Tasks: []Task{{TaskID: "x"}}, Count: 1}, got)
}

func TestTransformTaskListCount(t *testing.T) {
	got := TransformTaskList([]byte(`{"tasks":[{"task_id":"a"}],"count":40}`))
	require.Equal(t, 40, got.Count)

	got = TransformTaskList([]byte(`{"tasks":[],"count":"many"}`))
	require.Equal(t, 0, got.Count)
	require.Empty(t, got.Tasks)
}

func TestTransformTaskListEdgePayloads(t *testing.T) {
	got := TransformTaskList([]byte(`[{"task_id":"a"},{"task_id":"b"}]`))
	require.Equal(t, 2, got.Count)
	require.Equal(t, "b", got.Tasks[1].TaskID)

	for _, payload := range []string{``, `null`, `"text"`, `{broken`} {
		got := TransformTaskList([]byte(payload))
		require.Equal(t, TaskList{Tasks: []Task{}}, got, payload)
	}
}

func TestTransformRatingListEmptyPayloadWrapsItself(t *testing.T) {
	got := TransformRatingList([]byte(`{}`))
	require.Equal(t, []Rating{{}}, got.Ratings)
	require.Equal(t, Statistics{AverageRating: 0, TotalRatings: 0}, got.Statistics)
}

func TestTransformRatingListPassesStatisticsThrough(t *testing.T) {
	payload := `{
		"ratings":[{"rating_id":"r1","rating":5},{"rating_id":"r2","rating":4}],
		"count":2,
		"statistics":{"average_rating":4.5,"total_ratings":2,"rating_distribution":{"4":1,"5":1}}
	}`
	got := TransformRatingList([]byte(payload))
	require.Len(t, got.Ratings, 2)
	require.Equal(t, 2, got.Count)
	require.Equal(t, 4.5, got.Statistics.AverageRating)
	require.Equal(t, 2, got.Statistics.TotalRatings)
	require.Equal(t, map[string]int{"4": 1, "5": 1}, got.Statistics.RatingDistribution)
}

func TestTransformRatingListDefaultsStatistics(t *testing.T) {
	got := TransformRatingList([]byte(`{"ratings":[{"rating_id":"r1"}],"statistics":null}`))
	require.Equal(t, Statistics{}, got.Statistics)
	require.Equal(t, 1, got.Count)
}

func TestFilterTasks(t *testing.T) {
	tasks := []Task{
		{TaskID: "1", Title: "Fix my bicycle", Tags: []string{"repair"}},
		{TaskID: "2", Title: "Guitar lessons", Tags: []string{"Music", "teaching"}},
		{TaskID: "3", Title: "Garden help", Tags: nil},
	}
	require.Equal(t, tasks, FilterTasks(tasks, "  "))

	got := FilterTasks(tasks, "BICY")
	require.Len(t, got, 1)
	require.Equal(t, "1", got[0].TaskID)

	got = FilterTasks(tasks, "music")
	require.Len(t, got, 1)
	require.Equal(t, "2", got[0].TaskID)

	require.Empty(t, FilterTasks(tasks, "plumbing"))
}
