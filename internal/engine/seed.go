package engine

import (
	"context"
	"errors"

	"skillswap/internal/domain"
	"skillswap/internal/repo"
)

// NeighborID owns the sample tasks created by Seed.
const NeighborID = "neighbor-user-456"

var sampleTasks = []TaskInput{
	{Title: "Help moving a sofa", Description: "Need a second pair of hands for a third floor walk-up.", Tags: []string{"moving", "lifting"}, Location: "Downtown", Time: "Saturday morning"},
	{Title: "Beginner guitar lesson", Description: "Looking for someone to show me the first chords.", Tags: []string{"music", "teaching"}, Location: "Online", Time: "Weekday evenings"},
	{Title: "Fix a leaking tap", Description: "Kitchen tap drips constantly, probably a worn washer.", Tags: []string{"plumbing", "repair"}, Location: "Riverside", Time: "Any afternoon"},
}

// Seed makes sure identityID has a profile and that a neighbor with a
// few open tasks exists. It is safe to run on every start.
func (e Engine) Seed(ctx context.Context, identityID string, profile UserInput) error {
	if _, err := e.Repo.GetUser(ctx, identityID); errors.Is(err, repo.ErrNotFound) {
		if _, err := e.CreateUser(ctx, identityID, profile); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	if _, err := e.Repo.GetUser(ctx, NeighborID); err == nil {
		return nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if _, err := e.CreateUser(ctx, NeighborID, UserInput{FullName: "Nia Neighbor", Email: "nia@example.com", Skill: "handyman"}); err != nil {
		return err
	}
	for _, in := range sampleTasks {
		if _, err := e.CreateTask(ctx, NeighborID, in); err != nil {
			return err
		}
	}
	return nil
}

// LatestEvents returns the newest audit entries.
func (e Engine) LatestEvents(ctx context.Context, limit int, evtType string) ([]domain.Event, error) {
	return e.Repo.LatestEvents(ctx, limit, evtType, "", "")
}
