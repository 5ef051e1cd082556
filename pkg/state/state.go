package state

import (
	"context"
	"errors"
)

// ErrNoSnapshot is returned by Get before any set has been published
var ErrNoSnapshot = errors.New("no set is running")

// StandingsManager provides shared access to the live standings of the running set.
// Implementations must be thread-safe.
type StandingsManager interface {
	// Get returns a copy of the current snapshot.
	Get(ctx context.Context) (*Snapshot, error)
	// Set replaces the current snapshot.
	Set(ctx context.Context, snapshot *Snapshot) error
}

type Standing struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Losses int    `json:"losses"`
}

// Snapshot is a point in time view of a match set. Remaining is the pile of
// the match in progress and zero between matches.
type Snapshot struct {
	SetID         string     `json:"setID"`
	PileSize      int        `json:"pileSize"`
	BestOf        int        `json:"bestOf"`
	MatchesPlayed int        `json:"matchesPlayed"`
	Remaining     int        `json:"remaining"`
	ActiveSeat    int        `json:"activeSeat"`
	Finished      bool       `json:"finished"`
	Standings     []Standing `json:"standings"`
}

func (s *Snapshot) Copy() *Snapshot {
	c := *s
	c.Standings = append([]Standing(nil), s.Standings...)
	return &c
}
