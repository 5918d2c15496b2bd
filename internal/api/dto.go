package api

import (
	"github.com/starford/arbor/internal/analysis"
	"github.com/starford/arbor/internal/noteservice"
	"github.com/starford/arbor/internal/viewer"
)

// ViewResponse is the resolved viewer state (aliased from the domain layer).
type ViewResponse = noteservice.View

// NodeResponse describes one record and its tree metrics.
type NodeResponse = viewer.Details

// RootsResponse lists the root names.
type RootsResponse struct {
	Roots []string `json:"roots" validate:"required"`
}

// StatsResponse summarises the collection.
type StatsResponse = analysis.Stats

// ReloadResponse reports the outcome of POST /api/reload.
type ReloadResponse = noteservice.ReloadResult
