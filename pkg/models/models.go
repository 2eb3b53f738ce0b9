package models

import (
	"time"

	"github.com/Utgast/cabletherm"
)

// LayerSpec describes one cable layer on the wire. Radii are millimeters,
// the unit cable datasheets use; conversion to meters happens when the
// catalog builds the solver configuration.
type LayerSpec struct {
	Name        string  `json:"name" yaml:"name"`
	Material    string  `json:"material" yaml:"material"`
	InnerRadius float64 `json:"inner_radius_mm" yaml:"inner_radius_mm"`
	OuterRadius float64 `json:"outer_radius_mm" yaml:"outer_radius_mm"`
}

// CableSpec is the wire form of a cable construction plus installation.
type CableSpec struct {
	Name            string      `json:"name" yaml:"name"`
	Layers          []LayerSpec `json:"layers" yaml:"layers"`
	ConductorAreaMM float64     `json:"conductor_area_mm2,omitempty" yaml:"conductor_area_mm2,omitempty"`
	BurialDepth     float64     `json:"burial_depth_m" yaml:"burial_depth_m"`
	Soil            string      `json:"soil" yaml:"soil"`
	System          string      `json:"system,omitempty" yaml:"system,omitempty"` // "ac" or "dc", default dc
	Frequency       float64     `json:"frequency_hz,omitempty" yaml:"frequency_hz,omitempty"`
	PhaseCount      int         `json:"phase_count,omitempty" yaml:"phase_count,omitempty"`
	PhaseSpacing    float64     `json:"phase_spacing_m,omitempty" yaml:"phase_spacing_m,omitempty"`
	DielectricLoss  float64     `json:"dielectric_loss_w_per_m,omitempty" yaml:"dielectric_loss_w_per_m,omitempty"`
	SheathLoss      float64     `json:"sheath_loss_w_per_m,omitempty" yaml:"sheath_loss_w_per_m,omitempty"`
}

// GroupMember places one cable of a trench group.
type GroupMember struct {
	Cable   string  `json:"cable,omitempty" yaml:"cable,omitempty"` // catalog name, empty = request cable
	X       float64 `json:"x_m" yaml:"x_m"`
	Y       float64 `json:"y_m,omitempty" yaml:"y_m,omitempty"` // burial depth override, 0 = layout depth
	Current float64 `json:"current_a" yaml:"current_a"`
}

// SolveRequest is the body of a solve submission. Mode selects which solver
// runs; fields irrelevant to the mode are ignored.
type SolveRequest struct {
	Mode    string     `json:"mode"` // temperature, ampacity, profile, coupled, spacing, derating
	Cable   *CableSpec `json:"cable,omitempty"`
	Catalog string     `json:"catalog,omitempty"` // built-in construction name

	// Ambient and MaxTemp are optional; nil falls back to the configured
	// defaults. Pointers keep legitimate zero values (0 °C soil) distinct
	// from absent fields.
	Ambient *float64 `json:"ambient_c,omitempty"`
	Current float64  `json:"current_a,omitempty"`
	MaxTemp *float64 `json:"max_temp_c,omitempty"`

	Group []GroupMember `json:"group,omitempty"`

	// Spacing search, spacing mode only.
	Count      int     `json:"count,omitempty"`
	MinSpacing float64 `json:"min_spacing_m,omitempty"`
	MaxSpacing float64 `json:"max_spacing_m,omitempty"`
}

// SolveResult is the outcome of one solve, stored and pushed to clients.
type SolveResult struct {
	RequestID string    `json:"request_id"`
	Mode      string    `json:"mode"`
	Cable     string    `json:"cable"`
	Time      time.Time `json:"time"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`

	Temperature *cabletherm.TempResult     `json:"temperature,omitempty"`
	Ampacity    *cabletherm.AmpacityResult `json:"ampacity,omitempty"`
	Profile     *cabletherm.Profile        `json:"profile,omitempty"`
	Coupled     *cabletherm.GroupResult    `json:"coupled,omitempty"`
	Spacing     *cabletherm.SpacingResult  `json:"spacing,omitempty"`
	Derating    *cabletherm.DeratingResult `json:"derating,omitempty"`

	ProcessingTime time.Duration `json:"processing_time_ns"`
}

// WorkItem is a solve task queued to the worker pool.
type WorkItem struct {
	RequestID string
	Request   SolveRequest
	StartTime time.Time
}

// WorkResult carries a finished solve back from the pool.
type WorkResult struct {
	RequestID      string
	Result         SolveResult
	ProcessingTime time.Duration
}

// BatchRequest bundles several solve requests submitted together.
type BatchRequest struct {
	BatchID  string         `json:"batch_id"`
	Requests []SolveRequest `json:"requests"`
}
