package main

import (
	"image/color"
	"time"

	"github.com/susji/mathcanvas/graph"
	"github.com/susji/mathcanvas/plane"
)

type config_paths struct {
	config_path, journal_path string
}

type params_render struct {
	config_paths
	out, format string
}

type params_serve struct {
	config_paths
	addr string
}

type params_view struct {
	config_paths
}

type params_history struct {
	config_paths
	limit int
}

type config_canvas struct {
	fit_parent    bool
	width, height int
	format        string
	background    color.Color
	margin        int
}

type config_plot struct {
	style      graph.Style
	color      color.Color
	dot_radius float64
	autofit    bool
	plane      *plane.Plane
	demo       string
	samples    []graph.Sample
}

type config_journal struct {
	path           string
	retention_time time.Duration
	prune_period   time.Duration
}

type journal_entry struct {
	ts        time.Time
	canvas_id string
	plane     plane.Plane
}

const (
	JOURNAL_TASK_INSERT = iota
	JOURNAL_TASK_PRUNE
)

type journal_task struct {
	kind int

	prune_retention_period time.Duration

	insert_entry journal_entry
}
