package main

import (
	"time"

	"github.com/susji/mathcanvas/graph"
	"github.com/susji/mathcanvas/surface/vgsurface"
)

const (
	FLAG_CONFIG_PATH    = "config-path"
	DEFAULT_CONFIG_PATH = ""
	HELP_CONFIG_PATH    = "Filepath to mathcanvas configuration file, empty uses built-in defaults"

	FLAG_JOURNAL_PATH    = "journal-path"
	DEFAULT_JOURNAL_PATH = ""
	HELP_JOURNAL_PATH    = "Filepath to the SQLite plane-change journal, empty disables it"

	FLAG_ADDR    = "addr"
	DEFAULT_ADDR = "localhost:15516"
	HELP_ADDR    = "Listen address for HTTP"

	FLAG_OUT    = "out"
	DEFAULT_OUT = "mathcanvas.png"
	HELP_OUT    = "Output file for the rendered canvas, - for stdout"

	FLAG_FORMAT = "format"
	HELP_FORMAT = "Output format: png, jpg, tiff, svg or pdf (default: from config or -out)"

	FLAG_LIMIT    = "limit"
	DEFAULT_LIMIT = 20
	HELP_LIMIT    = "Maximum number of journal entries to list"

	DEFAULT_ENV_FILE = ".env"

	ENV_ENV_FILE     = "MATHCANVAS_ENV_FILE"
	ENV_CONFIG       = "MATHCANVAS_CONFIG"
	ENV_JOURNAL      = "MATHCANVAS_JOURNAL"
	ENV_PERMIT_ROOT  = "MATHCANVAS_PERMIT_ROOT"
	PERMIT_ROOT_WORD = "live_dangerously"
)

const (
	DEFAULT_CANVAS_WIDTH   = 600
	DEFAULT_CANVAS_HEIGHT  = 400
	DEFAULT_CANVAS_MARGIN  = 0
	DEFAULT_CANVAS_FORMAT  = vgsurface.FormatPNG
	DEFAULT_CANVAS_BG      = "white"
	DEFAULT_PLOT_STYLE     = graph.StyleLine
	DEFAULT_DEMO_SAMPLES   = 101
	DEFAULT_RETENTION_TIME = 30 * 24 * time.Hour
	DEFAULT_PRUNE_PERIOD   = 15 * time.Minute
	DEFAULT_JOURNAL_QUEUE  = 64
	DEFAULT_REFRESH_PERIOD = 120
	MAX_CANVAS_SIDE        = 8192
	TIMESTAMP_FORMAT       = "2006-01-02 15:04:05"
)

const (
	DEMO_SINE   = "sine"
	DEMO_SQUARE = "square"
)
