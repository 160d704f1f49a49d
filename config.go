package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/susji/tinyini"

	"github.com/susji/mathcanvas/graph"
	"github.com/susji/mathcanvas/grid"
	"github.com/susji/mathcanvas/plane"
	"github.com/susji/mathcanvas/surface"
	"github.com/susji/mathcanvas/surface/vgsurface"
)

type config_pair struct {
	value  string
	lineno int
}

type config struct {
	sections map[string]map[string][]config_pair
}

func config_empty() *config {
	return &config{sections: map[string]map[string][]config_pair{}}
}

func config_load(r io.Reader) (*config, error) {
	sections, errs := tinyini.Parse(r)
	if len(errs) != 0 {
		log.Println("errors when reading configuration file")
		for n, err := range errs {
			log.Printf("[%d] %v\n", n+1, err)
		}
		return nil, errors.New("invalid configuration file")
	}
	c := config_empty()
	for section, keys := range sections {
		c.sections[section] = map[string][]config_pair{}
		for k, pairs := range keys {
			for _, pair := range pairs {
				c.sections[section][k] = append(
					c.sections[section][k],
					config_pair{value: pair.Value, lineno: int(pair.Lineno)})
			}
		}
	}
	return c, nil
}

func config_load_file(filepath string) (*config, error) {
	if filepath == "" {
		log.Println("no configuration file given, using defaults")
		return config_empty(), nil
	}
	log.Println("attempting to read settings from ", filepath)
	f, err := os.Open(filepath)
	if err != nil {
		log.Println("cannot open configuration file for reading: ", err)
		return nil, err
	}
	defer f.Close()
	c, err := config_load(f)
	if err != nil {
		return nil, fmt.Errorf("unable to handle configuration file %q: %w", filepath, err)
	}
	return c, nil
}

func config_parse_floats(s string) ([]float64, error) {
	ret := []float64{}
	for _, raw := range strings.Split(s, ",") {
		val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, err
		}
		ret = append(ret, val)
	}
	return ret, nil
}

func config_parse_plane(s string) (*plane.Plane, error) {
	vals, err := config_parse_floats(s)
	if err != nil {
		return nil, fmt.Errorf("bad plane %q: %w", s, err)
	}
	p, err := plane.FromSlice(vals)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func config_parse_side(s string) (int, error) {
	val, err := strconv.Atoi(s)
	if err == nil && (val <= 0 || val > MAX_CANVAS_SIDE) {
		err = fmt.Errorf("must be within [1, %d]", MAX_CANVAS_SIDE)
	}
	return val, err
}

func (c *config) parse_canvas() (*config_canvas, error) {
	ret := &config_canvas{
		width:      DEFAULT_CANVAS_WIDTH,
		height:     DEFAULT_CANVAS_HEIGHT,
		format:     DEFAULT_CANVAS_FORMAT,
		background: surface.MustParseColor(DEFAULT_CANVAS_BG),
		margin:     DEFAULT_CANVAS_MARGIN,
	}

	in_err := false

	for k, pairs := range c.sections["canvas"] {
		for _, pair := range pairs {
			var err error
			switch k {
			case "fit_parent":
				ret.fit_parent, err = strconv.ParseBool(pair.value)
			case "width":
				ret.width, err = config_parse_side(pair.value)
			case "height":
				ret.height, err = config_parse_side(pair.value)
			case "format":
				ret.format, err = vgsurface.NormalizeFormat(pair.value)
			case "background":
				ret.background, err = surface.ParseColor(pair.value)
			case "margin":
				ret.margin, err = strconv.Atoi(pair.value)
				if err == nil && ret.margin < 0 {
					err = errors.New("must not be negative")
				}
			default:
				err = fmt.Errorf("%d: unrecognized config item: %s",
					pair.lineno, k)
			}
			if err != nil {
				log.Printf("%s: invalid value: %v", k, err)
				in_err = true
			}
		}
	}
	if in_err {
		return nil, errors.New("parsing canvas config failed")
	}
	return ret, nil
}

func (c *config) parse_grid() (grid.Options, error) {
	ret := grid.DefaultOptions()

	in_err := false

	for k, pairs := range c.sections["grid"] {
		for _, pair := range pairs {
			if err := ret.Set(k, pair.value); err != nil {
				log.Printf("%d: %s: invalid value: %v", pair.lineno, k, err)
				in_err = true
			}
		}
	}
	if in_err {
		return grid.Options{}, errors.New("parsing grid config failed")
	}
	if err := ret.Validate(); err != nil {
		return grid.Options{}, err
	}
	return ret, nil
}

func (c *config) parse_plot() (*config_plot, error) {
	ret := &config_plot{
		style:      DEFAULT_PLOT_STYLE,
		color:      graph.DefaultColor,
		dot_radius: graph.DefaultDotRadius,
		autofit:    true,
	}

	in_err := false

	for k, pairs := range c.sections["plot"] {
		for _, pair := range pairs {
			var err error
			switch k {
			case "style":
				ret.style, err = graph.ParseStyle(pair.value)
			case "color":
				ret.color, err = surface.ParseColor(pair.value)
			case "dot_radius":
				ret.dot_radius, err = strconv.ParseFloat(pair.value, 64)
				if err == nil && ret.dot_radius <= 0 {
					err = errors.New("must be greater than zero")
				}
			case "autofit":
				ret.autofit, err = strconv.ParseBool(pair.value)
			case "plane":
				ret.plane, err = config_parse_plane(pair.value)
			case "demo":
				ret.demo = strings.ToLower(strings.TrimSpace(pair.value))
				if _, ok := demos[ret.demo]; !ok {
					err = fmt.Errorf("unknown demo %q", pair.value)
				}
			case "sample":
				var s graph.Sample
				s, err = graph.ParseSample(pair.value)
				if err == nil {
					ret.samples = append(ret.samples, s)
				}
			default:
				err = fmt.Errorf("%d: unrecognized config item: %s",
					pair.lineno, k)
			}
			if err != nil {
				log.Printf("%s: invalid value: %v", k, err)
				in_err = true
			}
		}
	}
	if in_err {
		return nil, errors.New("parsing plot config failed")
	}
	if ret.demo != "" && len(ret.samples) > 0 {
		return nil, errors.New("plot config has both a demo and samples")
	}
	return ret, nil
}

func (c *config) parse_journal() (*config_journal, error) {
	ret := &config_journal{
		retention_time: DEFAULT_RETENTION_TIME,
		prune_period:   DEFAULT_PRUNE_PERIOD,
	}

	in_err := false

	for k, pairs := range c.sections["journal"] {
		for _, pair := range pairs {
			var err error
			switch k {
			case "path":
				ret.path = pair.value
			case "retention":
				ret.retention_time, err = time.ParseDuration(pair.value)
			case "prune_period":
				ret.prune_period, err = time.ParseDuration(pair.value)
				if err == nil && ret.prune_period.Seconds() < 1 {
					err = errors.New("must be at least 1 second")
				}
			default:
				err = fmt.Errorf("%d: unrecognized config item: %s",
					pair.lineno, k)
			}
			if err != nil {
				log.Printf("%s: invalid value: %v", k, err)
				in_err = true
			}
		}
	}
	if in_err {
		return nil, errors.New("parsing journal config failed")
	}
	return ret, nil
}

type config_all struct {
	canvas  *config_canvas
	grid    grid.Options
	plot    *config_plot
	journal *config_journal
}

// parse_all runs every section parser so that all problems are logged
// before giving up.
func (c *config) parse_all() (*config_all, error) {
	ret := &config_all{}
	in_err := false
	var err error
	if ret.canvas, err = c.parse_canvas(); err != nil {
		log.Println(err)
		in_err = true
	}
	if ret.grid, err = c.parse_grid(); err != nil {
		log.Println(err)
		in_err = true
	}
	if ret.plot, err = c.parse_plot(); err != nil {
		log.Println(err)
		in_err = true
	}
	if ret.journal, err = c.parse_journal(); err != nil {
		log.Println(err)
		in_err = true
	}
	for section := range c.sections {
		switch section {
		case "", "canvas", "grid", "plot", "journal":
		default:
			log.Printf("unrecognized config section: %s", section)
			in_err = true
		}
	}
	if len(c.sections[""]) > 0 {
		log.Println("configuration items must be placed in a section")
		in_err = true
	}
	if in_err {
		return nil, errors.New("invalid configuration")
	}
	return ret, nil
}
