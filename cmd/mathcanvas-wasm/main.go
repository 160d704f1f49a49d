//go:build js && wasm

// Command mathcanvas-wasm publishes grid and graph canvases to JavaScript as
// the global object "mathcanvas".
package main

import (
	"fmt"
	"log"
	"syscall/js"

	"github.com/susji/mathcanvas/canvas"
	"github.com/susji/mathcanvas/graph"
	"github.com/susji/mathcanvas/grid"
	"github.com/susji/mathcanvas/plane"
	"github.com/susji/mathcanvas/surface"
	"github.com/susji/mathcanvas/surface/jscanvas"
)

var (
	canvases = map[string]*canvas.Canvas{}
	grids    = map[string]*grid.Grid{}
	graphs   = map[string]*graph.Graph{}
)

func jsError(err error) map[string]any {
	return map[string]any{
		"success": false,
		"error":   err.Error(),
	}
}

func jsSuccess(data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	data["success"] = true
	return data
}

// parent resolves an element or an element id.
func parent(v js.Value) (js.Value, error) {
	if v.Type() == js.TypeString {
		el := js.Global().Get("document").Call("getElementById", v.String())
		if el.IsNull() {
			return js.Null(), fmt.Errorf("no element #%s", v.String())
		}
		return el, nil
	}
	if v.Type() != js.TypeObject {
		return js.Null(), fmt.Errorf("%w: parent must be an element or an id", plane.ErrInvalidArgument)
	}
	return v, nil
}

// flatten turns nested option objects into dotted keys, for example
// {gridLines: {verti: {lineColor: "red"}}} into gridLines.verti.lineColor.
func flatten(prefix string, v js.Value, out map[string]string) {
	if v.Type() != js.TypeObject {
		out[prefix] = js.Global().Call("String", v).String()
		return
	}
	keys := js.Global().Get("Object").Call("keys", v)
	for i := 0; i < keys.Length(); i++ {
		k := keys.Index(i).String()
		if prefix != "" {
			k = prefix + "." + k
		}
		flatten(k, v.Get(keys.Index(i).String()), out)
	}
}

func newCanvas(args []js.Value) (*canvas.Canvas, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: a parent is required", plane.ErrMissingPrecondition)
	}
	p, err := parent(args[0])
	if err != nil {
		return nil, err
	}
	id := canvas.NewID()
	if len(args) > 1 && args[1].Type() == js.TypeString {
		id = args[1].String()
	}
	if _, ok := canvases[id]; ok {
		return nil, fmt.Errorf("%w: canvas #%s exists", plane.ErrInvalidArgument, id)
	}
	s, err := jscanvas.New(p, id, 100, 100)
	if err != nil {
		return nil, err
	}
	c, err := canvas.New(s, id, canvas.DefaultOptions())
	if err != nil {
		return nil, err
	}
	c.Manager().SetNotifier(plane.LogNotifier{})
	canvases[id] = c
	return c, nil
}

// newGrid(parent, id?, options?)
func newGrid(this js.Value, args []js.Value) any {
	opts := grid.DefaultOptions()
	if len(args) > 2 && args[2].Type() == js.TypeObject {
		flat := map[string]string{}
		flatten("", args[2], flat)
		for k, v := range flat {
			if err := opts.Set(k, v); err != nil {
				return jsError(err)
			}
		}
	}
	c, err := newCanvas(args)
	if err != nil {
		return jsError(err)
	}
	g, err := grid.New(c, opts)
	if err != nil {
		return jsError(err)
	}
	grids[c.ID()] = g
	return jsSuccess(map[string]any{"id": c.ID()})
}

// newGraph(parent, id?) creates a graph on a canvas of its own, while
// newGraph(gridId) plots on top of an existing grid.
func newGraph(this js.Value, args []js.Value) any {
	if len(args) == 1 && args[0].Type() == js.TypeString {
		if c, ok := canvases[args[0].String()]; ok {
			if _, ok := graphs[c.ID()]; ok {
				return jsError(fmt.Errorf("%w: #%s already has a graph", plane.ErrInvalidArgument, c.ID()))
			}
			graphs[c.ID()] = graph.New(c)
			return jsSuccess(map[string]any{"id": c.ID()})
		}
	}
	c, err := newCanvas(args)
	if err != nil {
		return jsError(err)
	}
	graphs[c.ID()] = graph.New(c)
	return jsSuccess(map[string]any{"id": c.ID()})
}

func withCanvas(fn func(c *canvas.Canvas, args []js.Value) (map[string]any, error)) js.Func {
	return js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 || args[0].Type() != js.TypeString {
			return jsError(fmt.Errorf("%w: canvas id required", plane.ErrInvalidArgument))
		}
		c, ok := canvases[args[0].String()]
		if !ok {
			return jsError(fmt.Errorf("%w: no canvas #%s", plane.ErrInvalidArgument, args[0].String()))
		}
		ret, err := fn(c, args[1:])
		if err != nil {
			return jsError(err)
		}
		return jsSuccess(ret)
	})
}

func withGraph(fn func(g *graph.Graph, args []js.Value) (map[string]any, error)) js.Func {
	return withCanvas(func(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
		g, ok := graphs[c.ID()]
		if !ok {
			return nil, fmt.Errorf("%w: #%s has no graph", plane.ErrMissingPrecondition, c.ID())
		}
		return fn(g, args)
	})
}

func numbers(args []js.Value, n int) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("%w: %d numbers required", plane.ErrInvalidArgument, n)
	}
	ret := make([]float64, n)
	for i := range ret {
		if args[i].Type() != js.TypeNumber {
			return nil, fmt.Errorf("%w: argument %d is not a number", plane.ErrInvalidArgument, i+1)
		}
		ret[i] = args[i].Float()
	}
	return ret, nil
}

func planeValue(p plane.Plane) []any {
	ret := []any{}
	for _, v := range p.Slice() {
		ret = append(ret, v)
	}
	return ret
}

func setPlane(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	if len(args) == 0 || args[0].IsUndefined() {
		return nil, c.Manager().SetDefaultPlane()
	}
	arr := args[0]
	if arr.Type() != js.TypeObject {
		return nil, fmt.Errorf("%w: plane must be [xMin, yMin, xMax, yMax]", plane.ErrInvalidArgument)
	}
	vals := make([]js.Value, arr.Length())
	for i := range vals {
		vals[i] = arr.Index(i)
	}
	nums, err := numbers(vals, 4)
	if err != nil {
		return nil, err
	}
	p, err := plane.FromSlice(nums)
	if err != nil {
		return nil, err
	}
	return nil, c.SetPlane(p)
}

func getPlane(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	return map[string]any{"plane": planeValue(c.Plane())}, nil
}

func translate(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	d, err := numbers(args, 2)
	if err != nil {
		return nil, err
	}
	return nil, c.Manager().Translate(d[0], d[1])
}

func renderOnChange(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	if len(args) < 1 || args[0].Type() != js.TypeBoolean {
		return nil, fmt.Errorf("%w: a boolean is required", plane.ErrInvalidArgument)
	}
	c.Manager().SetRenderOnChange(args[0].Bool())
	return nil, nil
}

func setXStep(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	s, err := numbers(args, 1)
	if err != nil {
		return nil, err
	}
	return nil, c.Manager().SetXStep(s[0])
}

func setYStep(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	s, err := numbers(args, 1)
	if err != nil {
		return nil, err
	}
	return nil, c.Manager().SetYStep(s[0])
}

func autoStep(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	return nil, c.Manager().AutoStep()
}

func squarePlane(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	preserveX := true
	if len(args) > 0 && args[0].Type() == js.TypeBoolean {
		preserveX = args[0].Bool()
	}
	return nil, c.Manager().SquarePlane(preserveX)
}

func redraw(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	return nil, c.Manager().Redraw()
}

func setSize(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	d, err := numbers(args, 2)
	if err != nil {
		return nil, err
	}
	return nil, c.SetSize(int(d[0]), int(d[1]))
}

func setSizeToParent(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	return nil, c.SetSizeToParent()
}

func clearCanvas(c *canvas.Canvas, args []js.Value) (map[string]any, error) {
	c.Clear()
	return nil, nil
}

func setValues(g *graph.Graph, args []js.Value) (map[string]any, error) {
	if len(args) < 1 || args[0].Type() != js.TypeObject {
		return nil, fmt.Errorf("%w: an array of [x, y] pairs is required", plane.ErrInvalidArgument)
	}
	arr := args[0]
	raw := make([][]any, arr.Length())
	for i := range raw {
		pair := arr.Index(i)
		if pair.Type() != js.TypeObject {
			return nil, fmt.Errorf("%w: sample %d is not a pair", plane.ErrInvalidArgument, i)
		}
		for j := 0; j < pair.Length(); j++ {
			v := pair.Index(j)
			if v.Type() == js.TypeNumber {
				raw[i] = append(raw[i], v.Float())
			} else {
				raw[i] = append(raw[i], v.String())
			}
		}
	}
	vals, err := graph.ParseSamples(raw)
	if err != nil {
		return nil, err
	}
	return nil, g.SetValues(vals)
}

func setStyle(g *graph.Graph, args []js.Value) (map[string]any, error) {
	if len(args) < 1 {
		return nil, fmt.Errorf("%w: a style is required", plane.ErrInvalidArgument)
	}
	s, err := graph.ParseStyle(args[0].String())
	if err != nil {
		return nil, err
	}
	g.SetStyle(s)
	return nil, nil
}

func setColor(g *graph.Graph, args []js.Value) (map[string]any, error) {
	if len(args) < 1 || args[0].IsUndefined() || args[0].IsNull() {
		g.SetColor(nil)
		return nil, nil
	}
	col, err := surface.ParseColor(args[0].String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", plane.ErrInvalidArgument, err)
	}
	g.SetColor(col)
	return nil, nil
}

func setDotRadius(g *graph.Graph, args []js.Value) (map[string]any, error) {
	r, err := numbers(args, 1)
	if err != nil {
		return nil, err
	}
	return nil, g.SetDotRadius(r[0])
}

func plot(g *graph.Graph, args []js.Value) (map[string]any, error) {
	autoFit := len(args) > 0 && args[0].Type() == js.TypeBoolean && args[0].Bool()
	return nil, g.Plot(autoFit)
}

func main() {
	mc := js.ValueOf(map[string]any{
		"version":  "0.1.0",
		"newGrid":  js.FuncOf(newGrid),
		"newGraph": js.FuncOf(newGraph),

		"setPlane":        withCanvas(setPlane),
		"getPlane":        withCanvas(getPlane),
		"translate":       withCanvas(translate),
		"renderOnChange":  withCanvas(renderOnChange),
		"setXStep":        withCanvas(setXStep),
		"setYStep":        withCanvas(setYStep),
		"autoStep":        withCanvas(autoStep),
		"squarePlane":     withCanvas(squarePlane),
		"redraw":          withCanvas(redraw),
		"setSize":         withCanvas(setSize),
		"setSizeToParent": withCanvas(setSizeToParent),
		"clear":           withCanvas(clearCanvas),

		"setValues":    withGraph(setValues),
		"setStyle":     withGraph(setStyle),
		"setColor":     withGraph(setColor),
		"setDotRadius": withGraph(setDotRadius),
		"plot":         withGraph(plot),
	})
	js.Global().Set("mathcanvas", mc)
	log.Println("mathcanvas initialized")

	select {}
}
