package main

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/susji/mathcanvas/graph"
	"github.com/susji/mathcanvas/plane"
	"github.com/susji/mathcanvas/surface/vgsurface"
)

// serve_overrides applies the query parameters of a /plot request on top of
// the configured scene.
func serve_overrides(base *config_all, v url.Values) (*config_all, error) {
	cc := *base.canvas
	pc := *base.plot
	ret := &config_all{canvas: &cc, grid: base.grid, plot: &pc, journal: base.journal}

	var err error
	for k, vals := range v {
		value := vals[0]
		switch k {
		case "style":
			pc.style, err = graph.ParseStyle(value)
		case "demo":
			pc.demo = strings.ToLower(strings.TrimSpace(value))
			if _, ok := demos[pc.demo]; !ok {
				err = fmt.Errorf("unknown demo %q", value)
			}
			pc.samples = nil
		case "plane":
			pc.plane, err = config_parse_plane(value)
		case "format":
			cc.format, err = vgsurface.NormalizeFormat(value)
		case "width":
			cc.width, err = config_parse_side(value)
		case "height":
			cc.height, err = config_parse_side(value)
		default:
			err = fmt.Errorf("unrecognized parameter: %s", k)
		}
		if err != nil {
			return nil, fmt.Errorf("bad %s: %w", k, err)
		}
	}
	return ret, nil
}

func serve_index_gen(cfg *config_all) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		fmt.Fprintf(w, `
<html>
  <head>
    <meta http-equiv="refresh" content="%d">
  </head>
  <body>
`, DEFAULT_REFRESH_PERIOD)
		indent := `    `
		plots := []url.Values{{}}
		for _, demo := range []string{DEMO_SINE, DEMO_SQUARE} {
			for _, style := range []graph.Style{graph.StyleLine, graph.StyleDot, graph.StyleTower} {
				plots = append(plots, url.Values{
					"demo":  {demo},
					"style": {style.String()},
				})
			}
		}
		for n, v := range plots {
			src := "/plot"
			if len(v) > 0 {
				src += "?" + v.Encode()
			}
			desc := "configured"
			if len(v) > 0 {
				desc = v.Get("demo") + " as " + v.Get("style")
			}
			fmt.Fprintln(w, indent, "<div>")
			fmt.Fprintln(w, indent, "<pre>", n, ": ", html.EscapeString(desc), "</pre>")
			fmt.Fprintf(w, `%s<img src="%s">`, indent, html.EscapeString(src))
			fmt.Fprintln(w)
			fmt.Fprintln(w, indent, "</div>")
		}
		fmt.Fprintf(w, `
    <hr>
    <pre>mathcanvas</pre>
    <pre>%s (autorefresh @ %d sec)</pre>
  </body>
</html>
`, time.Now().Format(TIMESTAMP_FORMAT), DEFAULT_REFRESH_PERIOD)
	}
}

func serve_plot_gen(cfg *config_all, notifier plane.Notifier) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		rcfg, err := serve_overrides(cfg, req.URL.Query())
		if err != nil {
			log.Println("serve_plot: ", err)
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, err)
			return
		}
		sc, err := scene_build(rcfg, notifier)
		if err != nil {
			log.Println("serve_plot: scene failed: ", err)
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintln(w, "cannot draw scene")
			return
		}
		b := bytes.Buffer{}
		if err := sc.write(&b); err != nil {
			log.Println("serve_plot: encoding failed: ", err)
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprintln(w, "image generation failed")
			return
		}
		gb := b.Bytes()
		w.Header().Set("Content-Type", vgsurface.ContentType(rcfg.canvas.format))
		w.Header().Set("Content-Length", strconv.Itoa(len(gb)))
		w.WriteHeader(http.StatusOK)
		w.Write(gb)
	}
}

func serve_mux(cfg *config_all, notifier plane.Notifier) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", serve_index_gen(cfg))
	mux.HandleFunc("/plot", serve_plot_gen(cfg, notifier))
	return mux
}

func serve(p *params_serve) {
	cfg := must_load_config(p.config_path)
	if p.journal_path != "" {
		cfg.journal.path = p.journal_path
	}

	var j *journal
	if cfg.journal.path != "" {
		var err error
		j, err = journal_open(context.Background(), cfg.journal)
		if err != nil {
			log.Fatal("cannot proceed with serve: ", err)
		}
		defer j.close()
	}

	if err := protect_serve(cfg.journal.path); err != nil {
		log.Fatal("cannot protect serve: ", err)
	}

	log.Println("Listening at address ", p.addr)
	if err := http.ListenAndServe(p.addr, serve_mux(cfg, journal_notifier(j))); err != nil {
		log.Println("serve: ", err)
	}
}
