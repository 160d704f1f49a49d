package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/susji/mathcanvas/surface/vgsurface"
)

// render_format picks the output format: an explicit one wins, then the
// output file extension, then the configured format.
func render_format(explicit, out, configured string) (string, error) {
	if explicit != "" {
		return vgsurface.NormalizeFormat(explicit)
	}
	if ext := strings.TrimPrefix(filepath.Ext(out), "."); ext != "" {
		if f, err := vgsurface.NormalizeFormat(ext); err == nil {
			return f, nil
		}
	}
	return vgsurface.NormalizeFormat(configured)
}

func render_to(cfg *config_all, w io.Writer, j *journal) error {
	sc, err := scene_build(cfg, journal_notifier(j))
	if err != nil {
		return err
	}
	return sc.write(w)
}

func render(p *params_render) error {
	cfg := must_load_config(p.config_path)
	if p.journal_path != "" {
		cfg.journal.path = p.journal_path
	}
	format, err := render_format(p.format, p.out, cfg.canvas.format)
	if err != nil {
		return err
	}
	cfg.canvas.format = format

	var j *journal
	if cfg.journal.path != "" {
		j, err = journal_open(context.Background(), cfg.journal)
		if err != nil {
			return err
		}
		defer j.close()
	}

	var w io.Writer = os.Stdout
	if p.out != "-" {
		f, err := os.Create(p.out)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Println("warning: error when closing output: ", err)
			}
		}()
		w = f
	}
	if err := render_to(cfg, w, j); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	log.Printf("rendered %s canvas into %s\n", format, p.out)
	return nil
}
