package main

import (
	"errors"
	"fmt"
	"io"
	"log"
)

func history_print(w io.Writer, entries []journal_entry) {
	for n, e := range entries {
		fmt.Fprintf(w, "%3d  %s  #%s  %s\n",
			n+1, e.ts.Local().Format(TIMESTAMP_FORMAT), e.canvas_id, e.plane)
	}
}

func history(p *params_history, w io.Writer) error {
	cfg := must_load_config(p.config_path)
	path := p.journal_path
	if path == "" {
		path = cfg.journal.path
	}
	if path == "" {
		return errors.New("no journal path given")
	}
	db, err := journal_db_init(fmt.Sprintf("%s?mode=ro", path))
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Println("warning: error when closing journal: ", err)
		}
	}()
	entries, err := journal_entries_get(db, p.limit)
	if err != nil {
		return err
	}
	history_print(w, entries)
	return nil
}
