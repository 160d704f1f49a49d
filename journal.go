package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/susji/mathcanvas/plane"
)

const JOURNAL_TABLE = "mathcanvas_plane_changes"

func journal_db_init(db_path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", db_path)
	if err != nil {
		return nil, fmt.Errorf("cannot open journal: %w", err)
	}

	var db_version string
	if err := db.QueryRow("SELECT sqlite_version()").Scan(&db_version); err != nil {
		log.Println("warning: unable to get sqlite version: ", err)
	} else {
		log.Println("journal database version: ", db_version)
	}
	return db, nil
}

func journal_migrate(db *sql.DB) error {
	template_table := `
CREATE TABLE IF NOT EXISTS %s (
    id INTEGER PRIMARY KEY,
    canvas_id TEXT NOT NULL,
    x_min DOUBLE PRECISION,
    y_min DOUBLE PRECISION,
    x_max DOUBLE PRECISION,
    y_max DOUBLE PRECISION,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP);
CREATE INDEX IF NOT EXISTS index_%s_timestamp
    ON %s (timestamp);
`
	log.Println("Maybe creating journal table and indices")
	_, err := db.Exec(fmt.Sprintf(template_table, JOURNAL_TABLE, JOURNAL_TABLE, JOURNAL_TABLE))
	if err != nil {
		return fmt.Errorf("journal migration failed: %w", err)
	}
	return nil
}

func journal_entries_get(db *sql.DB, limit int) ([]journal_entry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("bad journal limit %d", limit)
	}
	q := fmt.Sprintf(`
SELECT timestamp, canvas_id, x_min, y_min, x_max, y_max FROM %s
    ORDER BY id DESC
    LIMIT ?`, JOURNAL_TABLE)
	rows, err := db.Query(q, limit)
	if err != nil {
		log.Println("journal_entries_get: unable to select rows: ", err)
		return nil, err
	}
	defer rows.Close()
	entries := []journal_entry{}
	for rows.Next() {
		var e journal_entry
		p := &e.plane
		if err := rows.Scan(&e.ts, &e.canvas_id, &p.XMin, &p.YMin, &p.XMax, &p.YMax); err != nil {
			log.Println("journal_entries_get: row scan failed: ", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func journal_writer(db *sql.DB, tasks <-chan journal_task) {
	template_insert := `INSERT INTO %s (timestamp, canvas_id, x_min, y_min, x_max, y_max) VALUES (?, ?, ?, ?, ?, ?)`
	template_prune := `DELETE FROM %s WHERE timestamp < DATETIME('now', '-%d seconds')`
	for task := range tasks {
		switch task.kind {
		case JOURNAL_TASK_INSERT:
			e := task.insert_entry
			_, err := db.Exec(
				fmt.Sprintf(template_insert, JOURNAL_TABLE),
				e.ts.UTC().Format(TIMESTAMP_FORMAT), e.canvas_id, e.plane.XMin, e.plane.YMin, e.plane.XMax, e.plane.YMax)
			if err != nil {
				log.Printf(
					"journal insert failed for #%s with plane %s: %v\n",
					e.canvas_id, e.plane, err)
			}
		case JOURNAL_TASK_PRUNE:
			retention_period := task.prune_retention_period
			log.Printf("Pruning journal for older than %s entries.\n", retention_period)
			q := fmt.Sprintf(
				template_prune,
				JOURNAL_TABLE,
				int64(retention_period/time.Second))
			if _, err := db.Exec(q); err != nil {
				log.Println("Pruning failed: ", err)
			}
		default:
			panic(fmt.Sprintf("This is a bug: journal_task.kind == %d", task.kind))
		}
	}
}

func journal_pruner(ctx context.Context, tasks chan<- journal_task,
	retention_period, prune_period time.Duration) {

	log.Println("Entering journal pruning loop with period of ", prune_period)
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(prune_period):
			select {
			case <-ctx.Done():
				return
			case tasks <- journal_task{
				kind:                   JOURNAL_TASK_PRUNE,
				prune_retention_period: retention_period,
			}:
			}
		}
	}
}

// journal records plane changes into SQLite. Writes happen in a separate
// goroutine so that drawing never waits for the database.
type journal struct {
	db     *sql.DB
	tasks  chan journal_task
	cancel context.CancelFunc

	writer_done, pruner_done chan struct{}

	mu     sync.Mutex
	closed bool
}

func journal_open(ctx context.Context, jc *config_journal) (*journal, error) {
	db, err := journal_db_init(jc.path)
	if err != nil {
		return nil, err
	}
	if err := journal_migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	j := &journal{
		db:          db,
		tasks:       make(chan journal_task, DEFAULT_JOURNAL_QUEUE),
		cancel:      cancel,
		writer_done: make(chan struct{}),
		pruner_done: make(chan struct{}),
	}
	go func() {
		defer close(j.writer_done)
		journal_writer(db, j.tasks)
	}()
	go func() {
		defer close(j.pruner_done)
		journal_pruner(ctx, j.tasks, jc.retention_time, jc.prune_period)
	}()
	return j, nil
}

// PlaneChanged queues a journal entry without blocking. When the queue is
// full the entry is dropped.
func (j *journal) PlaneChanged(id string, p plane.Plane) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return errors.New("journal is closed")
	}
	select {
	case j.tasks <- journal_task{
		kind:         JOURNAL_TASK_INSERT,
		insert_entry: journal_entry{ts: time.Now(), canvas_id: id, plane: p},
	}:
		return nil
	default:
		log.Printf("journal queue full, dropping plane %s of #%s\n", p, id)
		return errors.New("journal queue full")
	}
}

// close flushes queued entries and closes the database.
func (j *journal) close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	j.mu.Unlock()

	j.cancel()
	<-j.pruner_done
	close(j.tasks)
	<-j.writer_done
	if err := j.db.Close(); err != nil {
		log.Println("warning: error when closing journal: ", err)
		return err
	}
	return nil
}
