//go:build openbsd

package main

import (
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const (
	promises            = "inet stdio rpath wpath cpath tmppath flock dns"
	execpromises        = ""
	unveilflags_journal = "rwc"
	unveilflags_tmp     = "rwc"
)

func protect_serve(path_journal string) error {
	if path_journal != "" {
		dir := filepath.Dir(path_journal)
		log.Printf("unveil journal directory: path=%q, flags=%q\n", dir, unveilflags_journal)
		if err := unix.Unveil(dir, unveilflags_journal); err != nil {
			return err
		}
	}
	log.Printf("unveil temp directory: path=%q, flags=%q\n", os.TempDir(), unveilflags_tmp)
	if err := unix.Unveil(os.TempDir(), unveilflags_tmp); err != nil {
		return err
	}
	if err := unix.UnveilBlock(); err != nil {
		return err
	}
	log.Printf("pledge: promises=%q, execpromises=%q\n", promises, execpromises)
	if err := unix.Pledge(promises, execpromises); err != nil {
		return err
	}
	return nil
}
