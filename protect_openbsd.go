//go:build openbsd
// +build openbsd

package main

import (
	"log"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const (
	promises_serve   = "inet stdio rpath wpath cpath tmppath flock dns"
	promises_measure = "stdio rpath wpath cpath tmppath flock proc exec"
	unveilflags_db   = "rwc"
	unveilflags_tmp  = "rwc"
)

func protect_serve(path_db string) error {
	dir_db := filepath.Dir(path_db)
	log.Printf("unveil database directory: path=%q, flags=%q\n", dir_db, unveilflags_db)
	if err := unix.Unveil(dir_db, unveilflags_db); err != nil {
		return err
	}
	log.Printf("unveil temp directory: path=%q, flags=%q\n", os.TempDir(), unveilflags_tmp)
	if err := unix.Unveil(os.TempDir(), unveilflags_tmp); err != nil {
		return err
	}
	if err := unix.UnveilBlock(); err != nil {
		return err
	}
	log.Printf("pledge: promises=%q\n", promises_serve)
	return unix.PledgePromises(promises_serve)
}

// Metric commands may read and run anything, so measure only pledges.
func protect_measure() error {
	log.Printf("pledge: promises=%q\n", promises_measure)
	return unix.PledgePromises(promises_measure)
}
