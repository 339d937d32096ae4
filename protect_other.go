//go:build !openbsd
// +build !openbsd

package main

func protect_serve(path_db string) error {
	return nil
}

func protect_measure() error {
	return nil
}
