package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"syscall"
)

func make_sure_not_root() {
	if syscall.Geteuid() == 0 && os.Getenv("LILCHART_PERMIT_ROOT") != "live_dangerously" {
		log.Println("This program will not run as root.")
		os.Exit(20)
	}
}

func main() {
	var path_config string
	var p_render params_render

	if len(os.Args) <= 1 {
		fmt.Printf("usage: %s [subcommand]\n", filepath.Base(os.Args[0]))
		fmt.Println("subcommand is either `measure', `serve', `render', or `help'.")
		os.Exit(1)
	}

	cmd_measure := flag.NewFlagSet("measure", flag.ExitOnError)
	cmd_measure.StringVar(&path_config, FLAG_CONFIG_PATH, DEFAULT_CONFIG_PATH, HELP_CONFIG_PATH)

	cmd_serve := flag.NewFlagSet("serve", flag.ExitOnError)
	cmd_serve.StringVar(&path_config, FLAG_CONFIG_PATH, DEFAULT_CONFIG_PATH, HELP_CONFIG_PATH)

	cmd_render := flag.NewFlagSet("render", flag.ExitOnError)
	cmd_render.StringVar(&p_render.config_path, FLAG_CONFIG_PATH, DEFAULT_CONFIG_PATH, HELP_CONFIG_PATH)
	cmd_render.StringVar(&p_render.out_dir, FLAG_OUT_DIR, DEFAULT_OUT_DIR, HELP_OUT_DIR)
	cmd_render.IntVar(&p_render.frames, FLAG_FRAMES, DEFAULT_FRAMES, HELP_FRAMES)
	cmd_render.StringVar(&p_render.metric, FLAG_METRIC, "", HELP_METRIC)

	switch os.Args[1] {
	case "measure":
		cmd_measure.Parse(os.Args[2:])
		make_sure_not_root()
		measure(path_config)
	case "serve":
		cmd_serve.Parse(os.Args[2:])
		make_sure_not_root()
		serve(path_config)
	case "render":
		cmd_render.Parse(os.Args[2:])
		make_sure_not_root()
		render(&p_render)
	case "help":
		fmt.Println("The subcommands are:")
		fmt.Println()
		fmt.Println("    measure          measure metrics until interrupted")
		fmt.Println("    serve            display charts of measurements via HTTP")
		fmt.Println("    render           write charts of measurements to files")
		fmt.Println("    help             show this help")
		fmt.Println()
		os.Exit(0)
	default:
		fmt.Println("unknown subcommand: ", os.Args[1])
		os.Exit(2)
	}
}
