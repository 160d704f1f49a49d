package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/susji/mathcanvas/plane"
)

func make_sure_not_root() {
	if syscall.Geteuid() == 0 && os.Getenv(ENV_PERMIT_ROOT) != PERMIT_ROOT_WORD {
		log.Println("This program will not run as root.")
		os.Exit(20)
	}
}

func load_env() {
	envfile := DEFAULT_ENV_FILE
	if e := os.Getenv(ENV_ENV_FILE); e != "" {
		envfile = e
	}
	err := godotenv.Load(envfile)
	switch {
	case err == nil:
		log.Println("loaded env file: ", envfile)
	case errors.Is(err, fs.ErrNotExist):
	default:
		log.Fatal("error loading env file ", envfile, ": ", err)
	}
}

func env_or(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func must_load_config(path string) *config_all {
	c, err := config_load_file(path)
	if err != nil {
		log.Fatal("cannot load configuration: ", err)
	}
	cfg, err := c.parse_all()
	if err != nil {
		log.Fatal("cannot parse configuration: ", err)
	}
	return cfg
}

// journal_notifier logs every plane change and also journals it when j is
// open.
func journal_notifier(j *journal) plane.Notifier {
	if j == nil {
		return plane.LogNotifier{}
	}
	return plane.MultiNotifier{plane.LogNotifier{}, j}
}

func main() {
	var p_render params_render
	var p_serve params_serve
	var p_view params_view
	var p_history params_history

	if len(os.Args) <= 1 {
		fmt.Printf("usage: %s [subcommand]\n", filepath.Base(os.Args[0]))
		fmt.Println("subcommand is either `render', `serve', `view', `history', or `help'.")
		os.Exit(1)
	}

	load_env()
	default_config := env_or(ENV_CONFIG, DEFAULT_CONFIG_PATH)
	default_journal := env_or(ENV_JOURNAL, DEFAULT_JOURNAL_PATH)

	cmd_render := flag.NewFlagSet("render", flag.ExitOnError)
	cmd_render.StringVar(&p_render.config_path, FLAG_CONFIG_PATH, default_config, HELP_CONFIG_PATH)
	cmd_render.StringVar(&p_render.journal_path, FLAG_JOURNAL_PATH, default_journal, HELP_JOURNAL_PATH)
	cmd_render.StringVar(&p_render.out, FLAG_OUT, DEFAULT_OUT, HELP_OUT)
	cmd_render.StringVar(&p_render.format, FLAG_FORMAT, "", HELP_FORMAT)

	cmd_serve := flag.NewFlagSet("serve", flag.ExitOnError)
	cmd_serve.StringVar(&p_serve.config_path, FLAG_CONFIG_PATH, default_config, HELP_CONFIG_PATH)
	cmd_serve.StringVar(&p_serve.journal_path, FLAG_JOURNAL_PATH, default_journal, HELP_JOURNAL_PATH)
	cmd_serve.StringVar(&p_serve.addr, FLAG_ADDR, DEFAULT_ADDR, HELP_ADDR)

	cmd_view := flag.NewFlagSet("view", flag.ExitOnError)
	cmd_view.StringVar(&p_view.config_path, FLAG_CONFIG_PATH, default_config, HELP_CONFIG_PATH)
	cmd_view.StringVar(&p_view.journal_path, FLAG_JOURNAL_PATH, default_journal, HELP_JOURNAL_PATH)

	cmd_history := flag.NewFlagSet("history", flag.ExitOnError)
	cmd_history.StringVar(&p_history.config_path, FLAG_CONFIG_PATH, default_config, HELP_CONFIG_PATH)
	cmd_history.StringVar(&p_history.journal_path, FLAG_JOURNAL_PATH, default_journal, HELP_JOURNAL_PATH)
	cmd_history.IntVar(&p_history.limit, FLAG_LIMIT, DEFAULT_LIMIT, HELP_LIMIT)

	switch os.Args[1] {
	case "render":
		cmd_render.Parse(os.Args[2:])
		make_sure_not_root()
		if err := render(&p_render); err != nil {
			log.Fatal(err)
		}
	case "serve":
		cmd_serve.Parse(os.Args[2:])
		make_sure_not_root()
		serve(&p_serve)
	case "view":
		cmd_view.Parse(os.Args[2:])
		make_sure_not_root()
		if err := view(&p_view); err != nil {
			log.Fatal(err)
		}
	case "history":
		cmd_history.Parse(os.Args[2:])
		make_sure_not_root()
		if err := history(&p_history, os.Stdout); err != nil {
			log.Fatal(err)
		}
	case "help":
		fmt.Println("The subcommands are:")
		fmt.Println()
		fmt.Println("    render           draw the configured canvas into a file")
		fmt.Println("    serve            serve canvases via HTTP")
		fmt.Println("    view             show the configured canvas in a window")
		fmt.Println("    history          list journaled plane changes")
		fmt.Println("    help             show this help")
		fmt.Println()
		os.Exit(0)
	default:
		fmt.Println("unknown subcommand: ", os.Args[1])
		os.Exit(2)
	}
}
