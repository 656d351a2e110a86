// Command mpdkeys sends one transport command to MPD and reports the
// resulting song, for binding to media keys.
//
//	mpdkeys [flags] next|prev|stop|toggle
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/mpdkeys/mpdkeys/client"
	"github.com/mpdkeys/mpdkeys/config"
	"github.com/mpdkeys/mpdkeys/notify"
	"github.com/mpdkeys/mpdkeys/store"
)

var version = "dev"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// env is what run needs from the process.
type env struct {
	args   []string
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	home   string

	// notifier opens the desktop notifier; nil uses the session bus.
	notifier func(ids notify.IDStore) (*notify.Notifier, func() error, error)
}

func main() {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "mpdkeys: cannot determine home directory:", err)
		os.Exit(exitError)
	}
	os.Exit(run(env{
		args:   os.Args[1:],
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
		home:   home,
	}))
}

func run(e env) int {
	fs := flag.NewFlagSet("mpdkeys", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var (
		configPath = fs.StringP("config", "c", config.DefaultPath(e.home), "path to config file")
		socket     = fs.StringP("socket", "s", "", "path to the mpd control socket (default ~/.config/mpd/socket)")
		iconDir    = fs.StringP("icondir", "i", "", "directory with notification icons (default ~/.local/share/icons)")
		dbPath     = fs.String("db", "", "path to database for the last notification id")
		notifyMode = fs.String("notify", "", "auto, always or never (default auto: notify when XDG_SEAT is set)")
		verbose    = fs.BoolP("verbose", "v", false, "enable debug logging")
		showVer    = fs.Bool("version", false, "print version and exit")
	)
	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: mpdkeys [flags] %s\n\n", actionList())
		fmt.Fprintln(e.stderr, "Command line mpd client tailored for media keys.")
		fmt.Fprintln(e.stderr)
		fs.PrintDefaults()
	}
	if err := fs.Parse(e.args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: level}))

	if *showVer {
		fmt.Fprintln(e.stdout, "mpdkeys", version)
		return exitOK
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(e.stdout, "Please give a command, or ask --help")
		return exitUsage
	}
	action, err := client.ParseAction(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(e.stderr, "mpdkeys: %v; expected %s\n", err, actionList())
		return exitUsage
	}

	cfg, err := config.Load(*configPath, e.home)
	if err != nil {
		log.Error("cannot load config", "path", *configPath, "err", err)
		return exitError
	}
	if *socket != "" {
		cfg.Socket = *socket
	}
	if *iconDir != "" {
		cfg.IconDir = *iconDir
	}
	if *dbPath != "" {
		cfg.DB = *dbPath
	}
	if *notifyMode != "" {
		cfg.Notify = *notifyMode
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid settings", "err", err)
		return exitUsage
	}

	c, err := client.Dial(cfg.Socket)
	if err != nil {
		log.Error("cannot connect to mpd", "socket", cfg.Socket, "err", err)
		return exitError
	}
	defer c.Close()
	c.WithLogger(log)

	reply, err := c.Do(action)
	if err != nil {
		log.Error("command failed", "action", action, "err", err)
		return exitError
	}
	log.Debug("reply", "action", action, "text", reply.Text, "state", reply.State, "failed", reply.Failed)

	if !cfg.Notifications(e.getenv) {
		fmt.Fprintln(e.stdout, reply.Text)
		return exitOK
	}

	if err := showNotification(e, cfg, log, action, reply); err != nil {
		// Still tell the user something happened.
		log.Warn("notification failed", "err", err)
		fmt.Fprintln(e.stdout, reply.Text)
	}
	return exitOK
}

func showNotification(e env, cfg config.Config, log *slog.Logger, action client.Action, reply client.Reply) error {
	var ids notify.IDStore
	db, err := store.Open(cfg.DB)
	if err != nil {
		log.Debug("notification ids not persisted", "db", cfg.DB, "err", err)
	} else {
		defer db.Close()
		ids = db
	}

	connect := e.notifier
	if connect == nil {
		connect = notify.Connect
	}
	n, closeBus, err := connect(ids)
	if err != nil {
		return err
	}
	defer closeBus()
	n.Timeout = cfg.Timeout

	id, err := n.Notify(reply, notify.Icon(cfg.IconDir, action, reply.State))
	if err != nil {
		return err
	}
	log.Debug("notification shown", "id", id)
	return nil
}

func actionList() string {
	names := make([]string, len(client.Actions))
	for i, a := range client.Actions {
		names[i] = string(a)
	}
	return strings.Join(names, "|")
}
