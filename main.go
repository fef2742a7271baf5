package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"poststream/app/config"
	"poststream/app/repositories"
	"poststream/app/services"
	"poststream/service"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/mattn/go-runewidth"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

const CliVersion = "1.0.0"

const previewWidth = 40

var errUsage = errors.New("usage error")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printHelp(stdout)
		return 1
	}

	cmd := strings.ToLower(args[0])
	switch cmd {
	case "help":
		printHelp(stdout)
		return 0
	case "version":
		fmt.Fprintf(stdout, "poststream version %s\n", CliVersion)
		return 0
	}

	handler, ok := commands[cmd]
	if !ok {
		fmt.Fprintf(stdout, "Unknown command: %s\n\n", args[0])
		printHelp(stdout)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Fatal error: %v\n", err)
		return 1
	}
	log := logs.GetLoggerFromString(cfg.LogLevel)

	if err := handler(args[1:], cfg, log, stdout); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

type command func(args []string, cfg config.Config, log *slog.Logger, out io.Writer) error

var commands = map[string]command{
	"render":  renderCmd,
	"post":    postCmd,
	"show":    showCmd,
	"list":    listCmd,
	"edit":    editCmd,
	"delete":  deleteCmd,
	"serve":   serveCmd,
	"backup":  backupCmd,
	"restore": restoreCmd,
}

func printHelp(out io.Writer) {
	helpText := `Usage: poststream <command> [options]
Commands:
  help                                  Display this help message.
  version                               Show version information.
  render -title <t> -msg <m> [-plain]   Print a post box without storing it.
  post -title <t> -msg <m> [-plain]     Store a new post and print it.
  show <id> [-plain]                    Print a stored post.
  list [-page <n>] [-per-page <n>]      List stored posts.
  edit <id> [-title <t>] [-msg <m>]     Replace the title and/or message of a post.
  delete <id>                           Delete a post.
  serve                                 Run the HTTP API.
  backup <file>                         Write a backup of the post store.
  restore <file>                        Load a backup into the post store.
`
	fmt.Fprintln(out, helpText)
}

// printBox writes a rendered post, coloured unless disabled.
func printBox(out io.Writer, cfg config.Config, plain bool, box string) {
	if cfg.Colours && !plain {
		box = color.New(color.FgCyan).Render(box)
	}
	fmt.Fprintln(out, box)
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// parseID reads the leading <id> argument and returns the remaining args.
func parseID(args []string, out io.Writer) (int, []string, error) {
	if len(args) < 1 {
		fmt.Fprintln(out, "Error: post id required")
		return 0, nil, errUsage
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		fmt.Fprintf(out, "Error: invalid post id %q\n", args[0])
		return 0, nil, errUsage
	}
	return id, args[1:], nil
}

// withStore opens the configured store for the duration of fn.
func withStore(cfg config.Config, log *slog.Logger, fn func(*services.PostService) error) error {
	db, err := repositories.Open(cfg.BadgerFilepath)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(service.NewPostService(db, cfg.Limits(), log))
}

func renderCmd(args []string, cfg config.Config, _ *slog.Logger, out io.Writer) error {
	fs := newFlagSet("render", out)
	title := fs.String("title", "", "post title")
	msg := fs.String("msg", "", "post message")
	plain := fs.Bool("plain", false, "disable colours")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	post, err := cfg.Limits().NewPost(*title, *msg, nil)
	if err != nil {
		return err
	}
	printBox(out, cfg, *plain, post.Render())
	return nil
}

func postCmd(args []string, cfg config.Config, log *slog.Logger, out io.Writer) error {
	fs := newFlagSet("post", out)
	title := fs.String("title", "", "post title")
	msg := fs.String("msg", "", "post message")
	plain := fs.Bool("plain", false, "disable colours")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	return withStore(cfg, log, func(s *services.PostService) error {
		entry, err := s.Publish(*title, *msg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Post %d published\n", entry.ID)
		printBox(out, cfg, *plain, entry.Post.Render())
		return nil
	})
}

func showCmd(args []string, cfg config.Config, log *slog.Logger, out io.Writer) error {
	id, rest, err := parseID(args, out)
	if err != nil {
		return err
	}
	fs := newFlagSet("show", out)
	plain := fs.Bool("plain", false, "disable colours")
	if err := fs.Parse(rest); err != nil {
		return errUsage
	}

	return withStore(cfg, log, func(s *services.PostService) error {
		box, err := s.Render(id)
		if err != nil {
			return err
		}
		printBox(out, cfg, *plain, box)
		return nil
	})
}

func listCmd(args []string, cfg config.Config, log *slog.Logger, out io.Writer) error {
	fs := newFlagSet("list", out)
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 10, "posts per page")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	return withStore(cfg, log, func(s *services.PostService) error {
		entries, err := s.List(*page, *perPage)
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"ID", "Date", "Title", "Message"})
		table.SetAutoWrapText(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)
		table.AppendBulk(lo.Map(entries, func(entry repositories.Entry, _ int) []string {
			return []string{
				strconv.Itoa(entry.ID),
				entry.Post.Date().Format("2006-01-02 15:04"),
				entry.Post.Title(),
				preview(entry.Post.Message()),
			}
		}))
		table.Render()
		return nil
	})
}

func editCmd(args []string, cfg config.Config, log *slog.Logger, out io.Writer) error {
	id, rest, err := parseID(args, out)
	if err != nil {
		return err
	}
	fs := newFlagSet("edit", out)
	title := fs.String("title", "", "new title")
	msg := fs.String("msg", "", "new message")
	if err := fs.Parse(rest); err != nil {
		return errUsage
	}

	// Only flags given on the command line are applied, so an explicit
	// empty value still reaches validation.
	var newTitle, newMsg *string
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			newTitle = title
		case "msg":
			newMsg = msg
		}
	})
	if newTitle == nil && newMsg == nil {
		fmt.Fprintln(out, "Error: -title or -msg required")
		return errUsage
	}

	return withStore(cfg, log, func(s *services.PostService) error {
		if _, err := s.Edit(id, newTitle, newMsg); err != nil {
			return err
		}
		fmt.Fprintf(out, "Post %d updated\n", id)
		return nil
	})
}

func deleteCmd(args []string, cfg config.Config, log *slog.Logger, out io.Writer) error {
	id, _, err := parseID(args, out)
	if err != nil {
		return err
	}
	return withStore(cfg, log, func(s *services.PostService) error {
		if err := s.Delete(id); err != nil {
			return err
		}
		fmt.Fprintf(out, "Post %d deleted\n", id)
		return nil
	})
}

func serveCmd(_ []string, cfg config.Config, log *slog.Logger, _ io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener, err := net.Listen("tcp", cfg.Address())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Address(), err)
	}
	return service.RunServer(ctx, cfg, listener, log)
}

func backupCmd(args []string, cfg config.Config, _ *slog.Logger, out io.Writer) error {
	if len(args) < 1 {
		fmt.Fprintln(out, "Error: backup file path required")
		return errUsage
	}
	db, err := repositories.Open(cfg.BadgerFilepath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := service.Backup(db, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(out, "Database backed up successfully to %s\n", args[0])
	return nil
}

func restoreCmd(args []string, cfg config.Config, _ *slog.Logger, out io.Writer) error {
	if len(args) < 1 {
		fmt.Fprintln(out, "Error: backup file path required for restore")
		return errUsage
	}
	db, err := repositories.Open(cfg.BadgerFilepath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := service.Restore(db, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(out, "Database restored successfully")
	return nil
}

// preview shortens a message to one table cell of at most previewWidth columns.
func preview(msg string) string {
	return runewidth.Truncate(strings.Join(strings.Fields(msg), " "), previewWidth, "...")
}
