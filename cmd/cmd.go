package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/term"

	"github.com/SamuelLeutner/pre-enrollment/api"
	"github.com/SamuelLeutner/pre-enrollment/config"
	"github.com/SamuelLeutner/pre-enrollment/services"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	listenFunc       = func(app *fiber.App, addr string) error { return app.Listen(addr) }

	errHelp = errors.New("help provided")
)

type commandLine struct {
	cfg    *config.Config
	client *services.Client
	in     *bufio.Scanner
	out    io.Writer
}

func newCommandLine(cfg *config.Config, client *services.Client, in io.Reader, out io.Writer) *commandLine {
	return &commandLine{cfg: cfg, client: client, in: bufio.NewScanner(in), out: out}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  serve                                   - start the admin HTTP API")
	fmt.Fprintln(cli.out, "  list [-q TEXT] [-turno T] [-ano A] [-sexo S] - list joined enrollments")
	fmt.Fprintln(cli.out, "  show -id ID                             - show one enrollment")
	fmt.Fprintln(cli.out, "  export                                  - write all enrollments to Google Sheets")
	fmt.Fprintln(cli.out, "  wizard                                  - fill in a pre-enrollment interactively")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	listCmd := cli.newFlagSet("list")
	listQuery := listCmd.String("q", "", "Text matched against student, mother and father names or the student's CPF.")
	listTurno := listCmd.String("turno", "", "Only enrollments of this shift.")
	listAno := listCmd.String("ano", "", "Only enrollments of this school year.")
	listSexo := listCmd.String("sexo", "", "Only students of this sex.")

	showCmd := cli.newFlagSet("show")
	showID := showCmd.Int("id", 0, "The student id.")

	switch args[1] {
	case "serve":
		app := api.SetupRouter(cli.client, cli.cfg)
		fmt.Fprintf(cli.out, "Starting Fiber server on %s...\n", cli.cfg.ListenAddr)
		return listenFunc(app, cli.cfg.ListenAddr)
	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.list(ctx, *listQuery, *listTurno, *listAno, *listSexo)
	case "show":
		if err := showCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *showID <= 0 {
			showCmd.Usage()
			return errHelp
		}
		return cli.show(ctx, *showID)
	case "export":
		return cli.export(ctx)
	case "wizard":
		return cli.runWizard(ctx)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) readPassword() (string, error) {
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
