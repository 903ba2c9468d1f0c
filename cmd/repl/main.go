package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/config"
	"github.com/stemsi/kinderbook/internal/logger"
	"github.com/stemsi/kinderbook/internal/repository"
	"github.com/stemsi/kinderbook/internal/service"
	"github.com/stemsi/kinderbook/internal/storage"
	"github.com/stemsi/kinderbook/internal/subject"
	"github.com/stemsi/kinderbook/internal/validator"
	"golang.org/x/term"
)

const (
	prompt  = "kinderbook> "
	welcome = "Welcome to Kinderbook! Type a command, or 'exit' to quit."
)

// lineReader yields one line of input per call and io.EOF at the end.
type lineReader interface {
	ReadLine() (string, error)
}

type scannerReader struct{ s *bufio.Scanner }

func (r scannerReader) ReadLine() (string, error) {
	if r.s.Scan() {
		return r.s.Text(), nil
	}
	if err := r.s.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func main() {
	cfg := config.Load()

	// ─── Terminal ──────────────────────────────────────────────────────
	// In a TTY the terminal runs in raw mode with line editing and history;
	// log lines are written through it so they do not break the prompt.
	var (
		lines  lineReader
		out    io.Writer = os.Stdout
		logOut io.Writer = os.Stderr
	)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		oldState, err := term.MakeRaw(fd)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to enter raw mode:", err)
			os.Exit(1)
		}
		defer term.Restore(fd, oldState)

		t := term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{os.Stdin, os.Stdout}, prompt)
		lines, out, logOut = t, t, t
	} else {
		lines = scannerReader{s: bufio.NewScanner(os.Stdin)}
	}

	log := logger.SetupTo(logOut, cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	ctx := context.Background()
	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open storage")
		return
	}
	defer closeStore()

	book := repository.NewAddressBook(subject.NewDefaultRegistry())
	svc := service.NewBookService(book, store, log)
	if err := svc.Load(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to load address book, starting with an empty one")
	}

	fmt.Fprintln(out, welcome)
	serve(ctx, lines, out, svc, log)
}

// serve runs commands until input ends or the user types exit.
func serve(ctx context.Context, lines lineReader, out io.Writer, svc *service.BookService, log zerolog.Logger) {
	for {
		line, err := lines.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Error().Err(err).Msg("Failed to read input")
			}
			return
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case strings.EqualFold(line, "exit"):
			fmt.Fprintln(out, "Goodbye!")
			return
		}

		res, err := svc.Execute(ctx, line)
		if res.Feedback != "" {
			fmt.Fprintln(out, res.Feedback)
		}
		if err != nil {
			fmt.Fprintln(out, err.Error())
		}
	}
}
