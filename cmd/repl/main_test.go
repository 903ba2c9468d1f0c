package main

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stemsi/kinderbook/internal/repository"
	"github.com/stemsi/kinderbook/internal/service"
	"github.com/stemsi/kinderbook/internal/storage"
	"github.com/stemsi/kinderbook/internal/subject"
)

func TestServe(t *testing.T) {
	input := strings.Join([]string{
		"add c/Alex Yeoh b/Sam Yeoh p/98765432 e/sam@example.com a/311, Clementi Ave 2",
		"",
		"enroll 1 s/math",
		"setscore 1 s/math g/101",
		"scores 1",
		"exit",
		"list",
	}, "\n")

	book := repository.NewAddressBook(subject.NewDefaultRegistry())
	svc := service.NewBookService(book, storage.NewJSONFileStore(t.TempDir()+"/book.json"), zerolog.Nop())

	var out bytes.Buffer
	serve(context.Background(), scannerReader{s: bufio.NewScanner(strings.NewReader(input))}, &out, svc, zerolog.Nop())

	got := out.String()
	for _, want := range []string{
		"New child added: Alex Yeoh",
		"Enrolled Child: Alex Yeoh in Subject: MATH",
		"Score must be between 0 to 100",
		"Scores of Alex Yeoh:\nMATH: N/A",
		"Goodbye!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Listed all children") {
		t.Errorf("commands after exit should not run:\n%s", got)
	}
}
