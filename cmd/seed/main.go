package main

import (
	"context"
	"flag"
	"time"

	"github.com/stemsi/kinderbook/internal/config"
	"github.com/stemsi/kinderbook/internal/logger"
	"github.com/stemsi/kinderbook/internal/repository"
	"github.com/stemsi/kinderbook/internal/service"
	"github.com/stemsi/kinderbook/internal/storage"
	"github.com/stemsi/kinderbook/internal/subject"
	"github.com/stemsi/kinderbook/internal/validator"
)

// sampleCommands fills an empty address book with the sample children and a
// few enrollments.
var sampleCommands = []string{
	"add c/Alex Jr b/Alex Yeoh p/87438807 e/alexyeoh@example.com a/Blk 30 Geylang Street 29, #06-40 r/peanuts t/twins",
	"add c/Bernice Yu b/Bernice Yu Sr p/99272758 e/berniceyu@example.com a/Blk 30 Lorong 3 Serangoon Gardens, #07-18 t/adhd",
	"add c/Charlotte Oliveir b/Charlotte Oliveiro p/93210283 e/charlotte@example.com a/Blk 11 Ang Mo Kio Street 74, #11-04 r/milk",
	"add c/David Li b/David Li Sr p/91031282 e/lidavid@example.com a/Blk 436 Serangoon Gardens Street 26, #16-43",
	"add c/Irfan Ibrahim b/Irfan Ibrahim Sr p/92492021 e/irfan@example.com a/Blk 47 Tampines Street 20, #17-35 r/shellfish",
	"add c/Roy Balakrishnan b/Roy Balakrishnan Sr p/92624417 e/royb@example.com a/Blk 45 Aljunied Street 85, #11-31 t/twins",
	"enroll all s/math",
	"enroll 1 2 3 s/english",
	"enroll 2 4 6 s/science",
	"setscore 1 2 s/math g/85",
	"setscore 3 s/math g/72",
	"setscore 2 s/english g/90",
}

func main() {
	keep := flag.Bool("keep", false, "Keep existing children instead of clearing the address book first")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, closeStore, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer closeStore()

	book := repository.NewAddressBook(subject.NewDefaultRegistry())
	svc := service.NewBookService(book, store, log)
	if err := svc.Load(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load address book")
	}

	commands := sampleCommands
	if !*keep {
		commands = append([]string{"clear"}, commands...)
	}

	log.Info().Int("commands", len(commands)).Msg("=== Seeding sample children ===")
	for _, input := range commands {
		if _, err := svc.Execute(ctx, input); err != nil {
			log.Fatal().Err(err).Str("input", input).Msg("Seed command failed")
		}
	}
	log.Info().Int("persons", len(svc.Persons())).Msg("Seeding complete")
}
