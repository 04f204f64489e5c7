package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/SamuelLeutner/pre-enrollment/config"
	"github.com/SamuelLeutner/pre-enrollment/services"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Fatal error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := services.NewClient(cfg, newSheetWriter(ctx, cfg))

	cli := newCommandLine(cfg, client, os.Stdin, os.Stdout)
	if err := cli.run(ctx, os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			log.Printf("error: %s", err)
		}
		stop()
		os.Exit(1)
	}
}

// newSheetWriter returns nil when the export is not configured; the
// export then fails with services.ErrNoWriter instead of blocking start-up.
func newSheetWriter(ctx context.Context, cfg *config.Config) services.SheetWriter {
	if cfg.SpreadsheetID == "" {
		log.Println("SPREADSHEET_ID not set, Google Sheets export disabled")
		return nil
	}

	credsPath := cfg.CredentialsFilePath
	if _, err := os.Stat(credsPath); err != nil {
		exePath, exeErr := os.Executable()
		if exeErr != nil {
			log.Printf("Could not get executable path: %v", exeErr)
			return nil
		}
		fallback := filepath.Join(filepath.Dir(exePath), "credentials.json")
		log.Printf("Credentials file not found at '%s', trying '%s'", credsPath, fallback)
		credsPath = fallback
	}

	writer, err := services.NewGoogleSheetsWriter(ctx, cfg.SpreadsheetID, credsPath, cfg.MaxRetries, cfg.RetryDelay)
	if err != nil {
		log.Printf("Error creating GoogleSheetsWriter, export disabled: %v", err)
		return nil
	}
	return writer
}
