package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// GoogleSheetsWriter is the SheetWriter backing the enrollment export.
type GoogleSheetsWriter struct {
	sheetsService    *sheets.Service
	spreadsheetID    string
	retryMaxAttempts int
	retryDelay       time.Duration
}

func NewGoogleSheetsWriter(ctx context.Context, spreadsheetID, credentialsFilePath string, retryMaxAttempts int, retryDelay time.Duration) (*GoogleSheetsWriter, error) {
	if spreadsheetID == "" {
		return nil, errors.New("SPREADSHEET_ID is not set")
	}
	credentialsJSON, err := os.ReadFile(credentialsFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentialsJSON, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to configure JWT from credentials: %w", err)
	}

	sheetsService, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Sheets API client: %w", err)
	}

	return &GoogleSheetsWriter{
		sheetsService:    sheetsService,
		spreadsheetID:    spreadsheetID,
		retryMaxAttempts: retryMaxAttempts,
		retryDelay:       retryDelay,
	}, nil
}

func (w *GoogleSheetsWriter) Clear(ctx context.Context, sheetName string) error {
	clearRange := fmt.Sprintf("'%s'!A1:ZZ", sheetName)
	log.Printf("API Sheets: Clearing range '%s' in spreadsheet '%s'...", clearRange, w.spreadsheetID)

	err := w.executeSheetsCall(ctx, func() error {
		_, err := w.sheetsService.Spreadsheets.Values.Clear(w.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
		return err
	}, fmt.Sprintf("clear range '%s'", clearRange))
	if err != nil {
		return fmt.Errorf("failed to clear range '%s' in spreadsheet '%s': %w", clearRange, w.spreadsheetID, err)
	}
	return nil
}

func (w *GoogleSheetsWriter) SetHeaders(ctx context.Context, sheetName string, headers []string) error {
	writeRange := fmt.Sprintf("'%s'!A1", sheetName)
	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}

	log.Printf("API Sheets: Setting headers at %s in spreadsheet '%s'...", writeRange, w.spreadsheetID)
	err := w.executeSheetsCall(ctx, func() error {
		_, err := w.sheetsService.Spreadsheets.Values.Update(w.spreadsheetID, writeRange, &sheets.ValueRange{Values: [][]interface{}{row}}).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		return err
	}, fmt.Sprintf("set headers at %s", writeRange))
	if err != nil {
		return fmt.Errorf("failed to set headers at %s in spreadsheet '%s': %w", writeRange, w.spreadsheetID, err)
	}
	return nil
}

func (w *GoogleSheetsWriter) AppendRows(ctx context.Context, sheetName string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	appendRange := fmt.Sprintf("'%s'", sheetName)
	log.Printf("API Sheets: Appending %d rows to sheet '%s' in spreadsheet '%s'...", len(rows), sheetName, w.spreadsheetID)
	err := w.executeSheetsCall(ctx, func() error {
		_, err := w.sheetsService.Spreadsheets.Values.Append(w.spreadsheetID, appendRange, &sheets.ValueRange{Values: rows}).
			ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
		return err
	}, fmt.Sprintf("append %d rows to '%s'", len(rows), sheetName))
	if err != nil {
		return fmt.Errorf("failed to append %d rows to sheet '%s' in spreadsheet '%s': %w", len(rows), sheetName, w.spreadsheetID, err)
	}

	log.Printf("API Sheets: %d rows appended successfully to sheet '%s'.", len(rows), sheetName)
	return nil
}

func (w *GoogleSheetsWriter) EnsureSheetExists(ctx context.Context, sheetName string) error {
	var spreadsheet *sheets.Spreadsheet
	err := w.executeSheetsCall(ctx, func() (err error) {
		spreadsheet, err = w.sheetsService.Spreadsheets.Get(w.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
		return err
	}, "get spreadsheet details")
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet details for '%s' to check for sheet '%s': %w", w.spreadsheetID, sheetName, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetName {
			return nil
		}
	}

	log.Printf("API Sheets: Sheet '%s' doesn't exist in spreadsheet '%s'. Creating...", sheetName, w.spreadsheetID)
	batchUpdateRequest := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: sheetName},
			},
		}},
	}

	err = w.executeSheetsCall(ctx, func() error {
		_, err := w.sheetsService.Spreadsheets.BatchUpdate(w.spreadsheetID, batchUpdateRequest).Context(ctx).Do()
		return err
	}, fmt.Sprintf("create sheet '%s' via BatchUpdate", sheetName))
	if err != nil {
		return fmt.Errorf("failed to create sheet '%s' in spreadsheet '%s': %w", sheetName, w.spreadsheetID, err)
	}
	return nil
}

func isRetryableSheetsError(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}

	switch {
	case apiErr.Code >= 500 && apiErr.Code < 600:
		return true
	case apiErr.Code == http.StatusTooManyRequests:
		return true
	case apiErr.Code == http.StatusForbidden:
		if strings.Contains(strings.ToLower(apiErr.Message), "ratelimitexceeded") {
			return true
		}
		for _, item := range apiErr.Errors {
			if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
				return true
			}
		}
	}
	return false
}

func (w *GoogleSheetsWriter) executeSheetsCall(ctx context.Context, callFunc func() error, operationDesc string) error {
	for attempt := 0; ; attempt++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("operation '%s' cancelled via context: %w", operationDesc, ctx.Err())
		default:
		}

		err := callFunc()
		if err == nil {
			return nil
		}
		if !isRetryableSheetsError(err) || attempt >= w.retryMaxAttempts {
			return fmt.Errorf("sheets API operation '%s' failed after %d attempts: %w", operationDesc, attempt+1, err)
		}

		delay := w.retryDelay * time.Duration(1<<attempt)
		log.Printf("Sheets API operation '%s' failed (attempt %d/%d): %v. Waiting %s before retrying...", operationDesc, attempt+1, w.retryMaxAttempts+1, err, delay)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("operation '%s' cancelled via context during retry wait: %w", operationDesc, ctx.Err())
		}
	}
}
