package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/SamuelLeutner/pre-enrollment/models"
	"github.com/SamuelLeutner/pre-enrollment/utils"
)

var ErrNoWriter = errors.New("no sheet writer configured")

// ExportHeaders are the columns of the exported sheet, in order.
var ExportHeaders = []string{
	"id", "nome", "sexo", "cpf", "rg", "anoLetivo", "turno", "tipoSanguineo",
	"nomeMae", "telefoneMae", "enderecoMae", "trabalhoMae", "telefoneTrabalhoMae",
	"nomePai", "telefonePai", "enderecoPai", "trabalhoPai", "telefoneTrabalhoPai",
	"temEspecialista", "especialista", "temAlergias", "alergia",
	"temMedicamento", "medicamento", "reside", "respNome", "respTelefone",
	"pessoasAutorizadas",
}

// ExportEnrollments replaces the content of the configured sheet with one
// row per record and returns the number of rows written.
func (c *Client) ExportEnrollments(ctx context.Context, records []models.EnrollmentRecord) (int, error) {
	if c.Writer == nil {
		return 0, ErrNoWriter
	}
	sheetName := c.Config.SheetName

	if err := c.setupEnrollmentSheet(ctx, sheetName); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		log.Println("No enrollments to write.")
		return 0, nil
	}

	rows := make([][]interface{}, 0, len(records))
	for _, rec := range records {
		rows = append(rows, enrollmentRow(rec))
	}

	log.Printf("Writing %d rows to sheet '%s'...", len(rows), sheetName)
	if err := c.Writer.AppendRows(ctx, sheetName, rows); err != nil {
		return 0, fmt.Errorf("failed to write rows to sheet '%s': %w", sheetName, err)
	}
	log.Printf("Writing to sheet '%s' completed.", sheetName)
	return len(rows), nil
}

func (c *Client) setupEnrollmentSheet(ctx context.Context, sheetName string) error {
	if err := c.Writer.EnsureSheetExists(ctx, sheetName); err != nil {
		return fmt.Errorf("failed to ensure sheet '%s' exists: %w", sheetName, err)
	}
	if err := c.Writer.Clear(ctx, sheetName); err != nil {
		return fmt.Errorf("failed to clear sheet '%s': %w", sheetName, err)
	}
	if err := c.Writer.SetHeaders(ctx, sheetName, ExportHeaders); err != nil {
		return fmt.Errorf("failed to set headers in sheet '%s': %w", sheetName, err)
	}
	log.Printf("Sheet '%s' verified/created and configured successfully.", sheetName)
	return nil
}

func enrollmentRow(rec models.EnrollmentRecord) []interface{} {
	row := make([]interface{}, len(ExportHeaders))
	for i, field := range ExportHeaders {
		switch field {
		case "id":
			row[i] = rec.ID
		case "nome":
			row[i] = rec.Nome
		case "sexo":
			row[i] = rec.Sexo
		case "cpf":
			row[i] = rec.CPF
		case "rg":
			row[i] = rec.RG
		case "anoLetivo":
			row[i] = rec.AnoLetivo
		case "turno":
			row[i] = rec.Turno
		case "tipoSanguineo":
			row[i] = rec.TipoSanguineo
		case "nomeMae":
			row[i] = rec.Mae.NomeMae
		case "telefoneMae":
			row[i] = rec.Mae.TelefoneMae
		case "enderecoMae":
			row[i] = rec.Mae.EnderecoMae
		case "trabalhoMae":
			row[i] = rec.Mae.TrabalhoMae
		case "telefoneTrabalhoMae":
			row[i] = rec.Mae.TelefoneTrabalhoMae
		case "nomePai":
			row[i] = rec.Pai.NomePai
		case "telefonePai":
			row[i] = rec.Pai.TelefonePai
		case "enderecoPai":
			row[i] = rec.Pai.EnderecoPai
		case "trabalhoPai":
			row[i] = rec.Pai.TrabalhoPai
		case "telefoneTrabalhoPai":
			row[i] = rec.Pai.TelefoneTrabalhoPai
		case "temEspecialista":
			row[i] = utils.YesNo(bool(rec.Observacao.TemEspecialista))
		case "especialista":
			row[i] = rec.Observacao.Especialista
		case "temAlergias":
			row[i] = utils.YesNo(bool(rec.Observacao.TemAlergias))
		case "alergia":
			row[i] = rec.Observacao.Alergia
		case "temMedicamento":
			row[i] = utils.YesNo(bool(rec.Observacao.TemMedicamento))
		case "medicamento":
			row[i] = rec.Observacao.Medicamento
		case "reside":
			row[i] = rec.Observacao.Reside
		case "respNome":
			row[i] = rec.Observacao.RespNome
		case "respTelefone":
			row[i] = rec.Observacao.RespTelefone
		case "pessoasAutorizadas":
			row[i] = utils.JoinOrDash(rec.Observacao.PessoasAutorizadas)
		default:
			row[i] = ""
		}
	}
	return row
}
