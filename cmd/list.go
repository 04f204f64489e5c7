package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/SamuelLeutner/pre-enrollment/enrollment"
	"github.com/SamuelLeutner/pre-enrollment/models"
	"github.com/SamuelLeutner/pre-enrollment/utils"
)

func (cli *commandLine) list(ctx context.Context, query, turno, ano, sexo string) error {
	records, err := cli.client.FetchEnrollments(ctx)
	if err != nil {
		return err
	}
	matches := enrollment.Search(records, enrollment.Filter{
		Query:     query,
		Turno:     turno,
		AnoLetivo: ano,
		Sexo:      sexo,
	})

	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tALUNO\tTURNO\tANO\tMÃE\tPAI")
	for _, r := range matches {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", r.ID, r.Nome, orDash(r.Turno), orDash(r.AnoLetivo), orDash(r.Mae.NomeMae), orDash(r.Pai.NomePai))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d de %d matrículas\n", len(matches), len(records))
	return nil
}

func (cli *commandLine) show(ctx context.Context, id int) error {
	records, err := cli.client.FetchEnrollments(ctx)
	if err != nil {
		return err
	}
	r, ok := enrollment.Find(records, id)
	if !ok {
		return fmt.Errorf("enrollment %d not found", id)
	}

	tw := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	for _, line := range detailLines(r) {
		fmt.Fprintf(tw, "%s:\t%s\n", line[0], line[1])
	}
	return tw.Flush()
}

func detailLines(r models.EnrollmentRecord) [][2]string {
	obs := r.Observacao
	return [][2]string{
		{"Aluno", r.Nome},
		{"Sexo", orDash(r.Sexo)},
		{"CPF", orDash(r.CPF)},
		{"RG", orDash(r.RG)},
		{"Ano letivo", orDash(r.AnoLetivo)},
		{"Turno", orDash(r.Turno)},
		{"Tipo sanguíneo", orDash(r.TipoSanguineo)},
		{"Mãe", orDash(r.Mae.NomeMae)},
		{"Telefone da mãe", orDash(r.Mae.TelefoneMae)},
		{"Pai", orDash(r.Pai.NomePai)},
		{"Telefone do pai", orDash(r.Pai.TelefonePai)},
		{"Especialista", withDetail(bool(obs.TemEspecialista), obs.Especialista)},
		{"Alergias", withDetail(bool(obs.TemAlergias), obs.Alergia)},
		{"Medicamento", withDetail(bool(obs.TemMedicamento), obs.Medicamento)},
		{"Reside com", orDash(obs.Reside)},
		{"Responsável", orDash(obs.RespNome)},
		{"Pessoas autorizadas", utils.JoinOrDash(obs.PessoasAutorizadas)},
	}
}

func orDash(s string) string {
	if utils.IsBlank(s) {
		return "—"
	}
	return s
}

func withDetail(flag bool, detail string) string {
	if flag && !utils.IsBlank(detail) {
		return fmt.Sprintf("%s (%s)", utils.YesNo(flag), detail)
	}
	return utils.YesNo(flag)
}

func (cli *commandLine) export(ctx context.Context) error {
	records, err := cli.client.FetchEnrollments(ctx)
	if err != nil {
		return err
	}
	rows, err := cli.client.ExportEnrollments(ctx, records)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d matrículas exportadas para '%s'\n", rows, cli.cfg.SheetName)
	return nil
}
