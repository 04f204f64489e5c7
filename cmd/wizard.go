package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SamuelLeutner/pre-enrollment/forms"
	"github.com/SamuelLeutner/pre-enrollment/wizard"
)

const (
	backCommand  = ":voltar"
	clearCommand = "-"
)

var errAborted = errors.New("wizard aborted: input closed")

var stepTitles = map[wizard.Step]string{
	wizard.StepLogin:        "Login",
	wizard.StepStudent:      "Dados do aluno",
	wizard.StepMaternal:     "Dados maternos",
	wizard.StepPaternal:     "Dados paternos",
	wizard.StepObservations: "Observações",
	wizard.StepInfo:         "Informações finais",
}

// runWizard drives the pre-enrollment flow on the terminal. An empty
// answer keeps the current value of a field and clearCommand empties it.
func (cli *commandLine) runWizard(ctx context.Context) error {
	w := wizard.New(cli.client, wizard.EndpointsFromConfig(cli.cfg),
		wizard.WithFormOptions(forms.WithDebounceDelay(cli.cfg.DebounceDelay)),
	)
	cli.client.OnUnauthorized = w.ToLogin
	defer func() { cli.client.OnUnauthorized = nil }()

	fmt.Fprintf(cli.out, "Digite %s para voltar ao passo anterior ou %s para limpar um campo.\n", backCommand, clearCommand)
	for w.Current() != wizard.StepLanding {
		step := w.Current()
		form := w.Form(step)
		fmt.Fprintf(cli.out, "\n== %s ==\n", stepTitles[step])

		back, err := cli.fillForm(form)
		if err != nil {
			return err
		}
		if back {
			w.Back()
			continue
		}

		err = w.Next(ctx)
		switch {
		case err == nil:
		case errors.Is(err, wizard.ErrInvalidStep):
			cli.printErrors(form)
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			fmt.Fprintln(cli.out, w.Message())
		}
	}

	fmt.Fprintln(cli.out, w.Message())
	return nil
}

// fillForm prompts every field that is visible at the time it is reached,
// so an answer can reveal the fields after it.
func (cli *commandLine) fillForm(form *forms.Form) (bool, error) {
	for _, fld := range form.Schema().Fields {
		if !form.Visible(fld.Name) {
			continue
		}
		answer, err := cli.prompt(fld, form.Value(fld.Name))
		if err != nil {
			return false, err
		}
		if answer == backCommand {
			return true, nil
		}
		if answer == "" {
			continue
		}
		if answer == clearCommand {
			answer = ""
		}
		if err := form.Set(fld.Name, answer); err != nil {
			return false, err
		}
	}
	return false, nil
}

func (cli *commandLine) prompt(fld forms.Field, current string) (string, error) {
	label := fld.Label
	if fld.Optional {
		label += " (opcional)"
	}
	if fld.Kind == forms.Choice {
		for i, o := range fld.Options {
			fmt.Fprintf(cli.out, "  %d) %s\n", i+1, o.Label)
		}
	}
	if current != "" && fld.Kind != forms.Password {
		fmt.Fprintf(cli.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(cli.out, "%s: ", label)
	}

	if fld.Kind == forms.Password {
		return cli.readPassword()
	}

	if !cli.in.Scan() {
		if err := cli.in.Err(); err != nil {
			return "", err
		}
		return "", errAborted
	}
	answer := strings.TrimSpace(cli.in.Text())
	if fld.Kind == forms.Choice && answer != "" && answer != backCommand && answer != clearCommand {
		answer = chooseOption(fld.Options, answer)
	}
	return answer, nil
}

// chooseOption resolves a menu number, option value or label. Anything
// else is returned as typed and left to validation.
func chooseOption(options []forms.Option, answer string) string {
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1].Value
	}
	for _, o := range options {
		if o.Value == answer || strings.EqualFold(o.Label, answer) {
			return o.Value
		}
	}
	return answer
}

func (cli *commandLine) printErrors(form *forms.Form) {
	errs := form.Errors()
	fmt.Fprintln(cli.out, "Corrija os campos abaixo:")
	for _, fld := range form.Schema().Fields {
		if msg, ok := errs[fld.Name]; ok {
			fmt.Fprintf(cli.out, "  - %s: %s\n", fld.Label, msg)
		}
	}
}
