package forms

var yesNo = []Option{{Value: "sim", Label: "Sim"}, {Value: "nao", Label: "Não"}}

const (
	EnrollmentInitial         = "inicial"
	EnrollmentTransferPublic  = "transferencia_municipal_estadual"
	EnrollmentTransferPrivate = "transferencia_particular"
)

// LoginSchema is only checked locally; it is never posted.
func LoginSchema() *Schema {
	return NewSchema("login",
		Field{Name: "email", Label: "Email", Kind: Email},
		Field{Name: "senha", Label: "Senha", Kind: Password},
	)
}

func StudentSchema() *Schema {
	return NewSchema("aluno",
		Field{Name: "nome", Label: "Nome completo", Kind: Text},
		Field{Name: "sexo", Label: "Sexo", Kind: Choice, Options: []Option{
			{Value: "feminino", Label: "Feminino"},
			{Value: "masculino", Label: "Masculino"},
		}},
		Field{Name: "cpf", Label: "CPF", Kind: CPF},
		Field{Name: "rg", Label: "RG", Kind: RG},
		Field{Name: "anoLetivo", Label: "Ano letivo", Kind: Text},
		Field{Name: "turno", Label: "Turno", Kind: Choice, Options: []Option{
			{Value: "manha", Label: "Manhã"},
			{Value: "tarde", Label: "Tarde"},
			{Value: "integral", Label: "Integral"},
		}},
		Field{Name: "tipoSanguineo", Label: "Tipo sanguíneo", Kind: Choice, Options: []Option{
			{Value: "A+", Label: "A+"}, {Value: "A-", Label: "A-"},
			{Value: "B+", Label: "B+"}, {Value: "B-", Label: "B-"},
			{Value: "AB+", Label: "AB+"}, {Value: "AB-", Label: "AB-"},
			{Value: "O+", Label: "O+"}, {Value: "O-", Label: "O-"},
		}},
	)
}

func MaternalSchema() *Schema { return guardianSchema("materno", "Mae") }

func PaternalSchema() *Schema { return guardianSchema("paterno", "Pai") }

// guardianSchema builds the shared guardian form; suffix is appended to
// every key ("nomeMae", "telefonePai", ...).
func guardianSchema(name, suffix string) *Schema {
	return NewSchema(name,
		Field{Name: "nome" + suffix, Label: "Nome completo", Kind: Text},
		Field{Name: "cep" + suffix, Label: "CEP", Kind: CEP},
		Field{Name: "telefone" + suffix, Label: "Telefone", Kind: Phone},
		Field{Name: "trabalho" + suffix, Label: "Local de trabalho", Kind: Text, Optional: true},
		Field{Name: "nascimento" + suffix, Label: "Data de nascimento", Kind: Date},
		Field{Name: "cpf" + suffix, Label: "CPF", Kind: CPF},
		Field{Name: "email" + suffix, Label: "E-mail", Kind: Email},
		Field{Name: "telefoneTrabalho" + suffix, Label: "Telefone do trabalho", Kind: Phone, Optional: true},
		Field{Name: "endereco" + suffix, Label: "Endereço completo", Kind: Text, Optional: true},
		Field{Name: "rg" + suffix, Label: "RG", Kind: RG},
		Field{Name: "profissao" + suffix, Label: "Profissão", Kind: Text},
	)
}

func ObservationsSchema() *Schema {
	return NewSchema("observacoes",
		Field{Name: "matricula", Label: "Matrícula", Kind: Choice, Options: []Option{
			{Value: EnrollmentInitial, Label: "Inicial"},
			{Value: EnrollmentTransferPublic, Label: "Transferência Municipal/Estadual"},
			{Value: EnrollmentTransferPrivate, Label: "Transferência Particular"},
		}},
		Field{Name: "escola", Label: "Qual escola", Kind: Text,
			VisibleWhen: oneOf("matricula", EnrollmentTransferPublic, EnrollmentTransferPrivate)},
		Field{Name: "irmaos", Label: "Irmão(s)", Kind: Choice, Options: yesNo},
		Field{Name: "irmaosNomes", Label: "Nome(s) do(s) irmão(s)", Kind: Text,
			VisibleWhen: equals("irmaos", "sim")},
		Field{Name: "temEspecialista", Label: "Acompanhamento com especialista", Kind: Choice, Options: yesNo},
		Field{Name: "especialista", Label: "Qual especialista", Kind: Text,
			VisibleWhen: equals("temEspecialista", "sim")},
		Field{Name: "temAlergias", Label: "Alergias", Kind: Choice, Options: yesNo},
		Field{Name: "alergia", Label: "Qual alergia", Kind: Text,
			VisibleWhen: equals("temAlergias", "sim")},
		Field{Name: "temMedicamento", Label: "Medicamento contínuo", Kind: Choice, Options: yesNo},
		Field{Name: "medicamento", Label: "Qual medicamento", Kind: Text,
			VisibleWhen: equals("temMedicamento", "sim")},
	)
}

func InfoSchema() *Schema {
	return NewSchema("info",
		Field{Name: "reside", Label: "Reside com", Kind: Text},
		Field{Name: "respNome", Label: "Responsável financeiro", Kind: Text},
		Field{Name: "respTelefone", Label: "Telefone do responsável", Kind: Phone},
		Field{Name: "pessoasAutorizadas", Label: "Pessoas autorizadas a buscar", Kind: Text, Optional: true},
	)
}
