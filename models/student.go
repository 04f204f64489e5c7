package models

// Student is a row of the students collection (GET /alunos).
type Student struct {
	ID            int    `json:"id"`
	Nome          string `json:"nome"`
	Sexo          string `json:"sexo"`
	CPF           string `json:"cpf"`
	RG            string `json:"rg"`
	AnoLetivo     string `json:"anoLetivo"`
	Turno         string `json:"turno"`
	TipoSanguineo string `json:"tipoSanguineo"`
}
