package models

// Mother is keyed by the owning student's id.
type Mother struct {
	IDMae               int    `json:"idMae"`
	NomeMae             string `json:"nomeMae"`
	EnderecoMae         string `json:"enderecoMae"`
	TelefoneMae         string `json:"telefoneMae"`
	TrabalhoMae         string `json:"trabalhoMae"`
	TelefoneTrabalhoMae string `json:"telefoneTrabalhoMae"`
}

// Father is keyed by the owning student's id.
type Father struct {
	IDPai               int    `json:"idPai"`
	NomePai             string `json:"nomePai"`
	EnderecoPai         string `json:"enderecoPai"`
	TelefonePai         string `json:"telefonePai"`
	TrabalhoPai         string `json:"trabalhoPai"`
	TelefoneTrabalhoPai string `json:"telefoneTrabalhoPai"`
}
