package corretor

type LoginRequest struct {
	Login string `json:"login"` // email ou CRECI
	Senha string `json:"senha"`
}

type CriarCorretorDTO struct {
	Nome      string `json:"nome"`
	Sobrenome string `json:"sobrenome"`
	CRECI     string `json:"creci"`
	Email     string `json:"email"`
	Telefone  string `json:"telefone"`
	Foto      string `json:"foto"`
	Senha     string `json:"senha"`
	IsAdmin   bool   `json:"isAdmin"`
	Aprovado  bool   `json:"aprovado"`
}
