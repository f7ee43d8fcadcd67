// internal/negociacao/dto.go
package negociacao

import (
	"github.com/CasaLink/api-negociacao/internal/assinatura"
	"github.com/CasaLink/api-negociacao/internal/auth"
	"github.com/CasaLink/api-negociacao/internal/contrato"
	"github.com/CasaLink/api-negociacao/internal/documento"
	"github.com/CasaLink/api-negociacao/internal/fechamento"
	"github.com/CasaLink/api-negociacao/internal/rateio"
)

// Ator identifica quem executa a operação. Preenchido pela camada de
// autenticação, nunca pelo corpo da requisição.
type Ator struct {
	UserID uint
	Papel  auth.Papel
}

type ComandoCriar struct {
	ImovelID           uint `json:"imovelId"`
	CaptadorID         uint `json:"captadorId"`
	CorretorVendedorID uint `json:"corretorVendedorId"`
}

type ComandoAtivar struct {
	// DiasSLA sobrescreve o prazo padrão de 30 dias quando informado.
	DiasSLA *int `json:"diasSla,omitempty"`
}

type ComandoAnexarDocumento struct {
	Nome string `json:"nome"`
	URL  string `json:"url"`
}

type ComandoRevisarDocumento struct {
	DocumentoID uint    `json:"-"`
	Status      string  `json:"status"`
	Comentario  *string `json:"comentario,omitempty"`
}

type ComandoPublicarContrato struct {
	URL string `json:"url"`
}

type ComandoAnexarAssinatura struct {
	PapelAssinante string  `json:"papelAssinante"`
	ArquivoURL     string  `json:"arquivoUrl"`
	ProvaImagemURL *string `json:"provaImagemUrl,omitempty"`
	AssinadoPorID  *uint   `json:"assinadoPorId,omitempty"`
}

type ComandoValidarAssinatura struct {
	AssinaturaID uint    `json:"-"`
	Status       string  `json:"status"`
	Comentario   *string `json:"comentario,omitempty"`
}

type ComandoFechamento struct {
	Tipo                    string                  `json:"tipo"`
	Modalidade              string                  `json:"modalidade"`
	TotalPercentual         *float64                `json:"totalPercentual,omitempty"`
	TotalValor              *float64                `json:"totalValor,omitempty"`
	ComprovantePagamentoURL string                  `json:"comprovantePagamentoUrl"`
	Rateios                 []fechamento.ItemRateio `json:"rateios"`
}

type ComandoSemComissao struct {
	Motivo string `json:"motivo"`
}

// Detalhes é o read-model agregado da negociação. Montado com leituras
// concorrentes, sem locks e sem mutação.
type Detalhes struct {
	Negociacao       Negociacao              `json:"negociacao"`
	Documentos       []documento.Documento   `json:"documentos"`
	ContratoVigente  *contrato.Contrato      `json:"contratoVigente,omitempty"`
	Assinaturas      []assinatura.Assinatura `json:"assinaturas"`
	Fechamento       *fechamento.Fechamento  `json:"fechamento,omitempty"`
	Rateios          []rateio.Rateio         `json:"rateios,omitempty"`
	DiasEmNegociacao int                     `json:"diasEmNegociacao"`
}
