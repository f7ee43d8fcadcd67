package negociacao

// Status do ciclo de vida da negociação. Os tokens persistidos seguem o
// contrato da API pública.
type Status string

const (
	StatusRascunho             Status = "DRAFT"
	StatusAguardandoAtivacao   Status = "PENDING_ACTIVATION"
	StatusDocsEmRevisao        Status = "DOCS_IN_REVIEW"
	StatusContratoDisponivel   Status = "CONTRACT_AVAILABLE"
	StatusAssinadoEmValidacao  Status = "SIGNED_PENDING_VALIDATION"
	StatusFechamentoSubmetido  Status = "CLOSE_SUBMITTED"
	StatusVendidoComComissao   Status = "SOLD_COMMISSIONED"
	StatusAlugadoComComissao   Status = "RENTED_COMMISSIONED"
	StatusVendidoSemComissao   Status = "SOLD_NO_COMMISSION"
	StatusAlugadoSemComissao   Status = "RENTED_NO_COMMISSION"
	StatusCancelada            Status = "CANCELLED"
	StatusExpirada             Status = "EXPIRED"
	StatusArquivada            Status = "ARCHIVED"
)

// EhFinal informa se o status é terminal; nenhuma transição sai de um estado
// final.
func (s Status) EhFinal() bool {
	switch s {
	case StatusVendidoComComissao, StatusAlugadoComComissao,
		StatusVendidoSemComissao, StatusAlugadoSemComissao,
		StatusCancelada, StatusExpirada, StatusArquivada:
		return true
	}
	return false
}

// AceitaDocumentacao informa se a negociação aceita anexo de documentos e
// publicação de contrato.
func (s Status) AceitaDocumentacao() bool {
	switch s {
	case StatusDocsEmRevisao, StatusContratoDisponivel, StatusAssinadoEmValidacao:
		return true
	}
	return false
}
