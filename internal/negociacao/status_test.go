package negociacao

import "testing"

func TestStatusEhFinal(t *testing.T) {
	casos := []struct {
		status Status
		final  bool
	}{
		{StatusRascunho, false},
		{StatusAguardandoAtivacao, false},
		{StatusDocsEmRevisao, false},
		{StatusContratoDisponivel, false},
		{StatusAssinadoEmValidacao, false},
		{StatusFechamentoSubmetido, false},
		{StatusVendidoComComissao, true},
		{StatusAlugadoComComissao, true},
		{StatusVendidoSemComissao, true},
		{StatusAlugadoSemComissao, true},
		{StatusCancelada, true},
		{StatusExpirada, true},
		{StatusArquivada, true},
	}

	for _, c := range casos {
		if got := c.status.EhFinal(); got != c.final {
			t.Errorf("%s: EhFinal() = %v, esperado %v", c.status, got, c.final)
		}
	}
}

func TestStatusAceitaDocumentacao(t *testing.T) {
	aceitam := []Status{StatusDocsEmRevisao, StatusContratoDisponivel, StatusAssinadoEmValidacao}
	for _, s := range aceitam {
		if !s.AceitaDocumentacao() {
			t.Errorf("%s deveria aceitar documentação", s)
		}
	}

	naoAceitam := []Status{StatusRascunho, StatusAguardandoAtivacao, StatusFechamentoSubmetido, StatusVendidoComComissao, StatusCancelada}
	for _, s := range naoAceitam {
		if s.AceitaDocumentacao() {
			t.Errorf("%s não deveria aceitar documentação", s)
		}
	}
}

func TestParticipante(t *testing.T) {
	n := &Negociacao{CaptadorID: 1, CorretorVendedorID: 2, CriadoPorID: 3}

	for _, id := range []uint{1, 2, 3} {
		if !n.Participante(id) {
			t.Errorf("usuário %d deveria ser participante", id)
		}
	}
	if n.Participante(99) {
		t.Error("usuário 99 não deveria ser participante")
	}
}
