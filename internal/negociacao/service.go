// internal/negociacao/service.go
//
// Service é o motor do ciclo de vida: valida papel e vínculo do ator, aplica a
// máquina de estados, dirige os stores em transação e registra auditoria.
package negociacao

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/CasaLink/api-negociacao/internal/apperrors"
	"github.com/CasaLink/api-negociacao/internal/assinatura"
	"github.com/CasaLink/api-negociacao/internal/auditoria"
	"github.com/CasaLink/api-negociacao/internal/contrato"
	"github.com/CasaLink/api-negociacao/internal/corretor"
	"github.com/CasaLink/api-negociacao/internal/documento"
	"github.com/CasaLink/api-negociacao/internal/fechamento"
	"github.com/CasaLink/api-negociacao/internal/imovel"
	"github.com/CasaLink/api-negociacao/internal/notificacao"
	"github.com/CasaLink/api-negociacao/internal/rateio"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Prazo padrão de expiração após a ativação.
const DiasSLAPadrao = 30

type Service struct {
	DB *gorm.DB

	Negociacoes Repository
	Documentos  documento.Repository
	Contratos   contrato.Repository
	Assinaturas assinatura.Repository
	Fechamentos fechamento.Repository
	Rateios     rateio.Repository
	Imoveis     imovel.Repository
	Corretores  corretor.Repository
	Auditoria   auditoria.Repository

	// Notificar é disparado fora da transação na ativação; falha não desfaz
	// nada. Substituível em teste.
	Notificar func(negociacaoID, imovelID uint)
}

// NewService monta o serviço com os repositórios padrão.
func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:          db,
		Negociacoes: NewRepository(),
		Documentos:  documento.NewRepository(),
		Contratos:   contrato.NewRepository(),
		Assinaturas: assinatura.NewRepository(),
		Fechamentos: fechamento.NewRepository(),
		Rateios:     rateio.NewRepository(),
		Imoveis:     imovel.NewRepository(),
		Corretores:  corretor.NewRepository(),
		Auditoria:   auditoria.NewRepository(),
		Notificar:   notificacao.EnviarWebhookAtivacao,
	}
}

/* ================== helpers ================== */

func (s *Service) carregar(db *gorm.DB, id uint) (*Negociacao, error) {
	n, err := s.Negociacoes.BuscarPorID(db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NaoEncontrado("negociação")
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func exigirAdmin(ator Ator) error {
	if !ator.Papel.EhAdmin() {
		return apperrors.Validacao("ação restrita a administradores")
	}
	return nil
}

func exigirCorretorParticipante(ator Ator, n *Negociacao) error {
	if ator.Papel.EhAdmin() {
		return nil
	}
	if !n.Participante(ator.UserID) {
		return apperrors.Validacao("corretor não participa desta negociação")
	}
	return nil
}

func comentarioVazio(c *string) bool {
	return c == nil || strings.TrimSpace(*c) == ""
}

// auditar registra exatamente um lançamento após a mutação bem-sucedida.
// Como a mutação já foi aplicada, a falha aqui é reportada ao chamador — nunca
// inventamos um rollback de transação já confirmada.
func (s *Service) auditar(db *gorm.DB, ator Ator, entidade string, entidadeID uint, acao string, meta map[string]interface{}) error {
	reg := &auditoria.Registro{
		AtorID:     ator.UserID,
		Entidade:   entidade,
		EntidadeID: entidadeID,
		Acao:       acao,
		Metadados:  meta,
	}
	if err := s.Auditoria.Registrar(db, reg); err != nil {
		log.Printf("ALERTA: mutação aplicada mas auditoria falhou (acao=%s, entidade=%s/%d): %v", acao, entidade, entidadeID, err)
		return fmt.Errorf("falha ao registrar auditoria: %w", err)
	}
	return nil
}

/* ================== operações ================== */

// Criar abre uma negociação em DRAFT para o imóvel. Ambos os corretores
// precisam estar aprovados na plataforma.
func (s *Service) Criar(ctx context.Context, ator Ator, cmd ComandoCriar) (*Negociacao, error) {
	if ator.Papel.EhAdmin() {
		return nil, apperrors.Validacao("negociação é criada por corretor, não por admin")
	}
	if cmd.ImovelID == 0 || cmd.CaptadorID == 0 || cmd.CorretorVendedorID == 0 {
		return nil, apperrors.Validacao("imovelId, captadorId e corretorVendedorId são obrigatórios")
	}

	db := s.DB.WithContext(ctx)

	if _, err := s.Imoveis.BuscarPorID(db, cmd.ImovelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NaoEncontrado("imóvel")
		}
		return nil, err
	}

	for _, corretorID := range []uint{cmd.CaptadorID, cmd.CorretorVendedorID} {
		aprovado, err := s.Corretores.EhCorretorAprovado(db, corretorID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NaoEncontrado("corretor")
		}
		if err != nil {
			return nil, err
		}
		if !aprovado {
			return nil, apperrors.Validacao("corretor %d não está aprovado na plataforma", corretorID)
		}
	}

	n := &Negociacao{
		ImovelID:           cmd.ImovelID,
		CaptadorID:         cmd.CaptadorID,
		CorretorVendedorID: cmd.CorretorVendedorID,
		Status:             StatusRascunho,
		CriadoPorID:        ator.UserID,
	}
	if err := s.Negociacoes.Salvar(db, n); err != nil {
		return nil, err
	}

	if err := s.auditar(db, ator, "negociacao", n.ID, "CRIAR", map[string]interface{}{
		"imovelId":   cmd.ImovelID,
		"captadorId": cmd.CaptadorID,
		"vendedorId": cmd.CorretorVendedorID,
	}); err != nil {
		return n, err
	}
	return n, nil
}

// SubmeterParaAtivacao move DRAFT -> PENDING_ACTIVATION.
func (s *Service) SubmeterParaAtivacao(ctx context.Context, ator Ator, negociacaoID uint) (*Negociacao, error) {
	db := s.DB.WithContext(ctx)

	n, err := s.carregar(db, negociacaoID)
	if err != nil {
		return nil, err
	}
	if err := exigirCorretorParticipante(ator, n); err != nil {
		return nil, err
	}
	if n.Status != StatusRascunho {
		return nil, apperrors.Validacao("transição inválida: submeter para ativação a partir de %s", n.Status)
	}

	if err := s.Negociacoes.AtualizarStatus(db, n.ID, StatusAguardandoAtivacao); err != nil {
		return nil, err
	}
	n.Status = StatusAguardandoAtivacao

	if err := s.auditar(db, ator, "negociacao", n.ID, "SUBMETER_ATIVACAO", map[string]interface{}{
		"de": StatusRascunho, "para": StatusAguardandoAtivacao,
	}); err != nil {
		return n, err
	}
	return n, nil
}

// AtivarPorAdmin move PENDING_ACTIVATION -> DOCS_IN_REVIEW. Única transição
// com invariante entre linhas: dentro da transação, trava as negociações
// ativas do imóvel; existindo outra, a ativação é rejeitada com conflito.
// Oculta o imóvel da vitrine e agenda o webhook de notificação.
func (s *Service) AtivarPorAdmin(ctx context.Context, ator Ator, negociacaoID uint, cmd ComandoAtivar) (*Negociacao, error) {
	if err := exigirAdmin(ator); err != nil {
		return nil, err
	}

	dias := DiasSLAPadrao
	if cmd.DiasSLA != nil {
		if *cmd.DiasSLA <= 0 {
			return nil, apperrors.Validacao("diasSla deve ser positivo")
		}
		dias = *cmd.DiasSLA
	}

	var n *Negociacao
	agora := time.Now()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		n, err = s.carregar(tx, negociacaoID)
		if err != nil {
			return err
		}
		if n.Status != StatusAguardandoAtivacao {
			return apperrors.Validacao("transição inválida: ativar a partir de %s", n.Status)
		}

		ativas, err := s.Negociacoes.BuscarAtivasPorImovelComLock(tx, n.ImovelID)
		if err != nil {
			return err
		}
		for _, outra := range ativas {
			if outra.ID != n.ID {
				return apperrors.Conflito("imóvel %d já possui negociação ativa (%d)", n.ImovelID, outra.ID)
			}
		}

		if err := s.Negociacoes.Ativar(tx, n.ID, agora, agora.AddDate(0, 0, dias)); err != nil {
			return err
		}
		return s.Imoveis.DefinirVisibilidade(tx, n.ImovelID, false)
	})
	if err != nil {
		return nil, err
	}

	n.Status = StatusDocsEmRevisao
	n.Ativa = true
	iniciada := agora
	expira := agora.AddDate(0, 0, dias)
	n.IniciadaEm = &iniciada
	n.ExpiraEm = &expira
	n.UltimaAtividadeEm = &iniciada

	if s.Notificar != nil {
		go s.Notificar(n.ID, n.ImovelID)
	}

	if err := s.auditar(s.DB.WithContext(ctx), ator, "negociacao", n.ID, "ATIVAR", map[string]interface{}{
		"de": StatusAguardandoAtivacao, "para": StatusDocsEmRevisao, "diasSla": dias,
	}); err != nil {
		return n, err
	}
	return n, nil
}

// AnexarDocumento registra um documento para revisão administrativa. Não muda
// o status da negociação.
func (s *Service) AnexarDocumento(ctx context.Context, ator Ator, negociacaoID uint, cmd ComandoAnexarDocumento) (*documento.Documento, error) {
	if strings.TrimSpace(cmd.Nome) == "" || strings.TrimSpace(cmd.URL) == "" {
		return nil, apperrors.Validacao("nome e url do documento são obrigatórios")
	}

	db := s.DB.WithContext(ctx)

	n, err := s.carregar(db, negociacaoID)
	if err != nil {
		return nil, err
	}
	if err := exigirCorretorParticipante(ator, n); err != nil {
		return nil, err
	}
	if !n.Status.AceitaDocumentacao() {
		return nil, apperrors.Validacao("negociação em %s não aceita documentos", n.Status)
	}

	d := &documento.Documento{
		NegociacaoID: n.ID,
		Nome:         cmd.Nome,
		URL:          cmd.URL,
		Status:       documento.StatusPendenteRevisao,
		EnviadoPorID: ator.UserID,
	}
	if err := s.Documentos.Criar(db, d); err != nil {
		return nil, err
	}
	if err := s.Negociacoes.RegistrarAtividade(db, n.ID, time.Now()); err != nil {
		return nil, err
	}

	if err := s.auditar(db, ator, "documento", d.ID, "ANEXAR_DOCUMENTO", map[string]interface{}{
		"negociacaoId": n.ID, "nome": d.Nome,
	}); err != nil {
		return d, err
	}
	return d, nil
}

// RevisarDocumento aplica o resultado da revisão administrativa. Agnóstico ao
// status da negociação, mas o documento precisa pertencer a ela. Ressalva e
// rejeição exigem comentário.
func (s *Service) RevisarDocumento(ctx context.Context, ator Ator, negociacaoID uint, cmd ComandoRevisarDocumento) (*documento.Documento, error) {
	if err := exigirAdmin(ator); err != nil {
		return nil, err
	}
	if !documento.StatusRevisaoValido(cmd.Status) {
		return nil, apperrors.Validacao("status de revisão inválido: %q", cmd.Status)
	}
	if (cmd.Status == documento.StatusAprovadoComRessalva || cmd.Status == documento.StatusRejeitado) && comentarioVazio(cmd.Comentario) {
		return nil, apperrors.Validacao("revisão %s exige comentário", cmd.Status)
	}

	db := s.DB.WithContext(ctx)

	if _, err := s.carregar(db, negociacaoID); err != nil {
		return nil, err
	}
	d, err := s.Documentos.BuscarPorIDENegociacao(db, cmd.DocumentoID, negociacaoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NaoEncontrado("documento")
	}
	if err != nil {
		return nil, err
	}

	statusAnterior := d.Status
	agora := time.Now()
	if err := s.Documentos.AtualizarRevisao(db, d.ID, cmd.Status, cmd.Comentario, ator.UserID, agora); err != nil {
		return nil, err
	}
	d.Status = cmd.Status
	d.ComentarioRevisao = cmd.Comentario
	d.RevisadoPorAdminID = &ator.UserID
	d.RevisadoEm = &agora

	if err := s.auditar(db, ator, "documento", d.ID, "REVISAR_DOCUMENTO", map[string]interface{}{
		"negociacaoId": negociacaoID, "de": statusAnterior, "para": cmd.Status,
	}); err != nil {
		return d, err
	}
	return d, nil
}

// PublicarContrato grava um novo artefato versionado (max+1) e move a
// negociação para CONTRACT_AVAILABLE.
func (s *Service) PublicarContrato(ctx context.Context, ator Ator, negociacaoID uint, cmd ComandoPublicarContrato) (*contrato.Contrato, error) {
	if err := exigirAdmin(ator); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cmd.URL) == "" {
		return nil, apperrors.Validacao("url do contrato é obrigatória")
	}

	var c *contrato.Contrato

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.carregar(tx, negociacaoID)
		if err != nil {
			return err
		}
		if !n.Status.AceitaDocumentacao() {
			return apperrors.Validacao("transição inválida: publicar contrato a partir de %s", n.Status)
		}

		versao, err := s.Contratos.ProximaVersao(tx, n.ID)
		if err != nil {
			return err
		}
		c = &contrato.Contrato{
			NegociacaoID:        n.ID,
			Versao:              versao,
			URL:                 cmd.URL,
			PublicadoPorAdminID: ator.UserID,
		}
		if err := s.Contratos.Criar(tx, c); err != nil {
			return err
		}
		return s.Negociacoes.AtualizarStatus(tx, n.ID, StatusContratoDisponivel)
	})
	if err != nil {
		return nil, err
	}

	if err := s.auditar(s.DB.WithContext(ctx), ator, "contrato", c.ID, "PUBLICAR_CONTRATO", map[string]interface{}{
		"negociacaoId": negociacaoID, "versao": c.Versao, "para": StatusContratoDisponivel,
	}); err != nil {
		return c, err
	}
	return c, nil
}

// AnexarAssinatura registra um documento assinado e move a negociação para
// SIGNED_PENDING_VALIDATION. Permitida em qualquer estado não final.
func (s *Service) AnexarAssinatura(ctx context.Context, ator Ator, negociacaoID uint, cmd ComandoAnexarAssinatura) (*assinatura.Assinatura, error) {
	if !assinatura.PapelAssinanteValido(cmd.PapelAssinante) {
		return nil, apperrors.Validacao("papel de assinante inválido: %q", cmd.PapelAssinante)
	}
	if strings.TrimSpace(cmd.ArquivoURL) == "" {
		return nil, apperrors.Validacao("arquivoUrl é obrigatório")
	}

	var a *assinatura.Assinatura
	var statusAnterior Status

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.carregar(tx, negociacaoID)
		if err != nil {
			return err
		}
		if err := exigirCorretorParticipante(ator, n); err != nil {
			return err
		}
		if n.Status.EhFinal() {
			return apperrors.Validacao("negociação em %s não aceita assinaturas", n.Status)
		}
		statusAnterior = n.Status

		a = &assinatura.Assinatura{
			NegociacaoID:    n.ID,
			PapelAssinante:  cmd.PapelAssinante,
			ArquivoURL:      cmd.ArquivoURL,
			ProvaImagemURL:  cmd.ProvaImagemURL,
			AssinadoPorID:   cmd.AssinadoPorID,
			EnviadoPorID:    ator.UserID,
			StatusValidacao: assinatura.StatusPendente,
		}
		if err := s.Assinaturas.Criar(tx, a); err != nil {
			return err
		}
		if err := s.Negociacoes.AtualizarStatus(tx, n.ID, StatusAssinadoEmValidacao); err != nil {
			return err
		}
		return s.Negociacoes.RegistrarAtividade(tx, n.ID, time.Now())
	})
	if err != nil {
		return nil, err
	}

	if err := s.auditar(s.DB.WithContext(ctx), ator, "assinatura", a.ID, "ANEXAR_ASSINATURA", map[string]interface{}{
		"negociacaoId": negociacaoID, "de": statusAnterior, "para": StatusAssinadoEmValidacao,
		"papelAssinante": cmd.PapelAssinante,
	}); err != nil {
		return a, err
	}
	return a, nil
}

// ValidarAssinatura grava o veredito administrativo sobre uma assinatura.
// Revalidação sobrescreve a anterior; rejeição exige comentário.
func (s *Service) ValidarAssinatura(ctx context.Context, ator Ator, negociacaoID uint, cmd ComandoValidarAssinatura) (*assinatura.Assinatura, error) {
	if err := exigirAdmin(ator); err != nil {
		return nil, err
	}
	if !assinatura.StatusValidacaoValido(cmd.Status) {
		return nil, apperrors.Validacao("status de validação inválido: %q", cmd.Status)
	}
	if cmd.Status == assinatura.StatusRejeitada && comentarioVazio(cmd.Comentario) {
		return nil, apperrors.Validacao("rejeição de assinatura exige comentário")
	}

	db := s.DB.WithContext(ctx)

	if _, err := s.carregar(db, negociacaoID); err != nil {
		return nil, err
	}
	a, err := s.Assinaturas.BuscarPorIDENegociacao(db, cmd.AssinaturaID, negociacaoID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NaoEncontrado("assinatura")
	}
	if err != nil {
		return nil, err
	}

	statusAnterior := a.StatusValidacao
	agora := time.Now()
	if err := s.Assinaturas.AtualizarValidacao(db, a.ID, cmd.Status, cmd.Comentario, ator.UserID, agora); err != nil {
		return nil, err
	}
	a.StatusValidacao = cmd.Status
	a.ComentarioValidacao = cmd.Comentario
	a.ValidadoPorAdminID = &ator.UserID
	a.ValidadoEm = &agora

	if err := s.auditar(db, ator, "assinatura", a.ID, "VALIDAR_ASSINATURA", map[string]interface{}{
		"negociacaoId": negociacaoID, "de": statusAnterior, "para": cmd.Status,
	}); err != nil {
		return a, err
	}
	return a, nil
}

// SubmeterFechamento valida o rateio (modalidade PERCENT ou AMOUNT), grava o
// fechamento e os rateios atomicamente — substituindo por completo os rateios
// de submissões anteriores — e move a negociação para CLOSE_SUBMITTED.
func (s *Service) SubmeterFechamento(ctx context.Context, ator Ator, negociacaoID uint, cmd ComandoFechamento) (*fechamento.Fechamento, error) {
	if !fechamento.TipoValido(cmd.Tipo) {
		return nil, apperrors.Validacao("tipo de fechamento inválido: %q", cmd.Tipo)
	}
	if strings.TrimSpace(cmd.ComprovantePagamentoURL) == "" {
		return nil, apperrors.Validacao("comprovantePagamentoUrl é obrigatório")
	}

	rateios, err := fechamento.NormalizarRateios(cmd.Modalidade, cmd.TotalPercentual, cmd.TotalValor, cmd.Rateios)
	if err != nil {
		return nil, err
	}

	var f *fechamento.Fechamento
	var statusAnterior Status

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := s.carregar(tx, negociacaoID)
		if err != nil {
			return err
		}
		if err := exigirCorretorParticipante(ator, n); err != nil {
			return err
		}
		if n.Status.EhFinal() {
			return apperrors.Validacao("negociação em %s não aceita fechamento", n.Status)
		}
		statusAnterior = n.Status

		// Substituição integral: rateios de submissões anteriores saem antes
		// dos novos entrarem.
		anteriores, err := s.Fechamentos.ListarIDsPorNegociacao(tx, n.ID)
		if err != nil {
			return err
		}
		if err := s.Rateios.DeletarPorFechamentos(tx, anteriores); err != nil {
			return err
		}

		f = &fechamento.Fechamento{
			NegociacaoID:            n.ID,
			Tipo:                    cmd.Tipo,
			Modalidade:              cmd.Modalidade,
			TotalPercentual:         cmd.TotalPercentual,
			TotalValor:              cmd.TotalValor,
			ComprovantePagamentoURL: cmd.ComprovantePagamentoURL,
			SubmetidoPorID:          ator.UserID,
		}
		if err := s.Fechamentos.Criar(tx, f); err != nil {
			return err
		}

		for i := range rateios {
			rateios[i].FechamentoID = f.ID
		}
		if err := s.Rateios.CriarLote(tx, rateios); err != nil {
			return err
		}

		if err := s.Negociacoes.AtualizarStatus(tx, n.ID, StatusFechamentoSubmetido); err != nil {
			return err
		}
		return s.Negociacoes.RegistrarAtividade(tx, n.ID, time.Now())
	})
	if err != nil {
		return nil, err
	}

	if err := s.auditar(s.DB.WithContext(ctx), ator, "fechamento", f.ID, "SUBMETER_FECHAMENTO", map[string]interface{}{
		"negociacaoId": negociacaoID, "de": statusAnterior, "para": StatusFechamentoSubmetido,
		"tipo": cmd.Tipo, "modalidade": cmd.Modalidade,
	}); err != nil {
		return f, err
	}
	return f, nil
}

// AprovarFechamento finaliza CLOSE_SUBMITTED em SOLD_COMMISSIONED ou
// RENTED_COMMISSIONED conforme o tipo do fechamento vigente, atualiza o ciclo
// do imóvel e libera a flag de ativa.
func (s *Service) AprovarFechamento(ctx context.Context, ator Ator, negociacaoID uint) (*Negociacao, error) {
	return s.finalizarFechamento(ctx, ator, negociacaoID, "APROVAR_FECHAMENTO", nil)
}

// MarcarSemComissao finaliza CLOSE_SUBMITTED em SOLD_NO_COMMISSION ou
// RENTED_NO_COMMISSION. O motivo é obrigatório.
func (s *Service) MarcarSemComissao(ctx context.Context, ator Ator, negociacaoID uint, cmd ComandoSemComissao) (*Negociacao, error) {
	motivo := strings.TrimSpace(cmd.Motivo)
	if motivo == "" {
		return nil, apperrors.Validacao("marcar sem comissão exige motivo")
	}
	return s.finalizarFechamento(ctx, ator, negociacaoID, "MARCAR_SEM_COMISSAO", &motivo)
}

func (s *Service) finalizarFechamento(ctx context.Context, ator Ator, negociacaoID uint, acao string, motivoSemComissao *string) (*Negociacao, error) {
	if err := exigirAdmin(ator); err != nil {
		return nil, err
	}

	var n *Negociacao
	var statusFinal Status
	agora := time.Now()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		n, err = s.carregar(tx, negociacaoID)
		if err != nil {
			return err
		}
		if n.Status != StatusFechamentoSubmetido {
			return apperrors.Validacao("transição inválida: finalizar fechamento a partir de %s", n.Status)
		}

		f, err := s.Fechamentos.BuscarUltimoPorNegociacao(tx, n.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NaoEncontrado("fechamento")
		}
		if err != nil {
			return err
		}

		var ciclo string
		if motivoSemComissao == nil {
			if err := s.Fechamentos.Aprovar(tx, f.ID, ator.UserID, agora); err != nil {
				return err
			}
			if f.Tipo == fechamento.TipoVenda {
				statusFinal = StatusVendidoComComissao
			} else {
				statusFinal = StatusAlugadoComComissao
			}
		} else {
			if err := s.Fechamentos.MarcarSemComissao(tx, f.ID, ator.UserID, *motivoSemComissao, agora); err != nil {
				return err
			}
			if f.Tipo == fechamento.TipoVenda {
				statusFinal = StatusVendidoSemComissao
			} else {
				statusFinal = StatusAlugadoSemComissao
			}
		}

		if f.Tipo == fechamento.TipoVenda {
			ciclo = imovel.CicloVendido
		} else {
			ciclo = imovel.CicloAlugado
		}

		if err := s.Negociacoes.Encerrar(tx, n.ID, statusFinal, agora); err != nil {
			return err
		}
		return s.Imoveis.DefinirStatusCiclo(tx, n.ImovelID, ciclo)
	})
	if err != nil {
		return nil, err
	}

	statusAnterior := n.Status
	n.Status = statusFinal
	n.Ativa = false

	if err := s.auditar(s.DB.WithContext(ctx), ator, "negociacao", n.ID, acao, map[string]interface{}{
		"de": statusAnterior, "para": statusFinal,
	}); err != nil {
		return n, err
	}
	return n, nil
}

// BuscarDetalhes monta o read-model agregado. Admin lê qualquer negociação;
// corretor apenas as suas. Leitura pura, sem locks: os stores são consultados
// em paralelo.
func (s *Service) BuscarDetalhes(ctx context.Context, ator Ator, negociacaoID uint) (*Detalhes, error) {
	db := s.DB.WithContext(ctx)

	n, err := s.carregar(db, negociacaoID)
	if err != nil {
		return nil, err
	}
	if err := exigirCorretorParticipante(ator, n); err != nil {
		return nil, err
	}

	det := &Detalhes{Negociacao: *n}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		docs, err := s.Documentos.ListarPorNegociacao(s.DB.WithContext(gctx), n.ID)
		if err != nil {
			return err
		}
		det.Documentos = docs
		return nil
	})
	g.Go(func() error {
		c, err := s.Contratos.BuscarUltimaPorNegociacao(s.DB.WithContext(gctx), n.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		det.ContratoVigente = c
		return nil
	})
	g.Go(func() error {
		as, err := s.Assinaturas.ListarPorNegociacao(s.DB.WithContext(gctx), n.ID)
		if err != nil {
			return err
		}
		det.Assinaturas = as
		return nil
	})
	g.Go(func() error {
		f, err := s.Fechamentos.BuscarUltimoPorNegociacao(s.DB.WithContext(gctx), n.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		det.Fechamento = f
		rs, err := s.Rateios.ListarPorFechamento(s.DB.WithContext(gctx), f.ID)
		if err != nil {
			return err
		}
		det.Rateios = rs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if n.IniciadaEm != nil {
		if dias := int(time.Since(*n.IniciadaEm).Hours() / 24); dias > 0 {
			det.DiasEmNegociacao = dias
		}
	}

	return det, nil
}
