package negociacao_test

import (
	"context"
	"testing"
	"time"

	"github.com/CasaLink/api-negociacao/internal/apperrors"
	"github.com/CasaLink/api-negociacao/internal/assinatura"
	"github.com/CasaLink/api-negociacao/internal/auditoria"
	"github.com/CasaLink/api-negociacao/internal/auth"
	"github.com/CasaLink/api-negociacao/internal/contrato"
	"github.com/CasaLink/api-negociacao/internal/corretor"
	"github.com/CasaLink/api-negociacao/internal/documento"
	"github.com/CasaLink/api-negociacao/internal/fechamento"
	"github.com/CasaLink/api-negociacao/internal/imovel"
	"github.com/CasaLink/api-negociacao/internal/negociacao"
	"github.com/CasaLink/api-negociacao/internal/rateio"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func f(v float64) *float64 { return &v }

func novoBancoDeTeste(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("abrir sqlite em memória: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("obter *sql.DB: %v", err)
	}
	// banco em memória: uma conexão só, senão cada conexão enxerga um banco vazio
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&corretor.Corretor{},
		&imovel.Imovel{},
		&negociacao.Negociacao{},
		&documento.Documento{},
		&contrato.Contrato{},
		&assinatura.Assinatura{},
		&fechamento.Fechamento{},
		&rateio.Rateio{},
		&auditoria.Registro{},
	); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return db
}

type cenario struct {
	db       *gorm.DB
	svc      *negociacao.Service
	admin    negociacao.Ator
	captador negociacao.Ator
	vendedor negociacao.Ator
	imovelID uint
}

func novoCenario(t *testing.T) *cenario {
	t.Helper()

	db := novoBancoDeTeste(t)
	svc := negociacao.NewService(db)
	svc.Notificar = func(uint, uint) {}

	captador := corretor.Corretor{Nome: "Ana", CRECI: "SC-10001", Email: "ana@corretora.test", Senha: "x", Aprovado: true}
	vendedor := corretor.Corretor{Nome: "Bruno", CRECI: "SC-10002", Email: "bruno@corretora.test", Senha: "x", Aprovado: true}
	admin := corretor.Corretor{Nome: "Clara", CRECI: "SC-10003", Email: "clara@plataforma.test", Senha: "x", IsAdmin: true, Aprovado: true}
	for _, c := range []*corretor.Corretor{&captador, &vendedor, &admin} {
		if err := db.Create(c).Error; err != nil {
			t.Fatalf("seed corretor: %v", err)
		}
	}

	im := imovel.Imovel{Titulo: "Apartamento Centro", Cidade: "Florianópolis", UF: "SC", Preco: 650000, CaptadorID: captador.ID, Visivel: true, StatusCiclo: imovel.CicloDisponivel}
	if err := db.Create(&im).Error; err != nil {
		t.Fatalf("seed imóvel: %v", err)
	}

	return &cenario{
		db:       db,
		svc:      svc,
		admin:    negociacao.Ator{UserID: admin.ID, Papel: auth.PapelAdmin},
		captador: negociacao.Ator{UserID: captador.ID, Papel: auth.PapelCorretor},
		vendedor: negociacao.Ator{UserID: vendedor.ID, Papel: auth.PapelCorretor},
		imovelID: im.ID,
	}
}

func (c *cenario) criarNegociacao(t *testing.T) *negociacao.Negociacao {
	t.Helper()
	n, err := c.svc.Criar(context.Background(), c.captador, negociacao.ComandoCriar{
		ImovelID:           c.imovelID,
		CaptadorID:         c.captador.UserID,
		CorretorVendedorID: c.vendedor.UserID,
	})
	if err != nil {
		t.Fatalf("criar negociação: %v", err)
	}
	return n
}

func (c *cenario) negociacaoAtivada(t *testing.T) *negociacao.Negociacao {
	t.Helper()
	ctx := context.Background()

	n := c.criarNegociacao(t)
	if _, err := c.svc.SubmeterParaAtivacao(ctx, c.captador, n.ID); err != nil {
		t.Fatalf("submeter: %v", err)
	}
	ativada, err := c.svc.AtivarPorAdmin(ctx, c.admin, n.ID, negociacao.ComandoAtivar{})
	if err != nil {
		t.Fatalf("ativar: %v", err)
	}
	return ativada
}

func rateiosPercentuais() []fechamento.ItemRateio {
	return []fechamento.ItemRateio{
		{Papel: rateio.PapelCaptador, ValorPercentual: f(50)},
		{Papel: rateio.PapelPlataforma, ValorPercentual: f(10)},
		{Papel: rateio.PapelCorretorVendedor, ValorPercentual: f(40)},
	}
}

func TestCicloCompletoDaNegociacao(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()

	n := c.criarNegociacao(t)
	if n.Status != negociacao.StatusRascunho {
		t.Fatalf("status inicial = %s, esperado DRAFT", n.Status)
	}

	if _, err := c.svc.SubmeterParaAtivacao(ctx, c.captador, n.ID); err != nil {
		t.Fatalf("submeter: %v", err)
	}

	dias := 30
	ativada, err := c.svc.AtivarPorAdmin(ctx, c.admin, n.ID, negociacao.ComandoAtivar{DiasSLA: &dias})
	if err != nil {
		t.Fatalf("ativar: %v", err)
	}
	if ativada.Status != negociacao.StatusDocsEmRevisao || !ativada.Ativa {
		t.Fatalf("após ativação: status=%s ativa=%v", ativada.Status, ativada.Ativa)
	}
	if ativada.ExpiraEm == nil || ativada.IniciadaEm == nil {
		t.Fatal("prazos não gravados na ativação")
	}
	esperado := ativada.IniciadaEm.AddDate(0, 0, 30)
	if delta := ativada.ExpiraEm.Sub(esperado); delta < -time.Minute || delta > time.Minute {
		t.Errorf("expiraEm = %v, esperado ≈ %v", ativada.ExpiraEm, esperado)
	}

	var im imovel.Imovel
	if err := c.db.First(&im, c.imovelID).Error; err != nil {
		t.Fatalf("recarregar imóvel: %v", err)
	}
	if im.Visivel {
		t.Error("imóvel deveria sair da vitrine após a ativação")
	}

	doc, err := c.svc.AnexarDocumento(ctx, c.vendedor, n.ID, negociacao.ComandoAnexarDocumento{
		Nome: "Matrícula do imóvel", URL: "https://files.test/matricula.pdf",
	})
	if err != nil {
		t.Fatalf("anexar documento: %v", err)
	}

	doc, err = c.svc.RevisarDocumento(ctx, c.admin, n.ID, negociacao.ComandoRevisarDocumento{
		DocumentoID: doc.ID, Status: documento.StatusAprovado,
	})
	if err != nil {
		t.Fatalf("revisar documento: %v", err)
	}
	if doc.Status != documento.StatusAprovado {
		t.Fatalf("documento = %s, esperado APPROVED", doc.Status)
	}

	ct, err := c.svc.PublicarContrato(ctx, c.admin, n.ID, negociacao.ComandoPublicarContrato{
		URL: "https://files.test/contrato-v1.pdf",
	})
	if err != nil {
		t.Fatalf("publicar contrato: %v", err)
	}
	if ct.Versao != 1 {
		t.Fatalf("versão = %d, esperado 1", ct.Versao)
	}

	sig, err := c.svc.AnexarAssinatura(ctx, c.captador, n.ID, negociacao.ComandoAnexarAssinatura{
		PapelAssinante: assinatura.PapelCaptador,
		ArquivoURL:     "https://files.test/contrato-assinado.pdf",
	})
	if err != nil {
		t.Fatalf("anexar assinatura: %v", err)
	}

	if _, err := c.svc.ValidarAssinatura(ctx, c.admin, n.ID, negociacao.ComandoValidarAssinatura{
		AssinaturaID: sig.ID, Status: assinatura.StatusAprovada,
	}); err != nil {
		t.Fatalf("validar assinatura: %v", err)
	}

	if _, err := c.svc.SubmeterFechamento(ctx, c.vendedor, n.ID, negociacao.ComandoFechamento{
		Tipo:                    fechamento.TipoVenda,
		Modalidade:              fechamento.ModalidadePercentual,
		TotalPercentual:         f(6),
		ComprovantePagamentoURL: "https://files.test/comprovante.pdf",
		Rateios:                 rateiosPercentuais(),
	}); err != nil {
		t.Fatalf("submeter fechamento: %v", err)
	}

	final, err := c.svc.AprovarFechamento(ctx, c.admin, n.ID)
	if err != nil {
		t.Fatalf("aprovar fechamento: %v", err)
	}
	if final.Status != negociacao.StatusVendidoComComissao {
		t.Fatalf("status final = %s, esperado SOLD_COMMISSIONED", final.Status)
	}
	if final.Ativa {
		t.Error("negociação finalizada deveria liberar a flag de ativa")
	}

	if err := c.db.First(&im, c.imovelID).Error; err != nil {
		t.Fatalf("recarregar imóvel: %v", err)
	}
	if im.StatusCiclo != imovel.CicloVendido {
		t.Errorf("ciclo do imóvel = %s, esperado SOLD", im.StatusCiclo)
	}

	det, err := c.svc.BuscarDetalhes(ctx, c.captador, n.ID)
	if err != nil {
		t.Fatalf("buscar detalhes: %v", err)
	}
	if len(det.Documentos) != 1 || len(det.Assinaturas) != 1 {
		t.Errorf("detalhes incompletos: %d documentos, %d assinaturas", len(det.Documentos), len(det.Assinaturas))
	}
	if det.ContratoVigente == nil || det.ContratoVigente.Versao != 1 {
		t.Error("contrato vigente ausente nos detalhes")
	}
	if det.Fechamento == nil || len(det.Rateios) != 3 {
		t.Errorf("fechamento/rateios ausentes nos detalhes")
	}
	if det.DiasEmNegociacao != 0 {
		t.Errorf("diasEmNegociacao = %d, esperado 0 logo após a ativação", det.DiasEmNegociacao)
	}
}

func TestAtivacaoRejeitaSegundaNegociacaoDoImovel(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()

	primeira := c.criarNegociacao(t)
	segunda := c.criarNegociacao(t)
	for _, n := range []*negociacao.Negociacao{primeira, segunda} {
		if _, err := c.svc.SubmeterParaAtivacao(ctx, c.captador, n.ID); err != nil {
			t.Fatalf("submeter: %v", err)
		}
	}

	if _, err := c.svc.AtivarPorAdmin(ctx, c.admin, primeira.ID, negociacao.ComandoAtivar{}); err != nil {
		t.Fatalf("primeira ativação: %v", err)
	}

	_, err := c.svc.AtivarPorAdmin(ctx, c.admin, segunda.ID, negociacao.ComandoAtivar{})
	if err == nil {
		t.Fatal("segunda ativação deveria falhar")
	}
	if !apperrors.EhConflito(err) {
		t.Fatalf("esperava ErroConflito, obteve %T: %v", err, err)
	}

	var ativas int64
	if err := c.db.Model(&negociacao.Negociacao{}).
		Where("imovel_id = ? AND ativa = ?", c.imovelID, true).
		Count(&ativas).Error; err != nil {
		t.Fatalf("contar ativas: %v", err)
	}
	if ativas != 1 {
		t.Fatalf("negociações ativas = %d, esperado exatamente 1", ativas)
	}
}

func TestRevisarDocumentoRejeitadoExigeComentario(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()

	n := c.negociacaoAtivada(t)
	doc, err := c.svc.AnexarDocumento(ctx, c.captador, n.ID, negociacao.ComandoAnexarDocumento{
		Nome: "RG", URL: "https://files.test/rg.pdf",
	})
	if err != nil {
		t.Fatalf("anexar documento: %v", err)
	}

	_, err = c.svc.RevisarDocumento(ctx, c.admin, n.ID, negociacao.ComandoRevisarDocumento{
		DocumentoID: doc.ID, Status: documento.StatusRejeitado,
	})
	if !apperrors.EhValidacao(err) {
		t.Fatalf("esperava ErroValidacao, obteve %v", err)
	}

	var atual documento.Documento
	if err := c.db.First(&atual, doc.ID).Error; err != nil {
		t.Fatalf("recarregar documento: %v", err)
	}
	if atual.Status != documento.StatusPendenteRevisao {
		t.Fatalf("status do documento mudou para %s após revisão rejeitada", atual.Status)
	}
}

func TestFechamentoComSomaInvalidaNaoPersisteNada(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()

	n := c.negociacaoAtivada(t)

	rateios := []fechamento.ItemRateio{
		{Papel: rateio.PapelCaptador, ValorPercentual: f(50)},
		{Papel: rateio.PapelPlataforma, ValorPercentual: f(10)},
		{Papel: rateio.PapelCorretorVendedor, ValorPercentual: f(39)},
	}
	_, err := c.svc.SubmeterFechamento(ctx, c.captador, n.ID, negociacao.ComandoFechamento{
		Tipo:                    fechamento.TipoVenda,
		Modalidade:              fechamento.ModalidadePercentual,
		TotalPercentual:         f(6),
		ComprovantePagamentoURL: "https://files.test/comprovante.pdf",
		Rateios:                 rateios,
	})
	if !apperrors.EhValidacao(err) {
		t.Fatalf("esperava ErroValidacao, obteve %v", err)
	}

	var fechamentos int64
	if err := c.db.Model(&fechamento.Fechamento{}).
		Where("negociacao_id = ?", n.ID).Count(&fechamentos).Error; err != nil {
		t.Fatalf("contar fechamentos: %v", err)
	}
	if fechamentos != 0 {
		t.Fatalf("fechamentos persistidos = %d, esperado 0", fechamentos)
	}

	atual, err := c.svc.BuscarDetalhes(ctx, c.admin, n.ID)
	if err != nil {
		t.Fatalf("detalhes: %v", err)
	}
	if atual.Negociacao.Status != negociacao.StatusDocsEmRevisao {
		t.Fatalf("status mudou para %s após fechamento inválido", atual.Negociacao.Status)
	}
}

func TestFechamentoMonetarioReconciliaComTotal(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()

	n := c.negociacaoAtivada(t)

	_, err := c.svc.SubmeterFechamento(ctx, c.captador, n.ID, negociacao.ComandoFechamento{
		Tipo:       fechamento.TipoAluguel,
		Modalidade: fechamento.ModalidadeValor,
		TotalValor: f(4500),
		Rateios: []fechamento.ItemRateio{
			{Papel: rateio.PapelCaptador, ValorMonetario: f(2000)},
			{Papel: rateio.PapelPlataforma, ValorMonetario: f(500)},
			{Papel: rateio.PapelCorretorVendedor, ValorMonetario: f(2000)},
		},
		ComprovantePagamentoURL: "https://files.test/pix.pdf",
	})
	if err != nil {
		t.Fatalf("fechamento monetário: %v", err)
	}

	final, err := c.svc.AprovarFechamento(ctx, c.admin, n.ID)
	if err != nil {
		t.Fatalf("aprovar: %v", err)
	}
	if final.Status != negociacao.StatusAlugadoComComissao {
		t.Fatalf("status final = %s, esperado RENTED_COMMISSIONED", final.Status)
	}

	var im imovel.Imovel
	if err := c.db.First(&im, c.imovelID).Error; err != nil {
		t.Fatalf("recarregar imóvel: %v", err)
	}
	if im.StatusCiclo != imovel.CicloAlugado {
		t.Errorf("ciclo do imóvel = %s, esperado RENTED", im.StatusCiclo)
	}
}

func TestFinalizarNegociacaoJaTerminalFalhaSemNovaAuditoria(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()

	n := c.negociacaoAtivada(t)
	if _, err := c.svc.SubmeterFechamento(ctx, c.captador, n.ID, negociacao.ComandoFechamento{
		Tipo:                    fechamento.TipoVenda,
		Modalidade:              fechamento.ModalidadePercentual,
		TotalPercentual:         f(6),
		ComprovantePagamentoURL: "https://files.test/comprovante.pdf",
		Rateios:                 rateiosPercentuais(),
	}); err != nil {
		t.Fatalf("submeter fechamento: %v", err)
	}
	if _, err := c.svc.AprovarFechamento(ctx, c.admin, n.ID); err != nil {
		t.Fatalf("primeira aprovação: %v", err)
	}

	if _, err := c.svc.AprovarFechamento(ctx, c.admin, n.ID); !apperrors.EhValidacao(err) {
		t.Fatalf("segunda aprovação deveria falhar com validação, obteve %v", err)
	}
	if _, err := c.svc.MarcarSemComissao(ctx, c.admin, n.ID, negociacao.ComandoSemComissao{Motivo: "tarde demais"}); !apperrors.EhValidacao(err) {
		t.Fatalf("sem-comissão após terminal deveria falhar, obteve %v", err)
	}

	var lancamentos int64
	if err := c.db.Model(&auditoria.Registro{}).
		Where("entidade = ? AND entidade_id = ? AND acao = ?", "negociacao", n.ID, "APROVAR_FECHAMENTO").
		Count(&lancamentos).Error; err != nil {
		t.Fatalf("contar auditoria: %v", err)
	}
	if lancamentos != 1 {
		t.Fatalf("lançamentos de aprovação = %d, esperado exatamente 1", lancamentos)
	}
}

func TestPublicarSegundoContratoIncrementaVersao(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()

	n := c.negociacaoAtivada(t)

	v1, err := c.svc.PublicarContrato(ctx, c.admin, n.ID, negociacao.ComandoPublicarContrato{URL: "https://files.test/v1.pdf"})
	if err != nil {
		t.Fatalf("publicar v1: %v", err)
	}
	v2, err := c.svc.PublicarContrato(ctx, c.admin, n.ID, negociacao.ComandoPublicarContrato{URL: "https://files.test/v2.pdf"})
	if err != nil {
		t.Fatalf("publicar v2: %v", err)
	}
	if v1.Versao != 1 || v2.Versao != 2 {
		t.Fatalf("versões = %d e %d, esperado 1 e 2", v1.Versao, v2.Versao)
	}

	ultimo, err := contrato.NewRepository().BuscarUltimaPorNegociacao(c.db, n.ID)
	if err != nil {
		t.Fatalf("buscar última versão: %v", err)
	}
	if ultimo.Versao != 2 || ultimo.URL != "https://files.test/v2.pdf" {
		t.Fatalf("última versão = %d (%s), esperado v2", ultimo.Versao, ultimo.URL)
	}
}

func TestMarcarSemComissaoExigeMotivo(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()

	n := c.negociacaoAtivada(t)
	if _, err := c.svc.SubmeterFechamento(ctx, c.captador, n.ID, negociacao.ComandoFechamento{
		Tipo:                    fechamento.TipoVenda,
		Modalidade:              fechamento.ModalidadePercentual,
		TotalPercentual:         f(6),
		ComprovantePagamentoURL: "https://files.test/comprovante.pdf",
		Rateios:                 rateiosPercentuais(),
	}); err != nil {
		t.Fatalf("submeter fechamento: %v", err)
	}

	if _, err := c.svc.MarcarSemComissao(ctx, c.admin, n.ID, negociacao.ComandoSemComissao{Motivo: "   "}); !apperrors.EhValidacao(err) {
		t.Fatalf("motivo em branco deveria falhar, obteve %v", err)
	}

	final, err := c.svc.MarcarSemComissao(ctx, c.admin, n.ID, negociacao.ComandoSemComissao{Motivo: "negócio fechado fora da plataforma"})
	if err != nil {
		t.Fatalf("marcar sem comissão: %v", err)
	}
	if final.Status != negociacao.StatusVendidoSemComissao {
		t.Fatalf("status final = %s, esperado SOLD_NO_COMMISSION", final.Status)
	}
}

func TestBuscarDetalhesNegaCorretorDeFora(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()

	intruso := corretor.Corretor{Nome: "Davi", CRECI: "SC-10004", Email: "davi@corretora.test", Senha: "x", Aprovado: true}
	if err := c.db.Create(&intruso).Error; err != nil {
		t.Fatalf("seed intruso: %v", err)
	}

	n := c.criarNegociacao(t)

	_, err := c.svc.BuscarDetalhes(ctx, negociacao.Ator{UserID: intruso.ID, Papel: auth.PapelCorretor}, n.ID)
	if !apperrors.EhValidacao(err) {
		t.Fatalf("corretor de fora deveria ser barrado, obteve %v", err)
	}

	if _, err := c.svc.BuscarDetalhes(ctx, c.admin, n.ID); err != nil {
		t.Fatalf("admin deveria ler qualquer negociação: %v", err)
	}
}

func TestSubmeterParaAtivacaoForaDoRascunho(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()

	n := c.criarNegociacao(t)
	if _, err := c.svc.SubmeterParaAtivacao(ctx, c.captador, n.ID); err != nil {
		t.Fatalf("submeter: %v", err)
	}

	if _, err := c.svc.SubmeterParaAtivacao(ctx, c.captador, n.ID); !apperrors.EhValidacao(err) {
		t.Fatalf("segunda submissão deveria falhar, obteve %v", err)
	}
}

func TestResubmissaoDeFechamentoSubstituiRateios(t *testing.T) {
	c := novoCenario(t)
	ctx := context.Background()

	n := c.negociacaoAtivada(t)

	enviar := func(captadorPct float64, vendedorPct float64) error {
		_, err := c.svc.SubmeterFechamento(ctx, c.captador, n.ID, negociacao.ComandoFechamento{
			Tipo:                    fechamento.TipoVenda,
			Modalidade:              fechamento.ModalidadePercentual,
			TotalPercentual:         f(6),
			ComprovantePagamentoURL: "https://files.test/comprovante.pdf",
			Rateios: []fechamento.ItemRateio{
				{Papel: rateio.PapelCaptador, ValorPercentual: f(captadorPct)},
				{Papel: rateio.PapelPlataforma, ValorPercentual: f(10)},
				{Papel: rateio.PapelCorretorVendedor, ValorPercentual: f(vendedorPct)},
			},
		})
		return err
	}

	if err := enviar(50, 40); err != nil {
		t.Fatalf("primeira submissão: %v", err)
	}
	if err := enviar(60, 30); err != nil {
		t.Fatalf("resubmissão: %v", err)
	}

	det, err := c.svc.BuscarDetalhes(ctx, c.admin, n.ID)
	if err != nil {
		t.Fatalf("detalhes: %v", err)
	}
	if len(det.Rateios) != 3 {
		t.Fatalf("rateios vigentes = %d, esperado 3 (substituição integral)", len(det.Rateios))
	}
	for _, r := range det.Rateios {
		if r.PapelRecebedor == rateio.PapelCaptador && *r.ValorPercentual != 60 {
			t.Errorf("captador = %v, esperado 60 após resubmissão", *r.ValorPercentual)
		}
	}

	var totalRateios int64
	if err := c.db.Model(&rateio.Rateio{}).Count(&totalRateios).Error; err != nil {
		t.Fatalf("contar rateios: %v", err)
	}
	if totalRateios != 3 {
		t.Fatalf("rateios no banco = %d, esperado 3 (os antigos saem)", totalRateios)
	}
}
