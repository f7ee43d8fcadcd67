package fechamento

import (
	"testing"

	"github.com/CasaLink/api-negociacao/internal/apperrors"
	"github.com/CasaLink/api-negociacao/internal/rateio"
)

func f(v float64) *float64 { return &v }

func itensPercentuais(captador, plataforma, vendedor float64) []ItemRateio {
	return []ItemRateio{
		{Papel: rateio.PapelCaptador, ValorPercentual: f(captador)},
		{Papel: rateio.PapelPlataforma, ValorPercentual: f(plataforma)},
		{Papel: rateio.PapelCorretorVendedor, ValorPercentual: f(vendedor)},
	}
}

func itensMonetarios(captador, plataforma, vendedor float64) []ItemRateio {
	return []ItemRateio{
		{Papel: rateio.PapelCaptador, ValorMonetario: f(captador)},
		{Papel: rateio.PapelPlataforma, ValorMonetario: f(plataforma)},
		{Papel: rateio.PapelCorretorVendedor, ValorMonetario: f(vendedor)},
	}
}

func TestNormalizarRateiosPercentualValido(t *testing.T) {
	normalizados, err := NormalizarRateios(ModalidadePercentual, f(6), nil, itensPercentuais(50, 10, 40))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if len(normalizados) != 3 {
		t.Fatalf("esperados 3 rateios, obtidos %d", len(normalizados))
	}

	soma := 0.0
	for _, r := range normalizados {
		if r.ValorPercentual == nil {
			t.Fatalf("rateio %s sem valor percentual", r.PapelRecebedor)
		}
		soma += *r.ValorPercentual
	}
	if soma < 100-ToleranciaPercentual || soma > 100+ToleranciaPercentual {
		t.Errorf("soma dos percentuais = %f, esperado 100", soma)
	}
}

func TestNormalizarRateiosPercentualArredondaQuatroCasas(t *testing.T) {
	normalizados, err := NormalizarRateios(ModalidadePercentual, f(6), nil,
		itensPercentuais(33.33341, 33.3333, 33.33329))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	for _, r := range normalizados {
		if r.PapelRecebedor == rateio.PapelCaptador && *r.ValorPercentual != 33.3334 {
			t.Errorf("captador = %v, esperado 33.3334 após arredondamento", *r.ValorPercentual)
		}
	}
}

func TestNormalizarRateiosMonetarioValido(t *testing.T) {
	normalizados, err := NormalizarRateios(ModalidadeValor, nil, f(30000), itensMonetarios(15000, 3000, 12000))
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}

	soma := 0.0
	for _, r := range normalizados {
		soma += *r.ValorMonetario
	}
	if soma < 30000-ToleranciaValor || soma > 30000+ToleranciaValor {
		t.Errorf("soma dos valores = %f, esperado 30000", soma)
	}
}

func TestNormalizarRateiosRejeicoes(t *testing.T) {
	casos := []struct {
		nome            string
		modalidade      string
		totalPercentual *float64
		totalValor      *float64
		itens           []ItemRateio
	}{
		{
			nome:       "modalidade desconhecida",
			modalidade: "POINTS",
			itens:      itensPercentuais(50, 10, 40),
		},
		{
			nome:            "papel obrigatório ausente",
			modalidade:      ModalidadePercentual,
			totalPercentual: f(6),
			itens: []ItemRateio{
				{Papel: rateio.PapelCaptador, ValorPercentual: f(60)},
				{Papel: rateio.PapelPlataforma, ValorPercentual: f(40)},
			},
		},
		{
			nome:            "papel duplicado",
			modalidade:      ModalidadePercentual,
			totalPercentual: f(6),
			itens: []ItemRateio{
				{Papel: rateio.PapelCaptador, ValorPercentual: f(30)},
				{Papel: rateio.PapelCaptador, ValorPercentual: f(30)},
				{Papel: rateio.PapelPlataforma, ValorPercentual: f(10)},
				{Papel: rateio.PapelCorretorVendedor, ValorPercentual: f(30)},
			},
		},
		{
			nome:            "papel fora do conjunto",
			modalidade:      ModalidadePercentual,
			totalPercentual: f(6),
			itens: []ItemRateio{
				{Papel: "GERENTE", ValorPercentual: f(50)},
				{Papel: rateio.PapelPlataforma, ValorPercentual: f(10)},
				{Papel: rateio.PapelCorretorVendedor, ValorPercentual: f(40)},
			},
		},
		{
			nome:       "total percentual ausente",
			modalidade: ModalidadePercentual,
			itens:      itensPercentuais(50, 10, 40),
		},
		{
			nome:            "percentual não positivo",
			modalidade:      ModalidadePercentual,
			totalPercentual: f(6),
			itens:           itensPercentuais(0, 50, 50),
		},
		{
			nome:            "soma percentual diferente de 100",
			modalidade:      ModalidadePercentual,
			totalPercentual: f(6),
			itens:           itensPercentuais(50, 10, 39),
		},
		{
			nome:            "soma percentual fora da tolerância",
			modalidade:      ModalidadePercentual,
			totalPercentual: f(6),
			itens:           itensPercentuais(50, 10, 40.001),
		},
		{
			nome:       "total monetário ausente",
			modalidade: ModalidadeValor,
			itens:      itensMonetarios(15000, 3000, 12000),
		},
		{
			nome:       "valor monetário não positivo",
			modalidade: ModalidadeValor,
			totalValor: f(30000),
			itens:      itensMonetarios(-1, 15001, 15000),
		},
		{
			nome:       "soma monetária diverge do total",
			modalidade: ModalidadeValor,
			totalValor: f(30000),
			itens:      itensMonetarios(15000, 3000, 12000.02),
		},
	}

	for _, c := range casos {
		t.Run(c.nome, func(t *testing.T) {
			_, err := NormalizarRateios(c.modalidade, c.totalPercentual, c.totalValor, c.itens)
			if err == nil {
				t.Fatal("esperava erro de validação")
			}
			if !apperrors.EhValidacao(err) {
				t.Fatalf("esperava ErroValidacao, obteve %T: %v", err, err)
			}
		})
	}
}

func TestNormalizarRateiosToleranciaMonetaria(t *testing.T) {
	// diferença de um centavo fica dentro da tolerância
	if _, err := NormalizarRateios(ModalidadeValor, nil, f(30000.01), itensMonetarios(15000, 3000, 12000)); err != nil {
		t.Fatalf("diferença de 0.01 deveria passar: %v", err)
	}
}
