// internal/fechamento/validator.go
package fechamento

import (
	"math"

	"github.com/CasaLink/api-negociacao/internal/apperrors"
	"github.com/CasaLink/api-negociacao/internal/rateio"
)

// Tolerâncias absolutas de reconciliação da comissão.
const (
	ToleranciaPercentual = 0.0001 // soma dos percentuais deve fechar 100
	ToleranciaValor      = 0.01   // soma dos valores deve fechar o total (centavos)
)

// ItemRateio é a fatia proposta pelo corretor antes da normalização.
type ItemRateio struct {
	Papel           string   `json:"papel"`
	RecebedorID     *uint    `json:"recebedorId,omitempty"`
	ValorPercentual *float64 `json:"valorPercentual,omitempty"`
	ValorMonetario  *float64 `json:"valorMonetario,omitempty"`
}

func arredondar(v float64, casas int) float64 {
	fator := math.Pow10(casas)
	return math.Round(v*fator) / fator
}

// NormalizarRateios valida e normaliza a proposta de rateio conforme a
// modalidade. Regras: cada papel obrigatório aparece exatamente uma vez;
// PERCENT exige total percentual, fatias > 0 com 4 casas e soma 100;
// AMOUNT exige total monetário, fatias > 0 com 2 casas e soma igual ao total.
// Qualquer violação devolve ErroValidacao e nada é persistido.
func NormalizarRateios(modalidade string, totalPercentual, totalValor *float64, itens []ItemRateio) ([]rateio.Rateio, error) {
	if !ModalidadeValida(modalidade) {
		return nil, apperrors.Validacao("modalidade de comissão inválida: %q", modalidade)
	}

	vistos := map[string]bool{}
	for _, item := range itens {
		if !rateio.PapelRecebedorValido(item.Papel) {
			return nil, apperrors.Validacao("papel de rateio inválido: %q", item.Papel)
		}
		if vistos[item.Papel] {
			return nil, apperrors.Validacao("papel de rateio duplicado: %s", item.Papel)
		}
		vistos[item.Papel] = true
	}
	for _, papel := range rateio.PapeisObrigatorios() {
		if !vistos[papel] {
			return nil, apperrors.Validacao("papel de rateio obrigatório ausente: %s", papel)
		}
	}

	normalizados := make([]rateio.Rateio, 0, len(itens))

	switch modalidade {
	case ModalidadePercentual:
		if totalPercentual == nil {
			return nil, apperrors.Validacao("totalPercentual é obrigatório na modalidade PERCENT")
		}
		soma := 0.0
		for _, item := range itens {
			if item.ValorPercentual == nil || *item.ValorPercentual <= 0 {
				return nil, apperrors.Validacao("rateio %s precisa de valorPercentual > 0", item.Papel)
			}
			v := arredondar(*item.ValorPercentual, 4)
			soma += v
			normalizados = append(normalizados, rateio.Rateio{
				PapelRecebedor:  item.Papel,
				RecebedorID:     item.RecebedorID,
				ValorPercentual: &v,
			})
		}
		if math.Abs(soma-100) > ToleranciaPercentual {
			return nil, apperrors.Validacao("soma dos percentuais deve ser 100, obtido %.4f", soma)
		}

	case ModalidadeValor:
		if totalValor == nil {
			return nil, apperrors.Validacao("totalValor é obrigatório na modalidade AMOUNT")
		}
		soma := 0.0
		for _, item := range itens {
			if item.ValorMonetario == nil || *item.ValorMonetario <= 0 {
				return nil, apperrors.Validacao("rateio %s precisa de valorMonetario > 0", item.Papel)
			}
			v := arredondar(*item.ValorMonetario, 2)
			soma += v
			normalizados = append(normalizados, rateio.Rateio{
				PapelRecebedor: item.Papel,
				RecebedorID:    item.RecebedorID,
				ValorMonetario: &v,
			})
		}
		if math.Abs(soma-*totalValor) > ToleranciaValor {
			return nil, apperrors.Validacao("soma dos valores (%.2f) diverge do total (%.2f)", soma, *totalValor)
		}
	}

	return normalizados, nil
}
