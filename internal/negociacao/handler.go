// internal/negociacao/handler.go
package negociacao

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/CasaLink/api-negociacao/internal/apperrors"
	"github.com/CasaLink/api-negociacao/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler traduz requisições HTTP em comandos do serviço. Fino de propósito:
// toda regra de negócio mora no Service.
type Handler struct {
	Service *Service
}

// NewHandler cria um novo handler de negociações
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{Service: NewService(db)}
}

func atorDaRequisicao(r *http.Request) Ator {
	return Ator{
		UserID: auth.UserIDDoContexto(r.Context()),
		Papel:  auth.PapelDoContexto(r.Context()),
	}
}

func idDaRota(r *http.Request, nome string) (uint, bool) {
	v, err := strconv.Atoi(mux.Vars(r)[nome])
	if err != nil || v <= 0 {
		return 0, false
	}
	return uint(v), true
}

// responderErro mapeia a taxonomia de erros para códigos HTTP.
func responderErro(w http.ResponseWriter, err error) {
	switch {
	case apperrors.EhValidacao(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case apperrors.EhConflito(err):
		http.Error(w, err.Error(), http.StatusConflict)
	case apperrors.EhNaoEncontrado(err):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, "erro interno", http.StatusInternalServerError)
	}
}

func responderJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Criar trata POST /negociacoes
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var cmd ComandoCriar
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	n, err := h.Service.Criar(r.Context(), atorDaRequisicao(r), cmd)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusCreated, n)
}

// SubmeterParaAtivacao trata POST /negociacoes/{id}/submeter
func (h *Handler) SubmeterParaAtivacao(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	n, err := h.Service.SubmeterParaAtivacao(r.Context(), atorDaRequisicao(r), id)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, n)
}

// Ativar trata POST /negociacoes/{id}/ativar (somente admin)
func (h *Handler) Ativar(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var cmd ComandoAtivar
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
			http.Error(w, "JSON inválido", http.StatusBadRequest)
			return
		}
	}

	n, err := h.Service.AtivarPorAdmin(r.Context(), atorDaRequisicao(r), id, cmd)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, n)
}

// AnexarDocumento trata POST /negociacoes/{id}/documentos
func (h *Handler) AnexarDocumento(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var cmd ComandoAnexarDocumento
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	d, err := h.Service.AnexarDocumento(r.Context(), atorDaRequisicao(r), id, cmd)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusCreated, d)
}

// RevisarDocumento trata PATCH /negociacoes/{id}/documentos/{docId}/revisao
func (h *Handler) RevisarDocumento(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r, "id")
	docID, ok2 := idDaRota(r, "docId")
	if !ok || !ok2 {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var cmd ComandoRevisarDocumento
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	cmd.DocumentoID = docID

	d, err := h.Service.RevisarDocumento(r.Context(), atorDaRequisicao(r), id, cmd)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, d)
}

// PublicarContrato trata POST /negociacoes/{id}/contratos (somente admin)
func (h *Handler) PublicarContrato(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var cmd ComandoPublicarContrato
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	c, err := h.Service.PublicarContrato(r.Context(), atorDaRequisicao(r), id, cmd)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusCreated, c)
}

// AnexarAssinatura trata POST /negociacoes/{id}/assinaturas
func (h *Handler) AnexarAssinatura(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var cmd ComandoAnexarAssinatura
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	a, err := h.Service.AnexarAssinatura(r.Context(), atorDaRequisicao(r), id, cmd)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusCreated, a)
}

// ValidarAssinatura trata PATCH /negociacoes/{id}/assinaturas/{assinaturaId}/validacao
func (h *Handler) ValidarAssinatura(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r, "id")
	assinaturaID, ok2 := idDaRota(r, "assinaturaId")
	if !ok || !ok2 {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var cmd ComandoValidarAssinatura
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	cmd.AssinaturaID = assinaturaID

	a, err := h.Service.ValidarAssinatura(r.Context(), atorDaRequisicao(r), id, cmd)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, a)
}

// SubmeterFechamento trata POST /negociacoes/{id}/fechamento
func (h *Handler) SubmeterFechamento(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var cmd ComandoFechamento
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	f, err := h.Service.SubmeterFechamento(r.Context(), atorDaRequisicao(r), id, cmd)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusCreated, f)
}

// AprovarFechamento trata POST /negociacoes/{id}/fechamento/aprovar (somente admin)
func (h *Handler) AprovarFechamento(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	n, err := h.Service.AprovarFechamento(r.Context(), atorDaRequisicao(r), id)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, n)
}

// MarcarSemComissao trata POST /negociacoes/{id}/fechamento/sem-comissao (somente admin)
func (h *Handler) MarcarSemComissao(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	var cmd ComandoSemComissao
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	n, err := h.Service.MarcarSemComissao(r.Context(), atorDaRequisicao(r), id, cmd)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, n)
}

// BuscarDetalhes trata GET /negociacoes/{id}
func (h *Handler) BuscarDetalhes(w http.ResponseWriter, r *http.Request) {
	id, ok := idDaRota(r, "id")
	if !ok {
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return
	}

	det, err := h.Service.BuscarDetalhes(r.Context(), atorDaRequisicao(r), id)
	if err != nil {
		responderErro(w, err)
		return
	}
	responderJSON(w, http.StatusOK, det)
}
