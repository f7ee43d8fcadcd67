// internal/corretor/handler.go
package corretor

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/CasaLink/api-negociacao/internal/auth"
	"github.com/CasaLink/api-negociacao/internal/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

// NewHandler cria um novo handler de corretores
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		DB:         db,
		Repository: NewRepository(),
	}
}

// Login gera um JWT para credenciais válidas
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	user, err := h.Repository.BuscarPorEmailOuCRECI(h.DB, strings.TrimSpace(req.Login))
	if err != nil {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}
	if !utils.CheckSenha(user.Senha, req.Senha) {
		http.Error(w, "credenciais inválidas", http.StatusUnauthorized)
		return
	}

	papel := auth.PapelCorretor
	if user.IsAdmin {
		papel = auth.PapelAdmin
	}

	token, err := auth.GerarToken(user.ID, papel)
	if err != nil {
		http.Error(w, "erro ao gerar token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// Criar trata POST /corretores (somente admin)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	var dto CriarCorretorDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Email) == "" || strings.TrimSpace(dto.Senha) == "" {
		http.Error(w, "email e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashSenha(dto.Senha)
	if err != nil {
		http.Error(w, "erro ao processar senha", http.StatusInternalServerError)
		return
	}

	c := Corretor{
		Nome:      dto.Nome,
		Sobrenome: dto.Sobrenome,
		CRECI:     dto.CRECI,
		Email:     dto.Email,
		Telefone:  dto.Telefone,
		Foto:      dto.Foto,
		Senha:     hash,
		IsAdmin:   dto.IsAdmin,
		Aprovado:  dto.Aprovado,
	}
	if err := h.Repository.Salvar(h.DB, &c); err != nil {
		http.Error(w, "Erro ao salvar corretor", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(c)
}

// BuscarPorID trata GET /corretores/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	papel := auth.PapelDoContexto(r.Context())
	userID := auth.UserIDDoContexto(r.Context())
	if !papel.EhAdmin() && uint(id) != userID {
		http.Error(w, "acesso negado", http.StatusForbidden)
		return
	}

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Corretor não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}

// ListarTodos trata GET /corretores (somente admin)
func (h *Handler) ListarTodos(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarTodos(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar corretores", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}

// Aprovar trata PATCH /corretores/{id}/aprovar (somente admin)
func (h *Handler) Aprovar(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	c, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Corretor não encontrado", http.StatusNotFound)
		return
	}
	c.Aprovado = true
	if err := h.Repository.Atualizar(h.DB, c); err != nil {
		http.Error(w, "Erro ao aprovar corretor", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c)
}
