// internal/imovel/handler.go
package imovel

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/CasaLink/api-negociacao/internal/auth"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type criarImovelDTO struct {
	Titulo   string  `json:"titulo"`
	Endereco string  `json:"endereco"`
	Cidade   string  `json:"cidade"`
	UF       string  `json:"uf"`
	CEP      string  `json:"cep"`
	Preco    float64 `json:"preco"`
}

// Handler encapsula DB e repository
type Handler struct {
	DB         *gorm.DB
	Repository Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{DB: db, Repository: NewRepository()}
}

// Criar trata POST /imoveis
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDDoContexto(r.Context())
	if userID == 0 {
		http.Error(w, "não autenticado", http.StatusUnauthorized)
		return
	}

	var dto criarImovelDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(dto.Titulo) == "" {
		http.Error(w, "o campo 'titulo' é obrigatório", http.StatusBadRequest)
		return
	}

	i := Imovel{
		Titulo:      dto.Titulo,
		Endereco:    dto.Endereco,
		Cidade:      dto.Cidade,
		UF:          dto.UF,
		CEP:         dto.CEP,
		Preco:       dto.Preco,
		CaptadorID:  userID,
		Visivel:     true,
		StatusCiclo: CicloDisponivel,
	}
	if err := h.Repository.Salvar(h.DB, &i); err != nil {
		http.Error(w, "Erro ao salvar imóvel", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(i)
}

// BuscarPorID trata GET /imoveis/{id}
func (h *Handler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])

	i, err := h.Repository.BuscarPorID(h.DB, uint(id))
	if err != nil {
		http.Error(w, "Imóvel não encontrado", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(i)
}

// ListarVisiveis trata GET /imoveis
func (h *Handler) ListarVisiveis(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repository.ListarVisiveis(h.DB)
	if err != nil {
		http.Error(w, "Erro ao listar imóveis", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(list)
}
