package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

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
	"github.com/CasaLink/api-negociacao/internal/utils/db"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// .env é opcional; variáveis já exportadas têm precedência
	_ = godotenv.Load()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("Erro ao conectar no banco:", err)
	}

	// AutoMigrate para todos os modelos
	if err := database.AutoMigrate(
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
		log.Fatal("Erro no AutoMigrate:", err)
	}

	// Handlers
	corretorHandler := corretor.NewHandler(database)
	imovelHandler := imovel.NewHandler(database)
	negociacaoHandler := negociacao.NewHandler(database)

	// Router
	r := mux.NewRouter()

	// Rotas públicas
	r.HandleFunc("/login", corretorHandler.Login).Methods("POST")

	// Rotas autenticadas
	api := r.NewRoute().Subrouter()
	api.Use(auth.MiddlewareAutenticacao)

	// Rotas de corretores
	api.Handle("/corretores", auth.RequireAdmin(http.HandlerFunc(corretorHandler.Criar))).Methods("POST")
	api.Handle("/corretores", auth.RequireAdmin(http.HandlerFunc(corretorHandler.ListarTodos))).Methods("GET")
	api.HandleFunc("/corretores/{id}", corretorHandler.BuscarPorID).Methods("GET")
	api.Handle("/corretores/{id}/aprovar", auth.RequireAdmin(http.HandlerFunc(corretorHandler.Aprovar))).Methods("PATCH")

	// Rotas de imóveis
	api.HandleFunc("/imoveis", imovelHandler.Criar).Methods("POST")
	api.HandleFunc("/imoveis", imovelHandler.ListarVisiveis).Methods("GET")
	api.HandleFunc("/imoveis/{id}", imovelHandler.BuscarPorID).Methods("GET")

	// Rotas de negociações — ciclo de vida
	api.HandleFunc("/negociacoes", negociacaoHandler.Criar).Methods("POST")
	api.HandleFunc("/negociacoes/{id}", negociacaoHandler.BuscarDetalhes).Methods("GET")
	api.HandleFunc("/negociacoes/{id}/submeter", negociacaoHandler.SubmeterParaAtivacao).Methods("POST")
	api.Handle("/negociacoes/{id}/ativar", auth.RequireAdmin(http.HandlerFunc(negociacaoHandler.Ativar))).Methods("POST")
	api.HandleFunc("/negociacoes/{id}/documentos", negociacaoHandler.AnexarDocumento).Methods("POST")
	api.Handle("/negociacoes/{id}/documentos/{docId}/revisao", auth.RequireAdmin(http.HandlerFunc(negociacaoHandler.RevisarDocumento))).Methods("PATCH")
	api.Handle("/negociacoes/{id}/contratos", auth.RequireAdmin(http.HandlerFunc(negociacaoHandler.PublicarContrato))).Methods("POST")
	api.HandleFunc("/negociacoes/{id}/assinaturas", negociacaoHandler.AnexarAssinatura).Methods("POST")
	api.Handle("/negociacoes/{id}/assinaturas/{assinaturaId}/validacao", auth.RequireAdmin(http.HandlerFunc(negociacaoHandler.ValidarAssinatura))).Methods("PATCH")
	api.HandleFunc("/negociacoes/{id}/fechamento", negociacaoHandler.SubmeterFechamento).Methods("POST")
	api.Handle("/negociacoes/{id}/fechamento/aprovar", auth.RequireAdmin(http.HandlerFunc(negociacaoHandler.AprovarFechamento))).Methods("POST")
	api.Handle("/negociacoes/{id}/fechamento/sem-comissao", auth.RequireAdmin(http.HandlerFunc(negociacaoHandler.MarcarSemComissao))).Methods("POST")

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r)

	porta := os.Getenv("PORT")
	if porta == "" {
		porta = "8080"
	}

	// Inicia servidor
	fmt.Printf("Servidor rodando em http://localhost:%s\n", porta)
	log.Fatal(http.ListenAndServe(":"+porta, handler))
}
