package notificacao

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"os"
)

// EnviarWebhookAtivacao avisa o sistema de notificações que uma negociação foi
// ativada. Fire-and-forget: falha aqui não desfaz a ativação.
func EnviarWebhookAtivacao(negociacaoID, imovelID uint) {
	url := os.Getenv("NOTIFY_WEBHOOK_URL")
	if url == "" {
		return
	}

	payload := map[string]interface{}{
		"mensagem":     "Negociação ativada",
		"negociacaoId": negociacaoID,
		"imovelId":     imovelID,
	}
	body, _ := json.Marshal(payload)

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		log.Printf("Erro ao enviar webhook: %v", err)
		return
	}
	defer resp.Body.Close()
}
