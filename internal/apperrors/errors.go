// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// ErroValidacao indica entrada malformada, papel errado para a ação ou
// transição de status ilegal. Mapeia para 400.
type ErroValidacao struct {
	Motivo string
}

func (e *ErroValidacao) Error() string { return e.Motivo }

// Validacao cria um ErroValidacao com mensagem formatada.
func Validacao(formato string, args ...interface{}) error {
	return &ErroValidacao{Motivo: fmt.Sprintf(formato, args...)}
}

// ErroConflito indica corrida de ativação concorrente ou versão divergente.
// Mapeia para 409; o chamador decide se recarrega e reenvia.
type ErroConflito struct {
	Motivo string
}

func (e *ErroConflito) Error() string { return e.Motivo }

// Conflito cria um ErroConflito com mensagem formatada.
func Conflito(formato string, args ...interface{}) error {
	return &ErroConflito{Motivo: fmt.Sprintf(formato, args...)}
}

// ErroNaoEncontrado indica recurso ausente ou com pai divergente. Mapeia para 404.
type ErroNaoEncontrado struct {
	Recurso string
}

func (e *ErroNaoEncontrado) Error() string { return e.Recurso + " não encontrado(a)" }

// NaoEncontrado cria um ErroNaoEncontrado para o recurso informado.
func NaoEncontrado(recurso string) error {
	return &ErroNaoEncontrado{Recurso: recurso}
}

func EhValidacao(err error) bool {
	var e *ErroValidacao
	return errors.As(err, &e)
}

func EhConflito(err error) bool {
	var e *ErroConflito
	return errors.As(err, &e)
}

func EhNaoEncontrado(err error) bool {
	var e *ErroNaoEncontrado
	return errors.As(err, &e)
}
