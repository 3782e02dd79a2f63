package httperr

import (
	"errors"
	"fmt"
)

// ===============================
// Domain Error Taxonomy
// ===============================

type Kind string

const (
	KindValidation        Kind = "validation"
	KindNotFound          Kind = "not_found"
	KindConflict          Kind = "conflict"
	KindInvalidTransition Kind = "invalid_transition"
	KindInfrastructure    Kind = "infrastructure"
)

// DomainError es el error tipado que el core devuelve a la capa HTTP.
// El core nunca formatea mensajes para el usuario final: Code es un
// código de máquina y Detail contexto adicional.
type DomainError struct {
	Kind   Kind
	Code   string
	Detail string
	Err    error
}

func (e DomainError) Error() string {
	if e.Detail != "" {
		return e.Code + ": " + e.Detail
	}
	return e.Code
}

func (e DomainError) Unwrap() error {
	return e.Err
}

func ErrValidation(code string) error {
	return DomainError{Kind: KindValidation, Code: code}
}

func ErrNotFound(code string) error {
	return DomainError{Kind: KindNotFound, Code: code}
}

func ErrConflict(code string) error {
	return DomainError{Kind: KindConflict, Code: code}
}

// ErrTransicion nombra el estado actual y el solicitado.
func ErrTransicion(desde, hasta string) error {
	return DomainError{
		Kind:   KindInvalidTransition,
		Code:   "transicion_invalida",
		Detail: fmt.Sprintf("de %s a %s", desde, hasta),
	}
}

// ErrInfra envuelve una falla de almacenamiento; el llamador puede
// reintentar con un pedido nuevo.
func ErrInfra(code string, err error) error {
	return DomainError{Kind: KindInfrastructure, Code: code, Err: err}
}

func IsKind(err error, kind Kind) bool {
	var de DomainError
	if errors.As(err, &de) {
		return de.Kind == kind
	}
	return false
}

func IsCode(err error, code string) bool {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}
