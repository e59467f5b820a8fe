package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound         = errors.New("recurso não encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrInvalidState     = errors.New("operação inválida para o estado atual")
	ErrAlreadyCancelled = errors.New("nota já cancelada")
	ErrDuplicate        = errors.New("recurso duplicado")
	ErrUnauthorized     = errors.New("não autorizado")
	ErrForbidden        = errors.New("acesso negado")
	ErrUnknownUF        = errors.New("UF desconhecida")
	ErrUnknownCode      = errors.New("código de obrigação desconhecido")
)
