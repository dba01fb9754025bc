package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventory-ledger/internal/domain"
)

func TestErrorCode_ClasificaErroresEnvueltos(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"not found", fmt.Errorf("%w: producto p1", domain.ErrNotFound), domain.CodeNotFound},
		{"validación", fmt.Errorf("%w: quantity debe ser > 0", domain.ErrInvalidInput), domain.CodeValidation},
		{"stock", fmt.Errorf("%w: disponible 3, solicitado 5", domain.ErrInsufficientStock), domain.CodeInsufficientStock},
		{"conflicto", domain.ErrConflict, domain.CodeConflict},
		{"no autorizado", domain.ErrUnauthorized, domain.CodeUnauthorized},
		{"desconocido", errors.New("conexión perdida"), domain.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.ErrorCode(tc.err))
		})
	}
}
