package fiscal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tributa/fiscal-engine/internal/domain"
	"github.com/tributa/fiscal-engine/internal/domain/fiscal"
)

func TestInterstateRate_ParesConhecidos(t *testing.T) {
	cases := []struct {
		name     string
		origem   string
		destino  string
		foreign  bool
		expected int64
	}{
		{"SP para RJ (ambos Sul/Sudeste)", "SP", "RJ", false, 7},
		{"SP para BA (Sudeste para Nordeste)", "SP", "BA", false, 12},
		{"MG para RS (ambos no grupo)", "MG", "RS", false, 7},
		{"SP para ES (ES fora do grupo)", "SP", "ES", false, 12},
		{"ES para SP (origem fora do grupo)", "ES", "SP", false, 12},
		{"AM para PA (demais regiões)", "AM", "PA", false, 12},
		{"mesma UF usa alíquota interna", "SP", "SP", false, 18},
		{"mercadoria importada SP para RJ", "SP", "RJ", true, 4},
		{"mercadoria importada SP para BA", "SP", "BA", true, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rate, err := fiscal.InterstateRate(tc.origem, tc.destino, tc.foreign)
			require.NoError(t, err)
			assert.True(t, rate.Equal(decimalFromInt(tc.expected)),
				"esperado %d%%, obtido %s", tc.expected, rate)
		})
	}
}

func TestInterstateRate_UFDesconhecida(t *testing.T) {
	_, err := fiscal.InterstateRate("XX", "SP", false)
	assert.ErrorIs(t, err, domain.ErrUnknownUF)

	_, err = fiscal.InterstateRate("SP", "ZZ", false)
	assert.ErrorIs(t, err, domain.ErrUnknownUF)
}

// TestInterstateRate_Exaustiva garante que a tabela cobre qualquer par das 27
// UFs sem erro; nenhum código pode ficar de fora.
func TestInterstateRate_Exaustiva(t *testing.T) {
	ufs := []string{
		"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO",
		"MA", "MT", "MS", "MG", "PA", "PB", "PR", "PE", "PI",
		"RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
	}
	require.Len(t, ufs, 27)
	for _, o := range ufs {
		assert.True(t, fiscal.ValidUF(o), "UF %s deve ser válida", o)
		for _, d := range ufs {
			rate, err := fiscal.InterstateRate(o, d, false)
			require.NoError(t, err, "%s -> %s", o, d)
			assert.False(t, rate.IsZero(), "%s -> %s não pode ter alíquota zero", o, d)
		}
	}
}
