package snapshot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
)

func TestParseDOEExperiment(t *testing.T) {
	tests := []struct {
		name     string
		csv      string
		wantErr  string
		validate func(t *testing.T, factors []string, observations []domain.DOEObservation)
	}{
		{
			name: "Deve ler as corridas com níveis -1/+1 e resposta",
			csv: "contentQuality,pageLoadTime,response\n" +
				"-1,-1,118.4\n" +
				"-1,1,133.9\n" +
				"1,-1,142.7\n" +
				"1,1,160.2\n",
			validate: func(t *testing.T, factors []string, observations []domain.DOEObservation) {
				assert.Equal(t, []string{"contentQuality", "pageLoadTime"}, factors)
				require.Len(t, observations, 4)
				assert.Equal(t, 1, observations[0].RunOrder)
				assert.Equal(t, []float64{-1, -1}, observations[0].Levels)
				assert.Equal(t, 160.2, observations[3].Response)
			},
		},
		{
			name:    "Deve falhar sem a coluna de resposta",
			csv:     "contentQuality,pageLoadTime\n-1,-1\n",
			wantErr: "cabeçalho inválido",
		},
		{
			name:    "Deve falhar com nível fora da codificação",
			csv:     "contentQuality,response\n0,118.4\n",
			wantErr: "fora da codificação -1/+1",
		},
		{
			name:    "Deve falhar com resposta não numérica",
			csv:     "contentQuality,response\n-1,abc\n",
			wantErr: "resposta não numérica",
		},
		{
			name:    "Deve falhar com arquivo vazio",
			csv:     "",
			wantErr: "experimento vazio",
		},
		{
			name:    "Deve falhar quando só há o cabeçalho",
			csv:     "contentQuality,response\n",
			wantErr: "experimento vazio",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			factors, observations, err := ParseDOEExperiment(strings.NewReader(tc.csv))

			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}

			require.NoError(t, err)
			tc.validate(t, factors, observations)
		})
	}
}

func TestLoadDOEExperiment_FileNotFound(t *testing.T) {
	_, _, err := LoadDOEExperiment("nao_existe.csv")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "erro ao abrir arquivo de experimento")
}
