package snapshot

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/vfg2006/sixsigma-analytics-api/internal/domain"
)

// LoadDOEExperiment lê as corridas de um experimento fatorial de um CSV
func LoadDOEExperiment(path string) ([]string, []domain.DOEObservation, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao abrir arquivo de experimento %s: %w", path, err)
	}
	defer file.Close()

	factors, observations, err := ParseDOEExperiment(file)
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao ler arquivo de experimento %s: %w", path, err)
	}

	return factors, observations, nil
}

// ParseDOEExperiment lê um CSV com cabeçalho <fatores...>,response, uma
// corrida por linha. Os níveis dos fatores usam a codificação -1/+1
func ParseDOEExperiment(r io.Reader) ([]string, []domain.DOEObservation, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.New("experimento vazio: arquivo sem cabeçalho")
	}
	if err != nil {
		return nil, nil, fmt.Errorf("erro ao ler cabeçalho: %w", err)
	}

	if len(header) < 2 || header[len(header)-1] != "response" {
		return nil, nil, fmt.Errorf("cabeçalho inválido: esperado <fatores...>,response, recebido %v", header)
	}

	factors := header[:len(header)-1]
	observations := make([]domain.DOEObservation, 0)

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++

		if err != nil {
			return nil, nil, fmt.Errorf("linha %d malformada: %w", line, err)
		}

		levels := make([]float64, len(factors))
		for i := range factors {
			level, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("linha %d: nível não numérico %q no fator %s", line, record[i], factors[i])
			}
			if level != -1 && level != 1 {
				return nil, nil, fmt.Errorf("linha %d: nível %v fora da codificação -1/+1 no fator %s", line, level, factors[i])
			}
			levels[i] = level
		}

		response, err := strconv.ParseFloat(record[len(record)-1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("linha %d: resposta não numérica %q", line, record[len(record)-1])
		}

		observations = append(observations, domain.DOEObservation{
			RunOrder: len(observations) + 1,
			Levels:   levels,
			Response: response,
		})
	}

	if len(observations) == 0 {
		return nil, nil, errors.New("experimento vazio: nenhuma corrida")
	}

	return factors, observations, nil
}
