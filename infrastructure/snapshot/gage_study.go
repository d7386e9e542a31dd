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

// LoadGageStudy lê um estudo Gage R&R de um arquivo CSV em formato longo
func LoadGageStudy(path string) (*domain.GageStudy, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir arquivo de medições %s: %w", path, err)
	}
	defer file.Close()

	study, err := ParseGageStudy(file)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de medições %s: %w", path, err)
	}

	return study, nil
}

// ParseGageStudy lê um estudo cruzado de um CSV com cabeçalho
// operator,part,measurement, uma medição por linha. Operadores e peças
// entram na ordem da primeira aparição e o estudo precisa sair retangular:
// todo operador mede toda peça o mesmo número de vezes
func ParseGageStudy(r io.Reader) (*domain.GageStudy, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("estudo vazio: arquivo sem cabeçalho")
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler cabeçalho: %w", err)
	}

	if len(header) != 3 || header[0] != "operator" || header[1] != "part" || header[2] != "measurement" {
		return nil, fmt.Errorf("cabeçalho inválido: esperado operator,part,measurement, recebido %v", header)
	}

	operators := make([]string, 0)
	parts := make([]string, 0)
	operatorIdx := make(map[string]int)
	partIdx := make(map[string]int)
	cells := make(map[[2]int][]float64)

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++

		if err != nil {
			return nil, fmt.Errorf("linha %d malformada: %w", line, err)
		}

		value, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("linha %d: medição não numérica %q", line, record[2])
		}

		o, ok := operatorIdx[record[0]]
		if !ok {
			o = len(operators)
			operatorIdx[record[0]] = o
			operators = append(operators, record[0])
		}

		p, ok := partIdx[record[1]]
		if !ok {
			p = len(parts)
			partIdx[record[1]] = p
			parts = append(parts, record[1])
		}

		key := [2]int{o, p}
		cells[key] = append(cells[key], value)
	}

	if len(operators) == 0 {
		return nil, errors.New("estudo vazio: nenhuma medição")
	}

	measurements := make([][][]float64, len(operators))
	for o := range operators {
		measurements[o] = make([][]float64, len(parts))
		for p := range parts {
			measurements[o][p] = cells[[2]int{o, p}]
		}
	}

	study := &domain.GageStudy{
		Operators:    operators,
		Parts:        parts,
		Measurements: measurements,
	}

	if err := study.Validate(); err != nil {
		return nil, err
	}

	return study, nil
}
