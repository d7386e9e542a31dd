package domain

import "fmt"

// GageStudy é um estudo cruzado de repetitividade e reprodutibilidade:
// cada operador mede cada peça o mesmo número de vezes.
// Measurements[operador][peça][réplica].
type GageStudy struct {
	Operators    []string        `json:"operators"`
	Parts        []string        `json:"parts"`
	Measurements [][][]float64   `json:"measurements"`
}

// Validate confere que o estudo é retangular e tem réplicas suficientes
func (s *GageStudy) Validate() error {
	if len(s.Measurements) < 2 {
		return fmt.Errorf("estudo Gage R&R requer pelo menos 2 operadores, recebido: %d", len(s.Measurements))
	}
	if len(s.Operators) != len(s.Measurements) {
		return fmt.Errorf("quantidade de operadores (%d) difere das medições (%d)", len(s.Operators), len(s.Measurements))
	}

	parts := len(s.Measurements[0])
	if parts < 2 {
		return fmt.Errorf("estudo Gage R&R requer pelo menos 2 peças, recebido: %d", parts)
	}
	if len(s.Parts) != parts {
		return fmt.Errorf("quantidade de peças (%d) difere das medições (%d)", len(s.Parts), parts)
	}

	replicates := len(s.Measurements[0][0])
	if replicates < 2 {
		return fmt.Errorf("estudo Gage R&R requer pelo menos 2 réplicas, recebido: %d", replicates)
	}

	for o, byPart := range s.Measurements {
		if len(byPart) != parts {
			return fmt.Errorf("operador %q mediu %d peças, esperado %d", s.Operators[o], len(byPart), parts)
		}
		for p, reps := range byPart {
			if len(reps) != replicates {
				return fmt.Errorf("operador %q, peça %q: %d réplicas, esperado %d", s.Operators[o], s.Parts[p], len(reps), replicates)
			}
		}
	}

	return nil
}

// DefaultGageStudy retorna o estudo de exemplo com 3 operadores, 5 peças e
// 3 réplicas, usado quando nenhum arquivo de medições é informado
func DefaultGageStudy() *GageStudy {
	return &GageStudy{
		Operators: []string{"Operator A", "Operator B", "Operator C"},
		Parts:     []string{"Part 1", "Part 2", "Part 3", "Part 4", "Part 5"},
		Measurements: [][][]float64{
			{
				{3.29, 3.41, 3.64},
				{2.44, 2.32, 2.42},
				{4.34, 4.17, 4.27},
				{3.47, 3.5, 3.64},
				{2.2, 2.08, 2.16},
			},
			{
				{3.08, 3.25, 3.07},
				{2.53, 1.78, 2.32},
				{4.19, 3.94, 4.34},
				{3.01, 4.03, 3.2},
				{2.44, 1.8, 1.72},
			},
			{
				{3.04, 2.89, 2.85},
				{1.62, 1.87, 2.04},
				{3.88, 4.09, 3.67},
				{3.14, 3.2, 3.11},
				{1.54, 1.93, 1.55},
			},
		},
	}
}
