package stats

import (
	"fmt"
)

// DOEEffect é o efeito principal de um fator em um experimento fatorial
type DOEEffect struct {
	Factor   string  `json:"factor"`
	MeanLow  float64 `json:"mean_low"`
	MeanHigh float64 `json:"mean_high"`
	Effect   float64 `json:"effect"`
	TValue   float64 `json:"t_value"`
	PValue   float64 `json:"p_value"`
}

// DOEAnalysis agrega os efeitos principais e o modelo linear do experimento
type DOEAnalysis struct {
	Factors []string    `json:"factors"`
	Effects []DOEEffect `json:"effects"`
	Model   *OLSResult  `json:"model"`
}

// FullFactorialDesign gera as 2^k combinações de níveis em codificação 0/1,
// com o último fator variando mais rápido
func FullFactorialDesign(k int) [][]int {
	total := 1 << k
	design := make([][]int, total)
	for run := 0; run < total; run++ {
		levels := make([]int, k)
		for f := 0; f < k; f++ {
			levels[f] = (run >> (k - 1 - f)) & 1
		}
		design[run] = levels
	}
	return design
}

// AnalyzeFactorial estima os efeitos principais de um fatorial completo em
// dois níveis e ajusta o modelo linear correspondente. runs carrega os
// níveis 0/1 de cada execução, alinhado com responses.
func AnalyzeFactorial(factors []string, runs [][]int, responses []float64) (*DOEAnalysis, error) {
	k := len(factors)
	n := len(runs)
	if k == 0 || n == 0 || len(responses) != n {
		return nil, ErrInsufficientData
	}

	columns := make([][]float64, k)
	for f := 0; f < k; f++ {
		columns[f] = make([]float64, n)
	}
	for i, levels := range runs {
		if len(levels) != k {
			return nil, fmt.Errorf("execução %d com %d níveis, esperado %d", i+1, len(levels), k)
		}
		for f, level := range levels {
			if level != 0 && level != 1 {
				return nil, fmt.Errorf("nível %d inválido no fator %q", level, factors[f])
			}
			columns[f][i] = float64(level)
		}
	}

	// 1. Modelo linear com os efeitos principais
	model, err := OLS("response", factors, columns, responses)
	if err != nil {
		return nil, err
	}

	// 2. Efeitos como diferença das médias entre os níveis
	effects := make([]DOEEffect, k)
	for f := 0; f < k; f++ {
		var sumLow, sumHigh float64
		var nLow, nHigh int
		for i := range responses {
			if columns[f][i] == 1 {
				sumHigh += responses[i]
				nHigh++
			} else {
				sumLow += responses[i]
				nLow++
			}
		}
		if nLow == 0 || nHigh == 0 {
			return nil, fmt.Errorf("fator %q sem variação entre as execuções", factors[f])
		}
		meanLow := sumLow / float64(nLow)
		meanHigh := sumHigh / float64(nHigh)
		coefficient := model.Coefficients[f+1]
		effects[f] = DOEEffect{
			Factor:   factors[f],
			MeanLow:  meanLow,
			MeanHigh: meanHigh,
			Effect:   meanHigh - meanLow,
			TValue:   coefficient.TValue,
			PValue:   coefficient.PValue,
		}
	}

	return &DOEAnalysis{
		Factors: factors,
		Effects: effects,
		Model:   model,
	}, nil
}
