package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const ruleWidth = 50

// TextBuilder monta relatórios de texto: cabeçalhos seguidos de uma régua
// de 50 sinais de igual e seções nomeadas com corpo livre
type TextBuilder struct {
	sb strings.Builder
}

func (b *TextBuilder) Header(title string) {
	b.sb.WriteString("\n" + title + "\n")
	b.Rule()
}

func (b *TextBuilder) Rule() {
	b.sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")
}

func (b *TextBuilder) Section(name, body string) {
	b.sb.WriteString("\n" + name + "\n")
	b.sb.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.sb.WriteString("\n")
	}
}

func (b *TextBuilder) Linef(format string, args ...interface{}) {
	fmt.Fprintf(&b.sb, format+"\n", args...)
}

func (b *TextBuilder) Blank() {
	b.sb.WriteString("\n")
}

func (b *TextBuilder) String() string {
	return b.sb.String()
}

// FormatTable alinha as colunas à direita com dois espaços de separação
func FormatTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			sb.WriteString(cell)
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

// FormatFloat formata com quatro casas decimais, o padrão das tabelas dos
// relatórios
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
