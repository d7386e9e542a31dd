package report

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	root := t.TempDir()
	w := NewWriter(root)

	t.Run("Deve criar o diretório da análise sob a raiz", func(t *testing.T) {
		dir, err := w.AnalysisDir("anova_report")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "anova_report"), dir)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("Deve gravar um relatório de texto", func(t *testing.T) {
		dir, err := w.AnalysisDir("anova_report")
		require.NoError(t, err)

		err = w.WriteText(dir, "anova_results.txt", "conteúdo")
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(dir, "anova_results.txt"))
		require.NoError(t, err)
		assert.Equal(t, "conteúdo", string(content))
	})

	t.Run("Deve gravar um CSV com cabeçalho e linhas", func(t *testing.T) {
		dir, err := w.AnalysisDir("doe_report")
		require.NoError(t, err)

		err = w.WriteCSV(dir, "design_matrix.csv",
			[]string{"contentQuality", "pageLoadTime"},
			[][]string{{"-1", "-1"}, {"1", "1"}},
		)
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(dir, "design_matrix.csv"))
		require.NoError(t, err)
		assert.Equal(t, "contentQuality,pageLoadTime\n-1,-1\n1,1\n", string(content))
	})

	t.Run("Deve renderizar o relatório HTML do Gage R&R", func(t *testing.T) {
		dir, err := w.AnalysisDir("gage_rnr_report")
		require.NoError(t, err)

		err = w.WriteHTML(dir, "gage_rnr_report.html", GageHTMLTemplate, GageHTMLData{
			Summary:       "resumo",
			VarianceChart: "gage_rnr_variance_chart.png",
			StdDevChart:   "gage_rnr_std_dev_chart.png",
		})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(dir, "gage_rnr_report.html"))
		require.NoError(t, err)
		html := string(content)
		assert.Contains(t, html, "<h1>Gage R&amp;R Report</h1>")
		assert.Contains(t, html, "<pre>resumo</pre>")
		assert.Contains(t, html, `<img src="gage_rnr_variance_chart.png" alt="Variance Chart">`)
		assert.Contains(t, html, `<img src="gage_rnr_std_dev_chart.png" alt="Standard Deviation Chart">`)
	})
}

func TestTextBuilder(t *testing.T) {
	t.Run("Deve montar cabeçalho, seções e régua no formato esperado", func(t *testing.T) {
		var b TextBuilder
		b.Header("Analysis for eventCount:")
		b.Section("One-way ANOVA:", "F=3.0000")
		b.Blank()
		b.Rule()

		expected := "\nAnalysis for eventCount:\n" +
			strings.Repeat("=", 50) + "\n" +
			"\nOne-way ANOVA:\nF=3.0000\n" +
			"\n" +
			strings.Repeat("=", 50) + "\n"
		assert.Equal(t, expected, b.String())
	})
}

func TestFormatTable(t *testing.T) {
	t.Run("Deve alinhar colunas à direita", func(t *testing.T) {
		table := FormatTable(
			[]string{"feature", "VIF"},
			[][]string{
				{"const", "1.0000"},
				{"bounceRate", "2.3100"},
			},
		)
		lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
		assert.Len(t, lines, 3)
		assert.Equal(t, "   feature     VIF", lines[0])
		assert.Equal(t, "     const  1.0000", lines[1])
		assert.Equal(t, "bounceRate  2.3100", lines[2])
	})
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.2346", FormatFloat(1.23456))
	assert.Equal(t, "NaN", FormatFloat(math.NaN()))
	assert.Equal(t, "inf", FormatFloat(math.Inf(1)))
	assert.Equal(t, "-inf", FormatFloat(math.Inf(-1)))
}
