// Package report escreve os artefatos das análises: textos, tabelas CSV e
// o relatório HTML do estudo Gage R&R. Os gráficos ficam no subpacote chart.
package report

import (
	"encoding/csv"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
)

// Writer cria os diretórios de relatório sob a raiz configurada e escreve
// os artefatos
type Writer interface {
	AnalysisDir(name string) (string, error)
	WriteText(dir, filename, content string) error
	WriteCSV(dir, filename string, header []string, rows [][]string) error
	WriteHTML(dir, filename string, tmpl *template.Template, data interface{}) error
	Path(dir, filename string) string
}

type writer struct {
	root string
}

func NewWriter(root string) Writer {
	return &writer{root: root}
}

func (w *writer) AnalysisDir(name string) (string, error) {
	dir := filepath.Join(w.root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("erro ao criar o diretório de relatório %s: %w", dir, err)
	}
	return dir, nil
}

func (w *writer) WriteText(dir, filename, content string) error {
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("erro ao gravar o relatório %s: %w", path, err)
	}
	return nil
}

func (w *writer) WriteCSV(dir, filename string, header []string, rows [][]string) error {
	path := filepath.Join(dir, filename)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("erro ao criar o arquivo %s: %w", path, err)
	}
	defer file.Close()

	cw := csv.NewWriter(file)
	if len(header) > 0 {
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("erro ao gravar o cabeçalho de %s: %w", path, err)
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("erro ao gravar as linhas de %s: %w", path, err)
	}
	cw.Flush()
	return cw.Error()
}

func (w *writer) WriteHTML(dir, filename string, tmpl *template.Template, data interface{}) error {
	path := filepath.Join(dir, filename)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("erro ao criar o arquivo %s: %w", path, err)
	}
	defer file.Close()

	if err := tmpl.Execute(file, data); err != nil {
		return fmt.Errorf("erro ao renderizar %s: %w", path, err)
	}
	return nil
}

func (w *writer) Path(dir, filename string) string {
	return filepath.Join(dir, filename)
}
