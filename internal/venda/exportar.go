package venda

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/corretora/sistema-comissoes/internal/recebimento"
)

const AbaRecebimentos = "Recebimentos"

var cabecalhoPlanilha = []any{
	"Proposta", "Cliente", "Consultor", "Plano", "Data da Venda", "Parcela",
	"Valor da Parcela", "Data Prevista", "Data de Recebimento", "Dias de Atraso",
	"Status", "Nº Extrato", "Progresso da Venda (%)",
}

// ExportarPlanilha grava uma linha por parcela das vendas informadas.
func ExportarPlanilha(w io.Writer, vendas []Venda, agora time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", AbaRecebimentos); err != nil {
		return fmt.Errorf("renomear aba: %w", err)
	}
	negrito, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("criar estilo: %w", err)
	}
	if err := f.SetSheetRow(AbaRecebimentos, "A1", &cabecalhoPlanilha); err != nil {
		return fmt.Errorf("gravar cabeçalho: %w", err)
	}
	if err := f.SetRowStyle(AbaRecebimentos, 1, 1, negrito); err != nil {
		return fmt.Errorf("aplicar estilo: %w", err)
	}

	linha := 2
	for _, v := range vendas {
		progresso := Resumir(v).Percentual
		for _, p := range v.ParcelasRecebimento {
			celula, err := excelize.CoordinatesToCellName(1, linha)
			if err != nil {
				return err
			}
			valores := linhaPlanilha(v, p, progresso, agora)
			if err := f.SetSheetRow(AbaRecebimentos, celula, &valores); err != nil {
				return fmt.Errorf("gravar linha %d: %w", linha, err)
			}
			linha++
		}
	}

	if err := f.SetColWidth(AbaRecebimentos, "A", "M", 18); err != nil {
		return fmt.Errorf("ajustar colunas: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("gravar planilha: %w", err)
	}
	return nil
}

func linhaPlanilha(v Venda, p recebimento.ControleDeRecebimento, progresso float64, agora time.Time) []any {
	recebida, extrato := "", ""
	if p.DataRecebimento != nil {
		recebida = p.DataRecebimento.Formatar()
	}
	if p.NumeroExtrato != nil {
		extrato = *p.NumeroExtrato
	}
	valor, _ := p.ValorParcela.Float64()
	return []any{
		v.NumeroProposta,
		v.Cliente.Nome,
		v.Consultor.Nome,
		v.Plano.String(),
		v.DataVenda.Formatar(),
		p.Parcela.NumeroParcela,
		valor,
		p.DataPrevistaRecebimento.Formatar(),
		recebida,
		p.DiasAtraso(agora),
		p.Status,
		extrato,
		progresso,
	}
}
