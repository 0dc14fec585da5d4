package gateway

import (
	"context"
	"net/url"

	"github.com/corretora/sistema-comissoes/internal/consultor"
	"github.com/corretora/sistema-comissoes/internal/plano"
	"github.com/corretora/sistema-comissoes/internal/recebimento"
	"github.com/corretora/sistema-comissoes/internal/venda"
)

// Atalhos tipados para as coleções que o painel e o dashboard leem.

func (c *Client) Vendas(ctx context.Context) ([]venda.Venda, error) {
	var out []venda.Venda
	err := c.List(ctx, Vendas, nil, &out)
	return out, err
}

func (c *Client) Consultores(ctx context.Context) ([]consultor.Consultor, error) {
	var out []consultor.Consultor
	err := c.List(ctx, Consultores, nil, &out)
	return out, err
}

func (c *Client) Planos(ctx context.Context) ([]plano.Plano, error) {
	var out []plano.Plano
	err := c.List(ctx, Planos, nil, &out)
	return out, err
}

func (c *Client) Recebimentos(ctx context.Context, filtros url.Values) ([]recebimento.ControleDeRecebimento, error) {
	var out []recebimento.ControleDeRecebimento
	err := c.List(ctx, Recebimentos, filtros, &out)
	return out, err
}

// AtualizarRecebimento aplica um PATCH parcial e devolve o registro atualizado.
func (c *Client) AtualizarRecebimento(ctx context.Context, id uint, campos map[string]any) (recebimento.ControleDeRecebimento, error) {
	var out recebimento.ControleDeRecebimento
	err := c.Patch(ctx, Recebimentos, id, campos, &out)
	return out, err
}
