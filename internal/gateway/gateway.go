// Package gateway é o cliente HTTP da API de comissões usado pelo painel.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/corretora/sistema-comissoes/internal/auth"
)

// Recurso é o nome de uma coleção sob /api/.
type Recurso string

const (
	Clientes     Recurso = "clientes"
	Consultores  Recurso = "consultor"
	Planos       Recurso = "plano"
	Parcelas     Recurso = "parcela"
	Vendas       Recurso = "venda"
	Recebimentos Recurso = "controlederecebimento"
)

// Credencial fornece o token de acesso e é avisada quando ele é rejeitado.
type Credencial interface {
	Token() string
	Expirar()
}

// Client não guarda estado além da configuração; pode ser usado em paralelo.
type Client struct {
	base       *url.URL
	http       *http.Client
	credencial Credencial
	log        *logrus.Logger
}

type Opcao func(*Client)

func ComHTTPClient(h *http.Client) Opcao { return func(c *Client) { c.http = h } }

func ComLog(l *logrus.Logger) Opcao { return func(c *Client) { c.log = l } }

func New(baseURL string, credencial Credencial, opcoes ...Opcao) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("url base inválida %q: %w", baseURL, err)
	}
	c := &Client{
		base:       u,
		http:       &http.Client{Timeout: 15 * time.Second},
		credencial: credencial,
	}
	for _, o := range opcoes {
		o(c)
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	return c, nil
}

func (c *Client) urlColecao(r Recurso, q url.Values) string {
	u := c.base.JoinPath("api", string(r)) // JoinPath remove a barra final
	u.Path += "/"
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) urlItem(r Recurso, id uint) string {
	u := c.base.JoinPath("api", string(r), strconv.FormatUint(uint64(id), 10))
	u.Path += "/"
	return u.String()
}

func (c *Client) urlAuth(partes ...string) string {
	u := c.base.JoinPath(partes...)
	u.Path += "/"
	return u.String()
}

// List faz GET na coleção e decodifica a lista em out.
func (c *Client) List(ctx context.Context, r Recurso, filtros url.Values, out any) error {
	return c.fazer(ctx, http.MethodGet, c.urlColecao(r, filtros), nil, out, true)
}

func (c *Client) Get(ctx context.Context, r Recurso, id uint, out any) error {
	return c.fazer(ctx, http.MethodGet, c.urlItem(r, id), nil, out, true)
}

func (c *Client) Create(ctx context.Context, r Recurso, corpo, out any) error {
	return c.fazer(ctx, http.MethodPost, c.urlColecao(r, nil), corpo, out, true)
}

// Update substitui o registro inteiro (PUT).
func (c *Client) Update(ctx context.Context, r Recurso, id uint, corpo, out any) error {
	return c.fazer(ctx, http.MethodPut, c.urlItem(r, id), corpo, out, true)
}

// Patch envia só os campos informados.
func (c *Client) Patch(ctx context.Context, r Recurso, id uint, campos map[string]any, out any) error {
	return c.fazer(ctx, http.MethodPatch, c.urlItem(r, id), campos, out, true)
}

func (c *Client) Delete(ctx context.Context, r Recurso, id uint) error {
	return c.fazer(ctx, http.MethodDelete, c.urlItem(r, id), nil, nil, true)
}

// Login troca usuário e senha pelo par access/refresh.
func (c *Client) Login(ctx context.Context, usuario, senha string) (auth.ParTokens, error) {
	var par auth.ParTokens
	err := c.fazer(ctx, http.MethodPost, c.urlAuth("api", "token"),
		auth.LoginRequest{Username: usuario, Password: senha}, &par, false)
	return par, err
}

// Verificar confirma que o token ainda é aceito pelo servidor.
func (c *Client) Verificar(ctx context.Context, token string) error {
	return c.fazer(ctx, http.MethodPost, c.urlAuth("api", "token", "verify"),
		auth.VerificarRequest{Token: token}, nil, false)
}

func (c *Client) Renovar(ctx context.Context, refresh string) (string, error) {
	var resp struct {
		Access string `json:"access"`
	}
	err := c.fazer(ctx, http.MethodPost, c.urlAuth("api", "token", "refresh"),
		auth.RenovarRequest{Refresh: refresh}, &resp, false)
	return resp.Access, err
}

func (c *Client) fazer(ctx context.Context, metodo, endereco string, corpo, out any, autenticado bool) error {
	var body io.Reader
	if corpo != nil {
		b, err := json.Marshal(corpo)
		if err != nil {
			return fmt.Errorf("serializar corpo: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, metodo, endereco, body)
	if err != nil {
		return fmt.Errorf("montar requisição: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if corpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if autenticado && c.credencial != nil {
		if token := c.credencial.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	inicio := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrTransporte, metodo, endereco, err)
	}
	defer resp.Body.Close()
	dados, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: ler resposta: %v", ErrTransporte, err)
	}
	c.log.WithFields(logrus.Fields{
		"metodo":     metodo,
		"url":        endereco,
		"status":     resp.StatusCode,
		"duracao_ms": time.Since(inicio).Milliseconds(),
	}).Debug("chamada à API")

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		if autenticado && c.credencial != nil {
			c.credencial.Expirar()
		}
		return fmt.Errorf("%w: %s", ErrNaoAutorizado, lerDetalhe(dados))
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNaoEncontrado, endereco)
	case resp.StatusCode == http.StatusBadRequest:
		return &ErroValidacao{Campos: lerCampos(dados)}
	case resp.StatusCode >= 300:
		return &ErroServidor{Status: resp.StatusCode, Detalhe: lerDetalhe(dados)}
	}

	if out == nil || len(dados) == 0 {
		return nil
	}
	if err := json.Unmarshal(dados, out); err != nil {
		return fmt.Errorf("%w: decodificar resposta: %v", ErrTransporte, err)
	}
	return nil
}
