package sessao

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ArquivoStore salva a sessão num JSON com permissão 0600.
type ArquivoStore struct {
	Caminho string
}

func (a ArquivoStore) Carregar() (Dados, error) {
	var d Dados
	b, err := os.ReadFile(a.Caminho)
	if errors.Is(err, os.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return d, fmt.Errorf("ler sessão: %w", err)
	}
	if err := json.Unmarshal(b, &d); err != nil {
		return Dados{}, fmt.Errorf("sessão corrompida em %s: %w", a.Caminho, err)
	}
	return d, nil
}

func (a ArquivoStore) Salvar(d Dados) error {
	if err := os.MkdirAll(filepath.Dir(a.Caminho), 0o700); err != nil {
		return fmt.Errorf("criar diretório da sessão: %w", err)
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	tmp := a.Caminho + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return fmt.Errorf("gravar sessão: %w", err)
	}
	return os.Rename(tmp, a.Caminho)
}

func (a ArquivoStore) Apagar() error {
	if err := os.Remove(a.Caminho); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("apagar sessão: %w", err)
	}
	return nil
}
