package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrSenhaVazia = errors.New("senha vazia")

// HashSenha retorna o hash bcrypt da senha em texto
func HashSenha(senha string) (string, error) {
	if senha == "" {
		return "", ErrSenhaVazia
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckSenha compara hash bcrypt com a senha em texto e retorna true se bater
func CheckSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
