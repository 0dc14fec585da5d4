package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ErrosCampo segue o formato {campo: [mensagens]} usado pelo frontend para exibir erros.
type ErrosCampo map[string][]string

func (e ErrosCampo) Adicionar(campo, msg string) {
	e[campo] = append(e[campo], msg)
}

func (e ErrosCampo) Vazio() bool { return len(e) == 0 }

func (e ErrosCampo) Error() string {
	partes := make([]string, 0, len(e))
	for campo, msgs := range e {
		partes = append(partes, campo+": "+strings.Join(msgs, " "))
	}
	return strings.Join(partes, "; ")
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validadorPadrao() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			nome := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if nome == "-" {
				return ""
			}
			return nome
		})
	})
	return validate
}

// Validar aplica as tags `validate` e traduz as falhas para ErrosCampo.
func Validar(v any) ErrosCampo {
	erros := ErrosCampo{}
	err := validadorPadrao().Struct(v)
	if err == nil {
		return erros
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		erros.Adicionar("non_field_errors", err.Error())
		return erros
	}
	for _, fe := range ve {
		erros.Adicionar(fe.Field(), mensagem(fe))
	}
	return erros
}

func mensagem(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo é obrigatório."
	case "email":
		return "Insira um endereço de email válido."
	case "max":
		return fmt.Sprintf("Certifique-se de que este campo não tenha mais de %s caracteres.", fe.Param())
	case "min", "gte", "gt":
		return fmt.Sprintf("Certifique-se de que este valor seja maior ou igual a %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("\"%v\" não é um escolha válido.", fe.Value())
	}
	return "Valor inválido."
}
