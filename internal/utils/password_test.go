package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashSenha(t *testing.T) {
	hash, err := HashSenha("s3nh@")
	require.NoError(t, err)
	assert.NotEqual(t, "s3nh@", hash)
	assert.True(t, CheckSenha(hash, "s3nh@"))
	assert.False(t, CheckSenha(hash, "outra"))

	_, err = HashSenha("")
	assert.ErrorIs(t, err, ErrSenhaVazia)
}
