package auth

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModuleAndAccessors(t *testing.T) {
	m := NewModule(&sqlx.DB{}, "secret", time.Hour, nil)
	require.NotNil(t, m)
	assert.NotNil(t, m.Service())
	assert.NotNil(t, m.Tokens())
	assert.NotNil(t, m.HTTPHandler())
}
