package apikey

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "admin-sk-A...MNOPQR", MaskAPIKey("admin-sk-ABCDEFGHIJKLMNOPQR"))
	assert.Equal(t, "short-key", MaskAPIKey("short-key"))
	assert.Equal(t, "", MaskAPIKey(""))
	// 剛好 16
	assert.Equal(t, "0123456789...abcdef", MaskAPIKey("0123456789abcdef"))
	assert.Equal(t, "0123456789abcde", MaskAPIKey("0123456789abcde"))
}

func TestHasAdminPrefix(t *testing.T) {
	assert.True(t, HasAdminPrefix("admin-sk-x"))
	assert.True(t, HasAdminPrefix("admin-sk-"))
	assert.False(t, HasAdminPrefix("user-sk-123"))
	assert.False(t, HasAdminPrefix(""))
}

func TestFromBearer(t *testing.T) {
	assert.Equal(t, "admin-sk-1", FromBearer("Bearer admin-sk-1"))
	assert.Equal(t, "admin-sk-1", FromBearer("admin-sk-1"))
	assert.Equal(t, "xadmin", FromBearer("xBearer admin"))
}
