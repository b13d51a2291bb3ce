package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "c***@studio.example", MaskEmail("client@studio.example"))
	assert.Equal(t, "a***@x.io", MaskEmail("a@x.io"))
	assert.Equal(t, "***", MaskEmail("not-an-email"))
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "rv_3fa9***", MaskToken("rv_3fa9c0d1e2"))
	assert.Equal(t, "***", MaskToken("rv_1"))
}
