package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripNonDigits(t *testing.T) {
	assert.Equal(t, "5512345678", StripNonDigits("55 1234 5678"))
	assert.Equal(t, "5512345678", StripNonDigits("(55) 1234-5678"))
	assert.Equal(t, "", StripNonDigits("abc"))
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("5512345678"))
	assert.True(t, ValidatePhone("55 1234 5678"))
	assert.True(t, ValidatePhone("(55) 1234-5678"))

	assert.False(t, ValidatePhone("551234567"))    // 9 digits
	assert.False(t, ValidatePhone("55123456789"))  // 11 digits
	assert.False(t, ValidatePhone(""))
}

func TestValidatePostalCode(t *testing.T) {
	assert.True(t, ValidatePostalCode("06700"))
	assert.True(t, ValidatePostalCode(" 06700 "))

	assert.False(t, ValidatePostalCode("0670"))
	assert.False(t, ValidatePostalCode("067000"))
	assert.False(t, ValidatePostalCode("0670a"))
	assert.False(t, ValidatePostalCode(""))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("cliente@example.com"))
	assert.True(t, ValidateEmail("  cliente@example.com  "))

	assert.False(t, ValidateEmail("cliente@example"))
	assert.False(t, ValidateEmail("cliente.example.com"))
	assert.False(t, ValidateEmail(""))
}
