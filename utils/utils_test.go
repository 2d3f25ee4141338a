package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ValidatePhoneNumber(t *testing.T) {
	valid := []string{
		"9876543210",
		"+91 98765 43210",
		"(020) 1234-5678-90",
		"+1-555-867-5309-00",
	}
	for _, phone := range valid {
		assert.True(t, ValidatePhoneNumber(phone), phone)
	}

	invalid := []string{
		"",
		"12345",
		"98765abc43210",
		"phone-number",
		"12345678901234567",
	}
	for _, phone := range invalid {
		assert.False(t, ValidatePhoneNumber(phone), phone)
	}
}

func Test_EnvBool(t *testing.T) {
	t.Setenv("FLAG_UNDER_TEST", "")
	assert.True(t, EnvBool("FLAG_UNDER_TEST", true))
	assert.False(t, EnvBool("FLAG_UNDER_TEST", false))

	for _, v := range []string{"1", "true", "TRUE", "yes", "on"} {
		t.Setenv("FLAG_UNDER_TEST", v)
		assert.True(t, EnvBool("FLAG_UNDER_TEST", false), v)
	}

	for _, v := range []string{"0", "false", "off", "nope"} {
		t.Setenv("FLAG_UNDER_TEST", v)
		assert.False(t, EnvBool("FLAG_UNDER_TEST", true), v)
	}
}

func Test_IsLikelyBase64(t *testing.T) {
	assert.False(t, isLikelyBase64("short"))
	assert.False(t, isLikelyBase64(`{"donorName": "Rahul Sharma", "category": "Food", "item": "Rice Bags", "quantity": "25 kg", "pickup": "MG Road"}`))

	blob := ""
	for i := 0; i < 20; i++ {
		blob += "aGVsbG8gd29ybGQgdGhpcyBpcyBiYXNlNjQ="
	}
	assert.True(t, isLikelyBase64(blob))
}
