package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"João", "JOAO"},
		{"PRODUÇÃO", "PRODUCAO"},
		{"Manutenção", "MANUTENCAO"},
		{"sem acento", "SEM ACENTO"},
		{"  João  ", "JOAO"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.in), "Fold(%q)", tt.in)
	}
}

func TestParseDateLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-01-10", "2025-01-10"},
		{"10/01/2025", "2025-01-10"},
		{"2/1/2025", "2025-01-02"},
		{"02/11/2024 14:30:05", "2024-11-02"},
	}
	for _, tt := range tests {
		got := ParseDate(tt.in)
		if assert.NotNil(t, got, "ParseDate(%q)", tt.in) {
			assert.Equal(t, tt.want, got.Format("2006-01-02"), "ParseDate(%q)", tt.in)
		}
	}

	assert.Nil(t, ParseDate(""))
	assert.Nil(t, ParseDate("31/02/2025"))
	assert.Nil(t, ParseDate("not a date"))
}
