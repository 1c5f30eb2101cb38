package utils

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseCSV(t *testing.T) {
	csvData := `NOME,SETOR,DATA DE REALIZAÇÃO
João da Silva,Produção,2025-01-10
Maria Souza,Manutenção`

	reader := strings.NewReader(csvData)

	got, err := ParseCSV(reader)
	if err != nil {
		t.Fatalf("ParseCSV returned error: %v", err)
	}

	want := [][]string{
		{"NOME", "SETOR", "DATA DE REALIZAÇÃO"},
		{"João da Silva", "Produção", "2025-01-10"},
		{"Maria Souza", "Manutenção"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCSV returned %+v, want %+v", got, want)
	}
}

func TestParseCSVComma(t *testing.T) {
	csvData := "NOME;SETOR\nJoão;Produção"

	got, err := ParseCSVComma(strings.NewReader(csvData), ';')
	if err != nil {
		t.Fatalf("ParseCSVComma returned error: %v", err)
	}

	want := [][]string{
		{"NOME", "SETOR"},
		{"João", "Produção"},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCSVComma returned %+v, want %+v", got, want)
	}
}
