package utils

import (
	"math"
	"strconv"
)

func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// ParseFloatOrZero converte os numéricos em string da Graph API; campo
// ausente ou malformado vira zero em vez de erro.
func ParseFloatOrZero(s string) float64 {
	if s == "" {
		return 0
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return f
}

func ParseIntOrZero(s string) int {
	if s == "" {
		return 0
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}

// ParseMinorUnits converte valores monetários em string (unidades menores
// da moeda) para *int64. String vazia ou "0" significa "sem limite" e
// devolve nil.
func ParseMinorUnits(s string) *int64 {
	if s == "" || s == "0" {
		return nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}

	return &n
}
