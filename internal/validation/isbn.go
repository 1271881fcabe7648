// Package validation содержит функции валидации входных данных.
package validation

import (
	"strings"
	"unicode"
)

// NormalizeISBN удаляет из ISBN дефисы и пробелы и приводит контрольный символ X к верхнему регистру.
func NormalizeISBN(isbn string) string {
	var b strings.Builder
	b.Grow(len(isbn))
	for _, ch := range isbn {
		switch {
		case ch == '-' || unicode.IsSpace(ch):
			continue
		case ch == 'x':
			b.WriteRune('X')
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// IsValidISBN проверяет контрольную сумму ISBN-10 или ISBN-13.
func IsValidISBN(isbn string) bool {
	n := NormalizeISBN(isbn)
	switch len(n) {
	case 10:
		return isValidISBN10(n)
	case 13:
		return isValidISBN13(n)
	default:
		return false
	}
}

func isValidISBN10(n string) bool {
	sum := 0
	for i := 0; i < 10; i++ {
		ch := rune(n[i])
		var digit int
		switch {
		case ch == 'X' && i == 9:
			digit = 10
		case unicode.IsDigit(ch):
			digit = int(ch - '0')
		default:
			return false
		}
		sum += digit * (10 - i)
	}
	return sum%11 == 0
}

func isValidISBN13(n string) bool {
	sum := 0
	for i := 0; i < 13; i++ {
		ch := rune(n[i])
		if !unicode.IsDigit(ch) {
			return false
		}
		digit := int(ch - '0')
		if i%2 == 1 {
			digit *= 3
		}
		sum += digit
	}
	return sum%10 == 0
}
