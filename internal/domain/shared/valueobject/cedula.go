package valueobject

import (
	"strconv"
	"strings"

	"github.com/gymtrack/backend/internal/domain/shared"
)

// Ecuadorian cedula validation.
//
// A cedula is a 10-digit national ID number: the first two digits encode
// the province of issuance (01-24), the third digit must be below 6 for
// natural persons, and the tenth digit is a modulo-10 check digit computed
// over the first nine.

// cedulaProvinces maps province codes to province names.
var cedulaProvinces = map[int]string{
	1:  "Azuay",
	2:  "Bolívar",
	3:  "Cañar",
	4:  "Carchi",
	5:  "Cotopaxi",
	6:  "Chimborazo",
	7:  "El Oro",
	8:  "Esmeraldas",
	9:  "Guayas",
	10: "Imbabura",
	11: "Loja",
	12: "Los Ríos",
	13: "Manabí",
	14: "Morona Santiago",
	15: "Napo",
	16: "Pastaza",
	17: "Pichincha",
	18: "Tungurahua",
	19: "Zamora Chinchipe",
	20: "Galápagos",
	21: "Sucumbíos",
	22: "Orellana",
	23: "Santo Domingo de los Tsáchilas",
	24: "Santa Elena",
}

// Cedula validation errors, one per rejection reason. The first applicable
// rule wins: required > digits only > length > province > third digit >
// check digit.
var (
	ErrCedulaRequired   = shared.NewDomainError("INVALID_CEDULA", "cedula is required")
	ErrCedulaNotNumeric = shared.NewDomainError("INVALID_CEDULA", "cedula must contain only digits")
	ErrCedulaLength     = shared.NewDomainError("INVALID_CEDULA", "cedula must be exactly 10 digits")
	ErrCedulaProvince   = shared.NewDomainError("INVALID_CEDULA", "cedula province code is invalid (must be 01-24)")
	ErrCedulaThirdDigit = shared.NewDomainError("INVALID_CEDULA", "cedula third digit is invalid")
	ErrCedulaCheckDigit = shared.NewDomainError("INVALID_CEDULA", "cedula check digit is incorrect")
)

// normalizeCedula strips spaces and hyphens.
func normalizeCedula(cedula string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, cedula)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateCedula reports whether the given string is a valid Ecuadorian
// cedula. Separator characters (spaces, hyphens) are ignored.
func ValidateCedula(cedula string) bool {
	c := normalizeCedula(cedula)
	if len(c) != 10 || !isDigits(c) {
		return false
	}

	province, _ := strconv.Atoi(c[:2])
	if province < 1 || province > 24 {
		return false
	}

	if int(c[2]-'0') >= 6 {
		return false
	}

	return checkDigit(c) == int(c[9]-'0')
}

// checkDigit computes the modulo-10 check digit over the first nine digits
// of a normalized cedula. Digits at even positions are weighted by 2, odd
// positions by 1; any product above 9 has 9 subtracted before summing.
func checkDigit(c string) int {
	sum := 0
	for i := 0; i < 9; i++ {
		v := int(c[i] - '0')
		if i%2 == 0 {
			v *= 2
			if v > 9 {
				v -= 9
			}
		}
		sum += v
	}
	return (10 - sum%10) % 10
}

// CedulaProvince returns the name of the province encoded in the first two
// digits of the cedula. It only requires the string to be a well-formed
// 10-digit number; the check digit is not verified.
func CedulaProvince(cedula string) (string, bool) {
	c := normalizeCedula(cedula)
	if len(c) != 10 || !isDigits(c) {
		return "", false
	}
	code, _ := strconv.Atoi(c[:2])
	name, ok := cedulaProvinces[code]
	return name, ok
}

// CedulaError returns the specific reason a cedula is invalid, or nil if
// it is valid. Exactly one reason is reported per failure, applying the
// rules in declaration order.
func CedulaError(cedula string) error {
	c := normalizeCedula(cedula)

	if c == "" {
		return ErrCedulaRequired
	}
	if !isDigits(c) {
		return ErrCedulaNotNumeric
	}
	if len(c) != 10 {
		return ErrCedulaLength
	}

	province, _ := strconv.Atoi(c[:2])
	if province < 1 || province > 24 {
		return ErrCedulaProvince
	}

	if int(c[2]-'0') >= 6 {
		return ErrCedulaThirdDigit
	}

	if checkDigit(c) != int(c[9]-'0') {
		return ErrCedulaCheckDigit
	}

	return nil
}
