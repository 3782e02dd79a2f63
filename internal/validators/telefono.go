package validators

import "strings"

// IsTelefonoValid acepta dígitos con prefijo + opcional, espacios y
// guiones, entre 6 y 20 caracteres útiles.
func IsTelefonoValid(telefono string) bool {
	limpio := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, telefono)

	if strings.HasPrefix(limpio, "+") {
		limpio = limpio[1:]
	}

	if len(limpio) < 6 || len(limpio) > 20 {
		return false
	}

	for _, r := range limpio {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
