package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

// Horario de atención de la clínica, ambos extremos inclusive.
const (
	OpeningHour = "09:00"
	ClosingHour = "17:00"
)

// DateLayout es el formato de fecha usado en toda la app (YYYY-MM-DD).
const DateLayout = "2006-01-02"

var (
	dniRe   = regexp.MustCompile(`^[0-9]{8}[A-Z]$`)
	phoneRe = regexp.MustCompile(`^[0-9]{9}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	hourRe  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

// DNI valida el formato de identificador nacional: 8 dígitos + 1 letra mayúscula.
// Se espera la cadena ya formateada (ver FormatDNI).
func DNI(dni string) bool {
	return dniRe.MatchString(dni)
}

// Phone valida un teléfono de 9 dígitos, ya formateado (ver FormatPhone).
func Phone(phone string) bool {
	return phoneRe.MatchString(phone)
}

// Email hace una validación básica: algo@dominio.tld.
func Email(email string) bool {
	return emailRe.MatchString(email)
}

// Hour valida una hora ya canónica "HH:MM" (24h).
func Hour(hhmm string) bool {
	return hourRe.MatchString(hhmm)
}

// CanonicalHour normaliza una hora a "HH:MM" con cero a la izquierda
// ("9:30" -> "09:30"). Devuelve error si no es una hora válida.
func CanonicalHour(s string) (string, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	return t.Format("15:04"), nil
}

// BusinessHour indica si una hora canónica cae dentro del horario de
// atención [09:00, 17:00], extremos inclusive. La comparación lexicográfica
// es correcta porque las horas canónicas tienen ancho fijo.
func BusinessHour(hhmm string) bool {
	return hhmm >= OpeningHour && hhmm <= ClosingHour
}

// FutureOrNow indica si la combinación (fecha, hora) es igual o posterior
// al instante actual. `now` se trunca al minuto para que una cita en el
// minuto en curso siga contando como válida.
func FutureOrNow(date time.Time, hhmm string, now time.Time) bool {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return false
	}
	at := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return !at.Before(now.Truncate(time.Minute))
}

// DateOnly descarta la parte horaria de t, conservando la zona.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay compara dos instantes por su fecha de calendario.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Age valida la edad de una mascota en años (rango razonable 0-50).
func Age(years int) bool {
	return years >= 0 && years <= 50
}

// Weight valida el peso en kg: estrictamente positivo.
func Weight(kg float64) bool {
	return kg > 0
}

// FormatDNI normaliza un DNI: mayúsculas y sin espacios.
// "12345678 a" -> "12345678A"
func FormatDNI(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
}

// FormatPhone elimina guiones y espacios. "600-123-456" -> "600123456"
func FormatPhone(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "-", "")
	return strings.ReplaceAll(s, " ", "")
}

// FormatEmail normaliza a minúsculas sin espacios.
func FormatEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FormatName capitaliza la primera letra de cada palabra.
// "juan pérez" -> "Juan Pérez"
func FormatName(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
