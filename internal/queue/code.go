package queue

import "math/rand/v2"

const (
	CodeLength   = 3
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateCode возвращает код из 3 символов [A-Z0-9].
// Проверки на уникальность нет: 36^3 вариантов, коллизии возможны.
func GenerateCode() string {
	b := make([]byte, CodeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.IntN(len(codeAlphabet))]
	}
	return string(b)
}
