package services

import "math/rand/v2"

// shortCodeAlphabet алфавит короткого кода: латинские буквы обоих регистров и цифры.
const shortCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateShortCode генерирует короткий код заданной длины: каждый символ
// выбирается равномерно из shortCodeAlphabet. Генерация повторяется до тех пор,
// пока exists возвращает true для кандидата.
//
// rng позволяет подставить детерминированный источник случайности в тестах;
// при nil используется общий источник math/rand/v2 (безопасный для
// конкурентного использования). exists может быть nil - тогда возвращается
// первый же кандидат.
func GenerateShortCode(rng *rand.Rand, length int, exists func(string) bool) string {
	for {
		code := randomCode(rng, length)
		if exists == nil || !exists(code) {
			return code
		}
	}
}

func randomCode(rng *rand.Rand, length int) string {
	b := make([]byte, length)
	for i := range b {
		var n int
		if rng != nil {
			n = rng.IntN(len(shortCodeAlphabet))
		} else {
			n = rand.IntN(len(shortCodeAlphabet))
		}
		b[i] = shortCodeAlphabet[n]
	}
	return string(b)
}
