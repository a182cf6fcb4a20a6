package util

import (
	"crypto/rand"
	"math/big"
)

var DefaultRandomStringRunes = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func RandomString(n int, runes []rune) string {
	b := make([]rune, n)
	max := big.NewInt(int64(len(runes)))
	for i := range b {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = runes[v.Int64()]
	}
	return string(b)
}
