// Package invite генерирует коды приглашений в группу.
//
// Код выбирается равномерно из алфавитно-цифрового алфавита через
// криптографически стойкий источник. Предсказуемые генераторы здесь
// недопустимы: код является учетными данными для входа в группу.
package invite

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// TokenLength длина кода приглашения.
const TokenLength = 10

// NewToken возвращает новый случайный код приглашения.
func NewToken() (string, error) {
	const op = "invite.NewToken"
	buf := make([]byte, TokenLength)
	max := big.NewInt(int64(len(alphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		buf[i] = alphabet[n.Int64()]
	}
	return string(buf), nil
}
