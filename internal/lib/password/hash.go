// Package password реализует хеширование и проверку паролей на Argon2id.
//
// GetHash кодирует хеш в строку формата PHC вместе с параметрами и солью,
// CompareHash восстанавливает параметры из строки и сравнивает за константное время.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id для новых хешей.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// ErrMismatch возвращается, когда пароль не соответствует хешу.
var ErrMismatch = fmt.Errorf("password does not match hash")

// GetHash принимает пароль пользователя и возвращает его Argon2id-хеш
// в формате PHC: $argon2id$v=19$m=...,t=...,p=...$<salt>$<hash>.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// CompareHash сравнивает сохранённый хеш с введённым паролем.
//
// Возвращает nil при совпадении, ErrMismatch при несовпадении,
// иную ошибку при повреждённом формате хеша.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	parts := strings.Split(originalHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return fmt.Errorf("%s: malformed hash", op)
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	key := argon2.IDKey([]byte(externalPassword), salt, time, memory, threads, uint32(len(expected)))
	if subtle.ConstantTimeCompare(key, expected) != 1 {
		return fmt.Errorf("%s: %w", op, ErrMismatch)
	}
	return nil
}
