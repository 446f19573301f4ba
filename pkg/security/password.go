package security

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword gera o hash bcrypt de uma senha em texto puro
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compara a senha com o hash armazenado em tempo constante
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
