package hashing

import "golang.org/x/crypto/bcrypt"

// Bcrypt хэширует пароли пользователей. Стоимость задаётся через
// BCRYPT_COST; значение вне допустимого диапазона bcrypt заменяется
// на стоимость по умолчанию, чтобы кривое окружение не ломало
// регистрацию.
type Bcrypt struct {
	cost int
}

func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Compare сравнивает хэш из базы с паролем из запроса.
func (b *Bcrypt) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
