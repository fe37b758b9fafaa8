package domain

import "strings"

// Actor аутентифицированный пользователь, выполняющий операцию
// Идентичность поставляется внешним слоем аутентификации - сервис
// только авторизует по спискам email в политике ресурса
type Actor struct {
	ID    string
	Name  *string
	Email *string
}

// NormalizedEmail возвращает email актора в нижнем регистре
// Пустая строка, если email не задан
func (a *Actor) NormalizedEmail() string {
	if a.Email == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*a.Email))
}
