// Package authz содержит политику авторизации — чистую функцию решения
// без ввода-вывода. Политика едина для пользователей и подписок:
// администратор может всё, остальные — только свои ресурсы,
// а операции над всей коллекцией доступны только администратору.
package authz

import "github.com/magabrotheeeer/subscription-tracker/internal/models"

// Action — вид действия над ресурсом.
type Action string

const (
	// ActionRead — чтение одной записи.
	ActionRead Action = "read"
	// ActionUpdate — изменение одной записи.
	ActionUpdate Action = "update"
	// ActionDelete — удаление одной записи.
	ActionDelete Action = "delete"
	// ActionList — перечисление всей коллекции. Только для администратора,
	// владение отдельными записями роли не играет.
	ActionList Action = "list"
	// ActionCreate — создание записи от имени другого пользователя.
	// Только для администратора.
	ActionCreate Action = "create"
)

// CanAccess решает, может ли identity выполнить action над ресурсом,
// принадлежащим ownerUID. Владелец берётся из уже прочитанной записи,
// а не из данных запроса.
func CanAccess(identity models.Identity, ownerUID string, action Action) bool {
	if identity.IsAdmin() {
		return true
	}
	switch action {
	case ActionList, ActionCreate:
		return false
	default:
		return identity.UID == ownerUID
	}
}
