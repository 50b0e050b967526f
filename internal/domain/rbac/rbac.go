// Пакет rbac — ролевая модель панели MyGov.
// Определяет, какие роли допускаются к какому разделу, куда перенаправлять
// отклонённого пользователя и какие пункты меню ему доступны.
package rbac

// Роли в порядке возрастания привилегий.
const (
	RoleAdmin      = "admin"
	RoleMyGovAdmin = "mygov_admin"
	RoleSuperAdmin = "super_admin"
)

// Пути страниц, на которые перенаправляет охрана.
const (
	PathLogin     = "/login"
	PathDashboard = "/dashboard"
	PathDocuments = "/documents"
)

// roleWeight — вес роли для сравнения.
// Чем выше вес, тем больше привилегий.
var roleWeight = map[string]int{
	RoleAdmin:      1,
	RoleMyGovAdmin: 2,
	RoleSuperAdmin: 3,
}

// Наборы ролей, требуемые разделами панели.
var (
	// PanelRoles — доступ к панели MyGov: документы, создание, главная, файлы.
	PanelRoles = []string{RoleMyGovAdmin, RoleSuperAdmin}
	// AdminUsersRoles — управление учётными записями администраторов.
	AdminUsersRoles = []string{RoleSuperAdmin}
)

// IsValidRole проверяет, является ли строка допустимой ролью.
func IsValidRole(role string) bool {
	_, ok := roleWeight[role]
	return ok
}

// IsElevated — роль с полным доступом ко всем записям (super_admin).
func IsElevated(role string) bool {
	return role == RoleSuperAdmin
}

// IsAnyAdmin — роль с доступом к панели MyGov (mygov_admin или super_admin).
func IsAnyAdmin(role string) bool {
	return HasAnyRole(role, PanelRoles)
}

// HasAnyRole проверяет, входит ли роль в набор.
func HasAnyRole(role string, allowed []string) bool {
	if role == "" {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// CanDelete — удаление документов и файлов хранилища доступно только
// повышенной роли.
func CanDelete(role string) bool {
	return IsElevated(role)
}

// LandingPath возвращает стартовую страницу роли.
// Для ролей без доступа к панели возвращается страница входа.
func LandingPath(role string) string {
	switch role {
	case RoleSuperAdmin:
		return PathDashboard
	case RoleMyGovAdmin:
		return PathDocuments
	default:
		return PathLogin
	}
}

// Decision — результат проверки доступа к разделу.
type Decision struct {
	// Allowed — раздел можно отрисовать
	Allowed bool
	// Redirect — путь перенаправления при отказе
	Redirect string
}

// Authorize решает, допускается ли пользователь к разделу.
// Без сессии — на страницу входа; роль вне набора — на стартовую страницу роли.
func Authorize(role string, hasSession bool, required []string) Decision {
	if !hasSession || role == "" {
		return Decision{Redirect: PathLogin}
	}
	if HasAnyRole(role, required) {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: LandingPath(role)}
}

// MenuItem — пункт бокового меню.
type MenuItem struct {
	// TitleKey — ключ перевода заголовка
	TitleKey string
	// Path — адрес страницы
	Path string
	// Roles — роли, которым пункт показывается
	Roles []string
}

// Menu — полный набор пунктов бокового меню.
var Menu = []MenuItem{
	{TitleKey: "nav.dashboard", Path: PathDashboard, Roles: PanelRoles},
	{TitleKey: "nav.create_document", Path: "/documents/create", Roles: PanelRoles},
	{TitleKey: "nav.documents", Path: PathDocuments, Roles: PanelRoles},
	{TitleKey: "nav.files", Path: "/files", Roles: PanelRoles},
	{TitleKey: "nav.admin_users", Path: "/admin/users", Roles: AdminUsersRoles},
}

// MenuFor возвращает пункты меню, доступные роли.
func MenuFor(role string) []MenuItem {
	items := make([]MenuItem, 0, len(Menu))
	for _, item := range Menu {
		if HasAnyRole(role, item.Roles) {
			items = append(items, item)
		}
	}
	return items
}
