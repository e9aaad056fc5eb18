package entity

// Roles que emite el proveedor de identidad externo en el claim "role" del token.
// Coinciden con las audiencias de notificación.
const (
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Principal identidad autenticada de la petición (extraída del JWT).
// Este servicio no guarda usuarios ni contraseñas.
type Principal struct {
	UserID   string
	Username string
	Role     string // manager, employee
}

// IsManager indica si el rol tiene acceso a reportes y administración.
func (p Principal) IsManager() bool { return p.Role == RoleManager }

// ValidRole indica si el rol es uno de los admitidos.
func ValidRole(role string) bool {
	return role == RoleManager || role == RoleEmployee
}
