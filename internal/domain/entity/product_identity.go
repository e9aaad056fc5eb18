package entity

import "strings"

// ProductIdentity clave compuesta (nombre, tipo) que correlaciona stock y ventas.
// No existe llave sustituta entre ambos libros: la correlación es solo por este par.
type ProductIdentity struct {
	Name string
	Type string
}

// NewProductIdentity construye la identidad sin normalizar (la comparación es sensible a mayúsculas).
func NewProductIdentity(name, productType string) ProductIdentity {
	return ProductIdentity{Name: name, Type: productType}
}

// Matches compara dos identidades: igualdad exacta en ambos componentes.
// Es la única comparación que usan disponibilidad, costo y el espejo del cliente.
func Matches(a, b ProductIdentity) bool {
	return a.Name == b.Name && a.Type == b.Type
}

// IsValid indica si ambos componentes tienen contenido.
func (p ProductIdentity) IsValid() bool {
	return strings.TrimSpace(p.Name) != "" && strings.TrimSpace(p.Type) != ""
}

// Key devuelve "Nombre-Tipo", la clave del mapa de niveles expuesto al cliente.
func (p ProductIdentity) Key() string {
	return p.Name + "-" + p.Type
}

func (p ProductIdentity) String() string {
	return p.Name + " (" + p.Type + ")"
}
