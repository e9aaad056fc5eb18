package inventory

import "github.com/jhoicas/mayondo-api/internal/domain/entity"

// Availability resultado del validador de disponibilidad.
type Availability struct {
	Available   bool
	MaxQuantity int // existencias totales de la identidad (0 si no hay coincidencias)
}

// OnHand suma las existencias de las entradas que coinciden con la identidad.
// Cantidades negativas (datos corruptos) cuentan como cero.
func OnHand(entries []entity.StockEntry, product entity.ProductIdentity) int {
	total := 0
	for i := range entries {
		if !entity.Matches(entries[i].Product, product) {
			continue
		}
		if entries[i].Quantity > 0 {
			total += entries[i].Quantity
		}
	}
	return total
}

// CheckAvailability decide si la cantidad solicitada puede venderse.
// Disponible solo si 1 <= requested <= existencias; MaxQuantity permite al llamador acotar la entrada.
func CheckAvailability(entries []entity.StockEntry, product entity.ProductIdentity, requested int) Availability {
	sum := OnHand(entries, product)
	return Availability{
		Available:   requested >= 1 && requested <= sum,
		MaxQuantity: sum,
	}
}

// StockLevels agrupa existencias por clave "Nombre-Tipo" para el espejo del cliente.
//
// La clave no es única: ("A-B", "C") y ("A", "B-C") producen "A-B-C". En ese caso gana la
// identidad que aparece después en entries y la anterior no figura en el mapa. El espejo es
// solo informativo; disponibilidad y costo comparan siempre con entity.Matches.
func StockLevels(entries []entity.StockEntry) map[string]int {
	levels := make(map[string]int)
	seen := make([]entity.ProductIdentity, 0)
	for i := range entries {
		p := entries[i].Product
		known := false
		for _, s := range seen {
			if entity.Matches(s, p) {
				known = true
				break
			}
		}
		if known {
			continue
		}
		seen = append(seen, p)
		levels[p.Key()] = OnHand(entries, p)
	}
	return levels
}
