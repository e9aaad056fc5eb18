// Package inventory contiene el motor de conciliación stock-ventas (servicios de dominio puros):
// disponibilidad por identidad de producto, resolución de costo unitario promedio y
// agregación de ingresos, costos y utilidad sobre el libro de ventas.
//
// Todo el cálculo monetario usa decimal.Decimal; ninguna función hace I/O.
package inventory
