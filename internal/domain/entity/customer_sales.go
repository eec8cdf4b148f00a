package entity

import "strings"

// CustomerSales representa una fila de ventas por cliente (años 2021 y 2022).
// ID lo asigna el almacén; nunca lo fija quien inserta.
type CustomerSales struct {
	ID               int64
	CustomerID       string // identificador externo, no único
	FirstName        string
	LastName         string
	Company          string
	City             string
	Country          string
	Phone1           string
	Phone2           string
	Email            string
	SubscriptionDate string // se guarda tal cual viene del archivo
	Website          string
	Sales2021        int64
	Sales2022        int64
}

// CustomerName une nombre y apellido con un espacio.
// Una parte vacía se trata como cadena vacía y no deja espacios sobrantes.
func (c *CustomerSales) CustomerName() string {
	first := strings.TrimSpace(c.FirstName)
	last := strings.TrimSpace(c.LastName)
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
