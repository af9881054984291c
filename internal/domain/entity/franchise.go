package entity

import "github.com/shopspring/decimal"

// FranchiseAdmin administrador de una franquicia tal como lo lista el backend.
type FranchiseAdmin struct {
	ID    string
	Name  string
	Email string
}

// Store una tienda de una franquicia. TotalRevenue solo viene en vistas
// administrativas; cuando está presente nunca es negativo.
type Store struct {
	ID           int64
	Name         string
	TotalRevenue decimal.Decimal
}

// Franchise una franquicia con sus administradores y tiendas. Tras la
// normalización Admins y Stores nunca son nil (invariante del normalizador:
// todo consumidor puede asumir presencia).
type Franchise struct {
	ID     int64
	Name   string
	Admins []FranchiseAdmin
	Stores []Store
}

// FranchiseList página de franquicias ya normalizada. More == true indica que
// una petición con page+1 debe devolver más elementos; false es terminal.
type FranchiseList struct {
	Franchises []Franchise
	More       bool
}
