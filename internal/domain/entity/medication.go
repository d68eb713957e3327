package entity

import "time"

// Medication representa un medicamento del catálogo. El catálogo (formas,
// fabricantes, principios activos) se administra fuera de este núcleo; aquí
// solo se consulta por ID y por su umbral mínimo para el reporte de stock bajo.
type Medication struct {
	ID           string
	Name         string
	GenericName  string
	Form         string // tableta, jarabe, ampolla, etc.
	MinimumStock int64  // umbral para el reporte de reposición
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
