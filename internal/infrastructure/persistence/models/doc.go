// Package models contains GORM persistence models for the storefront catalog
// tables. Domain types in internal/domain/catalog stay free of ORM tags; the
// models here own column names, nullable columns and the 'S'/'N' flag columns,
// and convert to domain values through ToDomain.
package models
