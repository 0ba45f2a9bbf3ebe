// Package validate holds the field length limits shared by the catalog
// and roster stores, with helpers for checking string fields and years.
package validate
