// Package openapi describes the form API (fields and submit endpoints) as an
// OpenAPI 3 document built with kin-openapi. The submit request schema is
// derived from the served field list.
package openapi
