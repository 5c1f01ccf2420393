// Package apiresponses provides standardized HTTP API response helpers
// shared between the api and contact packages without import cycles.
package apiresponses
