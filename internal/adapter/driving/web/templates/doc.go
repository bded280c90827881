// Package templates holds the console's templ components. The _templ.go files
// are generated from the .templ sources with `go tool templ generate`.
package templates
