// Package gallery is a client for the Visual Studio Marketplace REST API:
// extension lookup, create, update and delete, publisher lookup, and the
// public extensions report used to vet web extensions.
package gallery
