// Package schemas содержит JSON-схемы ответов API объявлений.
package schemas

import "embed"

//go:embed api
var SchemasFS embed.FS
