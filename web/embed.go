package web

import "embed"

// StaticFS 嵌入的看板静态页面
//
//go:embed static
var StaticFS embed.FS
