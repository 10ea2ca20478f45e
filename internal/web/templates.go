package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	util "github.com/saulo-duarte/testsafe/internal/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"letter": func(i int) string {
		return string(rune('A' + i))
	},
	"join": strings.Join,
	"fecha": func(t util.LocalDateTime) string {
		return t.Format("02/01/2006 15:04")
	},
	"duration": func(d time.Duration) string {
		d = d.Round(time.Second)
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		if m == 0 {
			return fmt.Sprintf("%ds", s)
		}
		return fmt.Sprintf("%dm %02ds", m, s)
	},
}).ParseFS(templateFS, "templates/*.html"))
