package api

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

var homeTemplate = template.Must(template.New("home.html").Parse(`<!DOCTYPE html>
<html lang="ru">
<head>
  <meta charset="utf-8">
  <title>VPN Subscription</title>
</head>
<body>
  <h1>{{ .summary.Username }}</h1>
  <p>Status: {{ .summary.Status }}</p>
  <p>Expires: {{ .summary.ExpiresAt }} ({{ .summary.DaysLeft }} days left)</p>
  <p>Traffic: {{ .summary.TrafficUsed }} of {{ .summary.TrafficLimit }} ({{ .summary.TrafficPercent }}%)</p>
</body>
</html>
`))

// NewRouter wires the HTTP surface consumed by the bot and web clients.
func NewRouter(handler *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(homeTemplate)

	r.GET("/api/subscription/:identifier", handler.GetSubscription)
	r.GET("/:identifier", handler.Home)

	return r
}
