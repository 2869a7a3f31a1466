package htmlview

import (
	"html/template"
	"strings"
)

// Status templates shown while data loads, when it is missing, or to greet
// the user. Messages are escaped by html/template.
var statusTemplates = template.Must(template.New("status").Parse(`
{{- define "spinner" -}}
<div class="spinner">
  <svg>
    <use href="{{.Icons}}#icon-loader"></use>
  </svg>
</div>
{{- end -}}
{{- define "error" -}}
<div class="error">
  <div>
    <svg>
      <use href="{{.Icons}}#icon-alert-triangle"></use>
    </svg>
  </div>
  <p>{{.Message}}</p>
</div>
{{- end -}}
{{- define "message" -}}
<div class="message">
  <div>
    <svg>
      <use href="{{.Icons}}#icon-smile"></use>
    </svg>
  </div>
  <p>{{.Message}}</p>
</div>
{{- end -}}
`))

type statusData struct {
	Icons   string
	Message string
}

func statusMarkup(name, icons, message string) (string, error) {
	var b strings.Builder
	if err := statusTemplates.ExecuteTemplate(&b, name, statusData{Icons: icons, Message: message}); err != nil {
		return "", err
	}
	return b.String(), nil
}
