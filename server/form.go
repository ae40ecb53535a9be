package server

import (
	"html/template"

	"github.com/bitrise-io/genai-prompt-form/common"
	"github.com/bitrise-io/genai-prompt-form/llm"
	"github.com/bitrise-io/genai-prompt-form/model"
)

const formHTML = `<html>
<head><title>GenAI Assignment</title></head>
<body>
  <h2>Generative AI Prompt Assignment</h2>
  <form method="post">
    <label>Prompt:</label><br>
    <textarea name="prompt" rows="4" cols="50">{{ .Prompt }}</textarea><br><br>
    <label>Provider:</label>
    <select name="provider">
      {{- range .Providers }}
      <option value="{{ .Value }}"{{ if .Selected }} selected{{ end }}>{{ .Label }}</option>
      {{- end }}
    </select><br><br>
    <input type="submit" value="Submit">
  </form>
  {{- if .Response }}
  <h3>Response:</h3>
  <pre>{{ .Response }}</pre>
  {{- end }}
</body>
</html>
`

var formTemplate = template.Must(template.New("form").Parse(formHTML))

func newFormView(prompt, provider, response string) model.FormView {
	options := make([]model.ProviderOption, 0, len(llm.Providers))
	for _, p := range llm.Providers {
		options = append(options, model.ProviderOption{
			Value:    p,
			Label:    common.TitleCase(p),
			Selected: p == provider,
		})
	}

	return model.FormView{
		Prompt:    prompt,
		Provider:  provider,
		Response:  response,
		Providers: options,
	}
}
