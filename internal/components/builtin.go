package components

import (
	"fmt"
	"time"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// BuiltInDefinitions returns the component catalogue shipped with go-blog.
// The registry is frozen right after these (plus any host-supplied
// definitions) are registered.
func BuiltInDefinitions() []interfaces.ComponentDefinition {
	return []interfaces.ComponentDefinition{
		calloutDefinition(),
		figureDefinition(),
		youTubeDefinition(),
		codeDefinition(),
	}
}

func calloutDefinition() interfaces.ComponentDefinition {
	validateType := func(value any) error {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("callout type must be string")
		}
		switch str {
		case "info", "success", "warning", "danger":
			return nil
		default:
			return fmt.Errorf("callout type %q not supported", str)
		}
	}

	return interfaces.ComponentDefinition{
		Name:        "callout",
		Version:     "1.0.0",
		Description: "Displays contextual callout boxes within article bodies",
		Category:    "content",
		Icon:        "alert",
		AllowInner:  true,
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{
					Name:     "type",
					Type:     interfaces.ComponentParamString,
					Default:  "info",
					Validate: validateType,
				},
				{
					Name: "title",
					Type: interfaces.ComponentParamString,
				},
			},
		},
		Template: `<div class="component component--callout component--callout-{{ .type }}">
  {{ if .title }}<div class="component__title">{{ .title }}</div>{{ end }}
  <div class="component__body">{{ .Inner }}</div>
</div>`,
	}
}

func figureDefinition() interfaces.ComponentDefinition {
	return interfaces.ComponentDefinition{
		Name:        "figure",
		Version:     "1.0.0",
		Description: "Image figure with caption support",
		Category:    "media",
		Icon:        "figure",
		AllowInner:  false,
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{
					Name:     "src",
					Type:     interfaces.ComponentParamURL,
					Required: true,
				},
				{
					Name:    "alt",
					Type:    interfaces.ComponentParamString,
					Default: "",
				},
				{
					Name: "caption",
					Type: interfaces.ComponentParamString,
				},
			},
		},
		Template: `<figure class="component component--figure">
  <img src="{{ .src }}" alt="{{ .alt }}" loading="lazy" />
  {{ if .caption }}<figcaption>{{ .caption }}</figcaption>{{ end }}
</figure>`,
	}
}

func youTubeDefinition() interfaces.ComponentDefinition {
	return interfaces.ComponentDefinition{
		Name:        "youtube",
		Version:     "1.0.0",
		Description: "Embeds a responsive YouTube iframe player",
		Category:    "media",
		Icon:        "youtube",
		AllowInner:  false,
		CacheTTL:    time.Hour,
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{
					Name:     "id",
					Type:     interfaces.ComponentParamString,
					Required: true,
				},
				{
					Name:    "start",
					Type:    interfaces.ComponentParamInt,
					Default: 0,
				},
				{
					Name:    "autoplay",
					Type:    interfaces.ComponentParamBool,
					Default: false,
				},
			},
		},
		Template: `{{- $query := "" -}}
{{- if gt .start 0 }}{{ $query = printf "?start=%d" .start }}{{ end -}}
{{- if .autoplay }}{{ if $query }}{{ $query = printf "%s&autoplay=1" $query }}{{ else }}{{ $query = "?autoplay=1" }}{{ end }}{{ end -}}
<div class="component component--youtube">
  <iframe src="https://www.youtube.com/embed/{{ .id }}{{ $query }}" title="YouTube video" loading="lazy" allowfullscreen></iframe>
</div>`,
	}
}

func codeDefinition() interfaces.ComponentDefinition {
	return interfaces.ComponentDefinition{
		Name:        "code",
		Version:     "1.0.0",
		Description: "Syntax highlighted code block",
		Category:    "content",
		Icon:        "code",
		AllowInner:  true,
		Schema: interfaces.ComponentSchema{
			Params: []interfaces.ComponentParam{
				{
					Name:     "lang",
					Type:     interfaces.ComponentParamString,
					Required: true,
				},
				{
					Name: "title",
					Type: interfaces.ComponentParamString,
				},
				{
					Name:    "line_numbers",
					Type:    interfaces.ComponentParamBool,
					Default: true,
				},
			},
		},
		Template: `<div class="component component--code">
  {{ if .title }}<div class="component__code-title">{{ .title }}</div>{{ end }}
  <pre class="component__code-block language-{{ .lang }}{{ if .line_numbers }} component__code-block--lines{{ end }}"><code>{{ .Inner }}</code></pre>
</div>`,
	}
}
