package document

import (
	"fmt"
	"html/template"
	"os"
)

var htmlTemplate = template.Must(template.New("presentation").Funcs(template.FuncMap{
	"timestamp": formatTimestamp,
	"duration":  formatDuration,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - Presentation</title>
    <style>
        body {
            font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif;
            line-height: 1.6;
            margin: 0;
            padding: 20px;
            background-color: #f5f5f5;
        }
        .container {
            max-width: 1200px;
            margin: 0 auto;
            background-color: white;
            padding: 30px;
            border-radius: 10px;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
        }
        h1 {
            color: #2c3e50;
            border-bottom: 3px solid #3498db;
            padding-bottom: 10px;
        }
        .metadata {
            background-color: #ecf0f1;
            padding: 15px;
            border-radius: 5px;
            margin-bottom: 30px;
        }
        .slide {
            margin-bottom: 40px;
            border: 1px solid #ddd;
            border-radius: 8px;
            overflow: hidden;
        }
        .slide-header {
            background-color: #34495e;
            color: white;
            padding: 15px;
            margin: 0;
        }
        .slide-content {
            padding: 20px;
        }
        .screenshot {
            max-width: 100%;
            height: auto;
            border: 1px solid #ddd;
            border-radius: 5px;
            margin-bottom: 20px;
        }
        .transcript {
            background-color: #f8f9fa;
            padding: 15px;
            border-left: 4px solid #3498db;
            border-radius: 0 5px 5px 0;
        }
        .enhanced {
            background-color: #f0f7f0;
            padding: 15px;
            border-left: 4px solid #27ae60;
            border-radius: 0 5px 5px 0;
            margin-bottom: 15px;
        }
        .timestamp {
            color: #7f8c8d;
            font-size: 0.9em;
            margin-bottom: 10px;
        }
        .navigation {
            position: fixed;
            top: 20px;
            right: 20px;
            background-color: white;
            border: 1px solid #ddd;
            border-radius: 5px;
            padding: 15px;
            max-height: 80vh;
            overflow-y: auto;
            box-shadow: 0 2px 10px rgba(0,0,0,0.1);
        }
        .navigation h3 {
            margin-top: 0;
            color: #2c3e50;
        }
        .navigation a {
            display: block;
            padding: 5px 0;
            color: #3498db;
            text-decoration: none;
        }
        .navigation a:hover {
            color: #2980b9;
        }
        .no-transcript {
            color: #7f8c8d;
            font-style: italic;
        }
        details summary {
            cursor: pointer;
            color: #7f8c8d;
        }
        @media (max-width: 768px) {
            .navigation {
                position: static;
                margin-bottom: 20px;
            }
        }
        @media print {
            .navigation {
                display: none;
            }
            body {
                background-color: white;
            }
            .container {
                box-shadow: none;
                border-radius: 0;
            }
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>

        <div class="metadata">
            <p><strong>Generated:</strong> {{.GeneratedDate}}</p>
            <p><strong>Video Duration:</strong> {{duration .Duration}}</p>
            <p><strong>Total Slides:</strong> {{len .Slides}}</p>
        </div>

        {{if .IncludeNavigation}}
        <div class="navigation">
            <h3>Navigation</h3>
            {{range .Slides}}
            <a href="#slide-{{.Number}}">Slide {{.Number}} ({{timestamp .Timestamp}})</a>
            {{end}}
        </div>
        {{end}}

        {{range .Slides}}
        <div class="slide" id="slide-{{.Number}}">
            <h2 class="slide-header">Slide {{.Number}}</h2>
            <div class="slide-content">
                {{if $.IncludeTimestamps}}
                <div class="timestamp">
                    <strong>Timestamp:</strong> {{timestamp .Timestamp}}
                </div>
                {{end}}

                <img class="screenshot" src="{{.ScreenshotPath}}" alt="Slide {{.Number}}">

                {{if .HasEnhanced}}
                <div class="enhanced">
                    <h4>Enhanced Transcript:</h4>
                    <p>{{.Enhanced}}</p>
                    {{if .KeyPoints}}
                    <h4>Key Points:</h4>
                    <ul>
                        {{range .KeyPoints}}<li>{{.}}</li>{{end}}
                    </ul>
                    {{end}}
                </div>
                <details>
                    <summary>Original Transcript</summary>
                    <div class="transcript"><p>{{.Transcript}}</p></div>
                </details>
                {{else}}
                <div class="transcript">
                    <h4>Transcript:</h4>
                    {{if .Transcript}}
                    <p>{{.Transcript}}</p>
                    {{else}}
                    <p class="no-transcript">No transcript available for this slide.</p>
                    {{end}}
                </div>
                {{end}}
            </div>
        </div>
        {{end}}
    </div>
</body>
</html>
`))

type htmlData struct {
	Title             string
	Slides            []Slide
	Duration          float64
	GeneratedDate     string
	IncludeTimestamps bool
	IncludeNavigation bool
}

func (g *Generator) writeHTML(outputPath string, slides []Slide, title string, duration float64) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create html file: %w", err)
	}
	defer f.Close()

	data := htmlData{
		Title:             title,
		Slides:            slides,
		Duration:          duration,
		GeneratedDate:     generatedDate(),
		IncludeTimestamps: g.cfg.IncludeTimestamps,
		IncludeNavigation: g.cfg.IncludeNavigation,
	}

	if err := htmlTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render html template: %w", err)
	}
	return nil
}
