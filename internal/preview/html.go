package preview

import (
	"fmt"
	htmltemplate "html/template"
	"strings"

	"cvpress/internal/layout"
	"cvpress/internal/template"
)

// pageTemplateString mirrors the geometry the export engine draws with: the
// same page box, margins and column split, expressed as inline CSS so the
// fragment renders correctly without a host stylesheet.
const pageTemplateString = `<div class="resume-page" style="width:{{.PageWidth}};height:{{.PageHeight}};padding:{{.Margin}};box-sizing:border-box;background:#fff;overflow:hidden;">
{{- range .Blocks}}
<div class="block block-{{.Kind}}"{{if .Protected}} data-protected="true"{{end}} style="margin-bottom:{{.SpacingAfter}};{{if .Centered}}text-align:center;{{end}}">
{{- if .Heading}}<div class="heading" style="{{.HeadingCSS}}">{{.Heading}}</div>{{end}}
{{- range .Lines}}
{{- if .Split}}<div class="row" style="display:flex;"><span style="{{.LeftCSS}}flex:0 0 {{$.SplitLeft}};">{{.Left}}</span><span style="{{.RightCSS}}flex:0 0 {{$.SplitRight}};text-align:right;">{{.Right}}</span></div>
{{- else}}<div class="row" style="{{.LeftCSS}}">{{.Left}}</div>
{{- end}}
{{- end}}
{{- if .Pills}}<div class="pills" style="max-width:{{$.PillBudget}};">
{{- range .Pills}}<span class="pill" style="display:inline-block;padding:0 {{$.PillPad}};height:{{$.PillHeight}};line-height:{{$.PillHeight}};margin:0 {{$.PillGapX}} {{$.PillRowGap}} 0;border-radius:8px;background:#eef1f4;font-size:{{$.PillFont}};">{{.}}</span>{{end}}
</div>{{end}}
</div>
{{- end}}
</div>`

var pageTemplate = htmltemplate.Must(htmltemplate.New("page").Parse(pageTemplateString))

type lineView struct {
	Left     string
	Right    string
	Split    bool
	LeftCSS  htmltemplate.CSS
	RightCSS htmltemplate.CSS
}

type blockView struct {
	Kind         string
	Protected    bool
	Centered     bool
	SpacingAfter string
	Heading      string
	HeadingCSS   htmltemplate.CSS
	Lines        []lineView
	Pills        []string
}

type pageView struct {
	PageWidth  string
	PageHeight string
	Margin     string
	SplitLeft  string
	SplitRight string
	PillBudget string
	PillPad    string
	PillHeight string
	PillGapX   string
	PillRowGap string
	PillFont   string
	Blocks     []blockView
}

func pt(v float64) string {
	return fmt.Sprintf("%.2fpt", v)
}

func textCSS(size float64, bold, italic bool) htmltemplate.CSS {
	var b strings.Builder
	fmt.Fprintf(&b, "font-size:%s;line-height:%.2f;", pt(size), layout.LineHeightFactor)
	if bold {
		b.WriteString("font-weight:bold;")
	}
	if italic {
		b.WriteString("font-style:italic;")
	}
	return htmltemplate.CSS(b.String())
}

func renderPage(blocks []template.Block) (PageFragment, error) {
	view := pageView{
		PageWidth:  pt(layout.PageWidth),
		PageHeight: pt(layout.PageHeight),
		Margin:     pt(layout.Margin),
		SplitLeft:  fmt.Sprintf("%.0f%%", layout.SplitRatio*100),
		SplitRight: fmt.Sprintf("%.0f%%", (1-layout.SplitRatio)*100),
		PillBudget: fmt.Sprintf("%.0f%%", layout.PillRowBudget*100),
		PillPad:    pt(layout.PillPaddingX),
		PillHeight: pt(layout.PillHeight),
		PillGapX:   pt(layout.PillGapX),
		PillRowGap: pt(layout.PillRowGap),
		PillFont:   pt(layout.PillFontSize),
		Blocks:     make([]blockView, 0, len(blocks)),
	}

	for _, block := range blocks {
		bv := blockView{
			Kind:         string(block.Kind),
			Protected:    block.Style.Protected,
			Centered:     block.Style.Centered,
			SpacingAfter: pt(block.Style.SpacingAfter),
			Pills:        block.Pills,
		}
		if block.Heading != "" {
			heading := block.Heading
			if block.Style.Uppercase {
				heading = strings.ToUpper(heading)
			}
			bv.Heading = heading
			bv.HeadingCSS = textCSS(block.Style.FontSize, block.Style.Bold, block.Style.Italic)
		}
		for _, line := range block.Lines {
			lv := lineView{
				Left:    line.Left,
				Right:   line.Right,
				Split:   line.Right != "" && block.Style.SplitRatio > 0,
				LeftCSS: textCSS(line.Size, line.Bold, line.Italic),
			}
			if lv.Split {
				lv.RightCSS = textCSS(line.Size, false, false)
			}
			bv.Lines = append(bv.Lines, lv)
		}
		view.Blocks = append(view.Blocks, bv)
	}

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, view); err != nil {
		return "", err
	}
	return PageFragment(sb.String()), nil
}
