package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// Document structure

func Div(args ...any) *VNode  { return H("div", args...) }
func Span(args ...any) *VNode { return H("span", args...) }
func Main(args ...any) *VNode { return H("main", args...) }
func Nav(args ...any) *VNode  { return H("nav", args...) }

// Text content

func H1(args ...any) *VNode  { return H("h1", args...) }
func H2(args ...any) *VNode  { return H("h2", args...) }
func H3(args ...any) *VNode  { return H("h3", args...) }
func P(args ...any) *VNode   { return H("p", args...) }
func Pre(args ...any) *VNode { return H("pre", args...) }
func Br(args ...any) *VNode  { return H("br", args...) }

// Lists

func Ul(args ...any) *VNode { return H("ul", args...) }
func Ol(args ...any) *VNode { return H("ol", args...) }
func Li(args ...any) *VNode { return H("li", args...) }

// Inline

func A(args ...any) *VNode      { return H("a", args...) }
func Strong(args ...any) *VNode { return H("strong", args...) }
func Em(args ...any) *VNode     { return H("em", args...) }
func Code(args ...any) *VNode   { return H("code", args...) }

// Forms

func Form(args ...any) *VNode     { return H("form", args...) }
func Input(args ...any) *VNode    { return H("input", args...) }
func Button(args ...any) *VNode   { return H("button", args...) }
func Label(args ...any) *VNode    { return H("label", args...) }
func Select(args ...any) *VNode   { return H("select", args...) }
func Option(args ...any) *VNode   { return H("option", args...) }
func Textarea(args ...any) *VNode { return H("textarea", args...) }

// Tables

func Table(args ...any) *VNode { return H("table", args...) }
func Thead(args ...any) *VNode { return H("thead", args...) }
func Tbody(args ...any) *VNode { return H("tbody", args...) }
func Tr(args ...any) *VNode    { return H("tr", args...) }
func Th(args ...any) *VNode    { return H("th", args...) }
func Td(args ...any) *VNode    { return H("td", args...) }

// Media

func Img(args ...any) *VNode { return H("img", args...) }
