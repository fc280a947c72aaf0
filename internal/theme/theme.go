// Package theme holds the process-wide stylesheet shared by every page.
package theme

import (
	"log"
	"strings"
	"sync"
)

// Palette colors
const (
	Background = "#121214"
	Surface    = "#202024"
	Text       = "#c4c4cc"
	TextStrong = "#e1e1e6"
	Title      = "#8d8d99"
	Accent     = "#00875f"
	AccentDark = "#015f43"
)

// stylesheet builds its css at most once
type stylesheet struct {
	once  sync.Once
	css   string
	build func() string
}

var global = &stylesheet{build: build}

func (s *stylesheet) init() {
	s.once.Do(func() {
		s.css = s.build()
		log.Printf("Global styles initialized (%d bytes)", len(s.css))
	})
}

func (s *stylesheet) String() string {
	s.init()
	return s.css
}

// Init builds the global stylesheet. Only the first call has any effect.
func Init() {
	global.init()
}

// GlobalCSS returns the global stylesheet, initializing it if needed
func GlobalCSS() string {
	return global.String()
}

func build() string {
	var b strings.Builder

	rule := func(selector string, decls ...string) {
		b.WriteString(selector)
		b.WriteString("{")
		b.WriteString(strings.Join(decls, ";"))
		b.WriteString("}\n")
	}

	rule("*", "margin:0", "padding:0", "box-sizing:border-box")
	rule("body", "background:"+Background, "color:"+TextStrong, "-webkit-font-smoothing:antialiased")
	rule("body,input,textarea,button", "font-family:Roboto,-apple-system,BlinkMacSystemFont,'Segoe UI',sans-serif", "font-weight:400")
	rule(".container", "display:flex", "flex-direction:column", "align-items:flex-start", "justify-content:center", "min-height:100vh")
	rule(".header", "padding:2rem 0", "width:100%", "max-width:1180px", "margin:0 auto")
	rule("main", "width:100%", "max-width:1180px", "margin:0 auto")

	// listing
	rule(".home", "display:grid", "grid-template-columns:repeat(auto-fill,minmax(340px,1fr))", "gap:3rem", "padding-bottom:3rem")
	rule(".home-product", "background:linear-gradient(180deg,#1ea483 0%,#7465d4 100%)", "border-radius:8px", "position:relative", "overflow:hidden", "display:flex", "align-items:center", "justify-content:center", "text-decoration:none")
	rule(".home-product img", "object-fit:cover")
	rule(".home-product footer", "position:absolute", "bottom:0.25rem", "left:0.25rem", "right:0.25rem", "padding:2rem", "border-radius:6px", "display:flex", "align-items:center", "justify-content:space-between", "background:rgba(0,0,0,0.6)")
	rule(".home-product strong", "font-size:1.25rem", "color:"+TextStrong)
	rule(".home-product span", "font-size:1.5rem", "font-weight:bold", "color:#00b37e")

	// product detail
	rule(".product", "display:grid", "grid-template-columns:1fr 1fr", "align-items:stretch", "gap:4rem", "max-width:1180px", "margin:0 auto")
	rule(".product-image", "width:100%", "max-width:576px", "height:656px", "background:linear-gradient(180deg,#1ea483 0%,#7465d4 100%)", "border-radius:8px", "padding:0.25rem", "display:flex", "align-items:center", "justify-content:center")
	rule(".product-image img", "object-fit:cover")
	rule(".product-details", "display:flex", "flex-direction:column")
	rule(".product-details h1", "font-size:2rem", "color:"+Text)
	rule(".product-details .price", "margin-top:1rem", "display:block", "font-size:2rem", "color:#00b37e")
	rule(".product-details p", "margin-top:2.5rem", "font-size:1.125rem", "line-height:1.6", "color:"+Text)
	rule(".product-details form", "margin-top:auto")
	rule(".buy-button", "width:100%", "background:"+Accent, "border:0", "color:#fff", "border-radius:8px", "padding:1.25rem", "cursor:pointer", "font-weight:bold", "font-size:1.125rem")
	rule(".buy-button:disabled", "opacity:0.6", "cursor:not-allowed")
	rule(".buy-button:not(:disabled):hover", "background:"+AccentDark)

	// skeleton
	rule(".skeleton", "background:linear-gradient(90deg,"+Surface+" 25%,#29292e 50%,"+Surface+" 75%)", "background-size:200% 100%", "animation:shimmer 1.5s infinite", "border-radius:8px")
	rule("@keyframes shimmer", "0%{background-position:200% 0}100%{background-position:-200% 0}")
	rule(".skeleton-image", "width:576px", "height:656px")
	rule(".skeleton-title", "height:40px")
	rule(".skeleton-price", "width:100px", "height:32px", "margin-top:1rem")
	rule(".skeleton-line", "height:24px", "margin-top:1rem")
	rule(".skeleton-button", "height:60px", "margin-top:auto")

	// landing pages
	rule(".message", "display:flex", "flex-direction:column", "align-items:center", "margin:0 auto", "height:656px")
	rule(".message h1", "font-size:2rem", "color:"+TextStrong)
	rule(".message p", "font-size:1.25rem", "color:"+Text, "max-width:560px", "text-align:center", "margin-top:2rem", "line-height:1.4")
	rule(".message a", "margin-top:5rem", "display:block", "font-size:1.25rem", "color:#00b37e", "text-decoration:none", "font-weight:bold")
	rule(".message .image", "width:100%", "max-width:130px", "height:145px", "background:linear-gradient(180deg,#1ea483 0%,#7465d4 100%)", "border-radius:8px", "padding:0.25rem", "margin-top:4rem", "display:flex", "align-items:center", "justify-content:center")

	return b.String()
}
