package builder

import (
	"fmt"
	"html"
	"strings"
)

// Block render functions. Every function obeys the same contract: read
// props defensively with per-field defaults, emit self-contained HTML, and
// never look at another block's props. Editing affordances (inline
// contenteditable, selection chrome) are added by the canvas renderer around
// this output, not inside it.

func esc(s string) string { return html.EscapeString(s) }

// attr escapes a value for use inside a double-quoted attribute.
func attr(s string) string { return html.EscapeString(s) }

// editable marks a text region as inline-editable on the canvas when the
// block is selected; live and preview output stay untouched.
func editable(ctx RenderContext, field string) string {
	if ctx.Mode == ModeCanvas && ctx.Selected {
		return fmt.Sprintf(` contenteditable="true" data-field="%s"`, attr(field))
	}
	return ""
}

// backgroundCSS resolves the block's background from its backgroundType
// discriminator. Unset or unknown types fall back to transparent.
func backgroundCSS(p Props) string {
	switch p.String(propBackgroundType, "") {
	case "color":
		if c := p.String(propBackgroundColor, ""); c != "" {
			return "background:" + esc(c) + ";"
		}
	case "gradient":
		if g := p.String(propBackgroundGradient, ""); g != "" {
			return "background:" + esc(g) + ";"
		}
	case "image":
		if u := p.String(propBackgroundImage, ""); u != "" {
			return fmt.Sprintf("background:url('%s') center/cover no-repeat;", attr(u))
		}
	}
	return ""
}

// section wraps a block body in the standard outer element with background
// and padding resolved from props.
func section(p Props, class, body string) string {
	var sb strings.Builder
	sb.WriteString(`<section class="mb-block ` + class + `" style="` + backgroundCSS(p))
	if c := p.String("textColor", ""); c != "" {
		sb.WriteString("color:" + esc(c) + ";")
	}
	sb.WriteString(`">`)
	sb.WriteString(body)
	sb.WriteString(`</section>`)
	return sb.String()
}

// itemMap reads one element of an array prop as a string-keyed map; other
// shapes read as empty.
func itemMap(v any) Props {
	if m, ok := v.(map[string]any); ok {
		return Props(m)
	}
	return Props{}
}

func renderHero(b Block, ctx RenderContext) string {
	p := b.Props
	body := fmt.Sprintf(
		`<div class="mb-hero" style="text-align:%s;min-height:%.0fpx">`+
			`<h1%s>%s</h1><p%s>%s</p>`+
			`<a class="mb-btn" href="%s"><span%s>%s</span></a></div>`,
		esc(p.String("alignment", "center")),
		p.Number("minHeight", 420),
		editable(ctx, "title"), esc(p.String("title", "Welcome to Our School")),
		editable(ctx, "subtitle"), esc(p.String("subtitle", "")),
		attr(p.String("buttonLink", "#")),
		editable(ctx, "buttonText"), esc(p.String("buttonText", "Learn More")),
	)
	return section(p, "mb-hero-section", body)
}

func renderNavigation(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(`<nav class="mb-nav"><span class="mb-nav-logo">`)
	if logo := p.String("logoImage", ""); logo != "" {
		sb.WriteString(fmt.Sprintf(`<img src="%s" alt="logo">`, attr(logo)))
	}
	sb.WriteString(fmt.Sprintf(`<span%s>%s</span></span><ul>`,
		editable(ctx, "logoText"), esc(p.String("logoText", "Montessa"))))
	for _, v := range p.Array("links") {
		link := itemMap(v)
		sb.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a>`,
			attr(link.String("url", "#")), esc(link.String("label", ""))))
		if link.Bool("isMegaMenu", false) {
			sb.WriteString(`<ul class="mb-nav-sub">`)
			for _, sv := range link.Array("subItems") {
				sub := itemMap(sv)
				sb.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a></li>`,
					attr(sub.String("url", "#")), esc(sub.String("label", ""))))
			}
			sb.WriteString(`</ul>`)
		}
		sb.WriteString(`</li>`)
	}
	sb.WriteString(`</ul></nav>`)
	return section(p, "mb-nav-section", sb.String())
}

func renderLegacyHeader(b Block, ctx RenderContext) string {
	p := b.Props
	body := fmt.Sprintf(`<header class="mb-legacy-header"><h1%s>%s</h1><p%s>%s</p></header>`,
		editable(ctx, "title"), esc(p.String("title", "Our School")),
		editable(ctx, "tagline"), esc(p.String("tagline", "")))
	return section(p, "mb-legacy-header-section", body)
}

func renderFeatures(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<h2%s>%s</h2><p%s>%s</p>`,
		editable(ctx, "heading"), esc(p.String("heading", "Why Choose Us")),
		editable(ctx, "subheading"), esc(p.String("subheading", ""))))
	cols := int(p.Number("columns", 3))
	sb.WriteString(fmt.Sprintf(`<div class="mb-grid mb-grid-%d">`, cols))
	for _, v := range p.Array("items") {
		it := itemMap(v)
		sb.WriteString(fmt.Sprintf(
			`<div class="mb-feature"><span class="mb-icon">%s</span><h3>%s</h3><p>%s</p></div>`,
			esc(it.String("icon", "star")), esc(it.String("title", "")),
			esc(it.String("description", ""))))
	}
	sb.WriteString(`</div>`)
	return section(p, "mb-features", sb.String())
}

func renderStats(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(`<div class="mb-stats">`)
	for _, v := range p.Array("items") {
		it := itemMap(v)
		sb.WriteString(fmt.Sprintf(`<div class="mb-stat"><strong>%s</strong><span>%s</span></div>`,
			esc(it.String("value", "0")), esc(it.String("label", ""))))
	}
	sb.WriteString(`</div>`)
	return section(p, "mb-stats-section", sb.String())
}

func renderPricing(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<h2%s>%s</h2><div class="mb-plans">`,
		editable(ctx, "heading"), esc(p.String("heading", "Tuition Plans"))))
	for _, v := range p.Array("plans") {
		plan := itemMap(v)
		class := "mb-plan"
		if plan.Bool("highlighted", false) {
			class += " mb-plan-highlighted"
		}
		sb.WriteString(fmt.Sprintf(
			`<div class="%s"><h3>%s</h3><div class="mb-price">%s<span>/%s</span></div><p>%s</p>`+
				`<a class="mb-btn" href="#">%s</a></div>`,
			class, esc(plan.String("name", "Plan")),
			esc(plan.String("price", "$0")), esc(plan.String("period", "month")),
			esc(plan.String("description", "")), esc(plan.String("ctaText", "Enroll"))))
	}
	sb.WriteString(`</div>`)
	return section(p, "mb-pricing", sb.String())
}

func renderTestimonials(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<h2%s>%s</h2><div class="mb-quotes">`,
		editable(ctx, "heading"), esc(p.String("heading", "What Parents Say"))))
	for _, v := range p.Array("items") {
		it := itemMap(v)
		sb.WriteString(fmt.Sprintf(
			`<blockquote class="mb-quote"><p>%s</p><footer>%s<span>%s</span></footer></blockquote>`,
			esc(it.String("quote", "")), esc(it.String("author", "")),
			esc(it.String("role", ""))))
	}
	sb.WriteString(`</div>`)
	return section(p, "mb-testimonials", sb.String())
}

func renderFAQ(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<h2%s>%s</h2><div class="mb-faq">`,
		editable(ctx, "heading"), esc(p.String("heading", "Frequently Asked Questions"))))
	for _, v := range p.Array("items") {
		it := itemMap(v)
		sb.WriteString(fmt.Sprintf(`<details><summary>%s</summary><p>%s</p></details>`,
			esc(it.String("question", "")), esc(it.String("answer", ""))))
	}
	sb.WriteString(`</div>`)
	return section(p, "mb-faq-section", sb.String())
}

func renderGallery(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<h2%s>%s</h2><div class="mb-gallery">`,
		editable(ctx, "heading"), esc(p.String("heading", "Gallery"))))
	for _, v := range p.Array("images") {
		img := itemMap(v)
		if u := img.String("url", ""); u != "" {
			sb.WriteString(fmt.Sprintf(`<figure><img src="%s" alt="%s"><figcaption>%s</figcaption></figure>`,
				attr(u), attr(img.String("caption", "")), esc(img.String("caption", ""))))
		}
	}
	sb.WriteString(`</div>`)
	return section(p, "mb-gallery-section", sb.String())
}

func renderCTA(b Block, ctx RenderContext) string {
	p := b.Props
	body := fmt.Sprintf(
		`<div class="mb-cta"><h2%s>%s</h2><p%s>%s</p><a class="mb-btn" href="%s"><span%s>%s</span></a></div>`,
		editable(ctx, "heading"), esc(p.String("heading", "Ready to Join Us?")),
		editable(ctx, "subheading"), esc(p.String("subheading", "")),
		attr(p.String("buttonLink", "#")),
		editable(ctx, "buttonText"), esc(p.String("buttonText", "Apply Now")))
	return section(p, "mb-cta-section", body)
}

func renderTeam(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<h2%s>%s</h2><div class="mb-team">`,
		editable(ctx, "heading"), esc(p.String("heading", "Our Team"))))
	for _, v := range p.Array("members") {
		m := itemMap(v)
		sb.WriteString(`<div class="mb-member">`)
		if photo := m.String("photo", ""); photo != "" {
			sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s">`, attr(photo), attr(m.String("name", ""))))
		}
		sb.WriteString(fmt.Sprintf(`<h3>%s</h3><span>%s</span><p>%s</p></div>`,
			esc(m.String("name", "")), esc(m.String("role", "")), esc(m.String("bio", ""))))
	}
	sb.WriteString(`</div>`)
	return section(p, "mb-team-section", sb.String())
}

func renderContact(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<h2%s>%s</h2><ul class="mb-contact">`,
		editable(ctx, "heading"), esc(p.String("heading", "Contact Us"))))
	if v := p.String("email", ""); v != "" {
		sb.WriteString(`<li>` + esc(v) + `</li>`)
	}
	if v := p.String("phone", ""); v != "" {
		sb.WriteString(`<li>` + esc(v) + `</li>`)
	}
	if v := p.String("address", ""); v != "" {
		sb.WriteString(`<li>` + esc(v) + `</li>`)
	}
	sb.WriteString(`</ul>`)
	if p.Bool("showForm", true) {
		sb.WriteString(`<form class="mb-contact-form" method="post" action="#">` +
			`<input name="name" placeholder="Name"><input name="email" placeholder="Email">` +
			`<textarea name="message" placeholder="Message"></textarea>` +
			`<button class="mb-btn" type="submit">Send</button></form>`)
	}
	return section(p, "mb-contact-section", sb.String())
}

func renderFooter(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<footer class="mb-footer"><p%s>%s</p><ul>`,
		editable(ctx, "text"), esc(p.String("text", ""))))
	for _, v := range p.Array("links") {
		link := itemMap(v)
		sb.WriteString(fmt.Sprintf(`<li><a href="%s">%s</a></li>`,
			attr(link.String("url", "#")), esc(link.String("label", ""))))
	}
	sb.WriteString(`</ul></footer>`)
	return section(p, "mb-footer-section", sb.String())
}

func renderText(b Block, ctx RenderContext) string {
	p := b.Props
	body := fmt.Sprintf(`<div class="mb-text" style="text-align:%s"><p%s>%s</p></div>`,
		esc(p.String("align", "left")), editable(ctx, "content"),
		esc(p.String("content", "")))
	return section(p, "mb-text-section", body)
}

func renderHeading(b Block, ctx RenderContext) string {
	p := b.Props
	level := p.String("level", "h2")
	switch level {
	case "h1", "h2", "h3", "h4":
	default:
		level = "h2"
	}
	body := fmt.Sprintf(`<%s%s>%s</%s>`, level, editable(ctx, "text"),
		esc(p.String("text", "Heading")), level)
	return section(p, "mb-heading-section", body)
}

func renderImage(b Block, ctx RenderContext) string {
	p := b.Props
	u := p.String("url", "")
	if u == "" {
		if ctx.Mode == ModeCanvas {
			return section(p, "mb-image-section", `<div class="mb-image-placeholder">Choose an image</div>`)
		}
		return ""
	}
	class := "mb-image"
	if p.Bool("rounded", false) {
		class += " mb-rounded"
	}
	body := fmt.Sprintf(`<figure class="%s"><img src="%s" alt="%s"><figcaption>%s</figcaption></figure>`,
		class, attr(u), attr(p.String("alt", "")), esc(p.String("caption", "")))
	return section(p, "mb-image-section", body)
}

func renderVideo(b Block, ctx RenderContext) string {
	p := b.Props
	u := p.String("url", "")
	if u == "" {
		return ""
	}
	auto := ""
	if p.Bool("autoplay", false) {
		auto = " autoplay muted loop"
	}
	body := fmt.Sprintf(`<video class="mb-video" src="%s" controls%s></video>`, attr(u), auto)
	return section(p, "mb-video-section", body)
}

func renderSpacer(b Block, _ RenderContext) string {
	h := b.Props.Number("height", 48)
	if h < 0 {
		h = 0
	}
	return fmt.Sprintf(`<div class="mb-spacer" style="height:%.0fpx"></div>`, h)
}

func renderDivider(b Block, _ RenderContext) string {
	p := b.Props
	return fmt.Sprintf(`<hr class="mb-divider" style="border-color:%s;border-width:%.0fpx">`,
		esc(p.String("color", "#e5e7eb")), p.Number("thickness", 1))
}

func renderButton(b Block, ctx RenderContext) string {
	p := b.Props
	body := fmt.Sprintf(`<a class="mb-btn mb-btn-%s" href="%s"><span%s>%s</span></a>`,
		esc(p.String("variant", "primary")), attr(p.String("link", "#")),
		editable(ctx, "text"), esc(p.String("text", "Click Here")))
	return section(p, "mb-button-section", body)
}

func renderLoginPortal(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(
		`<div class="mb-portal mb-portal-%s"><h2%s>%s</h2><p%s>%s</p>`,
		esc(p.String("portalType", "parent")),
		editable(ctx, "heading"), esc(p.String("heading", "Portal Login")),
		editable(ctx, "subheading"), esc(p.String("subheading", ""))))
	sb.WriteString(`<form method="post" action="/auth/login">` +
		`<input name="email" type="email" placeholder="Email">` +
		`<input name="password" type="password" placeholder="Password">` +
		`<button class="mb-btn" type="submit">Sign In</button></form>`)
	if p.Bool("showRegister", false) {
		sb.WriteString(`<a class="mb-portal-register" href="/auth/register">Create an account</a>`)
	}
	sb.WriteString(`</div>`)
	return section(p, "mb-portal-section", sb.String())
}

func renderSchedule(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<h2%s>%s</h2><table class="mb-schedule">`,
		editable(ctx, "heading"), esc(p.String("heading", "Weekly Schedule"))))
	for _, v := range p.Array("items") {
		it := itemMap(v)
		sb.WriteString(fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td>%s</td></tr>`,
			esc(it.String("day", "")), esc(it.String("time", "")),
			esc(it.String("activity", ""))))
	}
	sb.WriteString(`</table>`)
	return section(p, "mb-schedule-section", sb.String())
}

func renderAdmissions(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<h2%s>%s</h2><ol class="mb-steps">`,
		editable(ctx, "heading"), esc(p.String("heading", "Admissions Process"))))
	for _, v := range p.Array("steps") {
		st := itemMap(v)
		sb.WriteString(fmt.Sprintf(`<li><h3>%s</h3><p>%s</p></li>`,
			esc(st.String("title", "")), esc(st.String("description", ""))))
	}
	sb.WriteString(`</ol>`)
	return section(p, "mb-admissions-section", sb.String())
}

func renderEvents(b Block, ctx RenderContext) string {
	p := b.Props
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<h2%s>%s</h2><ul class="mb-events">`,
		editable(ctx, "heading"), esc(p.String("heading", "Upcoming Events"))))
	for _, v := range p.Array("items") {
		it := itemMap(v)
		sb.WriteString(fmt.Sprintf(`<li><time>%s</time><h3>%s</h3><span>%s</span><p>%s</p></li>`,
			esc(it.String("date", "")), esc(it.String("title", "")),
			esc(it.String("location", "")), esc(it.String("description", ""))))
	}
	sb.WriteString(`</ul>`)
	return section(p, "mb-events-section", sb.String())
}

func renderNewsletter(b Block, ctx RenderContext) string {
	p := b.Props
	body := fmt.Sprintf(
		`<div class="mb-newsletter"><h2%s>%s</h2>`+
			`<form method="post" action="#"><input name="email" type="email" placeholder="%s">`+
			`<button class="mb-btn" type="submit">%s</button></form></div>`,
		editable(ctx, "heading"), esc(p.String("heading", "Stay in Touch")),
		attr(p.String("placeholder", "Your email")),
		esc(p.String("buttonText", "Subscribe")))
	return section(p, "mb-newsletter-section", body)
}

func renderMap(b Block, ctx RenderContext) string {
	p := b.Props
	address := p.String("address", "")
	if address == "" {
		return ""
	}
	body := fmt.Sprintf(
		`<iframe class="mb-map" loading="lazy" src="https://www.google.com/maps?q=%s&z=%.0f&output=embed"></iframe>`,
		attr(address), p.Number("zoom", 15))
	return section(p, "mb-map-section", body)
}

func renderHTMLEmbed(b Block, ctx RenderContext) string {
	p := b.Props
	// Raw by intent: the embed block exists to paste third-party widgets.
	// On the canvas it is shown escaped so broken markup cannot eat the
	// editor chrome.
	code := p.String("code", "")
	if ctx.Mode == ModeCanvas {
		return section(p, "mb-html-section", `<pre class="mb-html-preview">`+esc(code)+`</pre>`)
	}
	return section(p, "mb-html-section", code)
}
