// Package replies holds the localized strings the assistant answers with and formats tool
// recommendations.
package replies

import (
	"fmt"
	"strings"

	"github.com/Desarso/toolguide/catalog"
	"github.com/Desarso/toolguide/models"
)

type text struct {
	tr string
	en string
}

func (t text) in(lang models.Language) string {
	if models.NormalizeLanguage(lang) == models.English {
		return t.en
	}
	return t.tr
}

var (
	greeting = text{
		tr: "Merhaba! Nasıl yardımcı olabilirim?",
		en: "Hello! How can I help you?",
	}
	thanks = text{
		tr: "Rica ederim! Başka bir konuda yardımcı olabileceğim bir şey var mı?",
		en: "You're welcome! Is there anything else I can help you with?",
	}
	notFound = text{
		tr: "Bu konuda uygun bir araç bulamadım. Sorunuzu biraz daha ayrıntılı yazabilir ya da tüm araçlara göz atabilirsiniz",
		en: "I couldn't find a suitable tool for that. Try describing what you need in more detail, or browse all tools",
	}
	noInformation = text{
		tr: "Bu araç hakkında bilgim yok.",
		en: "I don't have any information about this tool.",
	}
	apology = text{
		tr: "Üzgünüm, şu anda %s hakkında bilgi alamıyorum. Lütfen daha sonra tekrar deneyin.",
		en: "Sorry, I can't get information about %s right now. Please try again later.",
	}
	temporaryProblem = text{
		tr: "Bir hata oluştu. Lütfen tekrar deneyin.",
		en: "Something went wrong. Please try again.",
	}
	detailsLabel  = text{tr: "Detaylar", en: "Details"}
	siteLabel     = text{tr: "Site", en: "Website"}
	howToLabel    = text{tr: "Nasıl kullanılır", en: "How to use"}
	alternativeTo = text{
		tr: "Bu, %s için bir alternatiftir.",
		en: "This is an alternative to %s.",
	}
)

func Greeting(lang models.Language) string { return greeting.in(lang) }

func Thanks(lang models.Language) string { return thanks.in(lang) }

func NoInformation(lang models.Language) string { return noInformation.in(lang) }

// Apology names the tool whose lookup failed.
func Apology(lang models.Language, tool string) string {
	return fmt.Sprintf(apology.in(lang), tool)
}

// TemporaryProblem is returned when the catalog cannot be loaded.
func TemporaryProblem(lang models.Language) string { return temporaryProblem.in(lang) }

// Formatter renders tool records. SiteURL prefixes internal links and may be empty.
type Formatter struct {
	SiteURL string
}

func NewFormatter(siteURL string) Formatter {
	return Formatter{SiteURL: strings.TrimRight(siteURL, "/")}
}

// ToolsURL is the internal catalog listing.
func (f Formatter) ToolsURL() string {
	return f.SiteURL + "/tools"
}

// ToolURL is the internal reference link for a tool name.
func (f Formatter) ToolURL(name string) string {
	return f.ToolsURL() + "/" + catalog.Slug(name)
}

// NotFound gives guidance and a link to browse the catalog.
func (f Formatter) NotFound(lang models.Language) string {
	return notFound.in(lang) + ": " + f.ToolsURL()
}

// Recommendation renders "Name: description" followed by the internal and external links.
// The text always starts with the tool name.
func (f Formatter) Recommendation(tool catalog.ToolRecord, lang models.Language) string {
	return f.render(tool, lang, "")
}

// Details is the recommendation followed by the tool's usage instructions, when it has any.
func (f Formatter) Details(tool catalog.ToolRecord, lang models.Language) string {
	howTo := tool.Instructions(lang)
	if howTo == "" {
		return f.Recommendation(tool, lang)
	}
	return f.render(tool, lang, howToLabel.in(lang)+": "+howTo)
}

// Alternative renders tool as a replacement for previous.
func (f Formatter) Alternative(tool catalog.ToolRecord, previous string, lang models.Language) string {
	return f.render(tool, lang, fmt.Sprintf(alternativeTo.in(lang), previous))
}

func (f Formatter) render(tool catalog.ToolRecord, lang models.Language, note string) string {
	var b strings.Builder
	b.WriteString(tool.Name)
	b.WriteString(": ")
	b.WriteString(tool.Description(lang))
	if note != "" {
		b.WriteString("\n\n")
		b.WriteString(note)
	}
	b.WriteString("\n\n🔗 ")
	b.WriteString(detailsLabel.in(lang))
	b.WriteString(": ")
	b.WriteString(f.ToolURL(tool.Name))
	if tool.Link != "" {
		b.WriteString("\n🌐 ")
		b.WriteString(siteLabel.in(lang))
		b.WriteString(": ")
		b.WriteString(tool.Link)
	}
	return b.String()
}
