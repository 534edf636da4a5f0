package configs

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// EmailTemplate is one outgoing-mail skeleton.
type EmailTemplate struct {
	To      string `toml:"to"`
	Cc      string `toml:"cc"`
	Subject string `toml:"subject"`
	Body    string `toml:"body"`
}

// EmailTemplates maps a template type to its content.
type EmailTemplates struct {
	Templates map[string]EmailTemplate `toml:"templates"`
}

// Built-in template types; anything else must be a custom- slug.
var builtinTemplateTypes = map[string]bool{
	"offer":            true,
	"first_day":        true,
	"background_check": true,
	"uniform_pickup":   true,
	"neo_reminder":     true,
}

var customTemplatePattern = regexp.MustCompile(`^custom-[a-z0-9][a-z0-9_-]{0,39}$`)

const (
	templateHeaderCap = 500
	templateBodyCap   = 5000
)

// ValidTemplateType reports whether a template key is acceptable.
func ValidTemplateType(key string) bool {
	return builtinTemplateTypes[key] || customTemplatePattern.MatchString(key)
}

// LoadTemplates reads the template file; missing or unreadable files
// yield an empty set.
func LoadTemplates(path string) *EmailTemplates {
	var templates EmailTemplates
	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(path, &templates); err != nil {
			templates = EmailTemplates{}
		}
	}
	if templates.Templates == nil {
		templates.Templates = map[string]EmailTemplate{}
	}
	return &templates
}

// SaveTemplates persists the template file.
func SaveTemplates(path string, templates *EmailTemplates) error {
	if templates.Templates == nil {
		templates.Templates = map[string]EmailTemplate{}
	}
	return SaveTOML(path, templates)
}

// SetTemplate validates and stores one template. Header fields are
// capped at 500 characters and the body at 5000.
func (t *EmailTemplates) SetTemplate(key string, template EmailTemplate) error {
	key = strings.TrimSpace(key)
	if !ValidTemplateType(key) {
		return fmt.Errorf("invalid template type %q", key)
	}
	if len([]rune(template.To)) > templateHeaderCap ||
		len([]rune(template.Cc)) > templateHeaderCap ||
		len([]rune(template.Subject)) > templateHeaderCap {
		return fmt.Errorf("template %q: header field exceeds %d characters", key, templateHeaderCap)
	}
	if len([]rune(template.Body)) > templateBodyCap {
		return fmt.Errorf("template %q: body exceeds %d characters", key, templateBodyCap)
	}
	if t.Templates == nil {
		t.Templates = map[string]EmailTemplate{}
	}
	t.Templates[key] = template
	return nil
}
