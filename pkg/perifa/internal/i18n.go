package internal

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// DefaultLanguage is the language the copy is authored in.
var DefaultLanguage = language.BrazilianPortuguese

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error

	defaultMessagesOnce sync.Once
	defaultMessages     *Messages
)

// Bundle returns the message bundle with every embedded locale loaded.
func Bundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(DefaultLanguage)
		b.RegisterUnmarshalFunc("toml", toml.Unmarshal)

		files, err := fs.Glob(localeFS, "locales/*.toml")
		if err != nil {
			bundleErr = fmt.Errorf("listing locales: %w", err)
			return
		}
		for _, f := range files {
			if _, err := b.LoadMessageFileFS(localeFS, f); err != nil {
				bundleErr = fmt.Errorf("loading %s: %w", path.Base(f), err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Messages looks up user-facing copy for one language.
type Messages struct {
	localizer *i18n.Localizer
	tag       language.Tag
}

// NewMessages returns the copy for the best match of the given language
// preferences, falling back to DefaultLanguage.
func NewMessages(langs ...string) *Messages {
	b, err := Bundle()
	if err != nil {
		GetInternalLogger().Error("Message bundle unavailable", "error", err)
		return &Messages{tag: DefaultLanguage}
	}

	tag := DefaultLanguage
	if len(langs) > 0 {
		prefs := make([]language.Tag, 0, len(langs))
		for _, l := range langs {
			if t, err := language.Parse(l); err == nil {
				prefs = append(prefs, t)
			}
		}
		matcher := language.NewMatcher(b.LanguageTags())
		matched, _, _ := matcher.Match(prefs...)
		base, _ := matched.Base()
		for _, t := range b.LanguageTags() {
			if tb, _ := t.Base(); tb == base {
				tag = t
				break
			}
		}
	}

	return &Messages{
		localizer: i18n.NewLocalizer(b, tag.String()),
		tag:       tag,
	}
}

// DefaultMessages returns the copy in DefaultLanguage.
func DefaultMessages() *Messages {
	defaultMessagesOnce.Do(func() {
		defaultMessages = NewMessages(DefaultLanguage.String())
	})
	return defaultMessages
}

// MessagesOr returns m, or the default copy when m is nil.
func MessagesOr(m *Messages) *Messages {
	if m != nil {
		return m
	}
	return DefaultMessages()
}

// Language returns the language the messages are served in.
func (m *Messages) Language() language.Tag {
	return m.tag
}

// Get returns the message with the given id, or the id itself when the
// message does not exist.
func (m *Messages) Get(id string) string {
	return m.Format(id, nil)
}

// Format renders the message with the given id against data.
func (m *Messages) Format(id string, data map[string]any) string {
	if m.localizer == nil {
		return id
	}
	msg, err := m.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		GetInternalLogger().Warn("Missing message", "id", id, "language", m.tag.String(), "error", err)
		return id
	}
	return msg
}
