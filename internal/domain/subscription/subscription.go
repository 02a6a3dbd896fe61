// Package subscription defines feed subscription models.
package subscription

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrNoFeeds is returned when a feed list has no entries.
var ErrNoFeeds = errors.New("no feeds defined")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// The url tag accepts embedded spaces, which no fetchable feed URL has.
	_ = v.RegisterValidation("nospace", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), unicode.IsSpace)
	})
	return v
}

// Source describes one RSS/Atom feed the reader can load.
type Source struct {
	Name string `yaml:"name" validate:"required"`
	URL  string `yaml:"url" validate:"required,url,nospace"`
}

// Normalize trims surrounding whitespace from both fields.
func (s Source) Normalize() Source {
	return Source{
		Name: strings.TrimSpace(s.Name),
		URL:  strings.TrimSpace(s.URL),
	}
}

// Validate reports whether the source has a usable name and URL.
func (s Source) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("feed %q: %s is %s", s.Name, strings.ToLower(verrs[0].Field()), describeTag(verrs[0].Tag()))
		}
		return err
	}
	return nil
}

func describeTag(tag string) string {
	switch tag {
	case "required":
		return "empty"
	case "url", "nospace":
		return "not a valid url"
	default:
		return "invalid (" + tag + ")"
	}
}

// Validate checks that the list is non-empty and every source is valid.
func Validate(sources []Source) error {
	if len(sources) == 0 {
		return ErrNoFeeds
	}
	for i, s := range sources {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("feed %d: %w", i, err)
		}
	}
	return nil
}

// DefaultSources returns the feeds a fresh configuration starts with.
func DefaultSources() []Source {
	return []Source{
		{Name: "Udacity Blog", URL: "http://blog.udacity.com/feed"},
		{Name: "CSS Tricks", URL: "http://feeds.feedburner.com/CssTricks"},
		{Name: "HTML5 Rocks", URL: "http://feeds.feedburner.com/html5rocks"},
		{Name: "Linear Digressions", URL: "http://feeds.feedburner.com/udacity-linear-digressions"},
	}
}
