// Package pipeline runs template render cycles with the icon helpers.
//
// A render cycle parses a page template (plus optional partials) with the
// extension's template functions, clears the icon memo table, executes the
// template and reports what happened. The CLI render and watch commands
// both go through a Runner.
//
// # Usage
//
//	runner := pipeline.NewRunner(ext, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Template: "templates/page.tmpl.html",
//	    Partials: "templates/*.part.html",
//	    Data:     map[string]any{"Title": "Home"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/svgext/pkg/cache"
	"github.com/matzehuels/svgext/pkg/errors"
)

// =============================================================================
// Options - Render Cycle Configuration
// =============================================================================

// Options configures one render cycle.
type Options struct {
	// Template is the path of the page template. Either Template or Text
	// must be set.
	Template string `json:"template,omitempty"`

	// Text is inline template source, used when Template is empty.
	Text string `json:"text,omitempty"`

	// Name names an inline template. Defaults to "page".
	Name string `json:"name,omitempty"`

	// Partials is a glob of additional templates parsed into the same set.
	// A glob matching nothing is not an error.
	Partials string `json:"partials,omitempty"`

	// Data is passed to the template as dot.
	Data any `json:"-"`

	// KeepMemo skips clearing the memo table at the start of the cycle.
	KeepMemo bool `json:"keep_memo,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the output of a render cycle.
type Result struct {
	// Output is the executed template.
	Output []byte

	// Stats contains timing and memo information.
	Stats Stats
}

// Stats contains render cycle statistics.
type Stats struct {
	RenderTime time.Duration
	Bytes      int
	Memo       cache.Stats
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Template == "" && o.Text == "" {
		return errors.New(errors.ErrCodeInvalidInput, "either a template path or template text is required")
	}
	if o.Template != "" {
		if err := errors.ValidatePath(o.Template); err != nil {
			return err
		}
	}
	if o.Partials != "" {
		if err := ValidateGlob(o.Partials); err != nil {
			return err
		}
	}
	if o.Name == "" {
		o.Name = "page"
	}
	o.validated = true
	return nil
}

// TemplateName returns the name the page template is executed under.
func (o *Options) TemplateName() string {
	if o.Template != "" {
		return filepath.Base(o.Template)
	}
	return o.Name
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateGlob checks that pattern is a well-formed glob.
func ValidateGlob(pattern string) error {
	if err := errors.ValidatePath(pattern); err != nil {
		return err
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "invalid partials pattern %q", pattern)
	}
	return nil
}

// =============================================================================
// Template Data
// =============================================================================

// LoadData decodes a JSON or TOML data file for use as template dot. The
// format follows the file extension; anything other than .toml is read as
// JSON.
func LoadData(path string) (map[string]any, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "data file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read data %s", path)
	}

	out := map[string]any{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &out)
	} else {
		err = json.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode data %s", path)
	}
	return out, nil
}
