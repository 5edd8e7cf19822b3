package extension

import (
	"context"
	"html/template"

	"github.com/matzehuels/svgext/pkg/errors"
	"github.com/matzehuels/svgext/pkg/svg"
)

// FuncMap returns the template functions bound to ctx:
//
//	svg        identifier [class] [options]     inline icon
//	svgSprite  identifier... [options]          hidden sprite of symbols
//	sprite     identifier [class] [title]       <use> reference into a sprite
//	svgOptions key value...                     build an options value
//	list       item...                          build a []string
//
// Options may be given as an svg.Options (from svgOptions) or as a map with
// the keys id, title and preserveAspectRatio.
func (e *Extension) FuncMap(ctx context.Context) template.FuncMap {
	return template.FuncMap{
		"svg": func(identifier string, args ...any) (template.HTML, error) {
			class, opts, err := iconArgs(args)
			if err != nil {
				return "", err
			}
			out, err := e.SVG(ctx, identifier, class, opts)
			return template.HTML(out), err
		},
		"svgSprite": func(args ...any) (template.HTML, error) {
			identifiers, opts, err := spriteArgs(args)
			if err != nil {
				return "", err
			}
			out, err := e.Sprite(ctx, identifiers, opts)
			return template.HTML(out), err
		},
		"sprite": func(identifier string, args ...any) (template.HTML, error) {
			class, title, err := useArgs(args)
			if err != nil {
				return "", err
			}
			return template.HTML(e.Use(identifier, class, title)), nil
		},
		"svgOptions": optionsFromPairs,
		"list":       list,
	}
}

// iconArgs reads the optional class and options of svg.
func iconArgs(args []any) (string, svg.Options, error) {
	var class string
	var opts svg.Options
	for _, a := range args {
		switch v := a.(type) {
		case nil:
		case string:
			class = v
		default:
			o, ok := asOptions(v)
			if !ok {
				return "", svg.Options{}, errors.New(errors.ErrCodeTemplate, "svg: unsupported argument of type %T", a)
			}
			opts = o
		}
	}
	return class, opts, nil
}

// useArgs reads the optional class and title of sprite. nil stands for an
// omitted value.
func useArgs(args []any) (class, title string, err error) {
	if len(args) > 2 {
		return "", "", errors.New(errors.ErrCodeTemplate, "sprite: expected at most class and title, got %d extra arguments", len(args))
	}
	vals := make([]string, 2)
	for i, a := range args {
		switch v := a.(type) {
		case nil:
		case string:
			vals[i] = v
		default:
			return "", "", errors.New(errors.ErrCodeTemplate, "sprite: unsupported argument of type %T", a)
		}
	}
	return vals[0], vals[1], nil
}

// spriteArgs flattens identifiers given as strings or lists and picks up a
// trailing options value.
func spriteArgs(args []any) ([]string, svg.Options, error) {
	var ids []string
	var opts svg.Options
	for _, a := range args {
		switch v := a.(type) {
		case nil:
		case string:
			ids = append(ids, v)
		case []string:
			ids = append(ids, v...)
		case []any:
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return nil, svg.Options{}, errors.New(errors.ErrCodeTemplate, "svgSprite: identifier of type %T", item)
				}
				ids = append(ids, s)
			}
		default:
			o, ok := asOptions(v)
			if !ok {
				return nil, svg.Options{}, errors.New(errors.ErrCodeTemplate, "svgSprite: unsupported argument of type %T", a)
			}
			opts = o
		}
	}
	return ids, opts, nil
}

func asOptions(v any) (svg.Options, bool) {
	switch o := v.(type) {
	case svg.Options:
		return o, true
	case *svg.Options:
		if o == nil {
			return svg.Options{}, true
		}
		return *o, true
	case map[string]any:
		return svg.OptionsFromMap(o), true
	case map[string]string:
		m := make(map[string]any, len(o))
		for k, s := range o {
			m[k] = s
		}
		return svg.OptionsFromMap(m), true
	}
	return svg.Options{}, false
}

func optionsFromPairs(pairs ...any) (svg.Options, error) {
	if len(pairs)%2 != 0 {
		return svg.Options{}, errors.New(errors.ErrCodeTemplate, "svgOptions: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		k, ok := pairs[i].(string)
		if !ok {
			return svg.Options{}, errors.New(errors.ErrCodeTemplate, "svgOptions: key %v is not a string", pairs[i])
		}
		switch k {
		case "id", "title", "preserveAspectRatio":
		default:
			return svg.Options{}, errors.New(errors.ErrCodeTemplate, "svgOptions: unknown option %q", k)
		}
		m[k] = pairs[i+1]
	}
	return svg.OptionsFromMap(m), nil
}

func list(items ...string) []string {
	return items
}
