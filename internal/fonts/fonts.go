// Package fonts provides the built-in scalable fonts used for label
// measurement and outline text.
//
// Faces are looked up by family name. Common PostScript and Hershey family
// names are accepted as aliases of the Go fonts so that backends can declare
// their customary default family.
package fonts

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Style selects a member of a font family.
type Style uint8

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
)

type family struct {
	name  string
	faces [4][]byte
}

var families = []family{
	{name: "go", faces: [4][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF}},
	{name: "go-mono", faces: [4][]byte{gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF}},
}

var styleSuffix = [4]string{"", "-bold", "-italic", "-bold-italic"}

// aliases maps customary family names onto the built-in families.
var aliases = map[string]string{
	"helvetica":             "go",
	"helvetica-bold":        "go-bold",
	"helvetica-oblique":     "go-italic",
	"helvetica-boldoblique": "go-bold-italic",
	"times-roman":           "go",
	"times-bold":            "go-bold",
	"times-italic":          "go-italic",
	"times-bolditalic":      "go-bold-italic",
	"courier":               "go-mono",
	"courier-bold":          "go-mono-bold",
	"courier-oblique":       "go-mono-italic",
	"courier-boldoblique":   "go-mono-bold-italic",
	"hersheyserif":          "go",
	"hersheysans":           "go",
	"hersheyserif-bold":     "go-bold",
	"hersheyserif-italic":   "go-italic",
	"sans-serif":            "go",
	"serif":                 "go",
	"monospace":             "go-mono",
}

// Face is a parsed font. It is safe for concurrent use.
type Face struct {
	name   string
	family int
	style  Style

	sf   *sfnt.Font
	gt   *font.Font
	upem float64
}

var (
	cacheMu sync.Mutex
	cache   = make(map[string]*Face)
)

// Lookup returns the face for a family name such as "go-bold" or
// "Helvetica". Names are case-insensitive.
func Lookup(name string) (*Face, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if a, ok := aliases[key]; ok {
		key = a
	}
	for fi, fam := range families {
		for st, suffix := range styleSuffix {
			if key == fam.name+suffix {
				f, err := load(fi, Style(st))
				if err != nil {
					return nil, false
				}
				return f, true
			}
		}
	}
	return nil, false
}

// Default returns the regular Go face.
func Default() *Face {
	f, err := load(0, Regular)
	if err != nil {
		panic(err)
	}
	return f
}

// Names lists the built-in face names.
func Names() []string {
	var names []string
	for _, fam := range families {
		for _, suffix := range styleSuffix {
			names = append(names, fam.name+suffix)
		}
	}
	sort.Strings(names)
	return names
}

func load(fi int, st Style) (*Face, error) {
	name := families[fi].name + styleSuffix[st]

	cacheMu.Lock()
	defer cacheMu.Unlock()
	if f, ok := cache[name]; ok {
		return f, nil
	}

	data := families[fi].faces[st]
	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse %s: %w", name, err)
	}
	gt, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fonts: parse %s: %w", name, err)
	}
	f := &Face{
		name:   name,
		family: fi,
		style:  st,
		sf:     sf,
		gt:     gt.Font,
		upem:   float64(sf.UnitsPerEm()),
	}
	cache[name] = f
	return f, nil
}

// Name returns the canonical face name.
func (f *Face) Name() string { return f.name }

// Style returns the style of the face within its family.
func (f *Face) Style() Style { return f.style }

// WithStyle returns the face of the same family in style st.
func (f *Face) WithStyle(st Style) *Face {
	if st == f.style {
		return f
	}
	g, err := load(f.family, st)
	if err != nil {
		return f
	}
	return g
}

// Metrics holds vertical font metrics scaled to a font size.
// Ascent and CapHeight are positive upwards, Descent is positive downwards.
type Metrics struct {
	Ascent    float64
	Descent   float64
	CapHeight float64
}
