package colorize

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// StyleName is the registered chroma style used for listings.
const StyleName = "gbdis-dark"

// DisasmDark greens the listing after the DMG palette.
var DisasmDark = styles.Register(chroma.MustNewStyle(StyleName, chroma.StyleEntries{
	chroma.Text:       "#E0F8D0",
	chroma.Background: "bg:#081820",
	chroma.Comment:    "#346856",

	chroma.Keyword:       "#E0F8D0",
	chroma.KeywordPseudo: "#88C070",
	chroma.Name:          "#88C070",
	chroma.NameBuiltin:   "#88C070",
	chroma.NameVariable:  "#88C070",
	chroma.NameFunction:  "#E0F8D0",
	chroma.NameLabel:     "#FFD700",

	chroma.LiteralNumber:        "#FF5F87",
	chroma.LiteralNumberHex:     "#FF5F87",
	chroma.LiteralNumberInteger: "#FF5F87",

	chroma.Operator:    "#E0F8D0",
	chroma.Punctuation: "#E0F8D0",
	chroma.String:      "#EACD53",
}))
